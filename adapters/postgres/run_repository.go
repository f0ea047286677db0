// Package postgres persists pipeline runs and their reports.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bookstat/domain/core"
	"bookstat/domain/report"
	"bookstat/internal"
	"bookstat/internal/errors"
	"bookstat/ports"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
	run_id        TEXT PRIMARY KEY,
	source_file   TEXT NOT NULL,
	dataset_hash  TEXT NOT NULL,
	total_records INTEGER NOT NULL,
	started_at    TIMESTAMPTZ NOT NULL,
	completed_at  TIMESTAMPTZ NOT NULL,
	duration_ms   BIGINT NOT NULL,
	report        JSONB NOT NULL,
	artifacts     JSONB NOT NULL DEFAULT '[]'
)`

// runRepository implements the RunStore interface on PostgreSQL.
type runRepository struct {
	db  *sqlx.DB
	log *internal.Logger
}

// NewRunStore wraps an open connection and ensures the runs table
// exists. The store takes ownership of the connection; Close releases it.
func NewRunStore(ctx context.Context, db *sqlx.DB) (ports.RunStore, error) {
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		return nil, dbError("create pipeline_runs table", err)
	}
	return &runRepository{
		db:  db,
		log: internal.DefaultLogger.WithComponent("postgres"),
	}, nil
}

// SaveRun inserts one completed run. The report and artifact list are
// stored as JSONB so reruns can be compared without re-parsing files.
func (r *runRepository) SaveRun(ctx context.Context, rec *ports.RunRecord) error {
	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return dbError("marshal report", err)
	}
	artifactsJSON, err := json.Marshal(rec.Artifacts)
	if err != nil {
		return dbError("marshal artifacts", err)
	}

	query := `INSERT INTO pipeline_runs (
		run_id, source_file, dataset_hash, total_records,
		started_at, completed_at, duration_ms, report, artifacts
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		rec.RunID.String(), rec.SourceFile, rec.DatasetHash.String(), rec.TotalRecords,
		rec.StartedAt.Time(), rec.CompletedAt.Time(), rec.DurationMs, reportJSON, artifactsJSON,
	)
	if err != nil {
		return dbError("insert run", err)
	}

	r.log.Info("saved run %s (%d records)", rec.RunID, rec.TotalRecords)
	return nil
}

// GetRun retrieves one run by id.
func (r *runRepository) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	query := `SELECT
		run_id, source_file, dataset_hash, total_records,
		started_at, completed_at, duration_ms, report, artifacts
	FROM pipeline_runs WHERE run_id = $1`

	var (
		runID         string
		datasetHash   string
		rec           ports.RunRecord
		startedAt     time.Time
		completedAt   time.Time
		reportJSON    []byte
		artifactsJSON []byte
	)
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&runID, &rec.SourceFile, &datasetHash, &rec.TotalRecords,
		&startedAt, &completedAt, &rec.DurationMs, &reportJSON, &artifactsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, dbError("get run", err)
	}

	rec.RunID, err = core.ParseRunID(runID)
	if err != nil {
		return nil, dbError("parse stored run id", err)
	}
	rec.DatasetHash = core.DatasetHash(datasetHash)
	rec.StartedAt = core.NewTimestamp(startedAt)
	rec.CompletedAt = core.NewTimestamp(completedAt)

	if len(reportJSON) > 0 {
		rec.Report = &report.Report{}
		if err := json.Unmarshal(reportJSON, rec.Report); err != nil {
			return nil, dbError("unmarshal stored report", err)
		}
	}
	if len(artifactsJSON) > 0 {
		if err := json.Unmarshal(artifactsJSON, &rec.Artifacts); err != nil {
			return nil, dbError("unmarshal stored artifacts", err)
		}
	}
	return &rec, nil
}

// Close releases the underlying connection.
func (r *runRepository) Close() error {
	return r.db.Close()
}

func dbError(op string, cause error) error {
	return &errors.AppError{
		Code:    errors.CodeDatabaseError,
		Message: "failed to " + op,
		Cause:   cause,
	}
}
