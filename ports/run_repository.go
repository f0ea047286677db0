package ports

import (
	"context"

	"bookstat/domain/core"
	"bookstat/domain/report"
)

// RunRecord is one completed pipeline run as persisted.
type RunRecord struct {
	RunID        core.RunID       `json:"run_id"`
	SourceFile   string           `json:"source_file"`
	DatasetHash  core.DatasetHash `json:"dataset_hash"`
	TotalRecords int              `json:"total_records"`
	StartedAt    core.Timestamp   `json:"started_at"`
	CompletedAt  core.Timestamp   `json:"completed_at"`
	DurationMs   int64            `json:"duration_ms"`
	Report       *report.Report   `json:"report"`
	Artifacts    []core.Artifact  `json:"artifacts"`
}

// RunStore persists run history. GetRun returns core.ErrRunNotFound
// when the id has never been saved.
type RunStore interface {
	SaveRun(ctx context.Context, rec *RunRecord) error
	GetRun(ctx context.Context, id core.RunID) (*RunRecord, error)
	Close() error
}
