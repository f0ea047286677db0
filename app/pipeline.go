// Package app wires sources, cleaning, analysis and sinks into the
// pipeline service.
package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"bookstat/domain/book"
	"bookstat/domain/core"
	"bookstat/domain/report"
	"bookstat/internal"
	"bookstat/internal/analysis"
	"bookstat/internal/clean"
	"bookstat/internal/errors"
	"bookstat/ports"
)

// reportFileStem prefixes every report artifact; the run's timestamp
// completes the name.
const reportFileStem = "comprehensive_analysis_report_"

// Options configure artifact output for a pipeline service.
type Options struct {
	// OutputDir receives the report artifacts.
	OutputDir string
	// HTMLPreview additionally renders the narrative as HTML.
	HTMLPreview bool
}

// PipelineService runs the load, clean, analyze, report flow end to end.
type PipelineService struct {
	source   ports.RecordSource
	writer   ports.RecordWriter
	renderer ports.ReportRenderer
	store    ports.RunStore
	cleaner  *clean.Cleaner
	analyzer *analysis.Analyzer
	opts     Options
	log      *internal.Logger
}

// NewPipelineService creates the service. store may be nil; runs are
// then not archived.
func NewPipelineService(
	source ports.RecordSource,
	writer ports.RecordWriter,
	renderer ports.ReportRenderer,
	store ports.RunStore,
	cleaner *clean.Cleaner,
	analyzer *analysis.Analyzer,
	opts Options,
) *PipelineService {
	return &PipelineService{
		source:   source,
		writer:   writer,
		renderer: renderer,
		store:    store,
		cleaner:  cleaner,
		analyzer: analyzer,
		opts:     opts,
		log:      internal.DefaultLogger.WithComponent("pipeline"),
	}
}

// RunStats summarizes one pipeline run for callers.
type RunStats struct {
	RunID        core.RunID
	SourceFile   string
	TotalRecords int
	CleanStats   book.CleanStats
	Validation   book.ValidationSummary
	Diagnostics  []book.Diagnostic
	Artifacts    []core.Artifact
	Duration     time.Duration
	Saved        bool
}

// Run executes the full flow: load the source, clean it, analyze the
// cleaned table and write the artifacts.
func (s *PipelineService) Run(ctx context.Context) (*RunStats, error) {
	startedAt := core.Now()

	raw, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	cleaned, err := s.cleaner.Run(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("cleaned %d rows down to %d records (%.1f%% retained)",
		cleaned.Stats.InitialRows, cleaned.Stats.FinalRows, cleaned.Stats.RetentionRate())

	hash := core.ComputeDatasetHash(raw.StringRows())
	return s.finish(ctx, cleaned.Table, cleaned, s.source.Name(), hash, startedAt, true)
}

// RunCleaned analyzes a table that was cleaned by an earlier run,
// skipping the cleaning stages and the cleaned-table artifact.
func (s *PipelineService) RunCleaned(ctx context.Context, table *book.Table, sourceName string) (*RunStats, error) {
	startedAt := core.Now()
	hash := core.ComputeDatasetHash(table.StringRows())
	return s.finish(ctx, table, nil, sourceName, hash, startedAt, false)
}

func (s *PipelineService) finish(
	ctx context.Context,
	table *book.Table,
	cleaned *clean.Result,
	sourceName string,
	hash core.DatasetHash,
	startedAt core.Timestamp,
	writeCleaned bool,
) (*RunStats, error) {
	rep, diags := s.analyzer.Report(table, sourceName)
	rep.Metadata.DatasetHash = hash

	stats := &RunStats{
		RunID:        rep.Metadata.RunID,
		SourceFile:   sourceName,
		TotalRecords: rep.Metadata.TotalRecords,
	}
	if cleaned != nil {
		stats.CleanStats = cleaned.Stats
		stats.Validation = cleaned.Validation
		stats.Diagnostics = append(stats.Diagnostics, cleaned.Diagnostics...)
	}
	stats.Diagnostics = append(stats.Diagnostics, diags...)

	artifacts, err := s.writeArtifacts(ctx, table, rep, writeCleaned)
	if err != nil {
		return nil, err
	}
	stats.Artifacts = artifacts

	completedAt := core.Now()
	stats.Duration = completedAt.Sub(startedAt)

	if s.store != nil {
		record := &ports.RunRecord{
			RunID:        rep.Metadata.RunID,
			SourceFile:   sourceName,
			DatasetHash:  hash,
			TotalRecords: rep.Metadata.TotalRecords,
			StartedAt:    startedAt,
			CompletedAt:  completedAt,
			DurationMs:   stats.Duration.Milliseconds(),
			Report:       rep,
			Artifacts:    artifacts,
		}
		// Archiving is best effort: a dead database costs the archive
		// row, not the run.
		if err := s.store.SaveRun(ctx, record); err != nil {
			s.log.Warn("run archive failed: %v", err)
		} else {
			stats.Saved = true
		}
	}

	s.log.Info("run %s complete: %d records, %d artifacts, %d diagnostics in %v",
		stats.RunID, stats.TotalRecords, len(stats.Artifacts), len(stats.Diagnostics), stats.Duration)
	return stats, nil
}

// writeArtifacts renders and writes every artifact concurrently. Any
// failure fails the run; partial files are left for inspection.
func (s *PipelineService) writeArtifacts(ctx context.Context, table *book.Table, rep *report.Report, writeCleaned bool) ([]core.Artifact, error) {
	if err := os.MkdirAll(s.opts.OutputDir, 0755); err != nil {
		return nil, errors.ReportWriteError(s.opts.OutputDir, err)
	}

	stem := filepath.Join(s.opts.OutputDir, reportFileStem+rep.Metadata.GeneratedAt.FileStamp())
	created := rep.Metadata.GeneratedAt

	// Fixed slots keep the artifact order stable without a lock.
	slots := make([]core.Artifact, 4)
	g, gctx := errgroup.WithContext(ctx)

	if writeCleaned {
		g.Go(func() error {
			path, err := s.writer.WriteRecords(gctx, table)
			if err != nil {
				return err
			}
			slots[0] = core.Artifact{Kind: core.ArtifactCleanedTable, Path: path, CreatedAt: created}
			return nil
		})
	}
	g.Go(func() error {
		path := stem + ".json"
		data, err := json.MarshalIndent(rep, "", "    ")
		if err != nil {
			return errors.ReportWriteError(path, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.ReportWriteError(path, err)
		}
		slots[1] = core.Artifact{Kind: core.ArtifactReportJSON, Path: path, CreatedAt: created}
		return nil
	})
	g.Go(func() error {
		path := stem + ".md"
		data, err := s.renderer.Render(rep)
		if err != nil {
			return errors.ReportWriteError(path, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.ReportWriteError(path, err)
		}
		slots[2] = core.Artifact{Kind: core.ArtifactReportMarkdown, Path: path, CreatedAt: created}
		return nil
	})
	if s.opts.HTMLPreview {
		g.Go(func() error {
			path := stem + ".html"
			data, err := s.renderer.RenderHTML(rep)
			if err != nil {
				return errors.ReportWriteError(path, err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return errors.ReportWriteError(path, err)
			}
			slots[3] = core.Artifact{Kind: core.ArtifactReportHTML, Path: path, CreatedAt: created}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var artifacts []core.Artifact
	for _, a := range slots {
		if a.Kind != "" {
			artifacts = append(artifacts, a)
		}
	}
	return artifacts, nil
}
