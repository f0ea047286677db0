// Package analysis computes the statistical sections of the run report
// from a cleaned table. Every section is a pure function of the table;
// the Analyzer decides which sections the table supports and records
// why the rest were skipped.
package analysis

import (
	"fmt"

	"bookstat/domain/book"
	"bookstat/domain/core"
	"bookstat/domain/report"
	"bookstat/internal"
)

// stageAnalyze tags diagnostics produced while assembling the report.
const stageAnalyze = "analyze"

// Config controls the segment used by the comparative and hypothesis
// sections.
type Config struct {
	Segment Segment
}

// Analyzer assembles the report for one cleaned table. A section the
// table cannot support is omitted and noted in Metadata.Notes; no
// section ever aborts a run.
type Analyzer struct {
	cfg Config
	log *internal.Logger
}

// New returns an Analyzer. An unnamed segment falls back to the default
// fiction split.
func New(cfg Config) *Analyzer {
	if cfg.Segment.Name == "" {
		cfg.Segment = DefaultSegment()
	}
	return &Analyzer{
		cfg: cfg,
		log: internal.DefaultLogger.WithComponent("analysis"),
	}
}

// Report computes every supported section for the table. The returned
// diagnostics mirror the metadata notes, one per skipped section.
func (a *Analyzer) Report(table *book.Table, sourceFile string) (*report.Report, []book.Diagnostic) {
	rep := &report.Report{
		Metadata: report.Metadata{
			RunID:        core.NewRunID(),
			GeneratedAt:  core.Now(),
			SourceFile:   sourceFile,
			TotalRecords: table.Len(),
		},
	}

	var diags []book.Diagnostic
	note := func(field, msg string) {
		rep.Metadata.Notes = append(rep.Metadata.Notes, msg)
		diags = append(diags, book.Diagnostic{Stage: stageAnalyze, RowIndex: -1, Field: field, Message: msg})
		a.log.Warn("section skipped: %s", msg)
	}

	if table.Len() == 0 {
		note("", "no records to analyze")
		return rep, diags
	}

	descriptive := make(map[string]report.DescriptiveStats)
	outliers := make(map[string]report.OutlierStats)
	for _, col := range book.NumericColumns() {
		if !table.HasColumn(col) {
			note(col, fmt.Sprintf("column %s not present, descriptive stats and outliers skipped", col))
			continue
		}
		values := table.NumericColumn(col)
		descriptive[col] = DescribeColumn(values)
		outliers[col] = DetectOutliers(values, col)
	}
	if len(descriptive) > 0 {
		rep.DescriptiveStats = descriptive
		rep.OutlierAnalysis = outliers
	}

	if table.HasColumn(book.FieldCategory) {
		rep.CategoryPopularity = Popularity(table.Records)
		rep.ComparativeAnalysis = Comparative(table, a.cfg.Segment)
		if table.HasColumn(book.FieldPrice) {
			rep.PriceDistributionByCategory = PriceDistributionByCategory(table.Records)
			rep.HypothesisTesting = HypothesisTest(table, a.cfg.Segment)
		} else {
			note(book.FieldPrice, "column price not present, price-by-category and hypothesis sections skipped")
		}
	} else {
		note(book.FieldCategory, "column category not present, category sections skipped")
	}

	if table.HasColumn(book.FieldRating) {
		rep.RatingPatterns = RatingPatterns(table.Ratings())
	} else {
		note(book.FieldRating, "column rating not present, rating patterns skipped")
	}

	if ca := CorrelationMatrix(table); ca != nil {
		rep.CorrelationAnalysis = ca
	} else {
		note("", "fewer than two numeric columns present, correlation analysis skipped")
	}

	if reg, err := PriceRatingRegression(table); err == nil {
		rep.PriceRatingRegression = reg
	} else {
		note(book.FieldRating, "price-rating regression skipped: "+err.Error())
	}

	if sa := StockAnalysis(table); sa != nil {
		rep.StockAnalysis = sa
	} else {
		note(book.FieldAvailability, "column availability not present, stock analysis skipped")
	}

	a.log.Debug("report assembled: %d records, %d notes", table.Len(), len(rep.Metadata.Notes))
	return rep, diags
}
