// Package clean turns raw scraped rows into an analyzable table. The
// stages run in a fixed order: currency normalization, deduplication,
// missing-value handling, text normalization. Each stage takes a slice
// and returns a new one; recoverable problems become diagnostics on the
// result instead of aborting the run.
package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bookstat/domain/book"
	"bookstat/domain/core"
	"bookstat/internal/errors"
)

// Stage names used in diagnostics.
const (
	StageCurrency = "currency"
	StageDedupe   = "dedupe"
	StageMissing  = "missing"
	StageText     = "text"
)

// Config controls the cleaning stages.
type Config struct {
	// NumericFill replaces missing or unparsable optional numeric cells.
	NumericFill float64
	// CategoricalFill replaces missing optional categorical cells.
	CategoricalFill string
	// RequiredFields are columns a record cannot survive without.
	RequiredFields []string
	// TextFields are columns normalized as free text.
	TextFields []string
	// TextFeatures enables hashtag, mention and keyword extraction.
	TextFeatures bool
	// Rates overrides the currency conversion table when non-nil.
	Rates Rates
}

// DefaultConfig mirrors the scraped book schema: title and price are
// required, title and category are treated as text.
func DefaultConfig() Config {
	return Config{
		NumericFill:     0.0,
		CategoricalFill: "Unknown",
		RequiredFields:  []string{book.FieldTitle, book.FieldPrice},
		TextFields:      []string{book.FieldTitle, book.FieldCategory},
		TextFeatures:    false,
		Rates:           DefaultRates(),
	}
}

// Cleaner runs the cleaning stages over a raw table.
type Cleaner struct {
	cfg      Config
	required map[string]bool
}

// New creates a Cleaner, filling config gaps from DefaultConfig.
func New(cfg Config) *Cleaner {
	if cfg.Rates == nil {
		cfg.Rates = DefaultRates()
	}
	if cfg.CategoricalFill == "" {
		cfg.CategoricalFill = "Unknown"
	}
	required := make(map[string]bool, len(cfg.RequiredFields))
	for _, f := range cfg.RequiredFields {
		required[f] = true
	}
	return &Cleaner{cfg: cfg, required: required}
}

// Result carries the cleaned table plus everything observed on the way.
type Result struct {
	Table       *book.Table
	Stats       book.CleanStats
	Diagnostics []book.Diagnostic
	Validation  book.ValidationSummary
}

// Run executes all stages. An empty input table is the one fatal case;
// every other problem degrades to diagnostics.
func (c *Cleaner) Run(raw *book.RawTable) (*Result, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, errors.DataLoadError("input table", core.ErrEmptyDataset)
	}

	res := &Result{}
	res.Stats.InitialRows = len(raw.Rows)

	rows, converted, diags := c.NormalizeCurrency(raw.Rows)
	res.Stats.PricesConverted = converted
	res.Stats.PricesAssumedUSD = len(rows) - converted
	res.Diagnostics = append(res.Diagnostics, diags...)

	rows, removed := c.Deduplicate(rows)
	res.Stats.DuplicatesRemoved = removed

	records, fill, diags := c.FillMissing(rows)
	res.Stats.ValuesFilled = fill.ValuesFilled
	res.Stats.RowsDropped = fill.RowsDropped
	res.Diagnostics = append(res.Diagnostics, diags...)

	records, dropped, diags := c.ExtractTextFeatures(records)
	res.Stats.EmptyTextDropped = dropped
	res.Diagnostics = append(res.Diagnostics, diags...)

	res.Stats.FinalRows = len(records)
	res.Table = &book.Table{Records: records, Columns: c.outputColumns(raw.Columns)}
	res.Validation = Validate(res.Table)
	return res, nil
}

// NormalizeCurrency rewrites marked prices to USD amounts. It returns
// the rewritten rows, how many carried a currency marker, and one
// diagnostic per unparsable price.
func (c *Cleaner) NormalizeCurrency(rows []book.RawRecord) ([]book.RawRecord, int, []book.Diagnostic) {
	out := make([]book.RawRecord, len(rows))
	converted := 0
	var diags []book.Diagnostic

	for i, row := range rows {
		out[i] = row
		if strings.TrimSpace(row.Price) == "" {
			continue
		}
		normalized, didConvert, ok := NormalizePrice(row.Price, c.cfg.Rates)
		if !ok {
			diags = append(diags, book.Diagnostic{
				Stage:    StageCurrency,
				RowIndex: i,
				Field:    book.FieldPrice,
				Value:    row.Price,
				Message:  "price is not a number",
			})
			continue
		}
		out[i].Price = normalized
		if didConvert {
			converted++
		}
	}
	return out, converted, diags
}

// Deduplicate keeps the first occurrence of each title. Comparison uses
// the same normalization the text stage will apply, so rows that clean
// to the same title count as duplicates.
func (c *Cleaner) Deduplicate(rows []book.RawRecord) ([]book.RawRecord, int) {
	seen := make(map[string]struct{}, len(rows))
	out := make([]book.RawRecord, 0, len(rows))
	for _, row := range rows {
		key := c.dedupeKey(row.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out, len(rows) - len(out)
}

func (c *Cleaner) dedupeKey(title string) string {
	for _, f := range c.cfg.TextFields {
		if f == book.FieldTitle {
			return CleanText(title)
		}
	}
	return strings.TrimSpace(title)
}

// FillStats counts what FillMissing changed.
type FillStats struct {
	ValuesFilled int
	RowsDropped  int
}

// FillMissing converts raw rows into typed records. Rows missing a
// required field drop first; after that, optional cells that are missing
// or unparsable take the configured defaults.
func (c *Cleaner) FillMissing(rows []book.RawRecord) ([]book.Record, FillStats, []book.Diagnostic) {
	out := make([]book.Record, 0, len(rows))
	var stats FillStats
	var diags []book.Diagnostic

	for i, row := range rows {
		if missing := c.missingRequired(row); len(missing) > 0 {
			stats.RowsDropped++
			diags = append(diags, book.Diagnostic{
				Stage:    StageMissing,
				RowIndex: i,
				Message:  fmt.Sprintf("dropped: required fields missing: %s", strings.Join(missing, ", ")),
			})
			continue
		}

		rec := book.Record{Title: strings.TrimSpace(row.Title)}
		rec.Price = c.numericValue(book.FieldPrice, row.Price, i, &stats, &diags)
		rec.Rating = c.numericValue(book.FieldRating, row.Rating, i, &stats, &diags)
		rec.Availability = c.numericValue(book.FieldAvailability, row.Availability, i, &stats, &diags)

		rec.Category = strings.TrimSpace(row.Category)
		if rec.Category == "" {
			rec.Category = c.cfg.CategoricalFill
			stats.ValuesFilled++
		}

		out = append(out, rec)
	}
	return out, stats, diags
}

// missingRequired lists the required fields this row cannot satisfy.
// Numeric fields count as missing when they fail to parse.
func (c *Cleaner) missingRequired(row book.RawRecord) []string {
	var missing []string
	for _, field := range c.cfg.RequiredFields {
		raw := row.Field(field)
		if parse, numeric := numericParser(field); numeric {
			if _, ok := parse(raw); !ok {
				missing = append(missing, field)
			}
			continue
		}
		if strings.TrimSpace(raw) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// numericValue parses one optional numeric cell, falling back to the
// fill value with a diagnostic when a non-empty cell will not parse.
func (c *Cleaner) numericValue(field, raw string, rowIndex int, stats *FillStats, diags *[]book.Diagnostic) float64 {
	parse, _ := numericParser(field)
	if v, ok := parse(raw); ok {
		return v
	}
	if strings.TrimSpace(raw) != "" {
		*diags = append(*diags, book.Diagnostic{
			Stage:    StageMissing,
			RowIndex: rowIndex,
			Field:    field,
			Value:    raw,
			Message:  "unparsable value, using fill value",
		})
	}
	stats.ValuesFilled++
	return c.cfg.NumericFill
}

// numericParser returns the parser for a numeric column and whether the
// column is numeric at all.
func numericParser(field string) (func(string) (float64, bool), bool) {
	switch field {
	case book.FieldPrice:
		return parsePrice, true
	case book.FieldRating:
		return parseRating, true
	case book.FieldAvailability:
		return parseAvailability, true
	}
	return nil, false
}

// ratingWords maps the scraper's star-rating words to numbers.
var ratingWords = map[string]float64{
	"zero":  0,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
}

// digitsRe matches the first run of digits in an availability string.
var digitsRe = regexp.MustCompile(`\d+`)

func parsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseRating(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if v, ok := ratingWords[strings.ToLower(s)]; ok {
		return v, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseAvailability reads "In stock (22 available)" as 22 and a bare
// "In stock" as 1.
func parseAvailability(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if m := digitsRe.FindString(s); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return v, true
		}
	}
	if strings.Contains(strings.ToLower(s), "in stock") {
		return 1, true
	}
	return 0, false
}

// ExtractTextFeatures normalizes the configured text fields in place and,
// when enabled, derives hashtags, mentions and keywords from the text as
// it stood before normalization. Rows whose required text normalizes to
// nothing are dropped.
func (c *Cleaner) ExtractTextFeatures(records []book.Record) ([]book.Record, int, []book.Diagnostic) {
	out := make([]book.Record, 0, len(records))
	dropped := 0
	var diags []book.Diagnostic

	for i, rec := range records {
		keep := true
		for _, field := range c.cfg.TextFields {
			ptr := rec.TextField(field)
			if ptr == nil {
				continue
			}
			original := *ptr
			if c.cfg.TextFeatures && featureEligible(field) {
				rec.Hashtags = ExtractHashtags(original)
				rec.Mentions = ExtractMentions(original)
				rec.Keywords = ExtractKeywords(original, maxKeywords)
			}
			*ptr = CleanText(original)
			if *ptr == "" && c.required[field] {
				diags = append(diags, book.Diagnostic{
					Stage:    StageText,
					RowIndex: i,
					Field:    field,
					Value:    original,
					Message:  "dropped: text empty after normalization",
				})
				keep = false
			}
		}
		if !keep {
			dropped++
			continue
		}
		out = append(out, rec)
	}
	return out, dropped, diags
}

// featureEligible reports whether a field gets hashtag, mention and
// keyword columns. Only title-like free text does; categories are labels.
func featureEligible(field string) bool {
	return strings.Contains(field, "title") || strings.Contains(field, "text")
}

// outputColumns derives the cleaned table's column list from the raw
// source's: base columns the source carried, in canonical order, plus
// feature columns when extraction is on.
func (c *Cleaner) outputColumns(rawColumns []string) []string {
	present := make(map[string]bool, len(rawColumns))
	for _, col := range rawColumns {
		present[col] = true
	}

	var out []string
	for _, col := range book.BaseColumns() {
		if present[col] {
			out = append(out, col)
		}
	}
	if c.cfg.TextFeatures {
		for _, field := range c.cfg.TextFields {
			if present[field] && featureEligible(field) {
				out = append(out, book.FeatureColumns(field)...)
			}
		}
	}
	return out
}
