package clean

import (
	"fmt"

	"bookstat/domain/book"
)

// Validate summarizes the cleaned table: row and column counts, residual
// missing text cells, exact-duplicate rows and a rough memory estimate.
// It never fails; the summary is informational.
func Validate(t *book.Table) book.ValidationSummary {
	summary := book.ValidationSummary{
		TotalRows:     t.Len(),
		TotalColumns:  len(t.Columns),
		MissingValues: make(map[string]int, len(t.Columns)),
		EmptyStrings:  make(map[string]int, len(t.Columns)),
	}
	for _, col := range t.Columns {
		summary.MissingValues[col] = 0
		summary.EmptyStrings[col] = 0
	}

	seen := make(map[string]int, t.Len())
	var mem int64

	for _, r := range t.Records {
		if t.HasColumn(book.FieldTitle) && r.Title == "" {
			summary.MissingValues[book.FieldTitle]++
			summary.EmptyStrings[book.FieldTitle]++
		}
		if t.HasColumn(book.FieldCategory) && r.Category == "" {
			summary.MissingValues[book.FieldCategory]++
			summary.EmptyStrings[book.FieldCategory]++
		}

		mem += int64(len(r.Title) + len(r.Category))
		mem += 3 * 8 // three float64 columns
		for _, s := range r.Hashtags {
			mem += int64(len(s))
		}
		for _, s := range r.Mentions {
			mem += int64(len(s))
		}
		for _, s := range r.Keywords {
			mem += int64(len(s))
		}

		key := fmt.Sprintf("%s\x1f%v\x1f%v\x1f%v\x1f%s", r.Title, r.Price, r.Rating, r.Availability, r.Category)
		seen[key]++
	}

	for _, n := range seen {
		if n > 1 {
			summary.DuplicateRows += n - 1
		}
	}
	summary.MemoryBytes = mem
	return summary
}
