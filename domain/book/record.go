package book

import (
	"strconv"
	"strings"
)

// Column names shared by the raw source schema and the cleaned table.
const (
	FieldTitle        = "title"
	FieldPrice        = "price"
	FieldRating       = "rating"
	FieldAvailability = "availability"
	FieldCategory     = "category"
)

// BaseColumns lists the canonical columns in table order.
func BaseColumns() []string {
	return []string{FieldTitle, FieldPrice, FieldRating, FieldAvailability, FieldCategory}
}

// NumericColumns lists the columns that must hold numbers after cleaning.
func NumericColumns() []string {
	return []string{FieldPrice, FieldRating, FieldAvailability}
}

// FeatureColumns lists the derived text-feature columns for a source field.
func FeatureColumns(field string) []string {
	return []string{field + "_hashtags", field + "_mentions", field + "_keywords"}
}

// RawRecord is one source row exactly as scraped. Every field is a string
// and the empty string stands for a missing cell.
type RawRecord struct {
	Title        string `json:"title"`
	Price        string `json:"price"`
	Rating       string `json:"rating"`
	Availability string `json:"availability"`
	Category     string `json:"category"`
}

// Field returns the named cell of a raw row.
func (r *RawRecord) Field(name string) string {
	switch name {
	case FieldTitle:
		return r.Title
	case FieldPrice:
		return r.Price
	case FieldRating:
		return r.Rating
	case FieldAvailability:
		return r.Availability
	case FieldCategory:
		return r.Category
	}
	return ""
}

// RawTable is an uncleaned table plus the columns its source carried.
type RawTable struct {
	Rows    []RawRecord
	Columns []string
}

// HasColumn reports whether the source carried the named column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Record is one cleaned row. Numeric fields are never missing: absent
// cells were either filled with a default or caused the row to drop.
type Record struct {
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Availability float64 `json:"availability"`
	Category     string  `json:"category"`

	// Derived text features, present only when extraction is enabled.
	Hashtags []string `json:"hashtags,omitempty"`
	Mentions []string `json:"mentions,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// TextField returns a pointer to the named text column, or nil when the
// name is not a text column.
func (r *Record) TextField(name string) *string {
	switch name {
	case FieldTitle:
		return &r.Title
	case FieldCategory:
		return &r.Category
	}
	return nil
}

// Table is the cleaned working table: records plus the columns present.
// Analyses consult Columns before touching a field so a source that
// never carried e.g. availability degrades per-section instead of
// failing the run.
type Table struct {
	Records []Record
	Columns []string
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Prices returns the price column in row order.
func (t *Table) Prices() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Price
	}
	return out
}

// Ratings returns the rating column in row order.
func (t *Table) Ratings() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Rating
	}
	return out
}

// Availabilities returns the availability column in row order.
func (t *Table) Availabilities() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Availability
	}
	return out
}

// NumericColumn returns the named numeric column in row order.
func (t *Table) NumericColumn(name string) []float64 {
	switch name {
	case FieldPrice:
		return t.Prices()
	case FieldRating:
		return t.Ratings()
	case FieldAvailability:
		return t.Availabilities()
	}
	return nil
}

// CellString renders the named column of a cleaned record. Floats use
// their shortest decimal form and feature lists join on commas, so a
// written table parses back to the same record.
func (r *Record) CellString(column string) string {
	switch column {
	case FieldTitle:
		return r.Title
	case FieldPrice:
		return formatFloat(r.Price)
	case FieldRating:
		return formatFloat(r.Rating)
	case FieldAvailability:
		return formatFloat(r.Availability)
	case FieldCategory:
		return r.Category
	}
	switch {
	case strings.HasSuffix(column, "_hashtags"):
		return strings.Join(r.Hashtags, ",")
	case strings.HasSuffix(column, "_mentions"):
		return strings.Join(r.Mentions, ",")
	case strings.HasSuffix(column, "_keywords"):
		return strings.Join(r.Keywords, ",")
	}
	return ""
}

// StringRows renders the table as a header row plus one row per record,
// in column order. Used for CSV export and dataset hashing.
func (t *Table) StringRows() [][]string {
	out := make([][]string, 0, len(t.Records)+1)
	out = append(out, t.Columns)
	for i := range t.Records {
		row := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			row[j] = t.Records[i].CellString(col)
		}
		out = append(out, row)
	}
	return out
}

// StringRows renders the raw table as a header row plus one row per
// record, in column order.
func (t *RawTable) StringRows() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Columns)
	for i := range t.Rows {
		row := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			row[j] = t.Rows[i].Field(col)
		}
		out = append(out, row)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
