package book

import (
	"fmt"
	"strings"

	"bookstat/domain/core"
)

// RawTableFromRows builds a raw table from header-plus-data rows as read
// from a CSV file or spreadsheet. Header names match the canonical
// schema case-insensitively; unknown columns are dropped and a repeated
// header keeps its first occurrence. Cells are trimmed, and short rows
// leave their remaining cells empty.
func RawTableFromRows(rows [][]string) (*RawTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", core.ErrEmptyDataset)
	}

	fields := make(map[int]string)
	seen := make(map[string]bool)
	var columns []string
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if !isCanonicalColumn(name) || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, name)
		fields[i] = name
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no recognized columns in header %v", core.ErrUnreadableSource, rows[0])
	}

	table := &RawTable{Columns: columns}
	for _, row := range rows[1:] {
		var rec RawRecord
		for i, cell := range row {
			if name, ok := fields[i]; ok {
				rec.setField(name, strings.TrimSpace(cell))
			}
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

func isCanonicalColumn(name string) bool {
	switch name {
	case FieldTitle, FieldPrice, FieldRating, FieldAvailability, FieldCategory:
		return true
	}
	return false
}

func (r *RawRecord) setField(name, value string) {
	switch name {
	case FieldTitle:
		r.Title = value
	case FieldPrice:
		r.Price = value
	case FieldRating:
		r.Rating = value
	case FieldAvailability:
		r.Availability = value
	case FieldCategory:
		r.Category = value
	}
}
