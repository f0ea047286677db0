// Package csvsource reads and writes the pipeline's CSV tables.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bookstat/domain/book"
	"bookstat/internal"
	"bookstat/internal/errors"
)

// Reader loads raw records from a CSV file.
type Reader struct {
	path string
	log  *internal.Logger
}

// NewReader creates a CSV record source for the given file.
func NewReader(path string) *Reader {
	return &Reader{
		path: path,
		log:  internal.DefaultLogger.WithComponent("csv"),
	}
}

// Name identifies the source file in logs and report metadata.
func (r *Reader) Name() string {
	return filepath.Base(r.path)
}

// Load reads the whole file. Ragged rows are tolerated; the header row
// decides which canonical columns the table carries.
func (r *Reader) Load(ctx context.Context) (*book.RawTable, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, errors.DataLoadError(r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataLoadError(r.path, err)
	}

	table, err := book.RawTableFromRows(rows)
	if err != nil {
		return nil, errors.DataLoadError(r.path, err)
	}

	r.log.Info("loaded %d rows (%d columns) from %s", len(table.Rows), len(table.Columns), r.path)
	return table, nil
}

// LoadCleaned reads back a table this package's Writer wrote, for runs
// that start from an already-cleaned file.
func LoadCleaned(path string) (*book.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.DataLoadError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataLoadError(path, err)
	}
	if len(rows) < 1 {
		return nil, errors.DataLoadError(path, fmt.Errorf("missing header row"))
	}

	header := rows[0]
	table := &book.Table{Columns: header}
	for _, row := range rows[1:] {
		var rec book.Record
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			if err := setCleanedCell(&rec, header[i], cell); err != nil {
				return nil, errors.DataLoadError(path, err)
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// setCleanedCell parses one cell of a cleaned file. Numeric cells must
// parse: the cleaning stage guarantees them, so a failure means the
// file is not one of ours.
func setCleanedCell(rec *book.Record, column, cell string) error {
	switch column {
	case book.FieldTitle:
		rec.Title = cell
		return nil
	case book.FieldCategory:
		rec.Category = cell
		return nil
	case book.FieldPrice, book.FieldRating, book.FieldAvailability:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fmt.Errorf("column %s holds %q, not a number", column, cell)
		}
		switch column {
		case book.FieldPrice:
			rec.Price = v
		case book.FieldRating:
			rec.Rating = v
		case book.FieldAvailability:
			rec.Availability = v
		}
		return nil
	}

	list := splitFeatureList(cell)
	switch {
	case strings.HasSuffix(column, "_hashtags"):
		rec.Hashtags = list
	case strings.HasSuffix(column, "_mentions"):
		rec.Mentions = list
	case strings.HasSuffix(column, "_keywords"):
		rec.Keywords = list
	}
	return nil
}

func splitFeatureList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, ",")
}
