package csvsource

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"bookstat/domain/book"
	"bookstat/internal"
	"bookstat/internal/errors"
)

// CleanedFileName is the fixed name of the cleaned-table artifact.
const CleanedFileName = "cleaned_books.csv"

// Writer persists cleaned tables under an output directory.
type Writer struct {
	dir string
	log *internal.Logger
}

// NewWriter creates a cleaned-table writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir: dir,
		log: internal.DefaultLogger.WithComponent("csv"),
	}
}

// WriteRecords writes the table with its columns as the header and
// returns the file path.
func (w *Writer) WriteRecords(ctx context.Context, table *book.Table) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.ReportWriteError(w.dir, err)
	}

	path := filepath.Join(w.dir, CleanedFileName)
	file, err := os.Create(path)
	if err != nil {
		return "", errors.ReportWriteError(path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(table.StringRows()); err != nil {
		return "", errors.ReportWriteError(path, err)
	}

	w.log.Info("wrote %d records to %s", table.Len(), path)
	return path, nil
}
