package ports

import (
	"context"

	"bookstat/domain/book"
)

// RecordSource loads raw rows from one data file. Implementations map
// whatever columns the file carries onto the canonical schema and
// report the rest through RawTable.Columns.
type RecordSource interface {
	// Name identifies the source in logs and report metadata.
	Name() string
	Load(ctx context.Context) (*book.RawTable, error)
}
