package ports

import (
	"context"

	"bookstat/domain/book"
)

// RecordWriter persists a cleaned table and returns the path it wrote.
type RecordWriter interface {
	WriteRecords(ctx context.Context, table *book.Table) (string, error)
}
