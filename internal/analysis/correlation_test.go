package analysis

import (
	"testing"

	"bookstat/domain/book"
)

func TestCorrelationMatrix(t *testing.T) {
	table := &book.Table{
		Columns: book.BaseColumns(),
		Records: []book.Record{
			{Price: 2, Rating: 1, Availability: 7},
			{Price: 4, Rating: 2, Availability: 7},
			{Price: 6, Rating: 3, Availability: 7},
			{Price: 8, Rating: 4, Availability: 7},
			{Price: 10, Rating: 5, Availability: 7},
		},
	}

	got := CorrelationMatrix(table)
	if got == nil {
		t.Fatal("Expected correlation analysis, got nil")
	}

	if r := got.CorrelationMatrix["price"]["rating"]; r != 1 {
		t.Errorf("Expected price/rating r=1, got %v", r)
	}
	if r := got.CorrelationMatrix["rating"]["price"]; r != 1 {
		t.Errorf("Expected symmetric r=1, got %v", r)
	}
	if r := got.CorrelationMatrix["price"]["price"]; r != 1 {
		t.Errorf("Expected diagonal r=1, got %v", r)
	}

	// A constant column has no variance, so every pairing reports 0,
	// the diagonal included.
	for _, other := range []string{"price", "rating", "availability"} {
		if r := got.CorrelationMatrix["availability"][other]; r != 0 {
			t.Errorf("Expected constant column r=0 vs %s, got %v", other, r)
		}
	}

	if len(got.SignificantCorrelations) != 1 {
		t.Fatalf("Expected 1 significant pair, got %d", len(got.SignificantCorrelations))
	}
	if r, ok := got.SignificantCorrelations["price_vs_rating"]; !ok || r != 1 {
		t.Errorf("Expected price_vs_rating=1, got %v (present=%v)", r, ok)
	}
}

func TestCorrelationMatrixNeedsTwoColumns(t *testing.T) {
	table := &book.Table{
		Columns: []string{book.FieldTitle, book.FieldPrice},
		Records: []book.Record{{Price: 1}, {Price: 2}},
	}
	if got := CorrelationMatrix(table); got != nil {
		t.Errorf("Expected nil with one numeric column, got %+v", got)
	}

	empty := &book.Table{Columns: book.BaseColumns()}
	if got := CorrelationMatrix(empty); got != nil {
		t.Errorf("Expected nil for empty table, got %+v", got)
	}
}

func TestCorrelationMatrixWeakPairsNotSignificant(t *testing.T) {
	// Ratings bounce around while price climbs; |r| stays under 0.5.
	table := &book.Table{
		Columns: []string{book.FieldPrice, book.FieldRating},
		Records: []book.Record{
			{Price: 1, Rating: 3},
			{Price: 2, Rating: 5},
			{Price: 3, Rating: 1},
			{Price: 4, Rating: 4},
			{Price: 5, Rating: 2},
		},
	}

	got := CorrelationMatrix(table)
	if got == nil {
		t.Fatal("Expected correlation analysis, got nil")
	}
	if len(got.SignificantCorrelations) != 0 {
		t.Errorf("Expected no significant pairs, got %v", got.SignificantCorrelations)
	}
}
