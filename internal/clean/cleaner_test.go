package clean

import (
	"reflect"
	"strconv"
	"testing"

	"bookstat/domain/book"
)

func rawTable(rows ...book.RawRecord) *book.RawTable {
	return &book.RawTable{Rows: rows, Columns: book.BaseColumns()}
}

// TestRunFullPipeline tests all stages end to end on a mixed table
func TestRunFullPipeline(t *testing.T) {
	raw := rawTable(
		book.RawRecord{Title: "A Light in the Attic", Price: "£51.77", Rating: "Three", Availability: "In stock (22 available)", Category: "Poetry"},
		book.RawRecord{Title: "A Light in the Attic", Price: "£51.77", Rating: "Three", Availability: "In stock (22 available)", Category: "Poetry"},
		book.RawRecord{Title: "Tipping the Velvet", Price: "53.74", Rating: "", Availability: "In stock", Category: ""},
		book.RawRecord{Title: "", Price: "10.00", Rating: "2", Availability: "3", Category: "Fiction"},
		book.RawRecord{Title: "Soumission", Price: "oops", Rating: "1", Availability: "", Category: "Fiction"},
		book.RawRecord{Title: "???", Price: "5.00", Rating: "4", Availability: "1", Category: "Fiction"},
	)

	res, err := New(DefaultConfig()).Run(raw)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if res.Stats.InitialRows != 6 {
		t.Errorf("Expected 6 initial rows, got %d", res.Stats.InitialRows)
	}
	if res.Stats.PricesConverted != 2 {
		t.Errorf("Expected 2 converted prices, got %d", res.Stats.PricesConverted)
	}
	if res.Stats.DuplicatesRemoved != 1 {
		t.Errorf("Expected 1 duplicate removed, got %d", res.Stats.DuplicatesRemoved)
	}
	if res.Stats.RowsDropped != 2 {
		t.Errorf("Expected 2 rows dropped for required fields, got %d", res.Stats.RowsDropped)
	}
	if res.Stats.EmptyTextDropped != 1 {
		t.Errorf("Expected 1 row dropped for empty text, got %d", res.Stats.EmptyTextDropped)
	}
	if res.Stats.FinalRows != 2 {
		t.Fatalf("Expected 2 final rows, got %d", res.Stats.FinalRows)
	}

	first := res.Table.Records[0]
	if first.Title != "a light in the attic" {
		t.Errorf("Expected normalized title, got %q", first.Title)
	}
	if first.Price != 65.75 {
		t.Errorf("Expected £51.77 to convert to 65.75, got %v", first.Price)
	}
	if first.Rating != 3 {
		t.Errorf("Expected rating word Three to parse as 3, got %v", first.Rating)
	}
	if first.Availability != 22 {
		t.Errorf("Expected availability 22, got %v", first.Availability)
	}
	if first.Category != "poetry" {
		t.Errorf("Expected category 'poetry', got %q", first.Category)
	}

	second := res.Table.Records[1]
	if second.Price != 53.74 {
		t.Errorf("Expected unmarked price to pass through, got %v", second.Price)
	}
	if second.Rating != 0 {
		t.Errorf("Expected missing rating filled with 0, got %v", second.Rating)
	}
	if second.Availability != 1 {
		t.Errorf("Expected bare 'In stock' to read as 1, got %v", second.Availability)
	}
	if second.Category != "unknown" {
		t.Errorf("Expected filled category to normalize to 'unknown', got %q", second.Category)
	}

	if len(res.Diagnostics) == 0 {
		t.Error("Expected diagnostics for the bad rows")
	}
}

// TestRunEmptyTableFails tests the one fatal case
func TestRunEmptyTableFails(t *testing.T) {
	if _, err := New(DefaultConfig()).Run(&book.RawTable{Columns: book.BaseColumns()}); err == nil {
		t.Error("Expected error for empty table, got none")
	}
	if _, err := New(DefaultConfig()).Run(nil); err == nil {
		t.Error("Expected error for nil table, got none")
	}
}

// TestRunIdempotent tests that cleaning its own output changes nothing
func TestRunIdempotent(t *testing.T) {
	raw := rawTable(
		book.RawRecord{Title: "Sharp Objects!", Price: "£47.82", Rating: "Four", Availability: "In stock (20 available)", Category: "Mystery"},
		book.RawRecord{Title: "The Black Maria", Price: "52.15", Rating: "1", Availability: "19", Category: "Poetry"},
		book.RawRecord{Title: "Olio", Price: "€23.88", Rating: "", Availability: "", Category: ""},
	)

	cleaner := New(DefaultConfig())
	first, err := cleaner.Run(raw)
	if err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}

	second, err := cleaner.Run(tableToRaw(first.Table))
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}

	if !reflect.DeepEqual(first.Table.Records, second.Table.Records) {
		t.Errorf("Expected cleaning to be idempotent.\nfirst:  %+v\nsecond: %+v",
			first.Table.Records, second.Table.Records)
	}
	if second.Stats.DuplicatesRemoved != 0 || second.Stats.RowsDropped != 0 || second.Stats.PricesConverted != 0 {
		t.Errorf("Expected second pass to change nothing, stats: %+v", second.Stats)
	}
}

// tableToRaw re-serializes cleaned records the way the CSV writer would.
func tableToRaw(table *book.Table) *book.RawTable {
	rows := make([]book.RawRecord, 0, table.Len())
	for _, r := range table.Records {
		rows = append(rows, book.RawRecord{
			Title:        r.Title,
			Price:        strconv.FormatFloat(r.Price, 'f', -1, 64),
			Rating:       strconv.FormatFloat(r.Rating, 'f', -1, 64),
			Availability: strconv.FormatFloat(r.Availability, 'f', -1, 64),
			Category:     r.Category,
		})
	}
	return &book.RawTable{Rows: rows, Columns: table.Columns}
}

// TestDeduplicate tests first-occurrence-wins dedup
func TestDeduplicate(t *testing.T) {
	cleaner := New(DefaultConfig())

	rows := []book.RawRecord{
		{Title: "Book A", Price: "10.00", Category: "first copy"},
		{Title: "Book A", Price: "99.99", Category: "second copy"},
		{Title: "Book B", Price: "20.00"},
	}

	out, removed := cleaner.Deduplicate(rows)
	if removed != 1 {
		t.Errorf("Expected 1 duplicate removed, got %d", removed)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(out))
	}
	if out[0].Category != "first copy" {
		t.Errorf("Expected first occurrence to win, got %q", out[0].Category)
	}
}

// TestDeduplicateNormalizedTitles tests that titles which normalize to
// the same text count as duplicates
func TestDeduplicateNormalizedTitles(t *testing.T) {
	cleaner := New(DefaultConfig())

	rows := []book.RawRecord{
		{Title: "The Hobbit"},
		{Title: "  the hobbit!  "},
	}

	out, removed := cleaner.Deduplicate(rows)
	if removed != 1 || len(out) != 1 {
		t.Errorf("Expected normalized duplicate removed, got %d rows, %d removed", len(out), removed)
	}
}

// TestFillMissingDefaults tests optional-field fills
func TestFillMissingDefaults(t *testing.T) {
	cleaner := New(DefaultConfig())

	records, stats, _ := cleaner.FillMissing([]book.RawRecord{
		{Title: "Book", Price: "9.99", Rating: "", Availability: "", Category: ""},
	})
	if len(records) != 1 {
		t.Fatalf("Expected record to survive, got %d", len(records))
	}
	rec := records[0]
	if rec.Rating != 0.0 {
		t.Errorf("Expected missing rating filled with 0.0, got %v", rec.Rating)
	}
	if rec.Availability != 0.0 {
		t.Errorf("Expected missing availability filled with 0.0, got %v", rec.Availability)
	}
	if rec.Category != "Unknown" {
		t.Errorf("Expected missing category filled with 'Unknown', got %q", rec.Category)
	}
	if stats.ValuesFilled != 3 {
		t.Errorf("Expected 3 values filled, got %d", stats.ValuesFilled)
	}
}

// TestFillMissingDropsRequired tests that required fields cannot be filled
func TestFillMissingDropsRequired(t *testing.T) {
	cleaner := New(DefaultConfig())

	tests := []struct {
		name string
		row  book.RawRecord
	}{
		{"missing title", book.RawRecord{Title: "", Price: "9.99", Rating: "5", Availability: "1", Category: "Fiction"}},
		{"missing price", book.RawRecord{Title: "Book", Price: "", Rating: "5", Availability: "1", Category: "Fiction"}},
		{"unparsable price", book.RawRecord{Title: "Book", Price: "n/a", Rating: "5", Availability: "1", Category: "Fiction"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			records, stats, diags := cleaner.FillMissing([]book.RawRecord{test.row})
			if len(records) != 0 {
				t.Errorf("Expected row to be dropped, got %d records", len(records))
			}
			if stats.RowsDropped != 1 {
				t.Errorf("Expected 1 row dropped, got %d", stats.RowsDropped)
			}
			if len(diags) == 0 {
				t.Error("Expected a diagnostic for the dropped row")
			}
		})
	}
}

// TestFillMissingCustomFill tests configured fill values
func TestFillMissingCustomFill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumericFill = -1
	cfg.CategoricalFill = "misc"
	cleaner := New(cfg)

	records, _, _ := cleaner.FillMissing([]book.RawRecord{
		{Title: "Book", Price: "5.00", Rating: "", Availability: "junk", Category: ""},
	})
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Rating != -1 {
		t.Errorf("Expected custom numeric fill -1, got %v", records[0].Rating)
	}
	if records[0].Availability != -1 {
		t.Errorf("Expected unparsable availability to take fill value, got %v", records[0].Availability)
	}
	if records[0].Category != "misc" {
		t.Errorf("Expected custom categorical fill, got %q", records[0].Category)
	}
}

// TestParseRating tests star-word and numeric rating parsing
func TestParseRating(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"One", 1, true},
		{"three", 3, true},
		{"FIVE", 5, true},
		{"4", 4, true},
		{"4.0", 4, true},
		{"", 0, false},
		{"Six", 0, false},
	}

	for _, test := range tests {
		got, ok := parseRating(test.input)
		if got != test.expected || ok != test.ok {
			t.Errorf("parseRating(%q) = (%v, %v), want (%v, %v)", test.input, got, ok, test.expected, test.ok)
		}
	}
}

// TestParseAvailability tests stock-count extraction
func TestParseAvailability(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"In stock (22 available)", 22, true},
		{"In stock", 1, true},
		{"in stock", 1, true},
		{"19", 19, true},
		{"Out of print", 0, false},
		{"", 0, false},
	}

	for _, test := range tests {
		got, ok := parseAvailability(test.input)
		if got != test.expected || ok != test.ok {
			t.Errorf("parseAvailability(%q) = (%v, %v), want (%v, %v)", test.input, got, ok, test.expected, test.ok)
		}
	}
}

// TestExtractTextFeatures tests feature derivation from pre-cleaned text
func TestExtractTextFeatures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextFeatures = true
	cleaner := New(cfg)

	records, dropped, _ := cleaner.ExtractTextFeatures([]book.Record{
		{Title: "Reading #GoLang with @Jane tonight!", Category: "Computers & IT"},
	})
	if dropped != 0 {
		t.Fatalf("Expected no drops, got %d", dropped)
	}
	rec := records[0]

	if rec.Title != "reading golang with jane tonight" {
		t.Errorf("Expected normalized title, got %q", rec.Title)
	}
	if rec.Category != "computers it" {
		t.Errorf("Expected normalized category, got %q", rec.Category)
	}
	if !reflect.DeepEqual(rec.Hashtags, []string{"#golang"}) {
		t.Errorf("Expected hashtags from original text, got %v", rec.Hashtags)
	}
	if !reflect.DeepEqual(rec.Mentions, []string{"@jane"}) {
		t.Errorf("Expected mentions from original text, got %v", rec.Mentions)
	}
	if !reflect.DeepEqual(rec.Keywords, []string{"reading", "#golang", "with", "@jane", "tonight!"}) {
		t.Errorf("Expected raw-token keywords, got %v", rec.Keywords)
	}
}

// TestExtractTextFeaturesDisabled tests that normalization still runs
// when feature extraction is off
func TestExtractTextFeaturesDisabled(t *testing.T) {
	cleaner := New(DefaultConfig())

	records, _, _ := cleaner.ExtractTextFeatures([]book.Record{
		{Title: "Sharp Objects!", Category: "Mystery"},
	})
	rec := records[0]
	if rec.Title != "sharp objects" {
		t.Errorf("Expected normalized title, got %q", rec.Title)
	}
	if rec.Hashtags != nil || rec.Mentions != nil || rec.Keywords != nil {
		t.Errorf("Expected no feature columns, got %v %v %v", rec.Hashtags, rec.Mentions, rec.Keywords)
	}
}

// TestValidate tests the informational summary
func TestValidate(t *testing.T) {
	table := &book.Table{
		Columns: book.BaseColumns(),
		Records: []book.Record{
			{Title: "a", Price: 1, Rating: 1, Availability: 1, Category: "x"},
			{Title: "a", Price: 1, Rating: 1, Availability: 1, Category: "x"},
			{Title: "b", Price: 2, Rating: 2, Availability: 2, Category: ""},
		},
	}

	summary := Validate(table)
	if summary.TotalRows != 3 {
		t.Errorf("Expected 3 rows, got %d", summary.TotalRows)
	}
	if summary.TotalColumns != 5 {
		t.Errorf("Expected 5 columns, got %d", summary.TotalColumns)
	}
	if summary.DuplicateRows != 1 {
		t.Errorf("Expected 1 duplicate row, got %d", summary.DuplicateRows)
	}
	if summary.EmptyStrings[book.FieldCategory] != 1 {
		t.Errorf("Expected 1 empty category, got %d", summary.EmptyStrings[book.FieldCategory])
	}
	if summary.MissingValues[book.FieldPrice] != 0 {
		t.Errorf("Expected no missing prices, got %d", summary.MissingValues[book.FieldPrice])
	}
	if summary.MemoryBytes <= 0 {
		t.Error("Expected a positive memory estimate")
	}
}

// TestOutputColumnsFollowSource tests column projection
func TestOutputColumnsFollowSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextFeatures = true
	cleaner := New(cfg)

	cols := cleaner.outputColumns([]string{"category", "title", "price"})
	expected := []string{"title", "price", "category", "title_hashtags", "title_mentions", "title_keywords"}
	if !reflect.DeepEqual(cols, expected) {
		t.Errorf("outputColumns = %v, want %v", cols, expected)
	}
}
