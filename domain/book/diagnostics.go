package book

import "fmt"

// Diagnostic records one recoverable issue found while cleaning or
// analyzing. Row-scoped diagnostics carry the row's index in the stage
// input; table-scoped ones use RowIndex -1.
type Diagnostic struct {
	Stage    string `json:"stage"`
	RowIndex int    `json:"row_index"`
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
	Message  string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.RowIndex < 0 {
		return fmt.Sprintf("%s: %s", d.Stage, d.Message)
	}
	return fmt.Sprintf("%s: row %d: %s", d.Stage, d.RowIndex, d.Message)
}

// CleanStats aggregates per-stage counters for one cleaning run.
type CleanStats struct {
	InitialRows       int `json:"initial_rows"`
	PricesConverted   int `json:"prices_converted"`
	PricesAssumedUSD  int `json:"prices_assumed_usd"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	ValuesFilled      int `json:"values_filled"`
	RowsDropped       int `json:"rows_dropped"`
	EmptyTextDropped  int `json:"empty_text_dropped"`
	FinalRows         int `json:"final_rows"`
}

// RetentionRate returns the percentage of input rows that survived.
func (s CleanStats) RetentionRate() float64 {
	if s.InitialRows == 0 {
		return 0
	}
	return float64(s.FinalRows) / float64(s.InitialRows) * 100
}

// ValidationSummary describes the cleaned table's shape and residual
// quality issues. It is informational; nothing here aborts a run.
type ValidationSummary struct {
	TotalRows     int            `json:"total_rows"`
	TotalColumns  int            `json:"total_columns"`
	MissingValues map[string]int `json:"missing_values"`
	EmptyStrings  map[string]int `json:"empty_strings"`
	DuplicateRows int            `json:"duplicate_rows"`
	MemoryBytes   int64          `json:"memory_bytes"`
}
