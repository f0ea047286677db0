// bookstat-inspect profiles a source table without writing artifacts:
// raw shape, cleaning outcome and residual quality issues.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bookstat/adapters/csvsource"
	"bookstat/adapters/excel"
	"bookstat/domain/book"
	"bookstat/internal/clean"
	"bookstat/ports"
)

func main() {
	in := flag.String("in", "", "input table path (.csv or .xlsx)")
	sheet := flag.String("sheet", "Sheet1", "xlsx sheet name")
	maxDiags := flag.Int("diags", 10, "diagnostics to display (0 for all)")
	features := flag.Bool("text-features", false, "include text feature extraction")
	flag.Parse()

	if strings.TrimSpace(*in) == "" {
		fmt.Fprintln(os.Stderr, "-in is required")
		os.Exit(2)
	}

	var src ports.RecordSource
	if strings.EqualFold(filepath.Ext(*in), ".xlsx") {
		src = excel.NewReader(*in, *sheet)
	} else {
		src = csvsource.NewReader(*in)
	}

	raw, err := src.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading table:", err)
		os.Exit(1)
	}

	cfg := clean.DefaultConfig()
	cfg.TextFeatures = *features
	res, err := clean.New(cfg).Run(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error cleaning table:", err)
		os.Exit(1)
	}

	printSource(src.Name(), raw)
	printCleaning(res.Stats)
	printValidation(res.Validation)
	printDiagnostics(res.Diagnostics, *maxDiags)
}

func printSource(name string, raw *book.RawTable) {
	fmt.Println("=== Source Profile ===")
	fmt.Printf("File: %s | rows=%d | columns=%v\n", name, len(raw.Rows), raw.Columns)
	for _, col := range raw.Columns {
		empty := 0
		for i := range raw.Rows {
			if strings.TrimSpace(raw.Rows[i].Field(col)) == "" {
				empty++
			}
		}
		if empty > 0 {
			fmt.Printf("  %s: %d empty cells\n", col, empty)
		}
	}
}

func printCleaning(s book.CleanStats) {
	fmt.Println("=== Cleaning ===")
	fmt.Printf("initial=%d | prices_converted=%d | assumed_usd=%d | duplicates_removed=%d\n",
		s.InitialRows, s.PricesConverted, s.PricesAssumedUSD, s.DuplicatesRemoved)
	fmt.Printf("values_filled=%d | rows_dropped=%d | empty_text_dropped=%d | final=%d (%.1f%% retained)\n",
		s.ValuesFilled, s.RowsDropped, s.EmptyTextDropped, s.FinalRows, s.RetentionRate())
}

func printValidation(v book.ValidationSummary) {
	fmt.Println("=== Cleaned Table ===")
	fmt.Printf("rows=%d | columns=%d | duplicate_rows=%d | ~%d KB\n",
		v.TotalRows, v.TotalColumns, v.DuplicateRows, v.MemoryBytes/1024)
	for _, col := range sortedKeys(v.MissingValues) {
		if v.MissingValues[col] > 0 {
			fmt.Printf("  missing %s: %d\n", col, v.MissingValues[col])
		}
	}
	for _, col := range sortedKeys(v.EmptyStrings) {
		if v.EmptyStrings[col] > 0 {
			fmt.Printf("  empty %s: %d\n", col, v.EmptyStrings[col])
		}
	}
}

func printDiagnostics(diags []book.Diagnostic, max int) {
	if len(diags) == 0 {
		fmt.Println("=== Diagnostics ===")
		fmt.Println("none")
		return
	}

	byStage := make(map[string]int)
	for _, d := range diags {
		byStage[d.Stage]++
	}
	parts := make([]string, 0, len(byStage))
	for _, stage := range sortedKeys(byStage) {
		parts = append(parts, fmt.Sprintf("%s=%d", stage, byStage[stage]))
	}

	fmt.Printf("=== Diagnostics (%d) ===\n", len(diags))
	fmt.Println(strings.Join(parts, " | "))

	shown := len(diags)
	if max > 0 && max < shown {
		shown = max
	}
	for _, d := range diags[:shown] {
		fmt.Printf("  - %s\n", d.String())
	}
	if shown < len(diags) {
		fmt.Printf("  ... and %d more\n", len(diags)-shown)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
