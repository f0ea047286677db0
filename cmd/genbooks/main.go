// genbooks generates a synthetic scraped-book table for exercising the
// pipeline without a live scrape.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookstat/internal/sample"
)

func main() {
	out := flag.String("out", "books.csv", "output file path")
	rows := flag.Int("rows", 200, "number of rows")
	format := flag.String("format", "", "output format: csv or xlsx (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be > 0")
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		ext := strings.ToLower(filepath.Ext(*out))
		switch ext {
		case ".xlsx":
			fmtName = "xlsx"
		default:
			fmtName = "csv"
		}
	}

	cfg := sample.DefaultConfig()
	cfg.Rows = *rows
	cfg.Seed = *seed

	ds, err := sample.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating dataset:", err)
		os.Exit(1)
	}

	switch fmtName {
	case "csv":
		if err := sample.WriteCSV(*out, ds); err != nil {
			fmt.Fprintln(os.Stderr, "error writing csv:", err)
			os.Exit(1)
		}
	case "xlsx":
		if err := sample.WriteXLSX(*out, ds); err != nil {
			fmt.Fprintln(os.Stderr, "error writing xlsx:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}

	fmt.Printf("Generated %s\n", *out)
	fmt.Printf("Total Columns: %d | Total Rows: %d\n", len(ds.Headers), len(ds.Rows))
}
