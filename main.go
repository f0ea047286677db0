package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"bookstat/adapters/csvsource"
	"bookstat/adapters/excel"
	"bookstat/adapters/markdown"
	"bookstat/adapters/postgres"
	"bookstat/app"
	"bookstat/internal/analysis"
	"bookstat/internal/clean"
	"bookstat/internal/config"
	"bookstat/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment.
	input := flag.String("input", cfg.Input.File, "source file (.csv or .xlsx)")
	sheet := flag.String("sheet", cfg.Input.Sheet, "worksheet name for xlsx sources")
	out := flag.String("out", cfg.Output.Dir, "output directory for artifacts")
	segment := flag.String("segment", cfg.Analysis.SegmentName, "segment name for comparative analyses")
	match := flag.String("segment-match", cfg.Analysis.SegmentMatch, "category substring that selects the segment")
	textFeatures := flag.Bool("text-features", cfg.Cleaning.TextFeatures, "derive hashtags, mentions and keywords from text fields")
	html := flag.Bool("html", cfg.Output.HTMLPreview, "also render the report as HTML")
	skipClean := flag.Bool("skip-clean", false, "treat the input as an already-cleaned table")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "no input file: pass -input or set INPUT_FILE")
		os.Exit(2)
	}

	cleaner := clean.New(clean.Config{
		NumericFill:     cfg.Cleaning.NumericFill,
		CategoricalFill: cfg.Cleaning.CategoricalFill,
		RequiredFields:  cfg.Cleaning.RequiredFields,
		TextFields:      cfg.Cleaning.TextFields,
		TextFeatures:    *textFeatures,
		Rates:           clean.Rates(cfg.Cleaning.CurrencyRates),
	})
	analyzer := analysis.New(analysis.Config{
		Segment: analysis.Segment{Name: *segment, Match: *match},
	})

	ctx := context.Background()

	var store ports.RunStore
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		store, err = postgres.NewRunStore(ctx, db)
		if err != nil {
			log.Fatalf("Failed to prepare run store: %v", err)
		}
		defer store.Close()
	}

	svc := app.NewPipelineService(
		newSource(*input, *sheet),
		csvsource.NewWriter(*out),
		markdown.NewRenderer(),
		store,
		cleaner,
		analyzer,
		app.Options{OutputDir: *out, HTMLPreview: *html},
	)

	var stats *app.RunStats
	if *skipClean {
		table, lerr := csvsource.LoadCleaned(*input)
		if lerr != nil {
			log.Fatalf("Failed to load cleaned table: %v", lerr)
		}
		stats, err = svc.RunCleaned(ctx, table, filepath.Base(*input))
	} else {
		stats, err = svc.Run(ctx)
	}
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Printf("Run %s complete: %d records in %v\n", stats.RunID, stats.TotalRecords, stats.Duration)
	for _, a := range stats.Artifacts {
		fmt.Printf("  %-16s %s\n", a.Kind, a.Path)
	}
	if stats.Saved {
		fmt.Println("  run archived to database")
	}
	if len(stats.Diagnostics) > 0 {
		fmt.Printf("  %d diagnostics; run bookstat-inspect for details\n", len(stats.Diagnostics))
	}
}

// newSource picks the reader by file extension; anything that is not
// xlsx is treated as CSV.
func newSource(path, sheet string) ports.RecordSource {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return excel.NewReader(path, sheet)
	}
	return csvsource.NewReader(path)
}
