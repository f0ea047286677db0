// Package sample generates synthetic scraped-book tables for trying the
// pipeline. Output is deterministic for a given seed and deliberately
// messy: mixed currency markers, word ratings, prose availability,
// duplicate titles and missing cells, the way a scrape arrives.
package sample

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bookstat/domain/book"
)

// Dataset is a generated table: a header row plus formatted cells.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// Config controls the generated table.
type Config struct {
	Rows int
	Seed int64
	// DuplicateEvery repeats an earlier title (uppercased) every n-th
	// row. Zero disables duplicates.
	DuplicateEvery int
	// MissingEvery blanks a cell every n-th row, cycling through
	// rating, category and price. Zero disables missing cells.
	MissingEvery int
}

// DefaultConfig generates a mid-sized table with every kind of mess.
func DefaultConfig() Config {
	return Config{
		Rows:           200,
		Seed:           42,
		DuplicateEvery: 25,
		MissingEvery:   17,
	}
}

var (
	titleAdjectives = []string{
		"Silent", "Hidden", "Burning", "Forgotten", "Endless", "Broken",
		"Golden", "Hollow", "Distant", "Quiet", "Wild", "Last",
	}
	titleNouns = []string{
		"Garden", "River", "Kingdom", "Letter", "Voyage", "Harvest",
		"Mirror", "Orchard", "Winter", "Lantern", "Archive", "Summit",
		"Atlas", "Thread",
	}
	categories = []string{
		"Fiction", "Nonfiction", "Historical Fiction", "Poetry", "Travel",
		"Mystery", "History", "Science", "Art", "Romance",
	}
	ratingWords = []string{"One", "Two", "Three", "Four", "Five"}
)

// Generate builds a table of scraped-looking book rows.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be > 0")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	headers := book.BaseColumns()
	rows := make([][]string, 0, cfg.Rows)

	prevTitle := ""
	missingCycle := 0
	for i := 0; i < cfg.Rows; i++ {
		title := fmt.Sprintf("The %s %s",
			titleAdjectives[rng.Intn(len(titleAdjectives))],
			titleNouns[rng.Intn(len(titleNouns))])
		if cfg.DuplicateEvery > 0 && i > 0 && i%cfg.DuplicateEvery == cfg.DuplicateEvery-1 {
			// Case changes must not defeat deduplication.
			title = strings.ToUpper(prevTitle)
		}
		prevTitle = title
		if i%13 == 0 {
			title = "  " + title + "  "
		}

		price := formatPrice(5+rng.Float64()*55, rng)
		rating := formatRating(rng)
		availability := formatAvailability(rng)
		category := categories[rng.Intn(len(categories))]

		if cfg.MissingEvery > 0 && i%cfg.MissingEvery == cfg.MissingEvery-1 {
			switch missingCycle % 3 {
			case 0:
				rating = ""
			case 1:
				category = ""
			case 2:
				// Missing required price drops the row downstream. The
				// volume suffix keeps the title unique so the drop is
				// what removes it, not deduplication.
				price = ""
				title = fmt.Sprintf("%s Vol %d", title, i)
				prevTitle = title
			}
			missingCycle++
		}

		rows = append(rows, []string{title, price, rating, availability, category})
	}

	return &Dataset{Headers: headers, Rows: rows}, nil
}

func formatPrice(v float64, rng *rand.Rand) string {
	switch p := rng.Float64(); {
	case p < 0.6:
		return "£" + fToStr(v, 2)
	case p < 0.8:
		return "$" + fToStr(v, 2)
	case p < 0.9:
		return "€" + fToStr(v, 2)
	default:
		return fToStr(v, 2)
	}
}

func formatRating(rng *rand.Rand) string {
	if rng.Float64() < 0.7 {
		return ratingWords[rng.Intn(len(ratingWords))]
	}
	return strconv.Itoa(1 + rng.Intn(5))
}

func formatAvailability(rng *rand.Rand) string {
	switch a := rng.Float64(); {
	case a < 0.8:
		return fmt.Sprintf("In stock (%d available)", 1+rng.Intn(25))
	case a < 0.9:
		return "In stock"
	case a < 0.95:
		return "Out of stock"
	default:
		return ""
	}
}

// WriteCSV writes the dataset as a CSV file.
func WriteCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(ds.Headers); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteXLSX writes the dataset to Sheet1 of a new workbook.
func WriteXLSX(path string, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for i, h := range ds.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range ds.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func fToStr(x float64, decimals int) string {
	p := math.Pow10(decimals)
	x = math.Round(x*p) / p
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
