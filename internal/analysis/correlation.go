package analysis

import (
	"math"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

// significantR is the |r| threshold above which a pair is called out.
const significantR = 0.5

// CorrelationMatrix computes pairwise Pearson correlations over the
// numeric columns the table carries. A column with no variance
// correlates 0 with everything, including itself.
func CorrelationMatrix(table *book.Table) *report.CorrelationAnalysis {
	var cols []string
	for _, col := range book.NumericColumns() {
		if table.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	if len(cols) < 2 || table.Len() == 0 {
		return nil
	}

	raw := make(map[string]map[string]float64, len(cols))
	matrix := make(map[string]map[string]float64, len(cols))
	for _, c1 := range cols {
		raw[c1] = make(map[string]float64, len(cols))
		matrix[c1] = make(map[string]float64, len(cols))
		for _, c2 := range cols {
			r := correlation(table.NumericColumn(c1), table.NumericColumn(c2))
			raw[c1][c2] = r
			matrix[c1][c2] = round3(r)
		}
	}

	// Threshold on the unrounded value so borderline pairs are judged
	// before presentation rounding.
	significant := make(map[string]float64)
	for i, c1 := range cols {
		for _, c2 := range cols[i+1:] {
			if math.Abs(raw[c1][c2]) > significantR {
				significant[c1+"_vs_"+c2] = round3(raw[c1][c2])
			}
		}
	}

	return &report.CorrelationAnalysis{
		CorrelationMatrix:       matrix,
		SignificantCorrelations: significant,
	}
}
