package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

// maxOutlierExamples caps how many outlying values the report lists.
const maxOutlierExamples = 5

// DetectOutliers flags values outside Q1-1.5·IQR .. Q3+1.5·IQR for one
// column. Example values keep row order and are not rounded; when the
// IQR is 0 the bounds collapse to the quartiles and only values away
// from them are flagged.
func DetectOutliers(values []float64, column string) report.OutlierStats {
	q1 := percentile(values, 25)
	q3 := percentile(values, 75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	outliers := []float64{}
	for _, v := range values {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}

	minV, _ := stats.Min(values)
	maxV, _ := stats.Max(values)

	examples := outliers
	if len(examples) > maxOutlierExamples {
		examples = examples[:maxOutlierExamples]
	}

	total := len(values)
	pct := 0.0
	if total > 0 {
		pct = float64(len(outliers)) / float64(total) * 100
	}

	return report.OutlierStats{
		Count:      len(outliers),
		Percentage: round2(pct),
		Values:     examples,
		IQRDetails: report.IQRDetails{
			Q1:          round2(q1),
			Q3:          round2(q3),
			IQR:         round2(iqr),
			LowerBound:  round2(lower),
			UpperBound:  round2(upper),
			ActualMin:   round2(minV),
			ActualMax:   round2(maxV),
			DataRange:   round2(maxV - minV),
			BoundsRange: round2(upper - lower),
		},
		Explanation: report.OutlierExplanation{
			Method:   "IQR (Interquartile Range) method with 1.5×IQR multiplier",
			Formula:  "Outliers: values < Q1 - 1.5×IQR or values > Q3 + 1.5×IQR",
			Analysis: explainOutliers(len(outliers), pct, minV, maxV, lower, upper, column),
		},
	}
}

// explainOutliers narrates an outlier result for one column. Prices are
// normalized USD by the time they reach analysis, hence the $ figures.
func explainOutliers(count int, pct, actualMin, actualMax, lower, upper float64, column string) string {
	if count == 0 {
		switch column {
		case book.FieldRating:
			return fmt.Sprintf("No outliers detected. All rating values (%g-%g) fall within "+
				"the IQR bounds (%.1f to %.1f). Ratings are naturally constrained to 1-5 stars, "+
				"making extreme outliers mathematically unlikely with the IQR method.",
				actualMin, actualMax, lower, upper)
		case book.FieldPrice:
			if actualMin > 0 {
				return fmt.Sprintf("No outliers detected. All price values ($%.2f-$%.2f) fall within "+
					"the IQR bounds ($%.2f to $%.2f). The %.1fx price range indicates a "+
					"well-distributed dataset without extreme values.",
					actualMin, actualMax, lower, upper, actualMax/actualMin)
			}
			return fmt.Sprintf("No outliers detected. All price values ($%.2f-$%.2f) fall within "+
				"the IQR bounds ($%.2f to $%.2f), indicating a well-distributed dataset "+
				"without extreme values.",
				actualMin, actualMax, lower, upper)
		default:
			return fmt.Sprintf("No outliers detected. All %s values (%.2f-%.2f) fall within "+
				"the IQR bounds (%.2f to %.2f), indicating a normally distributed dataset.",
				column, actualMin, actualMax, lower, upper)
		}
	}

	severity := "high"
	if pct < 5 {
		severity = "low"
	} else if pct < 10 {
		severity = "moderate"
	}

	switch column {
	case book.FieldRating:
		return fmt.Sprintf("%d outliers detected (%.1f%% of data) - %s severity. "+
			"These represent rating values outside the range (%.1f to %.1f). "+
			"For ratings, outliers may indicate data quality issues or unusual rating patterns.",
			count, pct, severity, lower, upper)
	case book.FieldPrice:
		lowerDesc := fmt.Sprintf("below $%.2f", lower)
		if lower <= 0 {
			lowerDesc = "negative values (data errors)"
		}
		return fmt.Sprintf("%d outliers detected (%.1f%% of data) - %s severity. "+
			"These are price values %s or above $%.2f. "+
			"Price outliers may indicate premium/luxury items, data entry errors, or unique market segments.",
			count, pct, severity, lowerDesc, upper)
	default:
		return fmt.Sprintf("%d outliers detected (%.1f%% of data) - %s severity. "+
			"These are %s values outside (%.2f to %.2f). "+
			"Further investigation may be needed to understand these extreme values.",
			count, pct, severity, column, lower, upper)
	}
}
