package analysis

import (
	"strings"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

// Segment names the subset of records whose category contains Match,
// case-insensitively. Its complement is reported as "non_"+Name.
type Segment struct {
	Name  string
	Match string
}

// DefaultSegment is the fiction/non-fiction split.
func DefaultSegment() Segment {
	return Segment{Name: "fiction", Match: "fiction"}
}

// ComplementName labels records outside the segment.
func (s Segment) ComplementName() string {
	return "non_" + s.Name
}

// Matches reports whether a category belongs to the segment.
func (s Segment) Matches(category string) bool {
	return strings.Contains(strings.ToLower(category), strings.ToLower(s.Match))
}

// Partition splits records into the segment and its complement,
// preserving row order.
func (s Segment) Partition(records []book.Record) (in, out []book.Record) {
	for _, r := range records {
		if s.Matches(r.Category) {
			in = append(in, r)
		} else {
			out = append(out, r)
		}
	}
	return in, out
}

// Comparative contrasts the segment against its complement on price and
// rating, and the cheap quartile against the expensive one. Metric
// comparisons need both sides non-empty; the quartile comparison only
// needs prices.
func Comparative(table *book.Table, seg Segment) *report.ComparativeAnalysis {
	if !table.HasColumn(book.FieldCategory) || table.Len() == 0 {
		return nil
	}
	in, out := seg.Partition(table.Records)

	comp := &report.ComparativeAnalysis{}
	if len(in) > 0 && len(out) > 0 {
		if table.HasColumn(book.FieldPrice) {
			comp.PriceComparison = compareMetric(priceColumn(in), priceColumn(out), seg)
		}
		if table.HasColumn(book.FieldRating) {
			comp.RatingComparison = compareMetric(ratingColumn(in), ratingColumn(out), seg)
		}
	}
	if table.HasColumn(book.FieldPrice) {
		comp.PriceRangeComparison = priceRangeComparison(table)
	}

	if comp.PriceComparison == nil && comp.RatingComparison == nil && comp.PriceRangeComparison == nil {
		return nil
	}
	return comp
}

// compareMetric builds per-segment stats for one metric. The difference
// is segment minus complement, computed before rounding.
func compareMetric(in, out []float64, seg Segment) *report.SegmentComparison {
	meanIn := mean(in)
	meanOut := mean(out)

	return &report.SegmentComparison{
		Segments: map[string]report.SegmentStats{
			seg.Name:             {Count: len(in), Mean: round2(meanIn), Std: round2(sampleStd(in))},
			seg.ComplementName(): {Count: len(out), Mean: round2(meanOut), Std: round2(sampleStd(out))},
		},
		Difference: round2(meanIn - meanOut),
	}
}

// priceRangeComparison contrasts records at or below the first price
// quartile with those at or above the third.
func priceRangeComparison(table *book.Table) *report.PriceRangeComparison {
	prices := table.Prices()
	q1 := percentile(prices, 25)
	q3 := percentile(prices, 75)
	hasRating := table.HasColumn(book.FieldRating)

	var cheap, expensive []float64
	cheapCount, expensiveCount := 0, 0
	for _, r := range table.Records {
		if r.Price <= q1 {
			cheapCount++
			if hasRating {
				cheap = append(cheap, r.Rating)
			}
		}
		if r.Price >= q3 {
			expensiveCount++
			if hasRating {
				expensive = append(expensive, r.Rating)
			}
		}
	}

	return &report.PriceRangeComparison{
		CheapBooks: report.PriceBandStats{
			Count:          cheapCount,
			AvgRating:      round2(mean(cheap)),
			PriceThreshold: round2(q1),
		},
		ExpensiveBooks: report.PriceBandStats{
			Count:          expensiveCount,
			AvgRating:      round2(mean(expensive)),
			PriceThreshold: round2(q3),
		},
	}
}

func priceColumn(records []book.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Price
	}
	return out
}

func ratingColumn(records []book.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Rating
	}
	return out
}
