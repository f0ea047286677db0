package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

// alpha is the significance level for the hypothesis test.
const alpha = 0.05

// minSegmentSize is the fewest records a segment needs for the test.
const minSegmentSize = 2

// WelchTTest computes the unequal-variance two-sample t-statistic, its
// Welch-Satterthwaite degrees of freedom and a two-sided p-value from
// Student's t distribution. Both groups need at least two values. Two
// zero-variance groups yield t=0, p=1 so the result stays finite.
func WelchTTest(group1, group2 []float64) (tStat, df, pValue float64) {
	n1 := float64(len(group1))
	n2 := float64(len(group2))
	if n1 < minSegmentSize || n2 < minSegmentSize {
		return 0, 0, 1
	}

	mean1 := mean(group1)
	mean2 := mean(group2)
	var1 := sampleVariance(group1)
	var2 := sampleVariance(group2)

	// Welch's t-statistic: t = (mean1 - mean2) / sqrt(var1/n1 + var2/n2)
	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		return 0, n1 + n2 - 2, 1
	}
	tStat = (mean1 - mean2) / se

	// Degrees of freedom using Welch-Satterthwaite equation
	df = math.Pow(var1/n1+var2/n2, 2) / (math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * (1 - dist.CDF(math.Abs(tStat)))
	return tStat, df, pValue
}

// HypothesisTest runs Welch's t-test on mean price between the segment
// and its complement. A segment smaller than two records makes the test
// unavailable instead of failing the run. Significance is judged on the
// unrounded p-value.
func HypothesisTest(table *book.Table, seg Segment) *report.HypothesisTest {
	if !table.HasColumn(book.FieldCategory) || !table.HasColumn(book.FieldPrice) {
		return nil
	}
	in, out := seg.Partition(table.Records)

	if len(in) < minSegmentSize || len(out) < minSegmentSize {
		small, n := seg.Name, len(in)
		if len(out) < n {
			small, n = seg.ComplementName(), len(out)
		}
		return &report.HypothesisTest{
			Status: report.HypothesisStatusUnavailable,
			Reason: fmt.Sprintf("segment %q has %d records, need at least %d", small, n, minSegmentSize),
		}
	}

	pricesIn := priceColumn(in)
	pricesOut := priceColumn(out)
	tStat, df, pValue := WelchTTest(pricesIn, pricesOut)

	return &report.HypothesisTest{
		Status:           report.HypothesisStatusOK,
		Comparison:       fmt.Sprintf("%s_vs_%s_price", seg.Name, seg.ComplementName()),
		TStatistic:       round3(tStat),
		PValue:           round3(pValue),
		DegreesOfFreedom: round2(df),
		Significant:      pValue < alpha,
		SegmentMeanPrice: map[string]float64{
			seg.Name:             round2(mean(pricesIn)),
			seg.ComplementName(): round2(mean(pricesOut)),
		},
	}
}
