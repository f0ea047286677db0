package analysis

import (
	"github.com/montanaflynn/stats"

	"bookstat/domain/report"
)

// DescribeColumn computes the six-number summary of one numeric column.
// The mode is the smallest of the most frequent values; with no repeats
// it degrades to the minimum. Standard deviation uses n-1.
func DescribeColumn(values []float64) report.DescriptiveStats {
	meanV, _ := stats.Mean(values)
	medianV, _ := stats.Median(values)
	minV, _ := stats.Min(values)
	maxV, _ := stats.Max(values)

	return report.DescriptiveStats{
		Mean:   round2(meanV),
		Median: round2(medianV),
		Mode:   round2(modeOf(values)),
		StdDev: round2(sampleStd(values)),
		Min:    round2(minV),
		Max:    round2(maxV),
	}
}
