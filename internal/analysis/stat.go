package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func mean(values []float64) float64 {
	m, _ := stats.Mean(values)
	return m
}

// sampleStd is the n-1 standard deviation, defined as 0 for fewer than
// two values so single-record groups report no spread instead of NaN.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, _ := stats.StandardDeviationSample(values)
	return sd
}

// sampleVariance mirrors sampleStd's small-sample behavior.
func sampleVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	v, _ := stats.SampleVariance(values)
	return v
}

// percentile wraps stats.Percentile with the small-sample cases pinned
// down: an empty slice yields 0 and a slice too short for the requested
// percentile falls back to the minimum.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	v, err := stats.Percentile(values, p)
	if err != nil {
		m, _ := stats.Min(values)
		return m
	}
	return v
}

// modeOf returns the smallest of the most frequent values. With no
// repeats at all it falls back to the minimum, which is what a sorted
// all-values mode would start with.
func modeOf(values []float64) float64 {
	m, err := stats.Mode(values)
	if err == nil && len(m) > 0 {
		return m[0]
	}
	v, _ := stats.Min(values)
	return v
}

// correlation is Pearson's r, defined as 0 whenever either side has no
// variance.
func correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}
	r, err := stats.Correlation(x, y)
	if err != nil || math.IsNaN(r) {
		return 0
	}
	return r
}

// skewness is the adjusted Fisher-Pearson coefficient over the
// population standard deviation, matching the usual sample skew.
func skewness(values []float64) float64 {
	stdDev, _ := stats.StandardDeviation(values)
	if len(values) < 3 || stdDev == 0 {
		return 0
	}

	m := mean(values)
	n := float64(len(values))
	sumCubedDeviations := 0.0
	for _, x := range values {
		deviation := (x - m) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	// Adjusted Fisher-Pearson coefficient
	skew := sumCubedDeviations / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skew * correction
}
