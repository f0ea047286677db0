package analysis

import (
	"bookstat/domain/report"
)

// RatingPatterns describes the rating distribution: per-star counts, the
// most common rating by count (smallest wins a tie), spread, skew and
// percentiles.
func RatingPatterns(ratings []float64) *report.RatingPatterns {
	if len(ratings) == 0 {
		return nil
	}

	dist := make(map[int]int)
	for _, r := range ratings {
		dist[int(r)]++
	}

	mostCommon := 0
	bestCount := -1
	for rating, count := range dist {
		if count > bestCount || (count == bestCount && rating < mostCommon) {
			mostCommon = rating
			bestCount = count
		}
	}

	return &report.RatingPatterns{
		RatingDistribution: dist,
		MostCommonRating:   mostCommon,
		RatingVariability:  round2(sampleStd(ratings)),
		RatingSkewness:     round2(skewness(ratings)),
		RatingPercentiles: map[string]float64{
			"25th": round2(percentile(ratings, 25)),
			"50th": round2(percentile(ratings, 50)),
			"75th": round2(percentile(ratings, 75)),
			"90th": round2(percentile(ratings, 90)),
		},
	}
}
