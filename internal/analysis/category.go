package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

// PriceDistributionByCategory summarizes prices within each category.
func PriceDistributionByCategory(records []book.Record) map[string]report.CategoryPriceStats {
	groups := make(map[string][]float64)
	for _, r := range records {
		groups[r.Category] = append(groups[r.Category], r.Price)
	}

	out := make(map[string]report.CategoryPriceStats, len(groups))
	for cat, prices := range groups {
		meanV, _ := stats.Mean(prices)
		medianV, _ := stats.Median(prices)
		minV, _ := stats.Min(prices)
		maxV, _ := stats.Max(prices)

		out[cat] = report.CategoryPriceStats{
			Count:       len(prices),
			MeanPrice:   round2(meanV),
			MedianPrice: round2(medianV),
			StdDev:      round2(sampleStd(prices)),
			MinPrice:    round2(minV),
			MaxPrice:    round2(maxV),
			PriceRange:  round2(maxV - minV),
		}
	}
	return out
}

// Popularity counts records per category. Ranking ties break
// alphabetically so repeated runs agree on most and least popular.
func Popularity(records []book.Record) *report.CategoryPopularity {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category]++
	}
	if len(counts) == 0 {
		return nil
	}

	ordered := orderedCategories(counts)
	total := len(records)

	pct := make(map[string]float64, len(counts))
	for cat, n := range counts {
		pct[cat] = round2(float64(n) / float64(total) * 100)
	}

	top3 := 0.0
	for i, cat := range ordered {
		if i == 3 {
			break
		}
		top3 += pct[cat]
	}

	bottom := 0
	for _, n := range counts {
		if n <= 1 {
			bottom++
		}
	}

	return &report.CategoryPopularity{
		FrequencyDistribution:  counts,
		PercentageDistribution: pct,
		TotalCategories:        len(counts),
		MostPopularCategory:    ordered[0],
		LeastPopularCategory:   ordered[len(ordered)-1],
		CategoryConcentration: report.CategoryConcentration{
			Top3CategoriesPercentage: round2(top3),
			BottomCategoriesCount:    bottom,
		},
	}
}

// orderedCategories sorts category names by count descending, then name
// ascending.
func orderedCategories(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
