package analysis

import "testing"

func TestRatingPatterns(t *testing.T) {
	got := RatingPatterns([]float64{1, 3, 3, 5, 4})
	if got == nil {
		t.Fatal("Expected patterns, got nil")
	}

	wantDist := map[int]int{1: 1, 3: 2, 4: 1, 5: 1}
	if len(got.RatingDistribution) != len(wantDist) {
		t.Fatalf("Expected %d distinct ratings, got %d", len(wantDist), len(got.RatingDistribution))
	}
	for star, n := range wantDist {
		if got.RatingDistribution[star] != n {
			t.Errorf("Expected %d books at %d stars, got %d", n, star, got.RatingDistribution[star])
		}
	}

	if got.MostCommonRating != 3 {
		t.Errorf("Expected most common rating 3, got %d", got.MostCommonRating)
	}
	if got.RatingVariability != 1.48 {
		t.Errorf("Expected variability 1.48, got %v", got.RatingVariability)
	}

	wantPct := map[string]float64{"25th": 2, "50th": 3, "75th": 3.5, "90th": 4.5}
	for name, want := range wantPct {
		if got.RatingPercentiles[name] != want {
			t.Errorf("Expected %s percentile %v, got %v", name, want, got.RatingPercentiles[name])
		}
	}
}

func TestRatingPatternsTieBreaksToSmallest(t *testing.T) {
	got := RatingPatterns([]float64{4, 2, 4, 2})
	if got.MostCommonRating != 2 {
		t.Errorf("Expected tie to resolve to 2, got %d", got.MostCommonRating)
	}
}

func TestRatingPatternsEmpty(t *testing.T) {
	if got := RatingPatterns(nil); got != nil {
		t.Errorf("Expected nil for no ratings, got %+v", got)
	}
}
