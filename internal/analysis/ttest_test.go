package analysis

import (
	"math"
	"strings"
	"testing"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

func TestWelchTTestKnownValues(t *testing.T) {
	group1 := []float64{1, 2, 3, 4, 5}
	group2 := []float64{2, 4, 6, 8, 10}

	tStat, df, p := WelchTTest(group1, group2)

	if math.Abs(tStat-(-1.897367)) > 1e-5 {
		t.Errorf("Expected t=-1.897367, got %v", tStat)
	}
	if math.Abs(df-5.882353) > 1e-5 {
		t.Errorf("Expected df=5.882353, got %v", df)
	}
	if p < 0.09 || p > 0.13 {
		t.Errorf("Expected p around 0.107, got %v", p)
	}
}

func TestWelchTTestSeparatedGroups(t *testing.T) {
	randState = 12345.0

	n := 50
	group1 := make([]float64, n)
	group2 := make([]float64, n)
	for i := 0; i < n; i++ {
		group1[i] = 10.0 + randNorm()*2.0
		group2[i] = 15.0 + randNorm()*2.0
	}

	tStat, df, p := WelchTTest(group1, group2)

	if tStat >= 0 {
		t.Errorf("Expected negative t for lower first group, got %v", tStat)
	}
	if p > 0.001 {
		t.Errorf("Expected tiny p for separated groups, got %v", p)
	}
	if df < float64(n-1) || df > float64(2*n-2) {
		t.Errorf("Expected df between %d and %d, got %v", n-1, 2*n-2, df)
	}

	t.Logf("Welch result: t=%.3f, df=%.1f, p=%.4g", tStat, df, p)
}

func TestWelchTTestDegenerate(t *testing.T) {
	if tStat, df, p := WelchTTest([]float64{1}, []float64{2, 3}); tStat != 0 || df != 0 || p != 1 {
		t.Errorf("Expected 0/0/1 for undersized group, got %v/%v/%v", tStat, df, p)
	}

	// Two constant groups have zero standard error.
	if tStat, _, p := WelchTTest([]float64{5, 5}, []float64{5, 5}); tStat != 0 || p != 1 {
		t.Errorf("Expected t=0 p=1 for zero variance, got %v/%v", tStat, p)
	}
}

func TestHypothesisTest(t *testing.T) {
	table := &book.Table{
		Columns: book.BaseColumns(),
		Records: []book.Record{
			{Title: "a", Price: 10, Category: "fiction"},
			{Title: "b", Price: 12, Category: "fiction"},
			{Title: "c", Price: 14, Category: "fiction"},
			{Title: "d", Price: 20, Category: "travel"},
			{Title: "e", Price: 22, Category: "poetry"},
			{Title: "f", Price: 24, Category: "history"},
		},
	}

	got := HypothesisTest(table, DefaultSegment())
	if got == nil {
		t.Fatal("Expected hypothesis test, got nil")
	}

	if got.Status != report.HypothesisStatusOK {
		t.Fatalf("Expected status ok, got %s (%s)", got.Status, got.Reason)
	}
	if got.Comparison != "fiction_vs_non_fiction_price" {
		t.Errorf("Expected comparison fiction_vs_non_fiction_price, got %s", got.Comparison)
	}
	if got.TStatistic != -6.124 {
		t.Errorf("Expected t=-6.124, got %v", got.TStatistic)
	}
	if got.DegreesOfFreedom != 4 {
		t.Errorf("Expected df=4, got %v", got.DegreesOfFreedom)
	}
	if got.PValue <= 0 || got.PValue >= 0.01 {
		t.Errorf("Expected p under 0.01, got %v", got.PValue)
	}
	if !got.Significant {
		t.Error("Expected significance at 0.05")
	}
	if got.SegmentMeanPrice["fiction"] != 12 || got.SegmentMeanPrice["non_fiction"] != 22 {
		t.Errorf("Expected means 12/22, got %v", got.SegmentMeanPrice)
	}
}

func TestHypothesisTestUnavailable(t *testing.T) {
	table := &book.Table{
		Columns: book.BaseColumns(),
		Records: []book.Record{
			{Title: "a", Price: 10, Category: "fiction"},
			{Title: "b", Price: 20, Category: "travel"},
			{Title: "c", Price: 22, Category: "poetry"},
		},
	}

	got := HypothesisTest(table, DefaultSegment())
	if got == nil {
		t.Fatal("Expected hypothesis test, got nil")
	}
	if got.Status != report.HypothesisStatusUnavailable {
		t.Fatalf("Expected status unavailable, got %s", got.Status)
	}
	if !strings.Contains(got.Reason, `"fiction"`) {
		t.Errorf("Expected reason to name the small segment, got %q", got.Reason)
	}
	if got.Significant {
		t.Error("Expected no significance claim without a test")
	}
}

func TestHypothesisTestMissingColumns(t *testing.T) {
	table := &book.Table{
		Columns: []string{book.FieldTitle, book.FieldPrice},
		Records: []book.Record{{Price: 1}, {Price: 2}},
	}
	if got := HypothesisTest(table, DefaultSegment()); got != nil {
		t.Errorf("Expected nil without category column, got %+v", got)
	}
}

// Deterministic pseudo-random normal draws (Box-Muller transform).
var randState = 12345.0

func randNorm() float64 {
	randState = math.Mod(randState*1103515245+12345, 2147483648)
	u1 := randState / 2147483648.0

	randState = math.Mod(randState*1103515245+12345, 2147483648)
	u2 := randState / 2147483648.0

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
