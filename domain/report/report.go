// Package report defines the analysis report document. Field order and
// JSON keys are part of the output contract: the narrative rendering and
// any downstream consumer read these exact names.
package report

import (
	"bookstat/domain/core"
)

// Report is the full analysis document for one pipeline run. A nil
// section means the analyzer could not compute it; the reason lands in
// Metadata.Notes.
type Report struct {
	Metadata                    Metadata                      `json:"metadata"`
	DescriptiveStats            map[string]DescriptiveStats   `json:"descriptive_stats,omitempty"`
	PriceDistributionByCategory map[string]CategoryPriceStats `json:"price_distribution_by_category,omitempty"`
	RatingPatterns              *RatingPatterns               `json:"rating_patterns,omitempty"`
	CorrelationAnalysis         *CorrelationAnalysis          `json:"correlation_analysis,omitempty"`
	CategoryPopularity          *CategoryPopularity           `json:"category_popularity,omitempty"`
	ComparativeAnalysis         *ComparativeAnalysis          `json:"comparative_analysis,omitempty"`
	OutlierAnalysis             map[string]OutlierStats       `json:"outlier_analysis,omitempty"`
	HypothesisTesting           *HypothesisTest               `json:"hypothesis_testing,omitempty"`
	PriceRatingRegression       *Regression                   `json:"price_rating_regression,omitempty"`
	StockAnalysis               *StockAnalysis                `json:"stock_analysis,omitempty"`
}

// Metadata identifies one run. RunID and GeneratedAt vary between runs;
// DatasetHash is stable for identical input so reruns can be compared.
type Metadata struct {
	RunID        core.RunID       `json:"run_id"`
	GeneratedAt  core.Timestamp   `json:"report_generated_at"`
	SourceFile   string           `json:"source_file"`
	DatasetHash  core.DatasetHash `json:"dataset_hash,omitempty"`
	TotalRecords int              `json:"total_records"`
	Notes        []string         `json:"notes,omitempty"`
}

// DescriptiveStats summarizes one numeric column.
type DescriptiveStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   float64 `json:"mode"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// CategoryPriceStats summarizes prices within one category.
type CategoryPriceStats struct {
	Count       int     `json:"count"`
	MeanPrice   float64 `json:"mean_price"`
	MedianPrice float64 `json:"median_price"`
	StdDev      float64 `json:"std_dev"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	PriceRange  float64 `json:"price_range"`
}

// RatingPatterns describes the shape of the rating distribution.
type RatingPatterns struct {
	RatingDistribution map[int]int        `json:"rating_distribution"`
	MostCommonRating   int                `json:"most_common_rating"`
	RatingVariability  float64            `json:"rating_variability"`
	RatingSkewness     float64            `json:"rating_skewness"`
	RatingPercentiles  map[string]float64 `json:"rating_percentiles"`
}

// CorrelationAnalysis holds the pairwise Pearson matrix over the numeric
// columns plus the pairs whose |r| exceeds the significance threshold.
type CorrelationAnalysis struct {
	CorrelationMatrix       map[string]map[string]float64 `json:"correlation_matrix"`
	SignificantCorrelations map[string]float64            `json:"significant_correlations"`
}

// CategoryPopularity describes how records spread across categories.
type CategoryPopularity struct {
	FrequencyDistribution  map[string]int        `json:"frequency_distribution"`
	PercentageDistribution map[string]float64    `json:"percentage_distribution"`
	TotalCategories        int                   `json:"total_categories"`
	MostPopularCategory    string                `json:"most_popular_category"`
	LeastPopularCategory   string                `json:"least_popular_category"`
	CategoryConcentration  CategoryConcentration `json:"category_concentration"`
}

// CategoryConcentration measures how top-heavy the category spread is.
type CategoryConcentration struct {
	Top3CategoriesPercentage float64 `json:"top_3_categories_percentage"`
	BottomCategoriesCount    int     `json:"bottom_categories_count"`
}

// ComparativeAnalysis contrasts one segment against its complement.
type ComparativeAnalysis struct {
	PriceComparison      *SegmentComparison    `json:"price_comparison,omitempty"`
	RatingComparison     *SegmentComparison    `json:"rating_comparison,omitempty"`
	PriceRangeComparison *PriceRangeComparison `json:"price_range_comparison,omitempty"`
}

// SegmentComparison holds per-segment stats for one metric. Difference
// is the segment mean minus the complement mean, computed before
// rounding either side.
type SegmentComparison struct {
	Segments   map[string]SegmentStats `json:"segments"`
	Difference float64                 `json:"difference"`
}

// SegmentStats summarizes one metric within one segment.
type SegmentStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// PriceRangeComparison contrasts the cheap and expensive quartiles.
type PriceRangeComparison struct {
	CheapBooks     PriceBandStats `json:"cheap_books"`
	ExpensiveBooks PriceBandStats `json:"expensive_books"`
}

// PriceBandStats summarizes records at or beyond a price threshold.
type PriceBandStats struct {
	Count          int     `json:"count"`
	AvgRating      float64 `json:"avg_rating"`
	PriceThreshold float64 `json:"price_threshold"`
}

// OutlierStats reports IQR outliers for one numeric column.
type OutlierStats struct {
	Count       int                `json:"count"`
	Percentage  float64            `json:"percentage"`
	Values      []float64          `json:"values"`
	IQRDetails  IQRDetails         `json:"iqr_details"`
	Explanation OutlierExplanation `json:"explanation"`
}

// IQRDetails exposes the quartile arithmetic behind an outlier decision.
type IQRDetails struct {
	Q1          float64 `json:"Q1"`
	Q3          float64 `json:"Q3"`
	IQR         float64 `json:"IQR"`
	LowerBound  float64 `json:"lower_bound"`
	UpperBound  float64 `json:"upper_bound"`
	ActualMin   float64 `json:"actual_min"`
	ActualMax   float64 `json:"actual_max"`
	DataRange   float64 `json:"data_range"`
	BoundsRange float64 `json:"bounds_range"`
}

// OutlierExplanation carries the human-readable reading of the numbers.
type OutlierExplanation struct {
	Method   string `json:"method"`
	Formula  string `json:"formula"`
	Analysis string `json:"analysis"`
}

// Hypothesis test statuses.
const (
	HypothesisStatusOK          = "ok"
	HypothesisStatusUnavailable = "unavailable"
)

// HypothesisTest reports a two-sample Welch's t-test on mean price
// between a segment and its complement. When either side has fewer
// than two records the test is not run and Status says why.
type HypothesisTest struct {
	Status           string             `json:"status"`
	Reason           string             `json:"reason,omitempty"`
	Comparison       string             `json:"comparison,omitempty"`
	TStatistic       float64            `json:"t_statistic"`
	PValue           float64            `json:"p_value"`
	DegreesOfFreedom float64            `json:"degrees_of_freedom"`
	Significant      bool               `json:"is_significant_at_0.05"`
	SegmentMeanPrice map[string]float64 `json:"segment_mean_price,omitempty"`
}

// Regression reports the least-squares fit of price on rating.
type Regression struct {
	Slope          float64         `json:"slope"`
	Intercept      float64         `json:"intercept"`
	PearsonR       float64         `json:"pearson_r"`
	RSquared       float64         `json:"r_squared"`
	SampleSize     int             `json:"sample_size"`
	PredictedPrice map[int]float64 `json:"predicted_price_by_rating"`
}

// StockAnalysis summarizes the availability column.
type StockAnalysis struct {
	MeanAvailability             float64         `json:"mean_availability"`
	AvailabilityPriceCorrelation float64         `json:"availability_price_correlation"`
	MeanAvailabilityByRating     map[int]float64 `json:"mean_availability_by_rating"`
}
