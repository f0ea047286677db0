// Package markdown renders reports as Markdown and standalone HTML.
// Every number comes straight from the report struct; nothing is
// recomputed here, so the narrative always agrees with the JSON.
package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"bookstat/domain/book"
	"bookstat/domain/report"
)

const pageTitle = "Book Data Analysis Report"

// Renderer writes the narrative report.
type Renderer struct{}

// NewRenderer creates a report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the Markdown narrative for a report.
func (r *Renderer) Render(rep *report.Report) ([]byte, error) {
	d := &doc{}
	d.add("# %s - %s", pageTitle, rep.Metadata.GeneratedAt.Time().Format("2006-01-02 15:04"))
	d.add("")

	r.overview(d, rep)
	r.descriptiveStats(d, rep)
	r.outliers(d, rep)
	r.categories(d, rep)
	r.pricesByCategory(d, rep)
	r.ratings(d, rep)
	r.correlations(d, rep)
	r.comparative(d, rep)
	r.hypothesis(d, rep)
	r.regression(d, rep)
	r.stock(d, rep)

	return []byte(strings.Join(d.lines, "\n") + "\n"), nil
}

// RenderHTML produces the same narrative as a standalone HTML page.
func (r *Renderer) RenderHTML(rep *report.Report) ([]byte, error) {
	md, err := r.Render(rep)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: pageTitle,
	})
	return markdown.Render(p.Parse(md), renderer), nil
}

// doc accumulates output lines and numbers the sections in order.
type doc struct {
	lines   []string
	section int
}

func (d *doc) add(format string, args ...interface{}) {
	if len(args) == 0 {
		d.lines = append(d.lines, format)
		return
	}
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *doc) heading(title string) {
	d.section++
	d.add("## %d. %s", d.section, title)
	d.add("")
}

func (r *Renderer) overview(d *doc, rep *report.Report) {
	d.heading("Overview")
	d.add("- **Run ID**: `%s`", rep.Metadata.RunID.String())
	d.add("- **Source File**: `%s`", rep.Metadata.SourceFile)
	if !rep.Metadata.DatasetHash.IsEmpty() {
		d.add("- **Dataset Hash**: `%s`", rep.Metadata.DatasetHash.String())
	}
	d.add("- **Total Records**: %d", rep.Metadata.TotalRecords)
	if len(rep.Metadata.Notes) > 0 {
		d.add("- **Notes**:")
		for _, note := range rep.Metadata.Notes {
			d.add("  - %s", note)
		}
	}
	d.add("")
}

func (r *Renderer) descriptiveStats(d *doc, rep *report.Report) {
	if len(rep.DescriptiveStats) == 0 {
		return
	}
	d.heading("Descriptive Statistics")
	for _, col := range presentColumns(rep.DescriptiveStats) {
		stats := rep.DescriptiveStats[col]
		d.add("### %s Statistics", titleCase(col))
		d.add("")
		d.add("| Metric | Value |")
		d.add("|--------|-------|")
		d.add("| Mean | %s |", num(stats.Mean))
		d.add("| Median | %s |", num(stats.Median))
		d.add("| Mode | %s |", num(stats.Mode))
		d.add("| Std Dev | %s |", num(stats.StdDev))
		d.add("| Min | %s |", num(stats.Min))
		d.add("| Max | %s |", num(stats.Max))
		d.add("")
	}
}

func (r *Renderer) outliers(d *doc, rep *report.Report) {
	if len(rep.OutlierAnalysis) == 0 {
		return
	}
	d.heading("Outlier Analysis (IQR Method)")
	for _, col := range presentColumns(rep.OutlierAnalysis) {
		o := rep.OutlierAnalysis[col]
		d.add("### %s Outlier Analysis", titleCase(col))
		d.add("")
		d.add("- **Outliers**: %d (%s%%)", o.Count, num(o.Percentage))
		d.add("- **Q1 (25th percentile)**: %s", num(o.IQRDetails.Q1))
		d.add("- **Q3 (75th percentile)**: %s", num(o.IQRDetails.Q3))
		d.add("- **IQR**: %s", num(o.IQRDetails.IQR))
		d.add("- **Lower Bound**: %s", num(o.IQRDetails.LowerBound))
		d.add("- **Upper Bound**: %s", num(o.IQRDetails.UpperBound))
		d.add("- **Actual Data Range**: %s to %s", num(o.IQRDetails.ActualMin), num(o.IQRDetails.ActualMax))
		d.add("")
		d.add("**Analysis:**")
		d.add("%s", o.Explanation.Analysis)
		d.add("")
	}
}

func (r *Renderer) categories(d *doc, rep *report.Report) {
	cp := rep.CategoryPopularity
	if cp == nil {
		return
	}
	d.heading("Category Frequency Distribution")
	d.add("- **Total Unique Categories**: %d", cp.TotalCategories)
	d.add("- **Most Popular**: %s", cp.MostPopularCategory)
	d.add("- **Least Popular**: %s", cp.LeastPopularCategory)
	d.add("- **Top 3 Categories Share**: %s%%", num(cp.CategoryConcentration.Top3CategoriesPercentage))
	d.add("- **Single-Record Categories**: %d", cp.CategoryConcentration.BottomCategoriesCount)
	d.add("")

	top := rankedCategories(cp.FrequencyDistribution)
	if len(top) > 5 {
		top = top[:5]
	}
	d.add("### Top %d Categories", len(top))
	d.add("")
	d.add("| Category | Count | Share |")
	d.add("|----------|-------|-------|")
	for _, cat := range top {
		d.add("| %s | %d | %s%% |", cat, cp.FrequencyDistribution[cat], num(cp.PercentageDistribution[cat]))
	}
	d.add("")
}

func (r *Renderer) pricesByCategory(d *doc, rep *report.Report) {
	if len(rep.PriceDistributionByCategory) == 0 {
		return
	}
	d.heading("Price Distribution by Category")
	d.add("| Category | Count | Mean | Median | Std Dev | Min | Max |")
	d.add("|----------|-------|------|--------|---------|-----|-----|")

	names := make([]string, 0, len(rep.PriceDistributionByCategory))
	for name := range rep.PriceDistributionByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := rep.PriceDistributionByCategory[name]
		d.add("| %s | %d | %s | %s | %s | %s | %s |",
			name, s.Count, num(s.MeanPrice), num(s.MedianPrice), num(s.StdDev), num(s.MinPrice), num(s.MaxPrice))
	}
	d.add("")
}

func (r *Renderer) ratings(d *doc, rep *report.Report) {
	rp := rep.RatingPatterns
	if rp == nil {
		return
	}
	d.heading("Rating Patterns")
	d.add("- **Most Common Rating**: %d", rp.MostCommonRating)
	d.add("- **Variability (std dev)**: %s", num(rp.RatingVariability))
	d.add("- **Skewness**: %s", num(rp.RatingSkewness))
	d.add("")

	d.add("| Rating | Count |")
	d.add("|--------|-------|")
	stars := make([]int, 0, len(rp.RatingDistribution))
	for star := range rp.RatingDistribution {
		stars = append(stars, star)
	}
	sort.Ints(stars)
	for _, star := range stars {
		d.add("| %d | %d |", star, rp.RatingDistribution[star])
	}
	d.add("")

	for _, name := range []string{"25th", "50th", "75th", "90th"} {
		if v, ok := rp.RatingPercentiles[name]; ok {
			d.add("- **%s percentile**: %s", name, num(v))
		}
	}
	d.add("")
}

func (r *Renderer) correlations(d *doc, rep *report.Report) {
	ca := rep.CorrelationAnalysis
	if ca == nil {
		return
	}
	d.heading("Correlation Analysis")

	cols := presentColumns(ca.CorrelationMatrix)
	header := "| |"
	rule := "|-|"
	for _, col := range cols {
		header += " " + col + " |"
		rule += "-|"
	}
	d.add(header)
	d.add(rule)
	for _, row := range cols {
		line := "| **" + row + "** |"
		for _, col := range cols {
			line += " " + num(ca.CorrelationMatrix[row][col]) + " |"
		}
		d.add(line)
	}
	d.add("")

	if len(ca.SignificantCorrelations) == 0 {
		d.add("No correlations exceed |r| > 0.5.")
	} else {
		d.add("Significant correlations (|r| > 0.5):")
		d.add("")
		pairs := make([]string, 0, len(ca.SignificantCorrelations))
		for pair := range ca.SignificantCorrelations {
			pairs = append(pairs, pair)
		}
		sort.Strings(pairs)
		for _, pair := range pairs {
			d.add("- **%s**: %s", pair, num(ca.SignificantCorrelations[pair]))
		}
	}
	d.add("")
}

func (r *Renderer) comparative(d *doc, rep *report.Report) {
	comp := rep.ComparativeAnalysis
	if comp == nil {
		return
	}
	d.heading("Comparative Analysis")

	if comp.PriceComparison != nil {
		d.add("### Price by Segment")
		d.add("")
		r.segmentTable(d, comp.PriceComparison)
	}
	if comp.RatingComparison != nil {
		d.add("### Rating by Segment")
		d.add("")
		r.segmentTable(d, comp.RatingComparison)
	}
	if pr := comp.PriceRangeComparison; pr != nil {
		d.add("### Cheap vs. Expensive Quartiles")
		d.add("")
		d.add("- **Cheap books** (price <= %s): %d records, average rating %s",
			num(pr.CheapBooks.PriceThreshold), pr.CheapBooks.Count, num(pr.CheapBooks.AvgRating))
		d.add("- **Expensive books** (price >= %s): %d records, average rating %s",
			num(pr.ExpensiveBooks.PriceThreshold), pr.ExpensiveBooks.Count, num(pr.ExpensiveBooks.AvgRating))
		d.add("")
	}
}

func (r *Renderer) segmentTable(d *doc, sc *report.SegmentComparison) {
	d.add("| Segment | Count | Mean | Std Dev |")
	d.add("|---------|-------|------|---------|")
	names := make([]string, 0, len(sc.Segments))
	for name := range sc.Segments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := sc.Segments[name]
		d.add("| %s | %d | %s | %s |", name, s.Count, num(s.Mean), num(s.Std))
	}
	d.add("")
	d.add("Difference in means: %s", num(sc.Difference))
	d.add("")
}

func (r *Renderer) hypothesis(d *doc, rep *report.Report) {
	ht := rep.HypothesisTesting
	if ht == nil {
		return
	}
	d.heading("Hypothesis Testing")

	if ht.Status != report.HypothesisStatusOK {
		d.add("- **Status**: %s", ht.Status)
		d.add("- **Reason**: %s", ht.Reason)
		d.add("")
		return
	}

	result := "No significant difference"
	if ht.Significant {
		result = "Significant difference"
	}
	d.add("- **Comparison**: %s", ht.Comparison)
	d.add("- **T-statistic**: %s", num(ht.TStatistic))
	d.add("- **P-value**: %s", num(ht.PValue))
	d.add("- **Degrees of Freedom**: %s", num(ht.DegreesOfFreedom))
	d.add("- **Result**: %s found at the 0.05 level.", result)

	names := make([]string, 0, len(ht.SegmentMeanPrice))
	for name := range ht.SegmentMeanPrice {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d.add("- **Mean Price (%s)**: $%s", name, num(ht.SegmentMeanPrice[name]))
	}
	d.add("")
}

func (r *Renderer) regression(d *doc, rep *report.Report) {
	reg := rep.PriceRatingRegression
	if reg == nil {
		return
	}
	d.heading("Price-Rating Regression")
	d.add("- **Slope**: %s", num(reg.Slope))
	d.add("- **Intercept**: %s", num(reg.Intercept))
	d.add("- **Pearson r**: %s", num(reg.PearsonR))
	d.add("- **R-squared**: %s", num(reg.RSquared))
	d.add("- **Sample Size**: %d", reg.SampleSize)
	d.add("")

	d.add("| Rating | Predicted Price |")
	d.add("|--------|-----------------|")
	stars := make([]int, 0, len(reg.PredictedPrice))
	for star := range reg.PredictedPrice {
		stars = append(stars, star)
	}
	sort.Ints(stars)
	for _, star := range stars {
		d.add("| %d | $%s |", star, num(reg.PredictedPrice[star]))
	}
	d.add("")
}

func (r *Renderer) stock(d *doc, rep *report.Report) {
	sa := rep.StockAnalysis
	if sa == nil {
		return
	}
	d.heading("Stock Analysis")
	d.add("- **Mean Availability**: %s units", num(sa.MeanAvailability))
	d.add("- **Availability/Price Correlation**: %s", num(sa.AvailabilityPriceCorrelation))
	if len(sa.MeanAvailabilityByRating) > 0 {
		d.add("")
		d.add("| Rating | Mean Availability |")
		d.add("|--------|-------------------|")
		stars := make([]int, 0, len(sa.MeanAvailabilityByRating))
		for star := range sa.MeanAvailabilityByRating {
			stars = append(stars, star)
		}
		sort.Ints(stars)
		for _, star := range stars {
			d.add("| %d | %s |", star, num(sa.MeanAvailabilityByRating[star]))
		}
	}
	d.add("")
}

// num renders a float the way encoding/json does, so narrative and
// structured output carry identical digits.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// presentColumns returns the canonical numeric columns that appear in
// the map, in schema order.
func presentColumns[V any](m map[string]V) []string {
	var cols []string
	for _, col := range book.NumericColumns() {
		if _, ok := m[col]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// rankedCategories orders names by count descending, ties broken by
// name, matching the ranking used to pick the most popular category.
func rankedCategories(counts map[string]int) []string {
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
