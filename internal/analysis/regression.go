package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"bookstat/domain/book"
	"bookstat/domain/core"
	"bookstat/domain/report"
)

// minRegressionSize is the fewest records a least-squares fit needs.
const minRegressionSize = 3

// PriceRatingRegression fits price = slope*rating + intercept by
// ordinary least squares and reports the fit quality via Pearson's r.
// Too few records or constant ratings make the fit meaningless; those
// cases come back as skip-class errors, not results.
func PriceRatingRegression(table *book.Table) (*report.Regression, error) {
	if !table.HasColumn(book.FieldPrice) {
		return nil, core.NewMissingColumnError(book.FieldPrice)
	}
	if !table.HasColumn(book.FieldRating) {
		return nil, core.NewMissingColumnError(book.FieldRating)
	}
	if table.Len() < minRegressionSize {
		return nil, core.NewInsufficientDataError("price-rating regression", minRegressionSize, table.Len())
	}
	ratings := table.Ratings()
	prices := table.Prices()
	if sampleVariance(ratings) == 0 {
		return nil, fmt.Errorf("%w: rating", core.ErrZeroVariance)
	}

	intercept, slope := stat.LinearRegression(ratings, prices, nil, false)
	r := correlation(ratings, prices)

	predicted := make(map[int]float64, 5)
	for star := 1; star <= 5; star++ {
		predicted[star] = round2(intercept + slope*float64(star))
	}

	return &report.Regression{
		Slope:          round2(slope),
		Intercept:      round2(intercept),
		PearsonR:       round3(r),
		RSquared:       round3(r * r),
		SampleSize:     table.Len(),
		PredictedPrice: predicted,
	}, nil
}

// StockAnalysis summarizes the availability column: overall mean units
// in stock, its correlation with price, and mean stock per star rating.
func StockAnalysis(table *book.Table) *report.StockAnalysis {
	if !table.HasColumn(book.FieldAvailability) || table.Len() == 0 {
		return nil
	}
	avail := table.Availabilities()

	sa := &report.StockAnalysis{
		MeanAvailability: round2(mean(avail)),
	}
	if table.HasColumn(book.FieldPrice) {
		sa.AvailabilityPriceCorrelation = round3(correlation(avail, table.Prices()))
	}
	if table.HasColumn(book.FieldRating) {
		byRating := make(map[int][]float64)
		for _, rec := range table.Records {
			star := int(rec.Rating)
			byRating[star] = append(byRating[star], rec.Availability)
		}
		sa.MeanAvailabilityByRating = make(map[int]float64, len(byRating))
		for star, vals := range byRating {
			sa.MeanAvailabilityByRating[star] = round2(mean(vals))
		}
	}
	return sa
}
