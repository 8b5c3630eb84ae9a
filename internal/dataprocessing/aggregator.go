package dataprocessing

import (
	"github.com/shopspring/decimal"

	"salescli/internal/config"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// AmountPlaces is the number of decimal places of rounded money values
const AmountPlaces = 2

var monthsPerYear = decimal.NewFromInt(config.MonthsPerYear)

// Total returns the exact sum of the Sales column.
func Total(rows []domain.Row) (decimal.Decimal, error) {
	if len(rows) == 0 {
		return decimal.Decimal{}, errors.NewEmptyTableError("total")
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Sales)
	}
	return total, nil
}

// Average returns total sales divided by twelve, rounded to two places.
//
// The divisor is MonthsPerYear whatever the row count: a table with fewer or
// more than twelve rows still gets total/12.
func Average(rows []domain.Row) (decimal.Decimal, error) {
	total, err := Total(rows)
	if err != nil {
		return decimal.Decimal{}, errors.NewEmptyTableError("average")
	}
	return total.Div(monthsPerYear).RoundBank(AmountPlaces), nil
}

// ArgMax returns the month with the highest sales. The first row wins a tie.
func ArgMax(rows []domain.Row) (domain.MonthValue, error) {
	if len(rows) == 0 {
		return domain.MonthValue{}, errors.NewEmptyTableError("argmax")
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.Sales.GreaterThan(best.Sales) {
			best = row
		}
	}
	return domain.MonthValue{Month: best.Month, Value: best.Sales}, nil
}

// ArgMin returns the month with the lowest sales. The first row wins a tie.
func ArgMin(rows []domain.Row) (domain.MonthValue, error) {
	if len(rows) == 0 {
		return domain.MonthValue{}, errors.NewEmptyTableError("argmin")
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.Sales.LessThan(best.Sales) {
			best = row
		}
	}
	return domain.MonthValue{Month: best.Month, Value: best.Sales}, nil
}

// Aggregate computes total, average and the extreme months of the Sales
// column. Changes are left to PercentChanges.
func Aggregate(rows []domain.Row) (domain.Statistics, error) {
	var stats domain.Statistics
	var err error

	if stats.Total, err = Total(rows); err != nil {
		return stats, err
	}
	if stats.Average, err = Average(rows); err != nil {
		return stats, err
	}
	if stats.Highest, err = ArgMax(rows); err != nil {
		return stats, err
	}
	if stats.Lowest, err = ArgMin(rows); err != nil {
		return stats, err
	}
	return stats, nil
}
