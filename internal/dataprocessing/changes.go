package dataprocessing

import (
	"github.com/shopspring/decimal"

	"salescli/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// PercentChanges returns the month-over-month change of sales in percent,
// rounded to two places. Element i-1 compares sales[i] with sales[i-1], so
// the result has one element fewer than the input.
//
// A zero previous value is reported as a division-by-zero error naming the
// offending index.
func PercentChanges(sales []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(sales) < 2 {
		return []decimal.Decimal{}, nil
	}

	changes := make([]decimal.Decimal, 0, len(sales)-1)
	for i := 1; i < len(sales); i++ {
		previous := sales[i-1]
		if previous.IsZero() {
			return nil, errors.NewDivisionByZeroError(i - 1)
		}
		change := sales[i].Sub(previous).Div(previous).Mul(hundred)
		changes = append(changes, change.RoundBank(AmountPlaces))
	}
	return changes, nil
}
