package dataprocessing

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

func rows(values ...string) []domain.Row {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	out := make([]domain.Row, len(values))
	for i, v := range values {
		out[i] = domain.Row{Month: months[i%len(months)], Sales: dec(v), Expenditure: decimal.Zero}
	}
	return out
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		sales []string
		want  string
	}{
		{"single", []string{"1000"}, "1000"},
		{"two", []string{"1000", "6000"}, "7000"},
		{"fractional is exact", []string{"0.1", "0.2"}, "0.3"},
		{"negative", []string{"-50", "100"}, "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Total(rows(tt.sales...))
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestAverage_FixedDivisor(t *testing.T) {
	tests := []struct {
		name  string
		sales []string
		want  string
	}{
		{"two rows still divide by twelve", []string{"1000", "6000"}, "583.33"},
		{"twelve rows", []string{"100", "100", "100", "100", "100", "100", "100", "100", "100", "100", "100", "100"}, "100"},
		{"single row", []string{"1200"}, "100"},
		{"rounds half to even", []string{"0.06"}, "0"},
		{"rounds to two places", []string{"1"}, "0.08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Average(rows(tt.sales...))
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestArgMaxArgMin(t *testing.T) {
	data := []domain.Row{
		{Month: "Jan", Sales: dec("300")},
		{Month: "Feb", Sales: dec("900")},
		{Month: "Mar", Sales: dec("100")},
		{Month: "Apr", Sales: dec("900")},
		{Month: "May", Sales: dec("100")},
	}

	highest, err := ArgMax(data)
	require.NoError(t, err)
	assert.Equal(t, "Feb", highest.Month)
	assert.True(t, dec("900").Equal(highest.Value))

	lowest, err := ArgMin(data)
	require.NoError(t, err)
	assert.Equal(t, "Mar", lowest.Month)
	assert.True(t, dec("100").Equal(lowest.Value))
}

func TestArgMaxArgMin_TieFirstOccurrence(t *testing.T) {
	data := []domain.Row{
		{Month: "Jan", Sales: dec("100")},
		{Month: "Feb", Sales: dec("100")},
	}

	highest, err := ArgMax(data)
	require.NoError(t, err)
	assert.Equal(t, domain.MonthValue{Month: "Jan", Value: data[0].Sales}, highest)

	lowest, err := ArgMin(data)
	require.NoError(t, err)
	assert.Equal(t, domain.MonthValue{Month: "Jan", Value: data[0].Sales}, lowest)
}

func TestAggregates_EmptyTable(t *testing.T) {
	ops := map[string]func() error{
		"total":     func() error { _, err := Total(nil); return err },
		"average":   func() error { _, err := Average(nil); return err },
		"argmax":    func() error { _, err := ArgMax(nil); return err },
		"argmin":    func() error { _, err := ArgMin(nil); return err },
		"aggregate": func() error { _, err := Aggregate([]domain.Row{}); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrEmptyTable))
		})
	}
}

func TestAggregate(t *testing.T) {
	data := []domain.Row{
		{Month: "Jan", Sales: dec("1000"), Expenditure: dec("800")},
		{Month: "Feb", Sales: dec("6000"), Expenditure: dec("900")},
	}

	stats, err := Aggregate(data)
	require.NoError(t, err)

	assert.True(t, dec("7000").Equal(stats.Total))
	assert.True(t, dec("583.33").Equal(stats.Average))
	assert.Equal(t, "Feb", stats.Highest.Month)
	assert.True(t, dec("6000").Equal(stats.Highest.Value))
	assert.Equal(t, "Jan", stats.Lowest.Month)
	assert.True(t, dec("1000").Equal(stats.Lowest.Value))
	assert.Empty(t, stats.Changes)
}

func TestAggregate_ZeroSalesIsNotAnError(t *testing.T) {
	stats, err := Aggregate(rows("0", "100"))
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(stats.Total))
	assert.Equal(t, "Jan", stats.Lowest.Month)
}
