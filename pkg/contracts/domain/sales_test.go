package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRating_String(t *testing.T) {
	tests := []struct {
		rating   Rating
		expected string
	}{
		{RatingUnclassified, ""},
		{RatingBad, "Bad"},
		{RatingAverage, "Average"},
		{RatingGood, "Good"},
		{RatingExcellent, "Excellent"},
		{Rating(42), "Rating(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rating.String())
		})
	}
}

func TestParseRating(t *testing.T) {
	for _, rating := range append([]Rating{RatingUnclassified}, Ratings...) {
		parsed, err := ParseRating(rating.String())
		require.NoError(t, err)
		assert.Equal(t, rating, parsed)
	}

	_, err := ParseRating("Superb")
	assert.Error(t, err)
}

func TestMetric_String(t *testing.T) {
	assert.Equal(t, "Highest Sales", MetricHighestSales.String())
	assert.Equal(t, "Lowest Sales", MetricLowestSales.String())
	assert.Equal(t, "Total Sales", MetricTotalSales.String())
	assert.Equal(t, "Metric(9)", Metric(9).String())
}

func TestTable_Accessors(t *testing.T) {
	table := &Table{Rows: []Row{
		{Month: "Jan", Sales: decimal.NewFromInt(1000)},
		{Month: "Feb", Sales: decimal.NewFromInt(6000)},
	}}

	assert.Equal(t, 2, table.Len())
	assert.False(t, table.Classified())
	assert.Equal(t, RatingUnclassified, table.RatingAt(0))

	sales := table.SalesValues()
	require.Len(t, sales, 2)
	assert.True(t, sales[1].Equal(decimal.NewFromInt(6000)))

	table.Ratings = []Rating{RatingBad, RatingExcellent}
	assert.True(t, table.Classified())
	assert.Equal(t, RatingExcellent, table.RatingAt(1))
	assert.Equal(t, RatingUnclassified, table.RatingAt(5))

	var empty *Table
	assert.Equal(t, 0, empty.Len())
}
