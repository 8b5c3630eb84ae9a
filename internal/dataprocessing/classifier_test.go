package dataprocessing

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

func TestBinsClassify(t *testing.T) {
	bins, err := NewBins(dec("6000"))
	require.NoError(t, err)

	tests := []struct {
		value string
		want  domain.Rating
	}{
		{"0", domain.RatingBad},
		{"1999", domain.RatingBad},
		{"1999.99", domain.RatingBad},
		{"2000", domain.RatingAverage},
		{"3499.99", domain.RatingAverage},
		{"3500", domain.RatingGood},
		{"4999.99", domain.RatingGood},
		{"5000", domain.RatingExcellent},
		{"6000", domain.RatingExcellent},
		{"6000.99", domain.RatingExcellent},
		{"6001", domain.RatingUnclassified},
		{"-0.01", domain.RatingUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, bins.Classify(dec(tt.value)))
		})
	}
}

func TestNewBins_MaximumIsExcellent(t *testing.T) {
	for _, max := range []string{"5000", "5000.5", "7500", "123456.78"} {
		t.Run(max, func(t *testing.T) {
			bins, err := NewBins(dec(max))
			require.NoError(t, err)
			assert.Equal(t, domain.RatingExcellent, bins.Classify(dec(max)))
			assert.Len(t, bins.Edges, 5)
		})
	}
}

func TestNewBins_NonMonotonic(t *testing.T) {
	for _, max := range []string{"4999", "3000", "0"} {
		t.Run(max, func(t *testing.T) {
			_, err := NewBins(dec(max))
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrDataFormat))
		})
	}
}

func TestBinsString(t *testing.T) {
	bins, err := NewBins(dec("6000"))
	require.NoError(t, err)
	assert.Equal(t, "[0, 2000) [2000, 3500) [3500, 5000) [5000, 6001)", bins.String())
}

func TestClassify(t *testing.T) {
	table := &domain.Table{Rows: []domain.Row{
		{Month: "Jan", Sales: dec("1000")},
		{Month: "Feb", Sales: dec("2500")},
		{Month: "Mar", Sales: dec("4000")},
		{Month: "Apr", Sales: dec("6000")},
	}}

	require.NoError(t, Classify(table))
	require.True(t, table.Classified())
	assert.Equal(t, []domain.Rating{
		domain.RatingBad,
		domain.RatingAverage,
		domain.RatingGood,
		domain.RatingExcellent,
	}, table.Ratings)
}

func TestClassify_Errors(t *testing.T) {
	err := Classify(&domain.Table{})
	assert.True(t, stderrors.Is(err, errors.ErrEmptyTable))

	small := &domain.Table{Rows: []domain.Row{{Month: "Jan", Sales: dec("1000")}}}
	err = Classify(small)
	assert.True(t, stderrors.Is(err, errors.ErrDataFormat))
	assert.Nil(t, small.Ratings)
}

func TestCountRatings(t *testing.T) {
	counts := CountRatings([]domain.Rating{
		domain.RatingBad,
		domain.RatingBad,
		domain.RatingExcellent,
		domain.RatingUnclassified,
	})
	assert.Equal(t, 2, counts[domain.RatingBad])
	assert.Equal(t, 0, counts[domain.RatingAverage])
	assert.Equal(t, 1, counts[domain.RatingExcellent])
	assert.Equal(t, 1, counts[domain.RatingUnclassified])
}
