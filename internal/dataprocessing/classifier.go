package dataprocessing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salescli/internal/config"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

var fixedEdges = []decimal.Decimal{
	decimal.NewFromInt(config.BinBadFloor),
	decimal.NewFromInt(config.BinAverageFloor),
	decimal.NewFromInt(config.BinGoodFloor),
	decimal.NewFromInt(config.BinExcellentFloor),
}

// Bins are the left-closed, right-open sales buckets. Edges[i] is the floor of
// domain.Ratings[i]; the last edge is the exclusive ceiling of Excellent.
type Bins struct {
	Edges []decimal.Decimal
}

// NewBins builds the buckets for a table whose largest sales value is
// maxSales. The top edge is maxSales+1 so the maximum itself falls in
// Excellent.
func NewBins(maxSales decimal.Decimal) (Bins, error) {
	ceiling := maxSales.Add(decimal.NewFromInt(1))

	edges := make([]decimal.Decimal, 0, len(fixedEdges)+1)
	edges = append(edges, fixedEdges...)
	edges = append(edges, ceiling)

	for i := 1; i < len(edges); i++ {
		if !edges[i].GreaterThan(edges[i-1]) {
			return Bins{}, errors.NewDataFormatError("bin edges must increase monotonically", nil).
				WithContext("edges", formatEdges(edges))
		}
	}
	return Bins{Edges: edges}, nil
}

// Classify returns the bucket containing v. Values below the first edge or at
// or above the ceiling are unclassified.
func (b Bins) Classify(v decimal.Decimal) domain.Rating {
	for i := 0; i+1 < len(b.Edges) && i < len(domain.Ratings); i++ {
		if v.GreaterThanOrEqual(b.Edges[i]) && v.LessThan(b.Edges[i+1]) {
			return domain.Ratings[i]
		}
	}
	return domain.RatingUnclassified
}

// Classify attaches a rating to every row of table.
func Classify(table *domain.Table) error {
	if table.Len() == 0 {
		return errors.NewEmptyTableError("classify")
	}

	highest, err := ArgMax(table.Rows)
	if err != nil {
		return err
	}
	bins, err := NewBins(highest.Value)
	if err != nil {
		return err
	}

	ratings := make([]domain.Rating, len(table.Rows))
	for i, row := range table.Rows {
		ratings[i] = bins.Classify(row.Sales)
	}
	table.Ratings = ratings
	return nil
}

// CountRatings returns the number of rows per rating
func CountRatings(ratings []domain.Rating) map[domain.Rating]int {
	counts := make(map[domain.Rating]int, len(domain.Ratings)+1)
	for _, r := range ratings {
		counts[r]++
	}
	return counts
}

func formatEdges(edges []decimal.Decimal) string {
	s := "["
	for i, e := range edges {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// String renders the bins as interval notation, e.g. [0, 2000) [2000, 3500).
func (b Bins) String() string {
	out := ""
	for i := 0; i+1 < len(b.Edges); i++ {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("[%s, %s)", b.Edges[i], b.Edges[i+1])
	}
	return out
}
