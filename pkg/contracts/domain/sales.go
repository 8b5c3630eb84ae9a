package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Row is one monthly observation as loaded from the input table.
// Rows are kept in file order; "previous month" always means the previous row.
type Row struct {
	Month       string          `json:"month" csv:"Month"`
	Sales       decimal.Decimal `json:"sales" csv:"Sales"`
	Expenditure decimal.Decimal `json:"expenditure" csv:"Expenditure"`
}

// Table is the ordered row sequence plus the derived Rating column.
//
// The row count is fixed once the loader returns. Ratings stays nil until the
// classifier runs and then holds exactly one entry per row.
type Table struct {
	Rows    []Row    `json:"rows"`
	Ratings []Rating `json:"ratings,omitempty"`
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Classified reports whether every row carries a rating.
func (t *Table) Classified() bool {
	return t != nil && t.Ratings != nil && len(t.Ratings) == len(t.Rows)
}

// SalesValues returns the Sales column in row order.
func (t *Table) SalesValues() []decimal.Decimal {
	values := make([]decimal.Decimal, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Sales
	}
	return values
}

// RatingAt returns the rating of row i, or RatingUnclassified when the table
// has not been classified yet.
func (t *Table) RatingAt(i int) Rating {
	if !t.Classified() || i < 0 || i >= len(t.Ratings) {
		return RatingUnclassified
	}
	return t.Ratings[i]
}

// Rating is the qualitative sales bucket assigned by the classifier.
type Rating int

const (
	// RatingUnclassified marks a value outside every bin.
	RatingUnclassified Rating = iota
	RatingBad
	RatingAverage
	RatingGood
	RatingExcellent
)

// Ratings lists the classified buckets in ascending order.
var Ratings = []Rating{RatingBad, RatingAverage, RatingGood, RatingExcellent}

var ratingLabels = map[Rating]string{
	RatingUnclassified: "",
	RatingBad:          "Bad",
	RatingAverage:      "Average",
	RatingGood:         "Good",
	RatingExcellent:    "Excellent",
}

// String returns the label written to reports. Unclassified renders empty,
// the same way a missing category is written to CSV.
func (r Rating) String() string {
	if label, ok := ratingLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// ParseRating converts a report label back into a Rating.
func ParseRating(label string) (Rating, error) {
	for rating, l := range ratingLabels {
		if l == label {
			return rating, nil
		}
	}
	return RatingUnclassified, fmt.Errorf("unknown rating %q", label)
}

// Metric identifies one of the fixed summary rows.
type Metric int

const (
	MetricHighestSales Metric = iota
	MetricLowestSales
	MetricTotalSales
)

// String returns the label used in the summary report.
func (m Metric) String() string {
	switch m {
	case MetricHighestSales:
		return "Highest Sales"
	case MetricLowestSales:
		return "Lowest Sales"
	case MetricTotalSales:
		return "Total Sales"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// SummaryRecord is one row of the summary report. Month is empty for totals.
type SummaryRecord struct {
	Metric Metric          `json:"metric"`
	Month  string          `json:"month,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthValue pairs a month label with a sales value.
type MonthValue struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// Statistics holds every aggregate computed over the Sales column.
type Statistics struct {
	Total   decimal.Decimal   `json:"total"`
	Average decimal.Decimal   `json:"average"`
	Highest MonthValue        `json:"highest"`
	Lowest  MonthValue        `json:"lowest"`
	Changes []decimal.Decimal `json:"changes"`
}
