package operations

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"salescli/internal/exporter"
	"salescli/pkg/contracts/domain"
)

// Narrator prints the human-readable account of a run
type Narrator struct {
	out io.Writer
}

// NewNarrator creates a narrator writing to out. A nil writer discards output.
func NewNarrator(out io.Writer) *Narrator {
	if out == nil {
		out = io.Discard
	}
	return &Narrator{out: out}
}

// Section prints a section banner preceded by a blank line
func (n *Narrator) Section(title string) {
	fmt.Fprintf(n.out, "\n# ----- %s ----- #\n", title)
}

// Table prints the loaded table
func (n *Narrator) Table(table *domain.Table) {
	w := tabwriter.NewWriter(n.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "\tMonth\tSales\tExpenditure\t")
	for i, row := range table.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", i, row.Month, row.Sales, row.Expenditure)
	}
	w.Flush()
}

// SalesList prints the Sales column as a single list
func (n *Narrator) SalesList(sales []decimal.Decimal) {
	fmt.Fprintf(n.out, "Single list of all sales:  %s\n", formatList(sales, decimal.Decimal.String))
}

// Total prints the total sales
func (n *Narrator) Total(total decimal.Decimal) {
	fmt.Fprintf(n.out, "Total sales across all months: %s\n", exporter.FormatCurrency(total))
}

// Average prints the monthly average
func (n *Narrator) Average(average decimal.Decimal) {
	fmt.Fprintf(n.out, "The monthly sales average is: %s\n", exporter.FormatCurrency(average))
}

// Extremes prints the highest and lowest months
func (n *Narrator) Extremes(highest, lowest domain.MonthValue) {
	fmt.Fprintf(n.out, "Month with highest sales: %s | Amount: %s\n", highest.Month, exporter.FormatCurrency(highest.Value))
	fmt.Fprintf(n.out, "Month with lowest sales: %s | Amount: %s\n", lowest.Month, exporter.FormatCurrency(lowest.Value))
}

// Changes prints the month-over-month changes
func (n *Narrator) Changes(changes []decimal.Decimal) {
	fmt.Fprintf(n.out, "Monthly Changes %%:  %s\n", formatList(changes, func(d decimal.Decimal) string {
		return d.StringFixed(2)
	}))
}

// Ratings prints month, sales and rating of every row
func (n *Narrator) Ratings(table *domain.Table) {
	w := tabwriter.NewWriter(n.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "\tMonth\tSales\tRating\t")
	for i, row := range table.Rows {
		rating := table.RatingAt(i).String()
		if rating == "" {
			rating = "NaN"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", i, row.Month, row.Sales, rating)
	}
	w.Flush()
}

// Exported prints where a report was written
func (n *Narrator) Exported(what, path string) {
	fmt.Fprintf(n.out, "%s exported to %s\n", what, path)
}

func formatList(values []decimal.Decimal, format func(decimal.Decimal) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
