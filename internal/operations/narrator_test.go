package operations

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"salescli/pkg/contracts/domain"
)

func TestNarrator(t *testing.T) {
	var buf bytes.Buffer
	n := NewNarrator(&buf)

	table := &domain.Table{
		Rows: []domain.Row{
			{Month: "Jan", Sales: dec("1000"), Expenditure: dec("800")},
			{Month: "Feb", Sales: dec("6000"), Expenditure: dec("900")},
		},
		Ratings: []domain.Rating{domain.RatingBad, domain.RatingUnclassified},
	}

	n.Section("Data Classification")
	n.Table(table)
	n.SalesList(table.SalesValues())
	n.Total(dec("7000"))
	n.Average(dec("583.33"))
	n.Extremes(domain.MonthValue{Month: "Feb", Value: dec("6000")}, domain.MonthValue{Month: "Jan", Value: dec("1000")})
	n.Changes([]decimal.Decimal{dec("10"), dec("-10")})
	n.Ratings(table)
	n.Exported("Summary data", "Summary.csv")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\n# ----- Data Classification ----- #\n"))
	assert.Contains(t, out, "Expenditure")
	assert.Contains(t, out, "Single list of all sales:  [1000, 6000]")
	assert.Contains(t, out, "Total sales across all months: £7000.00")
	assert.Contains(t, out, "The monthly sales average is: £583.33")
	assert.Contains(t, out, "Month with highest sales: Feb | Amount: £6000.00")
	assert.Contains(t, out, "Month with lowest sales: Jan | Amount: £1000.00")
	assert.Contains(t, out, "Monthly Changes %:  [10.00, -10.00]")
	assert.Contains(t, out, "Bad")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "Summary data exported to Summary.csv")
}

func TestNarrator_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNarrator(nil).Total(dec("1"))
	})
}
