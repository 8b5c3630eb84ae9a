package exporter

import (
	"github.com/shopspring/decimal"

	"salescli/internal/config"
)

// formatDecimal formats a value for CSV output. The canonical form keeps every
// significant digit so a written file loads back to the same values.
func formatDecimal(d decimal.Decimal) string {
	return d.String()
}

// FormatCurrency formats an amount for display, e.g. £7000.00
func FormatCurrency(d decimal.Decimal) string {
	return config.CurrencySymbol + d.StringFixed(2)
}
