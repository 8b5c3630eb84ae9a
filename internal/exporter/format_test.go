package exporter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"zero value", "0", "0"},
		{"integer", "7000", "7000"},
		{"negative integer", "-456", "-456"},
		{"keeps significant digits", "6000.505", "6000.505"},
		{"drops trailing zeros", "123.4500", "123.45"},
		{"rounded average", "583.33", "583.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDecimal(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "£7000.00", FormatCurrency(decimal.NewFromInt(7000)))
	assert.Equal(t, "£583.33", FormatCurrency(decimal.RequireFromString("583.33")))
	assert.Equal(t, "£0.50", FormatCurrency(decimal.RequireFromString("0.5")))
}
