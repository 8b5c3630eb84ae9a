package dataprocessing

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Column names of the normalized schema
const (
	ColumnMonth       = "Month"
	ColumnSales       = "Sales"
	ColumnExpenditure = "Expenditure"
)

// requiredColumns is the lookup table from capitalized header to schema
// field. Headers that are not listed here are ignored.
var requiredColumns = []string{ColumnMonth, ColumnSales, ColumnExpenditure}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Capitalize upper-cases the first character and lower-cases the rest,
// e.g. "sALES" -> "Sales" and "new year" -> "New year".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upperCaser.String(s[:size]) + lowerCaser.String(s[size:])
}

// Loader reads the monthly sales table
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads the delimited file at path into a Table
func (l *Loader) LoadFile(path string) (*domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("failed to read input file", path, err)
	}

	l.logger.Info("Loading sales table",
		slog.String("file_path", path),
		slog.Int("bytes", len(data)))

	table, err := l.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return table, nil
}

// Load reads a delimited table with a header row from r. A leading UTF-8
// byte order mark is accepted and dropped.
func (l *Loader) Load(r io.Reader) (*domain.Table, error) {
	content, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrTypeIO, "failed to read table", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.NewDataFormatError("no columns to parse: input has no header row", nil)
	}

	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		// A header is present, so this is a header without data rows
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return nil, errors.NewEmptyTableError("load")
		}
		return nil, errors.NewDataFormatError("failed to parse table", df.Err)
	}

	columns, err := mapColumns(df.Names())
	if err != nil {
		return nil, err
	}

	months := df.Col(columns[ColumnMonth]).Records()
	sales := df.Col(columns[ColumnSales]).Records()
	expenditure := df.Col(columns[ColumnExpenditure]).Records()

	table := &domain.Table{Rows: make([]domain.Row, df.Nrow())}
	for i := range table.Rows {
		salesValue, err := parseAmount(sales[i], ColumnSales, i)
		if err != nil {
			return nil, err
		}
		expenditureValue, err := parseAmount(expenditure[i], ColumnExpenditure, i)
		if err != nil {
			return nil, err
		}

		table.Rows[i] = domain.Row{
			Month:       Capitalize(strings.TrimSpace(months[i])),
			Sales:       salesValue,
			Expenditure: expenditureValue,
		}
	}

	l.logger.Info("Sales table loaded",
		slog.Int("row_count", table.Len()),
		slog.Int("column_count", df.Ncol()),
		slog.Any("columns", df.Names()))

	return table, nil
}

// mapColumns resolves every required schema column to the source header
// that names it, matching case-insensitively.
func mapColumns(headers []string) (map[string]string, error) {
	found := make(map[string]string, len(requiredColumns))
	for _, header := range headers {
		normalized := Capitalize(strings.TrimSpace(header))
		if _, seen := found[normalized]; seen {
			continue
		}
		found[normalized] = header
	}

	columns := make(map[string]string, len(requiredColumns))
	for _, column := range requiredColumns {
		source, ok := found[column]
		if !ok {
			return nil, errors.NewMissingColumnError(column)
		}
		columns[column] = source
	}
	return columns, nil
}

func parseAmount(raw, column string, row int) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, errors.NewDataFormatError("non-numeric value", err).
			WithContext("column", column).
			WithContext("row", row+1).
			WithContext("value", raw)
	}
	return value, nil
}
