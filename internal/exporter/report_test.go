package exporter

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTable() *domain.Table {
	return &domain.Table{
		Rows: []domain.Row{
			{Month: "Jan", Sales: dec("1000"), Expenditure: dec("800")},
			{Month: "Feb", Sales: dec("6000.75"), Expenditure: dec("900.10")},
			{Month: "Mar", Sales: dec("2500"), Expenditure: dec("0.001")},
		},
		Ratings: []domain.Rating{domain.RatingBad, domain.RatingExcellent, domain.RatingAverage},
	}
}

// readReport reads a BOM-prefixed CSV report
func readReport(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(content) >= 3 && string(content[:3]) == string(utf8BOM), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(content[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestBuildSummary(t *testing.T) {
	stats := domain.Statistics{
		Total:   dec("7000"),
		Average: dec("583.33"),
		Highest: domain.MonthValue{Month: "Feb", Value: dec("6000")},
		Lowest:  domain.MonthValue{Month: "Jan", Value: dec("1000")},
	}

	records := BuildSummary(stats)
	require.Len(t, records, 3)

	assert.Equal(t, domain.MetricHighestSales, records[0].Metric)
	assert.Equal(t, "Feb", records[0].Month)
	assert.True(t, dec("6000").Equal(records[0].Amount))

	assert.Equal(t, domain.MetricLowestSales, records[1].Metric)
	assert.Equal(t, "Jan", records[1].Month)
	assert.True(t, dec("1000").Equal(records[1].Amount))

	assert.Equal(t, domain.MetricTotalSales, records[2].Metric)
	assert.Empty(t, records[2].Month)
	assert.True(t, dec("7000").Equal(records[2].Amount))
}

func TestExportSummary(t *testing.T) {
	tempDir := t.TempDir()
	exporter := NewReportExporter(config.NewPaths(tempDir), quietLogger())

	records := []domain.SummaryRecord{
		{Metric: domain.MetricHighestSales, Month: "Feb", Amount: dec("6000")},
		{Metric: domain.MetricLowestSales, Month: "Jan", Amount: dec("1000")},
		{Metric: domain.MetricTotalSales, Amount: dec("7000")},
	}
	require.NoError(t, exporter.ExportSummary(records, config.SummaryFileName))

	rows := readReport(t, filepath.Join(tempDir, config.SummaryFileName))
	assert.Equal(t, [][]string{
		{"Metric", "Month", "Amount (£)"},
		{"Highest Sales", "Feb", "6000"},
		{"Lowest Sales", "Jan", "1000"},
		{"Total Sales", "", "7000"},
	}, rows)
}

func TestExportClassification(t *testing.T) {
	tempDir := t.TempDir()
	exporter := NewReportExporter(config.NewPaths(tempDir), quietLogger())

	require.NoError(t, exporter.ExportClassification(sampleTable(), config.ClassificationFileName))

	rows := readReport(t, filepath.Join(tempDir, config.ClassificationFileName))
	assert.Equal(t, [][]string{
		{"Month", "Sales", "Expenditure", "Rating"},
		{"Jan", "1000", "800", "Bad"},
		{"Feb", "6000.75", "900.1", "Excellent"},
		{"Mar", "2500", "0.001", "Average"},
	}, rows)
}

func TestExportClassification_UnclassifiedRowIsBlank(t *testing.T) {
	tempDir := t.TempDir()
	exporter := NewReportExporter(config.NewPaths(tempDir), quietLogger())

	table := sampleTable()
	table.Ratings[2] = domain.RatingUnclassified
	require.NoError(t, exporter.ExportClassification(table, "out.csv"))

	rows := readReport(t, filepath.Join(tempDir, "out.csv"))
	assert.Equal(t, "", rows[3][3])
}

func TestExportClassification_Errors(t *testing.T) {
	exporter := NewReportExporter(config.NewPaths(t.TempDir()), quietLogger())

	err := exporter.ExportClassification(&domain.Table{}, "out.csv")
	assert.True(t, stderrors.Is(err, errors.ErrEmptyTable))

	table := sampleTable()
	table.Ratings = nil
	err = exporter.ExportClassification(table, "out.csv")
	assert.True(t, stderrors.Is(err, errors.ErrDataFormat))
}

func TestExportClassification_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	exporter := NewReportExporter(config.NewPaths(tempDir), quietLogger())
	original := sampleTable()

	require.NoError(t, exporter.ExportClassification(original, config.ClassificationFileName))

	loaded, err := dataprocessing.NewLoader(quietLogger()).LoadFile(filepath.Join(tempDir, config.ClassificationFileName))
	require.NoError(t, err)
	require.Equal(t, original.Len(), loaded.Len())

	for i, row := range original.Rows {
		assert.Equal(t, row.Month, loaded.Rows[i].Month)
		assert.True(t, row.Sales.Equal(loaded.Rows[i].Sales), "row %d sales", i)
		assert.True(t, row.Expenditure.Equal(loaded.Rows[i].Expenditure), "row %d expenditure", i)
	}
}
