package exporter

import (
	"log/slog"

	"salescli/internal/config"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Report headers
var (
	ClassificationHeaders = []string{"Month", "Sales", "Expenditure", "Rating"}
	SummaryHeaders        = []string{"Metric", "Month", "Amount (" + config.CurrencySymbol + ")"}
)

// BuildSummary returns the three summary records in report order.
func BuildSummary(stats domain.Statistics) []domain.SummaryRecord {
	return []domain.SummaryRecord{
		{Metric: domain.MetricHighestSales, Month: stats.Highest.Month, Amount: stats.Highest.Value},
		{Metric: domain.MetricLowestSales, Month: stats.Lowest.Month, Amount: stats.Lowest.Value},
		{Metric: domain.MetricTotalSales, Amount: stats.Total},
	}
}

// ReportExporter writes the classification and summary reports
type ReportExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates a report exporter rooted at paths
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		writer: NewCSVWriter(paths, logger),
		logger: logger,
	}
}

// ExportClassification writes one row per table row with its rating.
// The table must already be classified.
func (e *ReportExporter) ExportClassification(table *domain.Table, path string) error {
	if table.Len() == 0 {
		return errors.NewEmptyTableError("export classification")
	}
	if !table.Classified() {
		return errors.NewDataFormatError("table has not been classified", nil)
	}

	stream, err := e.writer.CreateStreamWriter(path, ClassificationHeaders)
	if err != nil {
		return err
	}

	for i, row := range table.Rows {
		record := []string{
			row.Month,
			formatDecimal(row.Sales),
			formatDecimal(row.Expenditure),
			table.RatingAt(i).String(),
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return err
		}
	}

	if err := stream.Close(); err != nil {
		return err
	}

	e.logger.Info("Classification report exported",
		slog.String("file_path", path),
		slog.Int("rows", stream.Count()))
	return nil
}

// ExportSummary writes the summary records
func (e *ReportExporter) ExportSummary(records []domain.SummaryRecord, path string) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Metric.String(), r.Month, formatDecimal(r.Amount)})
	}

	if err := e.writer.WriteSimpleCSV(path, SummaryHeaders, rows); err != nil {
		return err
	}

	e.logger.Info("Summary report exported",
		slog.String("file_path", path),
		slog.Int("rows", len(rows)))
	return nil
}
