// Package exporter writes the results of a sales report run to disk.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers, streaming,
// and UTF-8 BOM for Excel compatibility. Existing files are overwritten.
//
// ReportExporter: Writes the classification report (one row per month with its
// rating) and the three-row summary report.
//
// ChartExporter: Renders the Sales and Expenditure line chart into a workbook,
// which OpenViewer can hand to the desktop's default application.
//
// Example usage:
//
//	reports := exporter.NewReportExporter(paths, logger)
//	err := reports.ExportClassification(table, paths.ClassificationCSV)
//
//	summary := exporter.BuildSummary(stats)
//	err = reports.ExportSummary(summary, paths.SummaryCSV)
//
//	err = exporter.NewChartExporter(paths, logger).Export(table, paths.ChartWorkbook)
package exporter
