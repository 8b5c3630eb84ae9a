package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salescli/internal/config"
	"salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Chart layout
const (
	ChartSheet      = "Sales Data"
	ChartTitle      = "Sales and Expenditure Over Time"
	ChartXAxisTitle = "Month"
	ChartYAxisTitle = "Value (" + config.CurrencySymbol + ")"
	chartAnchor     = "E2"
)

// ChartExporter renders the sales line chart into a workbook
type ChartExporter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewChartExporter creates a chart exporter
func NewChartExporter(paths *config.Paths, logger *slog.Logger) *ChartExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartExporter{paths: paths, logger: logger}
}

// Export writes the data sheet and a line chart of Sales and Expenditure
// against Month to path, replacing any existing workbook.
func (c *ChartExporter) Export(table *domain.Table, path string) error {
	if table.Len() == 0 {
		return errors.NewEmptyTableError("chart")
	}
	if c.paths != nil {
		path = c.paths.Resolve(path)
	}

	f, err := BuildChartWorkbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIOError("failed to create directory", filepath.Dir(path), err)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewIOError("failed to save chart workbook", path, err)
	}

	c.logger.Info("Chart workbook exported",
		slog.String("file_path", path),
		slog.Int("points", table.Len()))
	return nil
}

// BuildChartWorkbook returns an unsaved workbook holding the table and chart
func BuildChartWorkbook(table *domain.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ChartSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Month", "Sales", "Expenditure"}
	if err := f.SetSheetRow(ChartSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := []interface{}{row.Month, row.Sales.InexactFloat64(), row.Expenditure.InexactFloat64()}
		if err := f.SetSheetRow(ChartSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.AddChart(ChartSheet, chartAnchor, lineChart(table.Len())); err != nil {
		f.Close()
		return nil, fmt.Errorf("add chart: %w", err)
	}
	return f, nil
}

func lineChart(points int) *excelize.Chart {
	last := points + 1
	categories := fmt.Sprintf("'%s'!$A$2:$A$%d", ChartSheet, last)
	marker := excelize.ChartMarker{Symbol: "circle", Size: 6}

	return &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", ChartSheet),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", ChartSheet, last),
				Marker:     marker,
			},
			{
				Name:       fmt.Sprintf("'%s'!$C$1", ChartSheet),
				Categories: categories,
				Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", ChartSheet, last),
				Marker:     marker,
			},
		},
		Title:  []excelize.RichTextRun{{Text: ChartTitle}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: ChartXAxisTitle}},
		},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: ChartYAxisTitle}},
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{Width: 720, Height: 360},
	}
}
