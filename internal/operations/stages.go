package operations

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"salescli/internal/config"
	"salescli/internal/dataprocessing"
	"salescli/internal/exporter"
	"salescli/internal/infrastructure"
	"salescli/pkg/contracts/domain"
)

// Step IDs
const (
	StepIDLoad      = "load"
	StepIDAggregate = "aggregate"
	StepIDChanges   = "changes"
	StepIDClassify  = "classify"
	StepIDReport    = "report"
)

// Services are the collaborators shared by the report steps
type Services struct {
	Paths     *config.Paths
	Logger    *slog.Logger
	Narrator  *Narrator
	Metrics   *infrastructure.ReportMetrics
	ShowChart bool
	// OpenViewer displays the chart workbook; defaults to exporter.OpenViewer
	OpenViewer func(path string) error
}

func (s *Services) logger(component string) *slog.Logger {
	return infrastructure.WithComponent(s.Logger, component)
}

func (s *Services) narrator() *Narrator {
	if s.Narrator == nil {
		return NewNarrator(nil)
	}
	return s.Narrator
}

// DefaultSteps returns the report steps in run order
func DefaultSteps(svc *Services) []Step {
	return []Step{
		NewLoadStep(svc),
		NewAggregateStep(svc),
		NewChangesStep(svc),
		NewClassifyStep(svc),
		NewReportStep(svc),
	}
}

// LoadStep reads the input table
type LoadStep struct {
	BaseStage
	svc *Services
}

// NewLoadStep creates the load step
func NewLoadStep(svc *Services) *LoadStep {
	return &LoadStep{BaseStage: NewBaseStage(StepIDLoad, "Load sales data"), svc: svc}
}

// Execute implements Step
func (s *LoadStep) Execute(ctx context.Context, state *OperationState) error {
	loader := dataprocessing.NewLoader(s.svc.logger("loader"))
	table, err := loader.LoadFile(s.svc.Paths.InputCSV)
	if err != nil {
		return err
	}
	state.SetTable(table)
	recordMetadata(state, s.ID(), "rows", table.Len())

	infrastructure.SetSpanAttributes(ctx, attribute.Int("table.rows", table.Len()))
	if s.svc.Metrics != nil {
		s.svc.Metrics.RowsLoaded.Record(ctx, int64(table.Len()))
	}

	n := s.svc.narrator()
	n.Section("Read the data from the spreadsheet")
	n.Table(table)
	n.Section("Collect sales from each month into a single list")
	n.SalesList(table.SalesValues())
	return nil
}

// AggregateStep computes total, average and the extreme months
type AggregateStep struct {
	BaseStage
	svc *Services
}

// NewAggregateStep creates the aggregate step
func NewAggregateStep(svc *Services) *AggregateStep {
	return &AggregateStep{BaseStage: NewBaseStage(StepIDAggregate, "Aggregate sales"), svc: svc}
}

// Validate implements Step
func (s *AggregateStep) Validate(state *OperationState) error {
	return requireTable(s.ID(), state)
}

// Execute implements Step
func (s *AggregateStep) Execute(ctx context.Context, state *OperationState) error {
	rows := state.Table().Rows
	logger := s.svc.logger("aggregator")

	aggregates, err := dataprocessing.Aggregate(rows)
	if err != nil {
		return err
	}
	if len(rows) != config.MonthsPerYear {
		logger.WarnContext(ctx, "Average divides by a fixed twelve months",
			slog.Int("row_count", len(rows)),
			slog.Int("divisor", config.MonthsPerYear))
	}
	total, average := aggregates.Total, aggregates.Average
	highest, lowest := aggregates.Highest, aggregates.Lowest

	state.UpdateStatistics(func(stats *domain.Statistics) {
		stats.Total = total
		stats.Average = average
		stats.Highest = highest
		stats.Lowest = lowest
	})

	logger.InfoContext(ctx, "Sales aggregated",
		slog.String("total", total.String()),
		slog.String("average", average.String()),
		slog.String("highest_month", highest.Month),
		slog.String("lowest_month", lowest.Month))
	if s.svc.Metrics != nil {
		s.svc.Metrics.TotalSales.Record(ctx, total.InexactFloat64())
		s.svc.Metrics.AverageSales.Record(ctx, average.InexactFloat64())
	}

	n := s.svc.narrator()
	n.Section("Output the total sales across all months")
	n.Total(total)
	n.Section("Arithmetic Calculations")
	n.Average(average)
	n.Extremes(highest, lowest)
	return nil
}

// ChangesStep computes month-over-month percentage changes
type ChangesStep struct {
	BaseStage
	svc *Services
}

// NewChangesStep creates the changes step
func NewChangesStep(svc *Services) *ChangesStep {
	return &ChangesStep{BaseStage: NewBaseStage(StepIDChanges, "Compute monthly changes"), svc: svc}
}

// Validate implements Step
func (s *ChangesStep) Validate(state *OperationState) error {
	return requireTable(s.ID(), state)
}

// Execute implements Step
func (s *ChangesStep) Execute(ctx context.Context, state *OperationState) error {
	changes, err := dataprocessing.PercentChanges(state.Table().SalesValues())
	if err != nil {
		return err
	}
	state.UpdateStatistics(func(stats *domain.Statistics) {
		stats.Changes = changes
	})

	infrastructure.SetSpanAttributes(ctx, attribute.Int("changes.count", len(changes)))
	s.svc.narrator().Changes(changes)
	return nil
}

// ClassifyStep attaches a rating to every row
type ClassifyStep struct {
	BaseStage
	svc *Services
}

// NewClassifyStep creates the classify step
func NewClassifyStep(svc *Services) *ClassifyStep {
	return &ClassifyStep{BaseStage: NewBaseStage(StepIDClassify, "Classify sales"), svc: svc}
}

// Validate implements Step
func (s *ClassifyStep) Validate(state *OperationState) error {
	return requireTable(s.ID(), state)
}

// Execute implements Step
func (s *ClassifyStep) Execute(ctx context.Context, state *OperationState) error {
	table := state.Table()
	if err := dataprocessing.Classify(table); err != nil {
		return err
	}

	counts := dataprocessing.CountRatings(table.Ratings)
	logger := s.svc.logger("classifier")
	for _, rating := range domain.Ratings {
		if s.svc.Metrics != nil {
			s.svc.Metrics.RatingRows.Record(ctx, int64(counts[rating]),
				metric.WithAttributes(attribute.String("rating", rating.String())))
		}
	}
	recordMetadata(state, s.ID(), "unclassified", counts[domain.RatingUnclassified])
	if unclassified := counts[domain.RatingUnclassified]; unclassified > 0 {
		logger.WarnContext(ctx, "Rows outside every rating bin",
			slog.Int("count", unclassified))
	}
	logger.InfoContext(ctx, "Sales classified",
		slog.Int("bad", counts[domain.RatingBad]),
		slog.Int("average", counts[domain.RatingAverage]),
		slog.Int("good", counts[domain.RatingGood]),
		slog.Int("excellent", counts[domain.RatingExcellent]))

	n := s.svc.narrator()
	n.Section("Data Classification")
	n.Ratings(table)
	return nil
}

// ReportStep renders the chart and writes both CSV reports
type ReportStep struct {
	BaseStage
	svc *Services
}

// NewReportStep creates the report step
func NewReportStep(svc *Services) *ReportStep {
	return &ReportStep{BaseStage: NewBaseStage(StepIDReport, "Export reports"), svc: svc}
}

// Validate implements Step
func (s *ReportStep) Validate(state *OperationState) error {
	if err := requireTable(s.ID(), state); err != nil {
		return err
	}
	if !state.Table().Classified() {
		return NewValidationError(s.ID(), "table has not been classified")
	}
	return nil
}

// Execute implements Step
func (s *ReportStep) Execute(ctx context.Context, state *OperationState) error {
	paths := s.svc.Paths
	logger := s.svc.logger("exporter")
	table := state.Table()

	chart := exporter.NewChartExporter(paths, logger)
	if err := chart.Export(table, paths.ChartWorkbook); err != nil {
		return err
	}
	state.AddOutput(paths.ChartWorkbook)
	if s.svc.ShowChart {
		open := s.svc.OpenViewer
		if open == nil {
			open = exporter.OpenViewer
		}
		if err := open(paths.ChartWorkbook); err != nil {
			// The reports do not depend on the viewer
			logger.WarnContext(ctx, "Could not open chart viewer",
				slog.String("file_path", paths.ChartWorkbook),
				slog.String("error", err.Error()))
		}
	}

	summary := exporter.BuildSummary(state.Statistics())
	state.SetSummary(summary)

	reports := exporter.NewReportExporter(paths, logger)
	if err := reports.ExportSummary(summary, paths.SummaryCSV); err != nil {
		return err
	}
	state.AddOutput(paths.SummaryCSV)

	if err := reports.ExportClassification(table, paths.ClassificationCSV); err != nil {
		return err
	}
	state.AddOutput(paths.ClassificationCSV)

	infrastructure.SetSpanAttributes(ctx, attribute.StringSlice("report.outputs", state.Outputs()))
	recordMetadata(state, s.ID(), "outputs", len(state.Outputs()))

	n := s.svc.narrator()
	n.Exported("Summary data", config.SummaryFileName)
	n.Exported("Classification data", config.ClassificationFileName)
	n.Exported("Chart", config.ChartWorkbookFileName)
	return nil
}

// recordMetadata attaches a result detail to the step's state, if registered
func recordMetadata(state *OperationState, stepID, key string, value interface{}) {
	if stage := state.GetStage(stepID); stage != nil {
		stage.SetMetadata(key, value)
	}
}

func requireTable(stepID string, state *OperationState) error {
	if state.Table() == nil {
		return NewValidationError(stepID, "no table loaded")
	}
	return nil
}
