package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"salescli/internal/config"
	"salescli/internal/exporter"
	"salescli/internal/infrastructure"
	"salescli/internal/operations"
	"salescli/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, paths, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
}

// run performs one report run over the files under paths, narrating to out
func run(ctx context.Context, cfg *config.Config, paths *config.Paths, out io.Writer) error {
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	cfg.Logging.FilePath = paths.Resolve(cfg.Logging.FilePath)
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Starting sales report",
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("trace_exporter", cfg.Telemetry.TraceExporter),
		slog.Bool("show_chart", cfg.Report.ShowChart))
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, paths, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	tracer, err := operations.NewOperationTracer(providers)
	if err != nil {
		return err
	}

	svc := &operations.Services{
		Paths:      paths,
		Logger:     logger,
		Narrator:   operations.NewNarrator(out),
		Metrics:    tracer.Metrics(),
		ShowChart:  cfg.Report.ShowChart,
		OpenViewer: exporter.OpenViewer,
	}

	pipeline, err := operations.NewPipeline(tracer, logger, operations.DefaultSteps(svc)...)
	if err != nil {
		return err
	}

	state, err := pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Sales report failed",
			slog.String("step", operations.FailedStep(err)),
			slog.String("error_type", string(operations.GetErrorType(err))),
			slog.Int("completed_steps", len(state.GetCompletedStages())),
			slog.String("error", err.Error()))
		return err
	}

	logger.InfoContext(ctx, "Sales report completed",
		slog.String("run_id", state.ID),
		slog.Duration("duration", state.Duration()),
		slog.Int("completed_steps", len(state.GetCompletedStages())),
		slog.Int("summary_records", len(state.Summary())),
		slog.Any("outputs", state.Outputs()))
	return nil
}
