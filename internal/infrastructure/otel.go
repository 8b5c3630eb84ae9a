package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"salescli/internal/config"
)

const (
	ServiceName = "salesreport"
	MeterName   = "salescli"
)

// OTelProviders holds the OpenTelemetry providers of one run.
// Tracer and Meter are always usable; they are no-ops when the matching
// exporter is disabled.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *promclient.Registry
	Logger         *slog.Logger

	metricsFile string
	traceFile   *os.File
}

// InitializeOTel sets up tracing and metrics for a report run. Relative
// file names in cfg are resolved against paths.
func InitializeOTel(cfg config.TelemetryConfig, paths *config.Paths, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	providers := &OTelProviders{
		Tracer: otel.Tracer(MeterName),
		Meter:  otel.Meter(MeterName),
		Logger: logger,
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := providers.initializeTracing(ctx, cfg, paths, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := providers.initializeMetrics(ctx, paths.Resolve(cfg.MetricsFile), res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return providers, nil
}

// initializeTracing sets up OpenTelemetry tracing
func (p *OTelProviders) initializeTracing(ctx context.Context, cfg config.TelemetryConfig, paths *config.Paths, res *resource.Resource) error {
	switch cfg.TraceExporter {
	case "none", "":
		return nil
	case "stdout":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	path := paths.Resolve(cfg.TraceFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	p.traceFile = file
	p.TracerProvider = tp
	p.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))

	p.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.String("trace_file", path))

	return nil
}

// initializeMetrics sets up an OpenTelemetry meter backed by a private
// Prometheus registry that is dumped to a text file on shutdown.
func (p *OTelProviders) initializeMetrics(ctx context.Context, path string, res *resource.Resource) error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	p.Registry = registry
	p.MeterProvider = mp
	p.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
	p.metricsFile = path

	p.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", "prometheus"),
		slog.String("metrics_file", path))

	return nil
}

// WriteMetrics writes the current registry contents in Prometheus text
// format. It is a no-op when metrics are disabled.
func (p *OTelProviders) WriteMetrics() error {
	if p.Registry == nil || p.metricsFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.metricsFile), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := promclient.WriteToTextfile(p.metricsFile, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// Shutdown flushes pending spans, writes the metrics file and releases
// the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if err := p.WriteMetrics(); err != nil {
		errs = append(errs, err)
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
		p.traceFile = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

// ReportMetrics holds the instruments recorded by a report run
type ReportMetrics struct {
	RowsLoaded   metric.Int64Gauge
	TotalSales   metric.Float64Gauge
	AverageSales metric.Float64Gauge
	RatingRows   metric.Int64Gauge
	StepDuration metric.Float64Histogram
}

// CreateReportMetrics creates the report instruments on meter
func CreateReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	rowsLoaded, err := meter.Int64Gauge(
		"sales_report_rows_loaded",
		metric.WithDescription("Rows read from the input table"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rows_loaded gauge: %w", err)
	}

	totalSales, err := meter.Float64Gauge(
		"sales_report_total_sales",
		metric.WithDescription("Sum of the Sales column"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create total_sales gauge: %w", err)
	}

	averageSales, err := meter.Float64Gauge(
		"sales_report_average_sales",
		metric.WithDescription("Monthly sales average"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create average_sales gauge: %w", err)
	}

	ratingRows, err := meter.Int64Gauge(
		"sales_report_rating_rows",
		metric.WithDescription("Rows per rating bucket"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rating_rows gauge: %w", err)
	}

	stepDuration, err := meter.Float64Histogram(
		"sales_report_step_duration_seconds",
		metric.WithDescription("Duration of each pipeline step"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create step_duration histogram: %w", err)
	}

	return &ReportMetrics{
		RowsLoaded:   rowsLoaded,
		TotalSales:   totalSales,
		AverageSales: averageSales,
		RatingRows:   ratingRows,
		StepDuration: stepDuration,
	}, nil
}

// TraceIDFromContext extracts the span trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attrs...)
}
