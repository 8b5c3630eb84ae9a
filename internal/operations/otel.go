package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"salescli/internal/infrastructure"
)

const (
	TracerName = "salescli.operation"
)

// OperationTracer provides OpenTelemetry instrumentation for report runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.ReportMetrics
}

// NewOperationTracer creates a new operation tracer. Nil providers fall back
// to the global (no-op unless configured) tracer and meter.
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	tracer := otel.Tracer(TracerName)
	meter := otel.Meter(TracerName)
	if providers != nil {
		if providers.Tracer != nil {
			tracer = providers.Tracer
		}
		if providers.Meter != nil {
			meter = providers.Meter
		}
	}

	metrics, err := infrastructure.CreateReportMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create report metrics: %w", err)
	}

	return &OperationTracer{tracer: tracer, metrics: metrics}, nil
}

// Metrics returns the report instruments
func (pt *OperationTracer) Metrics() *infrastructure.ReportMetrics {
	return pt.metrics
}

// TraceOperationExecution creates a span for the entire run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, stepCount int) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.Int("operation.step_count", stepCount),
		),
	)
}

// TraceStageExecution creates a span for individual Step execution
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stageID string) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("operation.step.%s", stageID)
	return pt.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stageID),
		),
	)
}

// RecordStageCompletion records Step duration and outcome on the span and
// the step duration histogram
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stageID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)

	pt.metrics.StepDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("step", stageID),
			attribute.String("status", status),
		),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "step completed successfully")
}

// RecordOperationCompletion sets the final run status on the span
func (pt *OperationTracer) RecordOperationCompletion(span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("operation.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "operation completed successfully")
}
