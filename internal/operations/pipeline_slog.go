package operations

import (
	"context"
	"log/slog"
	"time"

	"salescli/internal/infrastructure"
)

// logOperationStart logs the start of a run
func (p *Pipeline) logOperationStart(ctx context.Context, operationID string) {
	attrs := []any{
		slog.String("operation_id", operationID),
		slog.Int("step_count", len(p.steps)),
	}
	if spanTraceID := infrastructure.TraceIDFromContext(ctx); spanTraceID != "" {
		attrs = append(attrs, slog.String("span_trace_id", spanTraceID))
	}
	p.logger.InfoContext(ctx, "operation_start", attrs...)
}

// logOperationComplete logs the completion of a run
func (p *Pipeline) logOperationComplete(ctx context.Context, operationID string, duration time.Duration, status OperationStatusValue) {
	p.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", operationID),
		slog.String("status", string(status)),
		slog.Duration("duration", duration))
}

// logStageStart logs the start of a Step execution
func (p *Pipeline) logStageStart(ctx context.Context, operationID, stageID string, number int) {
	p.logger.InfoContext(ctx, "stage_start",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.Int("stage_number", number),
		slog.Int("total_stages", len(p.steps)))
}

// logStageComplete logs the completion of a Step execution
func (p *Pipeline) logStageComplete(ctx context.Context, operationID, stageID string, duration time.Duration, metadata map[string]interface{}) {
	attrs := []any{
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.Duration("duration", duration),
	}
	if len(metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", metadata))
	}
	p.logger.InfoContext(ctx, "stage_complete", attrs...)
}

// logStageError logs a Step error
func (p *Pipeline) logStageError(ctx context.Context, operationID, stageID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	p.logger.ErrorContext(ctx, "stage_error",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.String("error", errorMsg))
}
