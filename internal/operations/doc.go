// Package operations drives a sales report run.
//
// A run is a fixed sequence of steps over one OperationState:
//
//	load -> aggregate -> changes -> classify -> report
//
// Each Step reads what earlier steps stored in the state and adds its own
// result. The Pipeline executes the steps in order on the calling goroutine,
// wraps every step in a tracing span, and stops at the first failure; the
// remaining steps are marked skipped.
//
// Usage:
//
//	svc := &operations.Services{Paths: paths, Logger: logger, Narrator: operations.NewNarrator(os.Stdout)}
//	pipeline, err := operations.NewPipeline(tracer, logger, operations.DefaultSteps(svc)...)
//	state, err := pipeline.Run(ctx)
//
// The Narrator prints the human-readable account of the run; structured logs
// go through slog.
package operations
