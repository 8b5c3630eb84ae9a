package operations

import (
	"context"
	"fmt"
	"log/slog"

	"salescli/internal/infrastructure"
)

// Pipeline runs the report steps one after another over a shared state
type Pipeline struct {
	steps  []Step
	tracer *OperationTracer
	logger *slog.Logger
}

// NewPipeline creates a pipeline. A nil tracer disables span recording.
func NewPipeline(tracer *OperationTracer, logger *slog.Logger, steps ...Step) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		var err error
		if tracer, err = NewOperationTracer(nil); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step == nil {
			return nil, fmt.Errorf("step cannot be nil")
		}
		if seen[step.ID()] {
			return nil, fmt.Errorf("step %s already registered", step.ID())
		}
		seen[step.ID()] = true
	}

	return &Pipeline{
		steps:  steps,
		tracer: tracer,
		logger: infrastructure.WithComponent(logger, "pipeline"),
	}, nil
}

// Run executes every step in order and stops at the first failure. Steps after
// a failure are marked skipped. The returned state is never nil.
func (p *Pipeline) Run(ctx context.Context) (*OperationState, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	state := NewOperationState(infrastructure.GetTraceID(ctx))

	for _, step := range p.steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := p.tracer.TraceOperationExecution(ctx, state.ID, len(p.steps))
	defer span.End()

	state.Start()
	p.logOperationStart(ctx, state.ID)

	var runErr error
	for i, step := range p.steps {
		if runErr != nil {
			state.GetStage(step.ID()).Skip(fmt.Sprintf("previous step %s failed", FailedStep(runErr)))
			continue
		}
		runErr = p.executeStage(ctx, state, step, i+1)
	}

	if runErr != nil {
		state.Fail(runErr)
	} else {
		state.Complete()
	}
	p.tracer.RecordOperationCompletion(span, state.Duration(), runErr)
	p.logOperationComplete(ctx, state.ID, state.Duration(), state.Status)

	return state, runErr
}

func (p *Pipeline) executeStage(ctx context.Context, state *OperationState, step Step, number int) error {
	stepState := state.GetStage(step.ID())

	ctx, span := p.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	defer span.End()

	stepState.Start()
	p.logStageStart(ctx, state.ID, step.ID(), number)

	err := step.Validate(state)
	if err == nil {
		if err = step.Execute(ctx, state); err != nil {
			err = NewExecutionError(step.ID(), err)
		}
	}

	if err != nil {
		stepState.Fail(err)
		p.tracer.RecordStageCompletion(ctx, span, step.ID(), stepState.Duration(), err)
		p.logStageError(ctx, state.ID, step.ID(), err)
		return err
	}

	stepState.Complete()
	p.tracer.RecordStageCompletion(ctx, span, step.ID(), stepState.Duration(), nil)
	p.logStageComplete(ctx, state.ID, step.ID(), stepState.Duration(), stepState.GetMetadata())
	return nil
}
