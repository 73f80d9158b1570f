package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/infrastructure"
)

// Runner executes registered steps sequentially. Each step gets its own
// span and duration observation.
type Runner struct {
	registry  *Registry
	telemetry *infrastructure.OTelProviders
	logger    *slog.Logger
}

// NewRunner creates a runner. telemetry must not be nil; use
// infrastructure.InitializeOTel with Enabled false for no-op telemetry.
func NewRunner(registry *Registry, telemetry *infrastructure.OTelProviders, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registry: registry, telemetry: telemetry, logger: logger}
}

// Run executes every step in order. It stops at the first failure. When a
// step reports apperrors.ErrNoData, the remaining steps that implement
// NoDataHandler get a chance to write their placeholder output, the others
// are skipped, and ErrNoData is returned.
func (r *Runner) Run(ctx context.Context, state *State) error {
	steps := r.registry.List()
	for _, step := range steps {
		state.Steps = append(state.Steps, NewStepState(step.ID(), step.Name()))
	}

	for i, step := range steps {
		st := state.Steps[i]
		if err := ctx.Err(); err != nil {
			st.Skip("canceled")
			return err
		}

		err := r.runStep(ctx, step, st, state)
		if err == nil {
			continue
		}

		if errors.Is(err, apperrors.ErrNoData) {
			state.NoData = true
			r.logger.WarnContext(ctx, "No data to analyze",
				slog.String("step", step.ID()),
				slog.String("reason", err.Error()))
			return r.drainNoData(ctx, steps[i+1:], state.Steps[i+1:], state, err)
		}

		return fmt.Errorf("step %s failed: %w", step.ID(), err)
	}

	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step, st *StepState, state *State) error {
	stageCtx, end := r.telemetry.StartStage(ctx, step.ID())

	st.Start()
	r.logger.InfoContext(stageCtx, "stage_start",
		slog.String("run_id", state.RunID),
		slog.String("step", step.ID()))

	err := step.Execute(stageCtx, state)
	end(err)

	switch {
	case err == nil:
		st.Complete()
		r.logger.InfoContext(stageCtx, "stage_complete",
			slog.String("run_id", state.RunID),
			slog.String("step", step.ID()),
			slog.Duration("duration", st.Duration()))
	case errors.Is(err, apperrors.ErrNoData):
		st.Skip(err.Error())
	default:
		st.Fail(err)
		infrastructure.WithError(r.logger, err).ErrorContext(stageCtx, "stage_error",
			slog.String("run_id", state.RunID),
			slog.String("step", step.ID()))
	}
	return err
}

func (r *Runner) drainNoData(ctx context.Context, steps []Step, states []*StepState, state *State, cause error) error {
	for i, step := range steps {
		handler, ok := step.(NoDataHandler)
		if !ok {
			states[i].Skip("no data")
			continue
		}

		states[i].Start()
		if err := handler.OnNoData(ctx, state); err != nil {
			states[i].Fail(err)
			return fmt.Errorf("step %s failed: %w", step.ID(), err)
		}
		states[i].Complete()
	}
	return cause
}
