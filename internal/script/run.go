package script

import (
	"context"
	"fmt"

	"github.com/dshills/strand/internal/engine"
	"github.com/dshills/strand/internal/logging"
)

// Result summarizes a run.
type Result struct {
	// Applied counts the steps that took effect.
	Applied int
	// NoEffect counts undo/redo with nothing to do, failed strict jumps
	// and searches without a match.
	NoEffect int
}

// Runner applies steps to an engine.
type Runner struct {
	engine *engine.Engine
	logger *logging.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for step tracing.
func WithLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner for e.
func NewRunner(e *engine.Engine, opts ...RunnerOption) *Runner {
	r := &Runner{engine: e, logger: logging.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")
	return r
}

// Run applies steps in order. It stops at the first step that fails or
// when ctx is done; the result counts the steps run before that.
func (r *Runner) Run(ctx context.Context, steps []Step) (Result, error) {
	var res Result
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ok, err := r.runStep(step)
		if err != nil {
			return res, &StepError{Index: i, Line: step.Line, Err: err}
		}
		if ok {
			res.Applied++
			r.logger.Debug("step %d: %s", i, step)
		} else {
			res.NoEffect++
			r.logger.Debug("step %d had no effect: %s", i, step)
		}
	}
	return res, nil
}

func (r *Runner) runStep(step Step) (bool, error) {
	switch step.Kind {
	case KindOp:
		return r.engine.Apply(step.Op)
	case KindJump:
		return r.engine.Jump(step.Position, step.Snap), nil
	case KindSearch:
		if step.Backward {
			return r.engine.SelectPrevMatch(step.Pattern, step.AddCaret)
		}
		return r.engine.SelectNextMatch(step.Pattern, step.AddCaret)
	default:
		return false, fmt.Errorf("script: unknown step kind %d", step.Kind)
	}
}
