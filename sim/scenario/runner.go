package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

// Step actions reported in StepResult.Action.
const (
	ActionAllocate = "allocate"
	ActionFree     = "free"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Step     int               `json:"step"` // 1-based
	Action   string            `json:"action"`
	Strategy string            `json:"strategy,omitempty"`
	Records  []alloc.Record    `json:"records,omitempty"`
	Freed    []store.ProcessID `json:"freed,omitempty"`
	Rejected int               `json:"rejected,omitempty"` // requests of the batch left unplaced
	Err      error             `json:"-"`
	Error    string            `json:"error,omitempty"`
}

// Result is the outcome of a whole run.
type Result struct {
	Scenario string        `json:"scenario,omitempty"`
	Steps    []StepResult  `json:"steps"`
	Placed   int           `json:"placed"`
	Failed   int           `json:"failed"`
	Stats    session.Stats `json:"stats"`
}

// Runner replays scenarios.
type Runner struct {
	log    *slog.Logger
	verify bool
}

// RunOption configures a Runner.
type RunOption func(*Runner)

// WithLogger sets the logger for step tracing.
func WithLogger(l *slog.Logger) RunOption {
	return func(r *Runner) { r.log = l }
}

// WithVerify checks store and records after every step.
func WithVerify(on bool) RunOption {
	return func(r *Runner) { r.verify = on }
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return logger.L
}

// Run configures s from sc and replays every step. A batch that cannot be
// placed is recorded in its StepResult and the run goes on, the same way an
// interactive user would carry on after an allocation error. Invalid
// scenarios, cancellation and failed verification stop the run.
func (r *Runner) Run(ctx context.Context, s *session.Session, sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	cfg, _ := sc.Config()
	if _, err := s.Apply(cfg); err != nil {
		return nil, err
	}
	def, _ := sc.DefaultStrategy()

	res := &Result{Scenario: sc.Name}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		sr := StepResult{Step: i + 1}
		if step.IsFree() {
			sr.Action = ActionFree
			for _, id := range step.FreeIDs() {
				if err := s.Deallocate(id); err != nil {
					return res, err
				}
				sr.Freed = append(sr.Freed, id)
			}
			r.logger().Debug("step freed", "step", sr.Step, "ids", len(sr.Freed))
		} else {
			strategy := def
			if step.Strategy != "" {
				strategy, _ = alloc.ParseStrategy(step.Strategy)
			}
			sr.Action = ActionAllocate
			if cfg.Mode == alloc.Segmentation {
				sr.Strategy = strategy.String()
			}

			recs, err := s.SubmitBatch(step.Allocate, strategy)
			sr.Records = recs
			res.Placed += len(recs)
			if err != nil {
				if !isAllocationError(err) {
					return res, err
				}
				sr.Err = err
				sr.Error = err.Error()
				sr.Rejected = len(step.Allocate) - len(recs)
				res.Failed += sr.Rejected
			}
			r.logger().Debug("step allocated",
				"step", sr.Step, "placed", len(recs), "rejected", sr.Rejected)
		}

		if r.verify {
			if err := s.Verify(); err != nil {
				return res, fmt.Errorf("verify after step %d: %w", sr.Step, err)
			}
		}
		res.Steps = append(res.Steps, sr)
	}

	res.Stats = s.Stats()
	r.logger().Info("scenario finished",
		"name", sc.Name, "steps", len(res.Steps), "placed", res.Placed, "failed", res.Failed)
	return res, nil
}

func isAllocationError(err error) bool {
	return errors.Is(err, alloc.ErrInsufficientMemory) || errors.Is(err, alloc.ErrInvalidSize)
}
