// Package runner executes every configured strategy on every problem and
// hands the reports to the configured sinks.
package runner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AaronLay10/vacuumworld/internal/config"
	"github.com/AaronLay10/vacuumworld/internal/events"
	"github.com/AaronLay10/vacuumworld/internal/logging"
	"github.com/AaronLay10/vacuumworld/internal/report"
	"github.com/AaronLay10/vacuumworld/internal/search"
	"github.com/AaronLay10/vacuumworld/internal/telemetry"
)

// Outcome is the result of one strategy on one problem.
type Outcome struct {
	Problem  string
	Strategy search.Strategy
	Result   *search.Result
	Report   *report.Report
	Err      error
}

// Runner runs searches one at a time.
type Runner struct {
	searcher *search.Searcher
	recorder *telemetry.Recorder
	sinks    []report.Sink
	newID    func() string
}

// New returns a Runner. A nil recorder records nothing.
func New(searcher *search.Searcher, recorder *telemetry.Recorder, sinks ...report.Sink) *Runner {
	if recorder == nil {
		recorder = telemetry.NewNoopProvider().Recorder
	}
	return &Runner{
		searcher: searcher,
		recorder: recorder,
		sinks:    sinks,
		newID:    uuid.NewString,
	}
}

// Run searches each problem with each strategy in order. A failed search
// is recorded in its Outcome and does not stop the batch. Run only
// returns an error when ctx is done, along with the outcomes so far.
func (r *Runner) Run(ctx context.Context, problems []config.NamedState, strategies []search.Strategy) ([]Outcome, error) {
	runID := r.newID()
	out := make([]Outcome, 0, len(problems)*len(strategies))

	for _, p := range problems {
		for _, st := range strategies {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			out = append(out, r.one(ctx, runID, p, st))
		}
	}
	return out, nil
}

func (r *Runner) one(ctx context.Context, runID string, p config.NamedState, strategy search.Strategy) Outcome {
	fields := map[string]interface{}{
		"run_id":   runID,
		"problem":  p.Name,
		"strategy": string(strategy),
	}
	emit("info", "search.started", "", fields)

	res, err := r.recorder.Search(ctx, runID, p.Name, strategy, func(context.Context) (*search.Result, error) {
		return r.searcher.Run(strategy, p.Start)
	})

	level := "info"
	switch {
	case err != nil:
		level = "warn"
		emit("error", "search.failed", err.Error(), fields)
	case !res.Solved:
		emit("info", "search.unsolved", "", fields)
	default:
		emit("info", "search.completed", "", fields)
	}
	entry := logging.At(level).With(
		logging.RunID(runID),
		logging.Problem(p.Name),
		logging.Strategy(string(strategy)),
		logging.Err(err),
	)
	if res != nil {
		entry = entry.With(
			logging.Bool("solved", res.Solved && err == nil),
			logging.Counts(res.Expanded, res.Generated),
			logging.Cost(res.TotalCost),
			logging.Duration(res.Elapsed),
		)
	}
	entry.Msg("search finished")

	rep := report.New(runID, p.Name, strategy, p.Start, res, err)
	for _, sink := range r.sinks {
		if perr := sink.Publish(ctx, rep); perr != nil {
			logging.Error().With(logging.RunID(runID), logging.Err(perr)).Msg("report delivery failed")
			emit("error", "report.error", perr.Error(), fields)
			continue
		}
		emit("debug", "report.published", "", fields)
	}

	return Outcome{
		Problem:  p.Name,
		Strategy: strategy,
		Result:   res,
		Report:   rep,
		Err:      err,
	}
}

func emit(level, name, msg string, fields map[string]interface{}) {
	if _, err := events.Emit(level, name, msg, fields); err != nil {
		logging.Error().With(logging.Err(err)).Msg("event rejected")
	}
}

// Failed counts outcomes with an error. Exhausted ones are counted
// separately so callers can tell a node cap from a real failure.
func Failed(outcomes []Outcome) (failed, exhausted int) {
	for _, o := range outcomes {
		switch {
		case errors.Is(o.Err, search.ErrResourceExhausted):
			exhausted++
		case o.Err != nil:
			failed++
		}
	}
	return failed, exhausted
}
