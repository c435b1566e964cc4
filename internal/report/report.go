// Package report turns search results into reports and delivers them to
// sinks: a text or JSON writer and, optionally, an MQTT broker.
package report

import (
	"context"

	"github.com/AaronLay10/vacuumworld/internal/search"
	"github.com/AaronLay10/vacuumworld/internal/world"
)

// StateView is the JSON form of a world.State.
type StateView struct {
	Agent world.Position   `json:"agent"`
	Dirt  []world.Position `json:"dirt"`
}

func viewOf(s world.State) StateView {
	return StateView{Agent: s.Agent, Dirt: s.Dirt.Positions()}
}

type StepView struct {
	Action world.Action `json:"action"`
	State  StateView    `json:"state"`
	Cost   float64      `json:"cost"`
}

// Report describes one search invocation on one problem.
type Report struct {
	RunID    string          `json:"run_id"`
	Problem  string          `json:"problem"`
	Strategy search.Strategy `json:"strategy"`
	Start    StateView       `json:"start"`

	Solved bool   `json:"solved"`
	Error  string `json:"error,omitempty"`

	Moves      int     `json:"moves"`
	Cost       float64 `json:"cost"`
	Expanded   int     `json:"expanded"`
	Generated  int     `json:"generated"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	DepthBound int     `json:"depth_bound,omitempty"`

	FirstExpanded []StateView `json:"first_expanded"`
	Path          []StepView  `json:"path"`
}

// New builds a report. res may be nil when the search could not start,
// and may be partial when err is set.
func New(runID, problem string, strategy search.Strategy, start world.State, res *search.Result, err error) *Report {
	r := &Report{
		RunID:         runID,
		Problem:       problem,
		Strategy:      strategy,
		Start:         viewOf(start),
		FirstExpanded: []StateView{},
		Path:          []StepView{},
	}
	if err != nil {
		r.Error = err.Error()
	}
	if res == nil {
		return r
	}

	r.Solved = res.Solved && err == nil
	r.Expanded = res.Expanded
	r.Generated = res.Generated
	r.ElapsedMS = float64(res.Elapsed.Microseconds()) / 1000
	if strategy == search.StrategyIDS {
		r.DepthBound = res.DepthBound
	}
	for _, s := range res.FirstExpanded {
		r.FirstExpanded = append(r.FirstExpanded, viewOf(s))
	}
	if r.Solved {
		r.Moves = res.Moves()
		r.Cost = res.TotalCost
		for _, st := range res.Path {
			r.Path = append(r.Path, StepView{Action: st.Action, State: viewOf(st.State), Cost: st.Cost})
		}
	}
	return r
}

// Sink receives finished reports.
type Sink interface {
	Publish(ctx context.Context, r *Report) error
}

// Closer is implemented by sinks that hold a connection.
type Closer interface {
	Close() error
}
