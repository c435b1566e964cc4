package search

import (
	"time"

	"github.com/AaronLay10/vacuumworld/internal/world"
)

// Step is one action on a solution path together with the state it led to
// and the path cost accumulated so far.
type Step struct {
	Action world.Action
	State  world.State
	Cost   float64
}

// Result is the record produced by one search invocation.
type Result struct {
	Strategy Strategy
	Solved   bool
	Path     []Step

	// TotalCost is the cost of Path; zero when unsolved.
	TotalCost float64

	// Expanded and Generated count every node popped and created. For
	// iterative deepening they add up over all depth bounds.
	Expanded  int
	Generated int

	Elapsed time.Duration

	// FirstExpanded holds the states of the first expanded nodes, capped at
	// Options.TraceLimit.
	FirstExpanded []world.State

	// DepthBound is the last bound iterative deepening tried. Always zero
	// for the uniform-cost strategies.
	DepthBound int
}

// Moves returns the number of actions on the solution path.
func (r *Result) Moves() int {
	return len(r.Path)
}

// Final returns the state the solution path ends in, or start when the
// path is empty.
func (r *Result) Final(start world.State) world.State {
	if len(r.Path) == 0 {
		return start
	}
	return r.Path[len(r.Path)-1].State
}
