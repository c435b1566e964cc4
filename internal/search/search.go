// Package search finds action sequences that clean every dirty cell of a
// vacuum world. Three strategies are available: iterative deepening over a
// depth-limited tree search, uniform-cost tree search, and uniform-cost
// graph search with a closed set.
//
// Searches are single-threaded and synchronous. A Searcher holds no state
// between calls, so one value may serve any number of invocations.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/AaronLay10/vacuumworld/internal/world"
)

var (
	// ErrResourceExhausted is returned when a search would generate more
	// nodes than Options.MaxGenerated allows.
	ErrResourceExhausted = errors.New("node generation limit reached")

	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy names a search algorithm.
type Strategy string

const (
	StrategyIDS      Strategy = "ids"
	StrategyUCSTree  Strategy = "ucs-tree"
	StrategyUCSGraph Strategy = "ucs-graph"
)

// Strategies lists every strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyIDS, StrategyUCSTree, StrategyUCSGraph}
}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Describe returns a human-readable name for the strategy.
func (s Strategy) Describe() string {
	switch s {
	case StrategyIDS:
		return "Iterative deepening tree search"
	case StrategyUCSTree:
		return "Uniform-cost tree search"
	case StrategyUCSGraph:
		return "Uniform-cost graph search"
	}
	return string(s)
}

// Options bound the work a single search may do.
type Options struct {
	// MaxGenerated caps the number of nodes generated per invocation.
	// Zero means no limit.
	MaxGenerated int

	// TraceLimit is how many expanded states Result.FirstExpanded keeps.
	TraceLimit int

	// MaxDepth is the deepest bound iterative deepening will try. Zero
	// means no limit.
	MaxDepth int
}

// DefaultOptions returns the limits used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxGenerated: 20_000_000,
		TraceLimit:   5,
	}
}

// Searcher runs searches over one world configuration.
type Searcher struct {
	world world.Config
	opts  Options
}

// New validates cfg and returns a Searcher for it.
func New(cfg world.Config, opts Options) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.TraceLimit < 0 {
		opts.TraceLimit = 0
	}
	return &Searcher{world: cfg, opts: opts}, nil
}

// World returns the configuration the searcher was built with.
func (s *Searcher) World() world.Config {
	return s.world
}

// Solve builds the start state from positions and runs the strategy.
func (s *Searcher) Solve(strategy Strategy, start world.Position, dirt []world.Position) (*Result, error) {
	st, err := s.world.NewState(start, dirt)
	if err != nil {
		return nil, err
	}
	return s.Run(strategy, st)
}

// Run dispatches to the named strategy.
func (s *Searcher) Run(strategy Strategy, start world.State) (*Result, error) {
	switch strategy {
	case StrategyIDS:
		return s.IterativeDeepening(start)
	case StrategyUCSTree:
		return s.UniformCostTree(start)
	case StrategyUCSGraph:
		return s.UniformCostGraph(start)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

func (s *Searcher) check(start world.State) error {
	if !s.world.Contains(start.Agent) {
		return fmt.Errorf("%w: %s", world.ErrInvalidStart, start.Agent)
	}
	for _, p := range start.Dirt.Positions() {
		if !s.world.Contains(p) {
			return fmt.Errorf("%w: %s", world.ErrInvalidDirt, p)
		}
	}
	return nil
}

// run carries the counters and node storage of one invocation.
type run struct {
	s         *Searcher
	strategy  Strategy
	began     time.Time
	nodes     arena
	expanded  int
	generated int
	first     []world.State
}

func (s *Searcher) begin(strategy Strategy, start world.State) (*run, error) {
	if err := s.check(start); err != nil {
		return nil, err
	}
	return &run{
		s:        s,
		strategy: strategy,
		began:    time.Now(),
		first:    make([]world.State, 0, s.opts.TraceLimit),
	}, nil
}

func (r *run) expand(n node) {
	r.expanded++
	if len(r.first) < r.s.opts.TraceLimit {
		r.first = append(r.first, n.state)
	}
}

func (r *run) generate(parent int, sc world.Successor) (int, error) {
	if limit := r.s.opts.MaxGenerated; limit > 0 && r.generated >= limit {
		return 0, fmt.Errorf("%w: %s generated %d nodes", ErrResourceExhausted, r.strategy, r.generated)
	}
	r.generated++
	return r.nodes.child(parent, sc), nil
}

func (r *run) result() *Result {
	return &Result{
		Strategy:      r.strategy,
		Expanded:      r.expanded,
		Generated:     r.generated,
		Elapsed:       time.Since(r.began),
		FirstExpanded: r.first,
	}
}

func (r *run) solved(goal int) *Result {
	res := r.result()
	res.Solved = true
	res.Path = r.nodes.path(goal)
	res.TotalCost = r.nodes.at(goal).cost
	return res
}
