package search

import "github.com/AaronLay10/vacuumworld/internal/world"

// IterativeDeepening runs depth-limited search with bounds 0, 1, 2, ...
// until one finds a goal. It returns the solution with the fewest actions,
// which is not necessarily the cheapest.
//
// Expanded and Generated add up over every bound, so shallow nodes that
// are re-explored at each bound are counted each time. Elapsed covers all
// bounds.
func (s *Searcher) IterativeDeepening(start world.State) (*Result, error) {
	r, err := s.begin(StrategyIDS, start)
	if err != nil {
		return nil, err
	}

	for bound := 0; ; bound++ {
		if s.opts.MaxDepth > 0 && bound > s.opts.MaxDepth {
			res := r.result()
			res.DepthBound = bound - 1
			return res, nil
		}

		goal, found, cutoff, err := r.depthLimited(start, bound)
		if err != nil {
			res := r.result()
			res.DepthBound = bound
			return res, err
		}
		if found {
			res := r.solved(goal)
			res.DepthBound = bound
			return res, nil
		}
		if !cutoff {
			// The whole tree fit under this bound, so no deeper bound can
			// find anything new.
			res := r.result()
			res.DepthBound = bound
			return res, nil
		}
	}
}

// depthLimited explores the tree below start depth-first, never expanding
// a node deeper than bound. Children are pushed in generation order and so
// popped in reverse. The arena is reset first: each bound owns its nodes.
//
// cutoff reports whether any node was left unexpanded because of the
// bound; without one, an empty fringe means the tree has no goal at all.
func (r *run) depthLimited(start world.State, bound int) (goal int, found, cutoff bool, err error) {
	r.nodes.reset()
	stack := []int{r.nodes.root(start)}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := r.nodes.at(id)
		r.expand(n)
		if n.state.IsGoal() {
			return id, true, cutoff, nil
		}
		if n.depth >= bound {
			cutoff = true
			continue
		}
		for _, sc := range r.s.world.Successors(n.state) {
			child, err := r.generate(id, sc)
			if err != nil {
				return 0, false, cutoff, err
			}
			stack = append(stack, child)
		}
	}
	return 0, false, cutoff, nil
}
