package search

import "github.com/AaronLay10/vacuumworld/internal/world"

// UniformCostTree expands nodes in order of path cost without remembering
// which states it has seen. The goal test happens when a node is popped,
// so the first goal popped is a cheapest one. The same state may be
// expanded many times; Options.MaxGenerated bounds the work.
func (s *Searcher) UniformCostTree(start world.State) (*Result, error) {
	r, err := s.begin(StrategyUCSTree, start)
	if err != nil {
		return nil, err
	}

	var fringe priorityFringe
	fringe.push(r.nodes.root(start), 0)

	for fringe.Len() > 0 {
		id := fringe.pop()
		n := r.nodes.at(id)
		r.expand(n)
		if n.state.IsGoal() {
			return r.solved(id), nil
		}
		for _, sc := range s.world.Successors(n.state) {
			child, err := r.generate(id, sc)
			if err != nil {
				return r.result(), err
			}
			fringe.push(child, r.nodes.at(child).cost)
		}
	}
	return r.result(), nil
}

// UniformCostGraph is UniformCostTree with a closed set. A state is closed
// once expanded; later pops of the same state are dropped without being
// counted, and successors leading to a closed state are never created.
// Path costs pop in non-decreasing order, so the first expansion of a state
// is always along a cheapest path to it.
func (s *Searcher) UniformCostGraph(start world.State) (*Result, error) {
	r, err := s.begin(StrategyUCSGraph, start)
	if err != nil {
		return nil, err
	}

	closed := make(map[world.State]struct{})
	var fringe priorityFringe
	fringe.push(r.nodes.root(start), 0)

	for fringe.Len() > 0 {
		id := fringe.pop()
		n := r.nodes.at(id)
		if _, ok := closed[n.state]; ok {
			continue
		}
		r.expand(n)
		if n.state.IsGoal() {
			return r.solved(id), nil
		}
		closed[n.state] = struct{}{}

		for _, sc := range s.world.Successors(n.state) {
			if _, ok := closed[sc.State]; ok {
				continue
			}
			child, err := r.generate(id, sc)
			if err != nil {
				return r.result(), err
			}
			fringe.push(child, r.nodes.at(child).cost)
		}
	}
	return r.result(), nil
}
