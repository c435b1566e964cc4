package search

import "github.com/AaronLay10/vacuumworld/internal/world"

const noParent = -1

// node is a search-tree element. Nodes live in an arena and refer to their
// parent by index, so the tree never holds a pointer cycle.
type node struct {
	state  world.State
	parent int
	action world.Action
	cost   float64
	depth  int
}

// arena is append-only storage for the nodes of one search invocation.
type arena struct {
	nodes []node
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}

func (a *arena) root(s world.State) int {
	a.nodes = append(a.nodes, node{state: s, parent: noParent})
	return len(a.nodes) - 1
}

func (a *arena) child(parent int, sc world.Successor) int {
	p := a.nodes[parent]
	a.nodes = append(a.nodes, node{
		state:  sc.State,
		parent: parent,
		action: sc.Action,
		cost:   p.cost + sc.Cost,
		depth:  p.depth + 1,
	})
	return len(a.nodes) - 1
}

func (a *arena) at(id int) node {
	return a.nodes[id]
}

// path walks parent links from id back to the root and returns the steps
// in root-to-goal order. The root contributes no step.
func (a *arena) path(id int) []Step {
	n := a.nodes[id]
	steps := make([]Step, n.depth)
	for i := n.depth - 1; i >= 0; i-- {
		steps[i] = Step{Action: n.action, State: n.state, Cost: n.cost}
		n = a.nodes[n.parent]
	}
	return steps
}
