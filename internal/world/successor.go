package world

import "fmt"

// Successor is one legal transition out of a state.
type Successor struct {
	Action Action
	State  State
	Cost   float64
}

// Successors returns every legal transition from s in action order:
// Up, Down, Left, Right, Suck. Moves that would leave the grid are
// skipped; Suck appears only when the agent stands on dirt.
func (c Config) Successors(s State) []Successor {
	out := make([]Successor, 0, numActions)
	for _, a := range Actions() {
		next, ok := c.apply(s, a)
		if !ok {
			continue
		}
		out = append(out, Successor{Action: a, State: next, Cost: c.Costs[a]})
	}
	return out
}

// Apply performs a single action, failing if it is not legal in s.
func (c Config) Apply(s State, a Action) (State, error) {
	next, ok := c.apply(s, a)
	if !ok {
		return s, fmt.Errorf("action %s not legal in state %s", a, s)
	}
	return next, nil
}

func (c Config) apply(s State, a Action) (State, bool) {
	switch a {
	case Suck:
		if !s.Dirt.Contains(s.Agent) {
			return s, false
		}
		return State{Agent: s.Agent, Dirt: s.Dirt.Remove(s.Agent)}, true
	case MoveUp, MoveDown, MoveLeft, MoveRight:
		d := delta[a]
		p := Position{Row: s.Agent.Row + d.Row, Col: s.Agent.Col + d.Col}
		if !c.Contains(p) {
			return s, false
		}
		return State{Agent: p, Dirt: s.Dirt}, true
	}
	return s, false
}
