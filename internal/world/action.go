package world

import "fmt"

// Action is one of the five things the agent can do.
type Action uint8

// Actions in successor enumeration order.
const (
	MoveUp Action = iota
	MoveDown
	MoveLeft
	MoveRight
	Suck

	numActions = int(Suck) + 1
)

// Reference action costs.
const (
	CostUp    = 0.8
	CostDown  = 0.7
	CostLeft  = 1.0
	CostRight = 0.9
	CostSuck  = 0.6
)

var actionNames = [numActions]string{
	MoveUp:    "Up",
	MoveDown:  "Down",
	MoveLeft:  "Left",
	MoveRight: "Right",
	Suck:      "Suck",
}

// delta holds the row/column offset of each directional action.
var delta = [numActions]Position{
	MoveUp:    {Row: -1},
	MoveDown:  {Row: 1},
	MoveLeft:  {Col: -1},
	MoveRight: {Col: 1},
}

// Actions returns every action in enumeration order.
func Actions() []Action {
	return []Action{MoveUp, MoveDown, MoveLeft, MoveRight, Suck}
}

func (a Action) String() string {
	if int(a) < numActions {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Costs maps each action to its fixed cost.
type Costs [numActions]float64

// DefaultCosts returns the reference cost table.
func DefaultCosts() Costs {
	return Costs{
		MoveUp:    CostUp,
		MoveDown:  CostDown,
		MoveLeft:  CostLeft,
		MoveRight: CostRight,
		Suck:      CostSuck,
	}
}
