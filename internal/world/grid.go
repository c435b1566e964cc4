// Package world models the vacuum world: a bounded grid, the agent's
// actions and their costs, and the immutable states the search engine
// explores.
package world

import (
	"errors"
	"fmt"
)

// Reference grid bounds. Rows and columns are 1-based and inclusive.
const (
	DefaultRows = 4
	DefaultCols = 5
)

// MaxRows and MaxCols bound any configured grid; a DirtSet packs one bit
// per cell of an 8×8 board.
const (
	MaxRows = 8
	MaxCols = 8
)

var (
	ErrInvalidGrid  = errors.New("invalid grid")
	ErrInvalidCost  = errors.New("invalid action cost")
	ErrInvalidStart = errors.New("invalid start position")
	ErrInvalidDirt  = errors.New("invalid dirt position")
)

// Position is a (row, column) cell on the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Less orders positions by row, then column.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Config is the grid and cost table consumed by the successor generator.
type Config struct {
	Rows  int
	Cols  int
	Costs Costs
}

// DefaultConfig returns the 4×5 reference grid with the reference costs.
func DefaultConfig() Config {
	return Config{
		Rows:  DefaultRows,
		Cols:  DefaultCols,
		Costs: DefaultCosts(),
	}
}

// Validate checks the grid bounds and the cost table.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Rows > MaxRows || c.Cols < 1 || c.Cols > MaxCols {
		return fmt.Errorf("%w: %dx%d (rows 1..%d, cols 1..%d)", ErrInvalidGrid, c.Rows, c.Cols, MaxRows, MaxCols)
	}
	for _, a := range Actions() {
		if c.Costs[a] <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidCost, a, c.Costs[a])
		}
	}
	return nil
}

// Contains reports whether p lies inside the grid.
func (c Config) Contains(p Position) bool {
	return p.Row >= 1 && p.Row <= c.Rows && p.Col >= 1 && p.Col <= c.Cols
}

// NewState validates start and dirt against the grid and builds the
// initial state. Duplicate dirt positions collapse.
func (c Config) NewState(start Position, dirt []Position) (State, error) {
	if err := c.Validate(); err != nil {
		return State{}, err
	}
	if !c.Contains(start) {
		return State{}, fmt.Errorf("%w: %s outside %dx%d grid", ErrInvalidStart, start, c.Rows, c.Cols)
	}
	for _, d := range dirt {
		if !c.Contains(d) {
			return State{}, fmt.Errorf("%w: %s outside %dx%d grid", ErrInvalidDirt, d, c.Rows, c.Cols)
		}
	}
	return State{Agent: start, Dirt: NewDirtSet(dirt...)}, nil
}
