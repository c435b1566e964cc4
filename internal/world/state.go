package world

import (
	"math/bits"
	"strings"
)

// DirtSet is an immutable set of grid positions. The zero value is the
// empty set. Being a plain value, two sets holding the same cells compare
// equal with == and hash identically as map keys, whatever order the cells
// were added in.
type DirtSet struct {
	bits uint64
}

func cellBit(p Position) uint64 {
	return 1 << uint((p.Row-1)*MaxCols+(p.Col-1))
}

func bitPosition(i int) Position {
	return Position{Row: i/MaxCols + 1, Col: i%MaxCols + 1}
}

// NewDirtSet builds a set from positions. Positions must lie within
// 1..MaxRows × 1..MaxCols; others are ignored.
func NewDirtSet(ps ...Position) DirtSet {
	var d DirtSet
	for _, p := range ps {
		if p.Row < 1 || p.Row > MaxRows || p.Col < 1 || p.Col > MaxCols {
			continue
		}
		d.bits |= cellBit(p)
	}
	return d
}

// Contains reports whether p is dirty.
func (d DirtSet) Contains(p Position) bool {
	if p.Row < 1 || p.Row > MaxRows || p.Col < 1 || p.Col > MaxCols {
		return false
	}
	return d.bits&cellBit(p) != 0
}

// Remove returns a copy of d without p.
func (d DirtSet) Remove(p Position) DirtSet {
	if !d.Contains(p) {
		return d
	}
	return DirtSet{bits: d.bits &^ cellBit(p)}
}

func (d DirtSet) Len() int {
	return bits.OnesCount64(d.bits)
}

func (d DirtSet) Empty() bool {
	return d.bits == 0
}

// Positions lists the dirty cells in row-major order.
func (d DirtSet) Positions() []Position {
	out := make([]Position, 0, d.Len())
	for rest := d.bits; rest != 0; rest &= rest - 1 {
		out = append(out, bitPosition(bits.TrailingZeros64(rest)))
	}
	return out
}

func (d DirtSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range d.Positions() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte('}')
	return b.String()
}

// State is a snapshot of the world: where the agent stands and which cells
// are still dirty.
type State struct {
	Agent Position
	Dirt  DirtSet
}

// IsGoal reports whether every cell is clean.
func (s State) IsGoal() bool {
	return s.Dirt.Empty()
}

func (s State) String() string {
	return "agent " + s.Agent.String() + " dirt " + s.Dirt.String()
}
