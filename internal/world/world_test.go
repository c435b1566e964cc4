package world

import (
	"errors"
	"testing"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Rows != 4 || cfg.Cols != 5 {
		t.Fatalf("expected 4x5 grid, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_ValidateRejectsBadGrid(t *testing.T) {
	for _, cfg := range []Config{
		{Rows: 0, Cols: 5, Costs: DefaultCosts()},
		{Rows: 4, Cols: 9, Costs: DefaultCosts()},
	} {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("%dx%d: expected ErrInvalidGrid, got %v", cfg.Rows, cfg.Cols, err)
		}
	}
}

func TestConfig_ValidateRejectsNonPositiveCost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Costs[MoveLeft] = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidCost) {
		t.Errorf("expected ErrInvalidCost, got %v", err)
	}
}

func TestNewState_InvalidPositions(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := cfg.NewState(Pos(0, 1), nil); !errors.Is(err, ErrInvalidStart) {
		t.Errorf("expected ErrInvalidStart, got %v", err)
	}
	if _, err := cfg.NewState(Pos(1, 1), []Position{Pos(2, 2), Pos(5, 1)}); !errors.Is(err, ErrInvalidDirt) {
		t.Errorf("expected ErrInvalidDirt, got %v", err)
	}
}

func TestPosition_Less(t *testing.T) {
	if !Pos(1, 5).Less(Pos(2, 1)) {
		t.Error("expected row to dominate ordering")
	}
	if !Pos(2, 1).Less(Pos(2, 3)) {
		t.Error("expected column to break row ties")
	}
	if Pos(2, 2).Less(Pos(2, 2)) {
		t.Error("expected equal positions not to be less")
	}
}

func TestDirtSet_StructuralEquality(t *testing.T) {
	a := NewDirtSet(Pos(1, 2), Pos(2, 4), Pos(3, 5))
	b := NewDirtSet(Pos(3, 5), Pos(1, 2), Pos(2, 4), Pos(1, 2))
	if a != b {
		t.Fatalf("expected %s == %s", a, b)
	}

	seen := map[State]bool{{Agent: Pos(2, 2), Dirt: a}: true}
	if !seen[State{Agent: Pos(2, 2), Dirt: b}] {
		t.Error("expected state with reordered dirt to hit the same map key")
	}
	if seen[State{Agent: Pos(2, 3), Dirt: b}] {
		t.Error("expected different agent position to be a different key")
	}
}

func TestDirtSet_RemoveIsPersistent(t *testing.T) {
	orig := NewDirtSet(Pos(1, 1), Pos(4, 5))
	next := orig.Remove(Pos(1, 1))

	if !orig.Contains(Pos(1, 1)) {
		t.Error("Remove mutated the original set")
	}
	if next.Contains(Pos(1, 1)) || !next.Contains(Pos(4, 5)) {
		t.Errorf("unexpected set after remove: %s", next)
	}
	if next.Len() != 1 {
		t.Errorf("expected 1 cell, got %d", next.Len())
	}
	if got := next.Remove(Pos(2, 2)); got != next {
		t.Error("removing an absent cell should return an equal set")
	}
}

func TestDirtSet_PositionsSorted(t *testing.T) {
	d := NewDirtSet(Pos(3, 3), Pos(1, 2), Pos(2, 4), Pos(2, 1))
	got := d.Positions()
	want := []Position{Pos(1, 2), Pos(2, 1), Pos(2, 4), Pos(3, 3)}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if s := d.String(); s != "{(1,2), (2,1), (2,4), (3,3)}" {
		t.Errorf("unexpected string %q", s)
	}
}

func TestState_IsGoal(t *testing.T) {
	for _, p := range []Position{Pos(1, 1), Pos(4, 5), Pos(2, 3)} {
		if !(State{Agent: p}).IsGoal() {
			t.Errorf("expected empty dirt at %s to be goal", p)
		}
		if (State{Agent: p, Dirt: NewDirtSet(Pos(1, 1))}).IsGoal() {
			t.Errorf("expected dirty state at %s not to be goal", p)
		}
	}
}

func TestSuccessors_InteriorNoDirt(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Agent: Pos(2, 2), Dirt: NewDirtSet(Pos(1, 1))}

	succ := cfg.Successors(s)
	wantActions := []Action{MoveUp, MoveDown, MoveLeft, MoveRight}
	if len(succ) != len(wantActions) {
		t.Fatalf("expected %d successors, got %d", len(wantActions), len(succ))
	}
	wantAgents := []Position{Pos(1, 2), Pos(3, 2), Pos(2, 1), Pos(2, 3)}
	for i, sc := range succ {
		if sc.Action != wantActions[i] {
			t.Errorf("successor %d: got %s, want %s", i, sc.Action, wantActions[i])
		}
		if sc.State.Agent != wantAgents[i] {
			t.Errorf("successor %d: agent %s, want %s", i, sc.State.Agent, wantAgents[i])
		}
		if sc.State.Dirt != s.Dirt {
			t.Errorf("successor %d: move changed dirt", i)
		}
		if sc.Cost != cfg.Costs[sc.Action] {
			t.Errorf("successor %d: cost %v, want %v", i, sc.Cost, cfg.Costs[sc.Action])
		}
	}
}

func TestSuccessors_CornerExcludesOutOfBounds(t *testing.T) {
	cfg := DefaultConfig()

	top := cfg.Successors(State{Agent: Pos(1, 1)})
	if len(top) != 2 || top[0].Action != MoveDown || top[1].Action != MoveRight {
		t.Errorf("unexpected top-left successors: %+v", top)
	}

	bottom := cfg.Successors(State{Agent: Pos(4, 5)})
	if len(bottom) != 2 || bottom[0].Action != MoveUp || bottom[1].Action != MoveLeft {
		t.Errorf("unexpected bottom-right successors: %+v", bottom)
	}

	for _, s := range append(top, bottom...) {
		if !cfg.Contains(s.State.Agent) {
			t.Errorf("successor left the grid: %s", s.State.Agent)
		}
	}
}

func TestSuccessors_SuckOnlyOnDirt(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Agent: Pos(1, 2), Dirt: NewDirtSet(Pos(1, 2), Pos(2, 4))}

	succ := cfg.Successors(s)
	last := succ[len(succ)-1]
	if last.Action != Suck {
		t.Fatalf("expected Suck as last successor, got %s", last.Action)
	}
	if last.Cost != CostSuck {
		t.Errorf("expected suck cost %v, got %v", CostSuck, last.Cost)
	}
	if last.State.Agent != s.Agent {
		t.Error("Suck moved the agent")
	}
	if want := NewDirtSet(Pos(2, 4)); last.State.Dirt != want {
		t.Errorf("expected dirt %s, got %s", want, last.State.Dirt)
	}
	if !s.Dirt.Contains(Pos(1, 2)) {
		t.Error("Successors mutated the input state")
	}

	for _, sc := range cfg.Successors(State{Agent: Pos(3, 3), Dirt: s.Dirt}) {
		if sc.Action == Suck {
			t.Error("Suck generated on a clean cell")
		}
	}
}

func TestSuccessors_CountBounds(t *testing.T) {
	cfg := DefaultConfig()
	dirt := NewDirtSet(Pos(1, 1), Pos(2, 3), Pos(4, 5))
	for r := 1; r <= cfg.Rows; r++ {
		for c := 1; c <= cfg.Cols; c++ {
			n := len(cfg.Successors(State{Agent: Pos(r, c), Dirt: dirt}))
			if n < 1 || n > 5 {
				t.Errorf("agent at (%d,%d): %d successors", r, c, n)
			}
		}
	}
}

func TestApply_RejectsIllegal(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Agent: Pos(1, 1)}
	if _, err := cfg.Apply(s, MoveUp); err == nil {
		t.Error("expected error moving up off the grid")
	}
	if _, err := cfg.Apply(s, Suck); err == nil {
		t.Error("expected error sucking a clean cell")
	}
	next, err := cfg.Apply(s, MoveRight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Agent != Pos(1, 2) {
		t.Errorf("expected (1,2), got %s", next.Agent)
	}
}

func TestSuccessors_AlternateGrid(t *testing.T) {
	cfg := Config{Rows: 1, Cols: 1, Costs: DefaultCosts()}
	s := State{Agent: Pos(1, 1), Dirt: NewDirtSet(Pos(1, 1))}
	succ := cfg.Successors(s)
	if len(succ) != 1 || succ[0].Action != Suck {
		t.Fatalf("expected only Suck on a 1x1 grid, got %+v", succ)
	}
	if !succ[0].State.IsGoal() {
		t.Error("expected goal after sucking the only cell")
	}
}
