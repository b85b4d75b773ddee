package world

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

// newTestExploration builds the 3x3 golden layout:
//
//	(0,0) boss     (1,0) -      (2,0) -
//	(0,1) start    (1,1) puzzle (2,1) -
//	(0,2) goblin   (1,2) -      (2,2) -
func newTestExploration(t *testing.T) (*Dungeon, *Exploration) {
	t.Helper()
	cfg := Config{
		Width:     3,
		Height:    3,
		RoomCount: 4,
		RoomTypes: []RoomType{RoomPuzzle, RoomMonster},
		Boss:      true,
		Monsters:  testTemplates,
	}
	d, err := Generate(context.Background(), cfg, &scriptedRand{values: []int{0, 0, 0, 0, 1, 0, 0}})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	testutil.AssertEqual(t, "(1,1) type", mustRoom(t, d, Coord{1, 1}).Type, RoomPuzzle)
	testutil.AssertEqual(t, "(0,2) type", mustRoom(t, d, Coord{0, 2}).Type, RoomMonster)
	return d, NewExploration(d)
}

func TestNewExploration(t *testing.T) {
	d, e := newTestExploration(t)

	testutil.AssertEqual(t, "current", e.Current(), d.Start())
	if got := e.Visited(); !slices.Equal(got, []Coord{d.Start()}) {
		t.Errorf("Visited() = %v, want [%v]", got, d.Start())
	}
}

func TestVisibilityOf(t *testing.T) {
	_, e := newTestExploration(t)

	tests := []struct {
		c    Coord
		want Visibility
	}{
		{Coord{0, 1}, Current},
		{Coord{1, 1}, Neighbor},
		{Coord{0, 2}, Neighbor},
		{Coord{0, 0}, Neighbor},
		{Coord{2, 2}, Hidden},
		{Coord{9, 9}, Hidden},
	}

	// Repeated queries without a move must agree.
	for round := 0; round < 3; round++ {
		for _, tt := range tests {
			if got := e.VisibilityOf(tt.c); got != tt.want {
				t.Errorf("round %d: VisibilityOf(%v) = %v, want %v", round, tt.c, got, tt.want)
			}
		}
	}

	if _, err := e.Enter(Coord{1, 1}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "old room", e.VisibilityOf(Coord{0, 1}), Explored)
	testutil.AssertEqual(t, "new room", e.VisibilityOf(Coord{1, 1}), Current)
	testutil.AssertEqual(t, "diagonal room", e.VisibilityOf(Coord{0, 2}), Hidden)
}

func TestEnterNonCombatRoom(t *testing.T) {
	_, e := newTestExploration(t)

	out, err := e.Enter(Coord{1, 1})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, Moved)
	testutil.AssertEqual(t, "current", e.Current(), Coord{1, 1})
	testutil.AssertEqual(t, "visited", e.HasVisited(Coord{1, 1}), true)
}

func TestEnterRejectsUnreachable(t *testing.T) {
	_, e := newTestExploration(t)

	for _, c := range []Coord{{2, 2}, {1, 0}, {-1, 1}} {
		if _, err := e.Enter(c); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Enter(%v) error = %v, want ErrInvalidTransition", c, err)
		}
	}

	if _, err := e.Enter(Coord{1, 1}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	// (0,2) is carved but neither adjacent to (1,1) nor visited.
	if _, err := e.Enter(Coord{0, 2}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Enter((0,2)) error = %v, want ErrInvalidTransition", err)
	}
	testutil.AssertEqual(t, "current unchanged", e.Current(), Coord{1, 1})
}

func TestEnterCombatRoomWaitsForVictory(t *testing.T) {
	d, e := newTestExploration(t)

	out, err := e.Enter(Coord{0, 2})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, CombatStarted)
	testutil.AssertEqual(t, "monster", out.MonsterID, "goblin")
	testutil.AssertEqual(t, "boss", out.IsBoss, false)
	testutil.AssertEqual(t, "current unchanged", e.Current(), d.Start())
	testutil.AssertEqual(t, "not visited", e.HasVisited(Coord{0, 2}), false)

	if err := e.ResolveCombatVictory(Coord{0, 2}); err != nil {
		t.Fatalf("ResolveCombatVictory() error: %v", err)
	}
	testutil.AssertEqual(t, "current", e.Current(), Coord{0, 2})
	testutil.AssertEqual(t, "visited", e.HasVisited(Coord{0, 2}), true)

	// A cleared room is a plain move from then on.
	if _, err := e.Enter(d.Start()); err != nil {
		t.Fatalf("Enter(start) error: %v", err)
	}
	out, err = e.Enter(Coord{0, 2})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "cleared kind", out.Kind, Moved)
}

func TestEnterBossRoom(t *testing.T) {
	_, e := newTestExploration(t)

	out, err := e.Enter(Coord{0, 0})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, CombatStarted)
	testutil.AssertEqual(t, "monster", out.MonsterID, "dragon")
	testutil.AssertEqual(t, "boss", out.IsBoss, true)
}

func TestBacktrackToVisitedRoom(t *testing.T) {
	_, e := newTestExploration(t)

	if _, err := e.Enter(Coord{1, 1}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if _, err := e.Enter(Coord{0, 1}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if _, err := e.Enter(Coord{0, 2}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if err := e.ResolveCombatVictory(Coord{0, 2}); err != nil {
		t.Fatalf("ResolveCombatVictory() error: %v", err)
	}

	// (1,1) is diagonal to (0,2) but already explored.
	out, err := e.Enter(Coord{1, 1})
	if err != nil {
		t.Fatalf("Enter() backtrack error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, Moved)
	testutil.AssertEqual(t, "current", e.Current(), Coord{1, 1})

	want := []Coord{{0, 1}, {1, 1}, {0, 2}}
	if got := e.Visited(); !slices.Equal(got, want) {
		t.Errorf("Visited() = %v, want %v", got, want)
	}
}

func TestResolveCombatVictoryRejectsUnreachable(t *testing.T) {
	_, e := newTestExploration(t)

	if err := e.ResolveCombatVictory(Coord{2, 2}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ResolveCombatVictory() error = %v, want ErrInvalidTransition", err)
	}
}

func TestSearchTargets(t *testing.T) {
	d, e := newTestExploration(t)

	want := []Coord{{1, 1}, {0, 2}, {0, 0}}
	if got := e.SearchTargets(); !slices.Equal(got, want) {
		t.Errorf("SearchTargets() = %v, want %v", got, want)
	}
	testutil.AssertEqual(t, "can search", e.CanSearch(), true)

	if _, err := e.Enter(Coord{1, 1}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "dead end can search", e.CanSearch(), false)

	before := mustRoom(t, d, d.Start()).Neighbors()
	e.SearchTargets()
	if after := mustRoom(t, d, d.Start()).Neighbors(); !slices.Equal(before, after) {
		t.Errorf("search changed neighbours: %v -> %v", before, after)
	}
}

func TestEnterNeverReachesUnvisitedNonNeighbor(t *testing.T) {
	cfg := Config{Width: 7, Height: 7, RoomCount: 30, RoomTypes: []RoomType{RoomPuzzle, RoomTrap}, Boss: false}
	d, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	e := NewExploration(d)
	rng := rand.New(rand.NewSource(5))
	grid := d.Grid()

	for step := 0; step < 500; step++ {
		target := grid.CoordOf(rng.Intn(grid.Cells()))
		allowed := e.CurrentRoom().HasNeighbor(target) || e.HasVisited(target)
		_, err := e.Enter(target)
		if allowed && err != nil {
			t.Fatalf("step %d: Enter(%v) error: %v", step, target, err)
		}
		if !allowed && err == nil {
			t.Fatalf("step %d: Enter(%v) succeeded into an unreachable room", step, target)
		}
		if !e.HasVisited(e.Current()) || !e.HasVisited(d.Start()) {
			t.Fatalf("step %d: visited set lost current or start room", step)
		}
	}
}
