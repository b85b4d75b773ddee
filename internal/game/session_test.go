package game

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/rs/zerolog"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

var (
	startRoom  = world.Coord{X: 0, Y: 1}
	puzzleRoom = world.Coord{X: 1, Y: 1}
	goblinRoom = world.Coord{X: 0, Y: 2}
	bossRoom   = world.Coord{X: 0, Y: 0}
)

func TestNewSession(t *testing.T) {
	s := newTestSession(t, strongHero())

	testutil.AssertEqual(t, "state", s.State(), StateExplore)
	testutil.AssertEqual(t, "seed", s.Seed(), int64(42))
	testutil.AssertEqual(t, "current", s.Exploration().Current(), startRoom)
	testutil.AssertEqual(t, "player hp", s.Player().HP, 100)
	testutil.AssertEqual(t, "rooms", s.Dungeon().Len(), 4)
	if s.Encounter() != nil {
		t.Error("new session has an active encounter")
	}
	if !slices.Contains(s.Messages(), "You enter the dungeon.") {
		t.Errorf("Messages() = %v, want welcome line", s.Messages())
	}
}

func TestNewSessionRequiresTemplates(t *testing.T) {
	_, err := NewSession(context.Background(), Config{Player: strongHero()}, zerolog.Nop())
	testutil.AssertErrorContains(t, err, "monster registry")

	_, err = NewSession(context.Background(), Config{Monsters: testRegistry(t)}, zerolog.Nop())
	testutil.AssertErrorContains(t, err, "player template")
}

func TestNewSessionSeedIsReproducible(t *testing.T) {
	cfg := Config{Seed: 7, Monsters: testRegistry(t), Player: strongHero()}
	cfg.Dungeon = world.DefaultConfig(nil)

	a, err := NewSession(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	b, err := NewSession(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	if !slices.Equal(a.Dungeon().Coords(), b.Dungeon().Coords()) {
		t.Errorf("same seed produced different layouts: %v vs %v", a.Dungeon().Coords(), b.Dungeon().Coords())
	}
	if a.ID == b.ID {
		t.Error("sessions share an ID")
	}
}

func TestNewSessionRejectsBadDungeonConfig(t *testing.T) {
	cfg := Config{Seed: 1, Monsters: testRegistry(t), Player: strongHero()}
	cfg.Dungeon = world.Config{Width: 2, Height: 2, RoomCount: 9, RoomTypes: []world.RoomType{world.RoomPuzzle}}

	_, err := NewSession(context.Background(), cfg, zerolog.Nop())
	if !errors.Is(err, world.ErrInvalidConfig) {
		t.Errorf("NewSession() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSessionEnterPuzzleRoom(t *testing.T) {
	s := newTestSession(t, strongHero())

	out, err := s.Enter(context.Background(), puzzleRoom)
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, world.Moved)
	testutil.AssertEqual(t, "current", s.Exploration().Current(), puzzleRoom)
	testutil.AssertEqual(t, "state", s.State(), StateExplore)
}

func TestSessionEnterRejectsUnreachable(t *testing.T) {
	s := newTestSession(t, strongHero())

	_, err := s.Enter(context.Background(), world.Coord{X: 2, Y: 2})
	if !errors.Is(err, world.ErrInvalidTransition) {
		t.Errorf("Enter() error = %v, want ErrInvalidTransition", err)
	}
	testutil.AssertEqual(t, "current", s.Exploration().Current(), startRoom)
}

func TestSessionCombatVictory(t *testing.T) {
	s := newTestSession(t, strongHero())
	ctx := context.Background()

	out, err := s.Enter(ctx, goblinRoom)
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, world.CombatStarted)
	testutil.AssertEqual(t, "monster", out.MonsterID, "goblin")
	testutil.AssertEqual(t, "state", s.State(), StateCombat)
	testutil.AssertEqual(t, "current", s.Exploration().Current(), startRoom)

	if _, err := s.Enter(ctx, puzzleRoom); !errors.Is(err, ErrInCombat) {
		t.Errorf("Enter() during combat error = %v, want ErrInCombat", err)
	}

	result, err := s.Attack(ctx)
	if err != nil {
		t.Fatalf("Attack() error: %v", err)
	}
	testutil.AssertEqual(t, "outcome", result.Outcome, combat.Victory)
	testutil.AssertEqual(t, "state", s.State(), StateExplore)
	testutil.AssertEqual(t, "current", s.Exploration().Current(), goblinRoom)
	if s.Encounter() != nil {
		t.Error("encounter still active after victory")
	}

	// A cleared room is plain floor from now on.
	if _, err := s.Enter(ctx, startRoom); err != nil {
		t.Fatalf("Enter(start) error: %v", err)
	}
	out, err = s.Enter(ctx, goblinRoom)
	if err != nil {
		t.Fatalf("Enter(goblin) error: %v", err)
	}
	testutil.AssertEqual(t, "re-entry kind", out.Kind, world.Moved)
}

func TestSessionBossVictoryWinsRun(t *testing.T) {
	s := newTestSession(t, strongHero())
	ctx := context.Background()

	out, err := s.Enter(ctx, bossRoom)
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "is boss", out.IsBoss, true)
	testutil.AssertEqual(t, "monster", out.MonsterID, "dragon")

	if _, err := s.Attack(ctx); err != nil {
		t.Fatalf("Attack() error: %v", err)
	}
	testutil.AssertEqual(t, "state", s.State(), StateWon)

	if _, err := s.Enter(ctx, startRoom); !errors.Is(err, ErrRunOver) {
		t.Errorf("Enter() after win error = %v, want ErrRunOver", err)
	}
	if _, err := s.Attack(ctx); !errors.Is(err, ErrRunOver) {
		t.Errorf("Attack() after win error = %v, want ErrRunOver", err)
	}
}

func TestSessionDefeatLosesRun(t *testing.T) {
	weak := &gamedata.PlayerDef{ID: "weak", Name: "Weakling", HP: 1, Attack: 0, Defense: 0, Speed: 1}
	s := newTestSession(t, weak)
	ctx := context.Background()

	if _, err := s.Enter(ctx, goblinRoom); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	result, err := s.Attack(ctx)
	if err != nil {
		t.Fatalf("Attack() error: %v", err)
	}
	testutil.AssertEqual(t, "outcome", result.Outcome, combat.Defeat)
	testutil.AssertEqual(t, "state", s.State(), StateLost)
	testutil.AssertEqual(t, "player hp", s.Player().HP, 0)

	if err := s.Retreat(ctx); !errors.Is(err, ErrRunOver) {
		t.Errorf("Retreat() after loss error = %v, want ErrRunOver", err)
	}
}

func TestSessionRetreatRespawnsMonster(t *testing.T) {
	s := newTestSession(t, &gamedata.PlayerDef{ID: "hero", Name: "Hero", HP: 100, Attack: 10, Defense: 5, Speed: 8})
	ctx := context.Background()

	if _, err := s.Enter(ctx, goblinRoom); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if _, err := s.Attack(ctx); err != nil {
		t.Fatalf("Attack() error: %v", err)
	}
	testutil.AssertEqual(t, "goblin hp after one round", s.Encounter().Monster.HP, 22)

	if err := s.Retreat(ctx); err != nil {
		t.Fatalf("Retreat() error: %v", err)
	}
	testutil.AssertEqual(t, "state", s.State(), StateExplore)
	testutil.AssertEqual(t, "current", s.Exploration().Current(), startRoom)

	out, err := s.Enter(ctx, goblinRoom)
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "kind", out.Kind, world.CombatStarted)
	testutil.AssertEqual(t, "fresh goblin hp", s.Encounter().Monster.HP, 30)
}

func TestSessionCommandsOutsideCombat(t *testing.T) {
	s := newTestSession(t, strongHero())
	ctx := context.Background()

	if _, err := s.Attack(ctx); !errors.Is(err, ErrNotInCombat) {
		t.Errorf("Attack() error = %v, want ErrNotInCombat", err)
	}
	if err := s.Retreat(ctx); !errors.Is(err, ErrNotInCombat) {
		t.Errorf("Retreat() error = %v, want ErrNotInCombat", err)
	}
}

func TestSessionSearch(t *testing.T) {
	s := newTestSession(t, strongHero())

	targets := s.Search()
	testutil.AssertEqual(t, "targets", len(targets), 3)
	for _, c := range []world.Coord{puzzleRoom, goblinRoom, bossRoom} {
		if !slices.Contains(targets, c) {
			t.Errorf("Search() = %v, missing %v", targets, c)
		}
	}
	if got := s.Messages()[len(s.Messages())-1]; got == "You search the walls but find nothing new." {
		t.Errorf("last message = %q, want a passage", got)
	}

	// The graph is unchanged by searching.
	testutil.AssertEqual(t, "neighbors", len(s.Exploration().CurrentRoom().Neighbors()), 3)
}

func TestSessionSearchNothingLeft(t *testing.T) {
	s := newTestSession(t, strongHero())
	ctx := context.Background()

	if _, err := s.Enter(ctx, puzzleRoom); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if got := s.Search(); got != nil {
		t.Errorf("Search() = %v, want nil", got)
	}
	testutil.AssertEqual(t, "last message", s.Messages()[len(s.Messages())-1], "You search the walls but find nothing new.")
}

func TestSessionTrapLeavesPlayerAlive(t *testing.T) {
	tests := []struct {
		name   string
		hp     int
		wantHP int
	}{
		{"full health", 100, 100 - trapDamage},
		{"nearly dead", 5, 1},
		{"one hp", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newCorridorSession(t, world.RoomTrap)
			s.Player().HP = tt.hp

			if _, err := s.Enter(context.Background(), world.Coord{X: 1, Y: 0}); err != nil {
				t.Fatalf("Enter() error: %v", err)
			}
			testutil.AssertEqual(t, "hp", s.Player().HP, tt.wantHP)
		})
	}
}

func TestSessionTreasureHealsOnce(t *testing.T) {
	s := newCorridorSession(t, world.RoomTreasure)
	ctx := context.Background()
	s.Player().HP = 50

	if _, err := s.Enter(ctx, world.Coord{X: 1, Y: 0}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "hp after treasure", s.Player().HP, 50+treasureHeal)

	if _, err := s.Enter(ctx, world.Coord{X: 0, Y: 0}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	if _, err := s.Enter(ctx, world.Coord{X: 1, Y: 0}); err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	testutil.AssertEqual(t, "hp after revisit", s.Player().HP, 50+treasureHeal)
}

func TestSessionMessagesAreCapped(t *testing.T) {
	s := newTestSession(t, strongHero())
	for i := 0; i < maxMessages*2; i++ {
		s.Search()
	}
	testutil.AssertEqual(t, "message count", len(s.Messages()), maxMessages)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
		over  bool
	}{
		{StateExplore, "explore", false},
		{StateCombat, "combat", false},
		{StateWon, "won", true},
		{StateLost, "lost", true},
		{State(99), "unknown", false},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, "String", tt.state.String(), tt.want)
		testutil.AssertEqual(t, tt.want+" IsOver", tt.state.IsOver(), tt.over)
	}
}
