package game

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// scriptedRand replays fixed Intn results and never reorders on Shuffle.
type scriptedRand struct {
	values []int
	pos    int
}

func (r *scriptedRand) Intn(n int) int {
	if r.pos >= len(r.values) {
		return 0
	}
	v := r.values[r.pos] % n
	r.pos++
	return v
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

func testRegistry(t *testing.T) *gamedata.MonsterRegistry {
	t.Helper()
	reg, err := gamedata.NewMonsterRegistry([]gamedata.MonsterDef{
		{ID: "goblin", Name: "Goblin", Glyph: "g", HP: 30, Attack: 5, Defense: 2, Speed: 8},
		{ID: "dragon", Name: "Dragon", Glyph: "D", HP: 20, Attack: 1, Defense: 0, Speed: 8, Boss: true},
	})
	if err != nil {
		t.Fatalf("NewMonsterRegistry() error: %v", err)
	}
	return reg
}

func strongHero() *gamedata.PlayerDef {
	return &gamedata.PlayerDef{ID: "hero", Name: "Hero", Glyph: "@", HP: 100, Attack: 50, Defense: 5, Speed: 8}
}

// newTestSession builds the 3x3 layout used throughout these tests:
//
//	(0,0) boss dragon
//	(0,1) start  -  (1,1) puzzle
//	(0,2) goblin
func newTestSession(t *testing.T, player *gamedata.PlayerDef) *Session {
	t.Helper()
	cfg := Config{
		Seed: 42,
		Dungeon: world.Config{
			Width:     3,
			Height:    3,
			RoomCount: 4,
			RoomTypes: []world.RoomType{world.RoomPuzzle, world.RoomMonster},
			Boss:      true,
		},
		Monsters: testRegistry(t),
		Player:   player,
	}
	s, err := newSession(context.Background(), cfg, cfg.Seed, &scriptedRand{values: []int{0, 0, 0, 0, 1, 0, 0}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("newSession() error: %v", err)
	}
	return s
}

// newCorridorSession builds a two-room corridor whose second room has type t.
func newCorridorSession(t *testing.T, rt world.RoomType) *Session {
	t.Helper()
	cfg := Config{
		Dungeon: world.Config{
			Width:     2,
			Height:    1,
			RoomCount: 2,
			RoomTypes: []world.RoomType{rt},
		},
		Monsters: testRegistry(t),
		Player:   strongHero(),
	}
	s, err := newSession(context.Background(), cfg, 1, &scriptedRand{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("newSession() error: %v", err)
	}
	return s
}
