package world

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/pixil98/go-errors"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth     = 5
	DefaultHeight    = 5
	DefaultRoomCount = 12
)

// DefaultRoomTypes is the weighted type list. Weights are expressed by repetition.
var DefaultRoomTypes = []RoomType{
	RoomMonster, RoomMonster, RoomMonster,
	RoomPuzzle, RoomPuzzle,
	RoomTrap, RoomTrap,
	RoomRiddle,
	RoomTreasure, RoomTreasure,
}

// Rand is the subset of *math/rand.Rand used by the generator.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// TemplateSource resolves monster template IDs for combat rooms.
type TemplateSource interface {
	Has(id string) bool
	MonsterIDs() []string
	BossIDs() []string
}

// Config holds generator inputs.
type Config struct {
	Width     int
	Height    int
	RoomCount int
	RoomTypes []RoomType

	// Boss places a boss room at the cell farthest from the start.
	Boss bool
	// BossTemplate pins the boss monster. Empty means draw from Monsters.BossIDs.
	BossTemplate string

	Monsters TemplateSource
}

// DefaultConfig returns the standard 5x5, twelve room layout.
func DefaultConfig(monsters TemplateSource) Config {
	types := make([]RoomType, len(DefaultRoomTypes))
	copy(types, DefaultRoomTypes)
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		RoomCount: DefaultRoomCount,
		RoomTypes: types,
		Boss:      true,
		Monsters:  monsters,
	}
}

// Validate checks the structural constraints on the config.
func (c Config) Validate() error {
	el := goerrors.NewErrorList()

	if c.Width <= 0 {
		el.Add(fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if c.Height <= 0 {
		el.Add(fmt.Errorf("height must be positive, got %d", c.Height))
	}
	if c.RoomCount < 1 {
		el.Add(fmt.Errorf("room count must be at least 1, got %d", c.RoomCount))
	} else if c.Width > 0 && c.Height > 0 && c.RoomCount > c.Width*c.Height {
		el.Add(fmt.Errorf("room count %d exceeds grid capacity %d", c.RoomCount, c.Width*c.Height))
	}
	if len(c.RoomTypes) == 0 {
		el.Add(fmt.Errorf("room type list is empty"))
	}
	for i, t := range c.RoomTypes {
		if !t.IsWeighted() {
			el.Add(fmt.Errorf("room type %d: %q cannot be drawn from the type list", i, t))
		}
	}

	if err := el.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Generate carves a dungeon using a randomized frontier walk.
//
// Each step picks a uniformly random frontier cell, scans the four directions
// in shuffled order and carves the first free in-bounds cell. A cell with no
// free neighbour leaves the frontier. Adjacency is geometric: any two carved
// cells that touch are neighbours, so the graph is a spanning tree plus the
// incidental edges between touching cells.
func Generate(ctx context.Context, cfg Config, rng Rand) (*Dungeon, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	d, err := generate(cfg, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	boss, _ := d.Boss()
	span.SetAttributes(
		attribute.Int("dungeon.width", cfg.Width),
		attribute.Int("dungeon.height", cfg.Height),
		attribute.Int("dungeon.requested_rooms", cfg.RoomCount),
		attribute.Int("dungeon.room_count", d.Len()),
		attribute.String("dungeon.boss", boss.Key()),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return d, nil
}

func generate(cfg Config, rng Rand) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Boss && cfg.BossTemplate != "" && (cfg.Monsters == nil || !cfg.Monsters.Has(cfg.BossTemplate)) {
		return nil, fmt.Errorf("%w: boss template %q", ErrUnknownMonsterTemplate, cfg.BossTemplate)
	}

	grid := Grid{Width: cfg.Width, Height: cfg.Height}
	start := Coord{X: 0, Y: cfg.Height / 2}

	order := carve(grid, start, cfg.RoomCount, rng)

	d := &Dungeon{
		grid:      grid,
		rooms:     make(map[Coord]*Room, len(order)),
		order:     order,
		start:     start,
		requested: cfg.RoomCount,
	}

	// Placeholder rooms so distances can be computed before typing.
	for _, c := range order {
		d.rooms[c] = &Room{Coord: c}
	}
	for _, c := range order {
		for _, n := range grid.Neighbors4(c) {
			if _, ok := d.rooms[n]; ok {
				d.rooms[c].link(n)
			}
		}
	}

	if cfg.Boss && len(order) > 1 {
		d.boss = d.farthestFrom(start)
		d.hasBoss = true
	}

	for _, c := range order {
		t, monsterID, err := d.pickRoom(cfg, c, rng)
		if err != nil {
			return nil, err
		}
		neighbors := d.rooms[c].neighbors
		room := newRoom(c, t, monsterID)
		room.neighbors = neighbors
		d.rooms[c] = room
	}

	return d, nil
}

// carve returns the carved cells in carve order.
func carve(grid Grid, start Coord, roomCount int, rng Rand) []Coord {
	carved := mapset.New[Coord]()
	carved.Put(start)
	order := []Coord{start}
	frontier := []Coord{start}

	for carved.Size() < roomCount && len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		cur := frontier[i]

		dirs := Directions
		rng.Shuffle(len(dirs), func(a, b int) { dirs[a], dirs[b] = dirs[b], dirs[a] })

		expanded := false
		for _, dir := range dirs {
			next := cur.Add(dir)
			if !grid.InBounds(next) || carved.Has(next) {
				continue
			}
			carved.Put(next)
			order = append(order, next)
			frontier = append(frontier, next)
			expanded = true
			break
		}

		if !expanded {
			frontier = append(frontier[:i], frontier[i+1:]...)
		}
	}

	return order
}

// pickRoom decides the type and monster template of the room at c.
func (d *Dungeon) pickRoom(cfg Config, c Coord, rng Rand) (RoomType, string, error) {
	switch {
	case c == d.start:
		return RoomStart, "", nil
	case d.hasBoss && c == d.boss:
		id, err := pickBossTemplate(cfg, rng)
		if err != nil {
			return "", "", fmt.Errorf("boss room %s: %w", c, err)
		}
		return RoomBoss, id, nil
	}

	t := cfg.RoomTypes[rng.Intn(len(cfg.RoomTypes))]
	if !t.IsCombat() {
		return t, "", nil
	}

	var ids []string
	if cfg.Monsters != nil {
		ids = cfg.Monsters.MonsterIDs()
	}
	if len(ids) == 0 {
		return "", "", fmt.Errorf("monster room %s: %w: no monster templates available", c, ErrUnknownMonsterTemplate)
	}
	return t, ids[rng.Intn(len(ids))], nil
}

func pickBossTemplate(cfg Config, rng Rand) (string, error) {
	if cfg.BossTemplate != "" {
		return cfg.BossTemplate, nil
	}
	var ids []string
	if cfg.Monsters != nil {
		ids = cfg.Monsters.BossIDs()
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: no boss templates available", ErrUnknownMonsterTemplate)
	}
	return ids[rng.Intn(len(ids))], nil
}
