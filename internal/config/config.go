// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	goerrors "github.com/pixil98/go-errors"

	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Config holds every setting the binary reads from the environment.
// Zero dungeon fields mean "use the default layout".
type Config struct {
	Env     string
	LogFile string

	Seed         int64
	Width        int
	Height       int
	Rooms        int
	RoomTypes    []world.RoomType
	Boss         bool
	BossTemplate string
	PlayerID     string
	MonstersFile string // empty uses the embedded templates

	Telemetry        bool
	HoneycombAPIKey  string
	HoneycombDataset string
}

// Load reads the configuration. Every malformed variable is reported.
func Load() (Config, error) {
	r := &reader{}
	cfg := Config{
		Env:              r.str("DUNGEONCRAWL_ENV", "dev"),
		LogFile:          r.str("DUNGEONCRAWL_LOG_FILE", "dungeoncrawl.log"),
		Seed:             r.int64("DUNGEONCRAWL_SEED", 0),
		Width:            r.int("DUNGEONCRAWL_WIDTH", 0),
		Height:           r.int("DUNGEONCRAWL_HEIGHT", 0),
		Rooms:            r.int("DUNGEONCRAWL_ROOMS", 0),
		RoomTypes:        r.roomTypes("DUNGEONCRAWL_ROOM_TYPES"),
		Boss:             r.bool("DUNGEONCRAWL_BOSS", true),
		BossTemplate:     r.str("DUNGEONCRAWL_BOSS_TEMPLATE", ""),
		PlayerID:         r.str("DUNGEONCRAWL_PLAYER", gamedata.DefaultPlayerID),
		MonstersFile:     r.str("DUNGEONCRAWL_MONSTERS_FILE", ""),
		Telemetry:        r.bool("DUNGEONCRAWL_TELEMETRY", false),
		HoneycombAPIKey:  r.str("HONEYCOMB_DUNGEONCRAWL_API_KEY", ""),
		HoneycombDataset: r.str("HONEYCOMB_DUNGEONCRAWL_DATASET", "dungeoncrawl"),
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.Rooms < 0 {
		r.fail(fmt.Errorf("dungeon dimensions must not be negative"))
	}

	el := goerrors.NewErrorList()
	for _, err := range r.errs {
		el.Add(err)
	}
	if err := el.Err(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dungeon returns the generator config, starting from the default layout.
func (c Config) Dungeon() world.Config {
	d := world.DefaultConfig(nil)
	if c.Width > 0 {
		d.Width = c.Width
	}
	if c.Height > 0 {
		d.Height = c.Height
	}
	if c.Rooms > 0 {
		d.RoomCount = c.Rooms
	}
	if len(c.RoomTypes) > 0 {
		d.RoomTypes = c.RoomTypes
	}
	d.Boss = c.Boss
	d.BossTemplate = c.BossTemplate
	return d
}

// Game loads the templates and assembles the session config.
func (c Config) Game() (game.Config, error) {
	var (
		monsters *gamedata.MonsterRegistry
		err      error
	)
	if c.MonstersFile == "" {
		monsters, err = gamedata.LoadMonsterRegistry()
	} else {
		monsters, err = gamedata.LoadMonsterRegistryFS(os.DirFS(filepath.Dir(c.MonstersFile)), filepath.Base(c.MonstersFile))
	}
	if err != nil {
		return game.Config{}, fmt.Errorf("loading monsters: %w", err)
	}

	player, err := gamedata.LoadPlayer(c.PlayerID)
	if err != nil {
		return game.Config{}, fmt.Errorf("loading player: %w", err)
	}

	dungeon := c.Dungeon()
	dungeon.Monsters = monsters
	if err := dungeon.Validate(); err != nil {
		return game.Config{}, err
	}

	return game.Config{
		Seed:     c.Seed,
		Dungeon:  dungeon,
		Monsters: monsters,
		Player:   player,
	}, nil
}

// reader collects parse failures instead of stopping at the first one.
type reader struct {
	errs []error
}

func (r *reader) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *reader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (r *reader) int64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

// roomTypes parses a comma separated weighted list such as
// "monster,monster,trap".
func (r *reader) roomTypes(key string) []world.RoomType {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var types []world.RoomType
	for _, part := range strings.Split(v, ",") {
		t, err := world.ParseRoomType(strings.TrimSpace(part))
		if err != nil {
			r.fail(fmt.Errorf("%s: %w", key, err))
			continue
		}
		types = append(types, t)
	}
	return types
}
