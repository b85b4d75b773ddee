package game

import (
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Dungeon holds the generator inputs. Its Monsters field is filled from
	// Monsters when the session is created.
	Dungeon world.Config

	Monsters *gamedata.MonsterRegistry
	Player   *gamedata.PlayerDef
}
