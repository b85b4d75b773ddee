package gamedata

import (
	"fmt"

	goerrors "github.com/pixil98/go-errors"
)

// DefaultPlayerID is the template used when none is configured.
const DefaultPlayerID = "hero"

// PlayerDef defines a playable character loaded from JSON.
type PlayerDef struct {
	ID      string `json:"id"`      // Unique identifier (e.g., "hero")
	Name    string `json:"name"`    // Display name
	Glyph   string `json:"glyph"`   // Single character for rendering
	HP      int    `json:"hp"`      // Maximum hit points
	Attack  int    `json:"attack"`  // Attack power
	Defense int    `json:"defense"` // Defense value
	Speed   int    `json:"speed"`   // Speed
}

// Validate checks the template's stats.
func (p *PlayerDef) Validate() error {
	el := goerrors.NewErrorList()
	if p.ID == "" {
		el.Add(fmt.Errorf("id is required"))
	}
	if p.HP <= 0 {
		el.Add(fmt.Errorf("hp must be positive, got %d", p.HP))
	}
	if p.Attack < 0 || p.Defense < 0 || p.Speed < 0 {
		el.Add(fmt.Errorf("attack, defense and speed must not be negative"))
	}
	if err := el.Err(); err != nil {
		return fmt.Errorf("player %q: %w", p.ID, err)
	}
	return nil
}

// PlayersFile represents the structure of player.json.
type PlayersFile struct {
	Players []PlayerDef `json:"players"`
}

// LoadPlayer returns the player template with the given ID.
func LoadPlayer(id string) (*PlayerDef, error) {
	file, err := Load[PlayersFile]("player.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Players {
		if file.Players[i].ID == id {
			def := file.Players[i]
			if err := def.Validate(); err != nil {
				return nil, err
			}
			return &def, nil
		}
	}
	return nil, fmt.Errorf("player template %q not found", id)
}
