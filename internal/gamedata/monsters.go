package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	goerrors "github.com/pixil98/go-errors"
)

// MonsterDef is an immutable monster template loaded from JSON.
type MonsterDef struct {
	ID      string   `json:"id"`               // Unique identifier (e.g., "goblin")
	Name    string   `json:"name"`             // Display name (e.g., "Goblin")
	Glyph   string   `json:"glyph"`            // Single character for rendering
	Color   string   `json:"color"`            // Hex color code (e.g., "#00FF00")
	HP      int      `json:"hp"`               // Maximum hit points
	Attack  int      `json:"attack"`           // Attack power
	Defense int      `json:"defense"`          // Defense value
	Speed   int      `json:"speed"`            // Speed, compared against the opponent's for action counts
	Boss    bool     `json:"boss,omitempty"`   // Only placed in boss rooms
	Skills  []string `json:"skills,omitempty"` // Flavour names shown in the combat panel
}

// Validate checks the template's stats.
func (m *MonsterDef) Validate() error {
	el := goerrors.NewErrorList()

	if m.ID == "" {
		el.Add(fmt.Errorf("id is required"))
	}
	if m.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if m.HP <= 0 {
		el.Add(fmt.Errorf("hp must be positive, got %d", m.HP))
	}
	if m.Attack < 0 || m.Defense < 0 || m.Speed < 0 {
		el.Add(fmt.Errorf("attack, defense and speed must not be negative"))
	}
	if m.Color != "" {
		if _, err := ParseHexColor(m.Color); err != nil {
			el.Add(err)
		}
	}

	if err := el.Err(); err != nil {
		return fmt.Errorf("monster %q: %w", m.ID, err)
	}
	return nil
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster templates from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}
