package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Monster is a combat instance spawned from a template. A fresh instance is
// created for every fight and discarded when it ends.
type Monster struct {
	Def    *gamedata.MonsterDef
	Name   string
	Symbol rune
	HP     int
	MaxHP  int
	Boss   bool
}

// NewMonster spawns a full-health monster from a template.
func NewMonster(def *gamedata.MonsterDef, boss bool) *Monster {
	return &Monster{
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		HP:     def.HP,
		MaxHP:  def.HP,
		Boss:   boss,
	}
}

// ID returns the template identifier.
func (m *Monster) ID() string {
	return m.Def.ID
}

// Color returns the tcell color for this monster.
func (m *Monster) Color() tcell.Color {
	return m.Def.TCellColor()
}

// Skills returns the template's skill names.
func (m *Monster) Skills() []string {
	return m.Def.Skills
}

// GetName returns the monster's name.
func (m *Monster) GetName() string { return m.Name }

// IsAlive returns true if the monster has HP remaining.
func (m *Monster) IsAlive() bool { return m.HP > 0 }

// GetHP returns current HP.
func (m *Monster) GetHP() int { return m.HP }

// GetMaxHP returns maximum HP.
func (m *Monster) GetMaxHP() int { return m.MaxHP }

// GetAttack returns the template's attack power.
func (m *Monster) GetAttack() int { return m.Def.Attack }

// GetDefense returns the template's defense value.
func (m *Monster) GetDefense() int { return m.Def.Defense }

// GetSpeed returns the template's speed.
func (m *Monster) GetSpeed() int { return m.Def.Speed }

// TakeDamage reduces HP and returns actual damage taken.
func (m *Monster) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > m.HP {
		actual = m.HP
	}
	m.HP -= actual
	return actual
}

var _ combat.Combatant = (*Monster)(nil)
