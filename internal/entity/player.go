// Package entity provides the player and monster instances that fight.
package entity

import (
	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Player is the single adventurer. It persists for the whole run, so damage
// taken in one fight carries into the next.
type Player struct {
	Name   string
	Symbol rune

	// Combat stats
	HP, MaxHP int
	Attack    int
	Defense   int
	Speed     int
}

// NewPlayer creates a player with default stats; use NewPlayerFromDef to load from data.
func NewPlayer(name string) *Player {
	return &Player{
		Name:    name,
		Symbol:  '@',
		HP:      100, // Default stats
		MaxHP:   100,
		Attack:  10,
		Defense: 5,
		Speed:   8,
	}
}

// NewPlayerFromDef creates a player from a data-driven definition.
func NewPlayerFromDef(def *gamedata.PlayerDef) *Player {
	p := NewPlayer(def.Name)
	if len(def.Glyph) > 0 {
		p.Symbol = rune(def.Glyph[0])
	}
	p.HP = def.HP
	p.MaxHP = def.HP
	p.Attack = def.Attack
	p.Defense = def.Defense
	p.Speed = def.Speed
	return p
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// GetHP returns current HP.
func (p *Player) GetHP() int { return p.HP }

// GetMaxHP returns maximum HP.
func (p *Player) GetMaxHP() int { return p.MaxHP }

// GetAttack returns attack stat.
func (p *Player) GetAttack() int { return p.Attack }

// GetDefense returns defense stat.
func (p *Player) GetDefense() int { return p.Defense }

// GetSpeed returns speed stat.
func (p *Player) GetSpeed() int { return p.Speed }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.HP {
		actual = p.HP
	}
	p.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.HP+actual > p.MaxHP {
		actual = p.MaxHP - p.HP
	}
	p.HP += actual
	return actual
}

// Ensure Player implements combat.Combatant
var _ combat.Combatant = (*Player)(nil)
