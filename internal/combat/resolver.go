// Package combat provides the turn-based combat resolver.
package combat

import "fmt"

// Combatant is the interface for any entity that can participate in combat.
// Both the player and monsters implement this interface.
type Combatant interface {
	// Identity
	GetName() string
	IsAlive() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int
	GetSpeed() int

	// TakeDamage reduces HP, never below zero, and returns the damage taken.
	TakeDamage(amount int) int
}

// Outcome is the state of an encounter after a round.
type Outcome int

const (
	// Ongoing means both sides are still standing.
	Ongoing Outcome = iota
	// Victory means the monster was defeated.
	Victory
	// Defeat means the player was defeated.
	Defeat
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// IsTerminal returns true for Victory and Defeat.
func (o Outcome) IsTerminal() bool {
	return o == Victory || o == Defeat
}

// RoundResult reports what happened in one round.
type RoundResult struct {
	Outcome        Outcome
	PlayerHP       int
	MonsterHP      int
	PlayerActions  int // attacks the player made
	MonsterActions int // attacks the monster made
	Log            []string
}

// ResolveRound plays one round: the player attacks first, then the monster
// if it survived. Damage is fully determined by the stats.
func ResolveRound(player, monster Combatant) RoundResult {
	var result RoundResult

	result.PlayerActions = attackSequence(player, monster, &result.Log)
	if !monster.IsAlive() {
		result.Log = append(result.Log, monster.GetName()+" is defeated!")
		result.Outcome = Victory
		result.PlayerHP = player.GetHP()
		result.MonsterHP = monster.GetHP()
		return result
	}

	result.MonsterActions = attackSequence(monster, player, &result.Log)
	result.PlayerHP = player.GetHP()
	result.MonsterHP = monster.GetHP()
	if !player.IsAlive() {
		result.Log = append(result.Log, player.GetName()+" has fallen.")
		result.Outcome = Defeat
		return result
	}

	result.Outcome = Ongoing
	return result
}

// attackSequence performs the attacker's actions for the round, stopping as
// soon as the defender drops. Returns the number of attacks made.
func attackSequence(attacker, defender Combatant, log *[]string) int {
	actions := ActionCount(attacker, defender)
	damage := Damage(attacker.GetAttack(), defender.GetDefense())

	made := 0
	for made < actions && defender.IsAlive() {
		defender.TakeDamage(damage)
		made++
		*log = append(*log, fmt.Sprintf("%s %s %s for %d damage (%d/%d HP).",
			attacker.GetName(), DamageVerb(damage), defender.GetName(), damage,
			defender.GetHP(), defender.GetMaxHP()))
	}
	return made
}
