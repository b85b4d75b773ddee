// Package game ties the dungeon, exploration and combat together into a run.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode: the player moves between rooms.
	StateExplore State = iota
	// StateCombat means an encounter must be resolved before moving on.
	StateCombat
	// StateWon means the boss has been defeated.
	StateWon
	// StateLost means the player has fallen.
	StateLost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsOver returns true once the run has ended.
func (s State) IsOver() bool {
	return s == StateWon || s == StateLost
}
