// Package world provides dungeon generation, the room graph and exploration state.
package world

import "fmt"

// RoomType is the semantic category of a room.
type RoomType string

const (
	RoomStart    RoomType = "start"
	RoomMonster  RoomType = "monster"
	RoomPuzzle   RoomType = "puzzle"
	RoomTrap     RoomType = "trap"
	RoomRiddle   RoomType = "riddle"
	RoomTreasure RoomType = "treasure"
	RoomBoss     RoomType = "boss"
)

// IsCombat returns true if entering the room starts a fight.
func (t RoomType) IsCombat() bool {
	return t == RoomMonster || t == RoomBoss
}

// IsWeighted returns true if the type may appear in a generator type list.
// Start and boss rooms are placed by the generator itself.
func (t RoomType) IsWeighted() bool {
	switch t {
	case RoomMonster, RoomPuzzle, RoomTrap, RoomRiddle, RoomTreasure:
		return true
	default:
		return false
	}
}

// Glyph returns the display symbol for the room type.
func (t RoomType) Glyph() string {
	switch t {
	case RoomStart:
		return "@"
	case RoomMonster:
		return "(>_<)"
	case RoomPuzzle:
		return "[?]"
	case RoomTrap:
		return "/!\\"
	case RoomRiddle:
		return "{?}"
	case RoomTreasure:
		return "($)"
	case RoomBoss:
		return "<[B]>"
	default:
		return "[ ]"
	}
}

// ParseRoomType converts a type tag into a RoomType.
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	switch t {
	case RoomStart, RoomMonster, RoomPuzzle, RoomTrap, RoomRiddle, RoomTreasure, RoomBoss:
		return t, nil
	default:
		return "", fmt.Errorf("unknown room type %q", s)
	}
}
