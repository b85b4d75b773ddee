package world

import "slices"

// Room is one carved cell of the dungeon.
//
// Only monster and boss rooms carry a monster template; the field is
// unexported so the pairing cannot be broken from outside the package.
type Room struct {
	Coord     Coord
	Type      RoomType
	neighbors []Coord
	monsterID string
}

func newRoom(c Coord, t RoomType, monsterID string) *Room {
	if !t.IsCombat() {
		monsterID = ""
	}
	return &Room{Coord: c, Type: t, monsterID: monsterID}
}

// Monster returns the monster template ID for combat rooms.
func (r *Room) Monster() (string, bool) {
	if !r.Type.IsCombat() || r.monsterID == "" {
		return "", false
	}
	return r.monsterID, true
}

// Neighbors returns a copy of the room's neighbour list.
func (r *Room) Neighbors() []Coord {
	return slices.Clone(r.neighbors)
}

// HasNeighbor returns true if c is adjacent to the room in the graph.
func (r *Room) HasNeighbor(c Coord) bool {
	return slices.Contains(r.neighbors, c)
}

// Glyph returns the display symbol of the room.
func (r *Room) Glyph() string {
	return r.Type.Glyph()
}

// link adds c to the neighbour set. Returns false if already present.
func (r *Room) link(c Coord) bool {
	if r.HasNeighbor(c) {
		return false
	}
	r.neighbors = append(r.neighbors, c)
	return true
}
