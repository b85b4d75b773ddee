package world

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDegenerateDungeon reports that carving stopped before the requested
	// room count was reached. It is informational: the smaller dungeon is usable.
	ErrDegenerateDungeon = errors.New("degenerate dungeon")
	// ErrUnknownMonsterTemplate is returned when a combat room cannot be
	// assigned a monster template.
	ErrUnknownMonsterTemplate = errors.New("unknown monster template")
	// ErrInvalidConfig is returned when generator inputs fail validation.
	ErrInvalidConfig = errors.New("invalid dungeon config")
)

// Dungeon is the generated room graph. It is read-only after generation.
type Dungeon struct {
	grid      Grid
	rooms     map[Coord]*Room
	order     []Coord // carve order
	start     Coord
	boss      Coord
	hasBoss   bool
	requested int
}

// Grid returns the bounds the dungeon was carved in.
func (d *Dungeon) Grid() Grid {
	return d.grid
}

// RoomAt returns the room at c, or false if c was not carved.
func (d *Dungeon) RoomAt(c Coord) (*Room, bool) {
	r, ok := d.rooms[c]
	return r, ok
}

// Start returns the start room coordinate.
func (d *Dungeon) Start() Coord {
	return d.start
}

// Boss returns the boss room coordinate, if the dungeon has one.
func (d *Dungeon) Boss() (Coord, bool) {
	return d.boss, d.hasBoss
}

// Len returns the number of carved rooms.
func (d *Dungeon) Len() int {
	return len(d.order)
}

// Rooms returns every room in carve order.
func (d *Dungeon) Rooms() []*Room {
	out := make([]*Room, 0, len(d.order))
	for _, c := range d.order {
		out = append(out, d.rooms[c])
	}
	return out
}

// Coords returns every carved coordinate in carve order.
func (d *Dungeon) Coords() []Coord {
	return slices.Clone(d.order)
}

// Requested returns the room count the generator was asked for.
func (d *Dungeon) Requested() int {
	return d.requested
}

// Shortfall returns a wrapped ErrDegenerateDungeon if fewer rooms were carved
// than requested, or nil.
func (d *Dungeon) Shortfall() error {
	if len(d.order) >= d.requested {
		return nil
	}
	return fmt.Errorf("%w: carved %d of %d rooms", ErrDegenerateDungeon, len(d.order), d.requested)
}

// Distances returns the shortest neighbour-edge distance from one room to
// every room reachable from it.
func (d *Dungeon) Distances(from Coord) map[Coord]int {
	dist := make(map[Coord]int, len(d.rooms))
	if _, ok := d.rooms[from]; !ok {
		return dist
	}
	dist[from] = 0
	queue := []Coord{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range d.rooms[cur].neighbors {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Reachable returns the rooms reachable from one room, in carve order.
func (d *Dungeon) Reachable(from Coord) []Coord {
	dist := d.Distances(from)
	out := make([]Coord, 0, len(dist))
	for _, c := range d.order {
		if _, ok := dist[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// IsConnected returns true if every room is reachable from the start room.
func (d *Dungeon) IsConnected() bool {
	return len(d.Reachable(d.start)) == len(d.rooms)
}

// farthestFrom returns the room with the greatest distance from c. Ties go
// to the room carved last.
func (d *Dungeon) farthestFrom(c Coord) Coord {
	dist := d.Distances(c)
	best, bestDist := c, -1
	for _, rc := range d.order {
		if dd, ok := dist[rc]; ok && dd >= bestDist {
			best, bestDist = rc, dd
		}
	}
	return best
}
