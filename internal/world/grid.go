package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a cell position on the dungeon grid. It is the sole identity of a room.
type Coord struct {
	X, Y int
}

// Key returns the "x,y" string form of the coordinate.
func (c Coord) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// String implements fmt.Stringer.
func (c Coord) String() string {
	return "(" + c.Key() + ")"
}

// Add returns the coordinate offset by the given direction.
func (c Coord) Add(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// ParseKey decodes a key produced by Coord.Key.
func ParseKey(key string) (Coord, error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return Coord{}, fmt.Errorf("invalid coordinate key %q", key)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid x in key %q: %w", key, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid y in key %q: %w", key, err)
	}
	return Coord{X: x, Y: y}, nil
}

// Direction is one of the four orthogonal directions.
type Direction int

const (
	East Direction = iota
	West
	South
	North
)

// Directions lists every direction in the canonical scan order.
var Directions = [4]Direction{East, West, South, North}

// Delta returns the x/y offset of the direction. South is +y (down the screen).
func (d Direction) Delta() (int, int) {
	switch d {
	case East:
		return 1, 0
	case West:
		return -1, 0
	case South:
		return 0, 1
	case North:
		return 0, -1
	default:
		return 0, 0
	}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	case South:
		return "south"
	case North:
		return "north"
	default:
		return "unknown"
	}
}

// DirectionBetween returns the direction leading from a to an orthogonally
// adjacent b.
func DirectionBetween(a, b Coord) (Direction, bool) {
	for _, d := range Directions {
		if a.Add(d) == b {
			return d, true
		}
	}
	return 0, false
}

// Grid describes the bounds of the dungeon.
type Grid struct {
	Width  int
	Height int
}

// InBounds returns true if c lies inside [0,Width)x[0,Height).
func (g Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Index encodes c as a dense integer key. The caller guarantees c is in bounds.
func (g Grid) Index(c Coord) int {
	return c.Y*g.Width + c.X
}

// CoordOf decodes an integer key produced by Index.
func (g Grid) CoordOf(i int) Coord {
	return Coord{X: i % g.Width, Y: i / g.Width}
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Neighbors4 returns the in-bounds orthogonal neighbours of c in
// East, West, South, North order.
func (g Grid) Neighbors4(c Coord) []Coord {
	out := make([]Coord, 0, len(Directions))
	for _, d := range Directions {
		if n := c.Add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}
