package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// ErrInvalidTransition is returned when the target room is neither a
// neighbour of the current room nor already visited.
var ErrInvalidTransition = errors.New("invalid transition")

// Visibility classifies a coordinate for rendering.
type Visibility int

const (
	Hidden Visibility = iota
	Current
	Neighbor
	Explored
)

// String returns a human-readable visibility name.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Current:
		return "current"
	case Neighbor:
		return "neighbor"
	case Explored:
		return "explored"
	default:
		return "unknown"
	}
}

// EnterKind says what happened when a room was entered.
type EnterKind int

const (
	// Moved means the current room changed.
	Moved EnterKind = iota
	// CombatStarted means the room holds a monster that must be defeated first.
	CombatStarted
)

// EnterOutcome is the result of a successful Enter.
type EnterOutcome struct {
	Kind      EnterKind
	Target    Coord
	MonsterID string // set when Kind is CombatStarted
	IsBoss    bool
}

// Exploration tracks where the player is and which rooms they have entered.
type Exploration struct {
	dungeon *Dungeon
	current Coord
	visited mapset.Set[Coord]
}

// NewExploration places the player in the start room.
func NewExploration(d *Dungeon) *Exploration {
	e := &Exploration{
		dungeon: d,
		current: d.Start(),
		visited: mapset.New[Coord](),
	}
	e.visited.Put(d.Start())
	return e
}

// Current returns the coordinate of the room the player is in.
func (e *Exploration) Current() Coord {
	return e.current
}

// CurrentRoom returns the room the player is in.
func (e *Exploration) CurrentRoom() *Room {
	r, _ := e.dungeon.RoomAt(e.current)
	return r
}

// HasVisited returns true if the player has entered the room at c.
func (e *Exploration) HasVisited(c Coord) bool {
	return e.visited.Has(c)
}

// Visited returns the visited coordinates sorted by row, then column.
func (e *Exploration) Visited() []Coord {
	out := make([]Coord, 0, e.visited.Size())
	e.visited.Each(func(c Coord) {
		out = append(out, c)
	})
	slices.SortFunc(out, func(a, b Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// CanEnter returns true if target is a neighbour of the current room.
func (e *Exploration) CanEnter(target Coord) bool {
	return e.CurrentRoom().HasNeighbor(target)
}

// canTransition also allows backtracking to any visited room.
func (e *Exploration) canTransition(target Coord) bool {
	return e.CanEnter(target) || e.visited.Has(target)
}

// Enter requests a move to target. Combat rooms that have not been cleared
// report CombatStarted and leave the current room unchanged until
// ResolveCombatVictory is called.
func (e *Exploration) Enter(target Coord) (EnterOutcome, error) {
	if !e.canTransition(target) {
		return EnterOutcome{}, fmt.Errorf("%w: %s is not reachable from %s", ErrInvalidTransition, target, e.current)
	}

	room, _ := e.dungeon.RoomAt(target)
	if id, ok := room.Monster(); ok && !e.visited.Has(target) {
		return EnterOutcome{
			Kind:      CombatStarted,
			Target:    target,
			MonsterID: id,
			IsBoss:    room.Type == RoomBoss,
		}, nil
	}

	e.moveTo(target)
	return EnterOutcome{Kind: Moved, Target: target}, nil
}

// ResolveCombatVictory completes a transition into a combat room after its
// monster has been defeated.
func (e *Exploration) ResolveCombatVictory(target Coord) error {
	if !e.canTransition(target) {
		return fmt.Errorf("%w: %s is not reachable from %s", ErrInvalidTransition, target, e.current)
	}
	e.moveTo(target)
	return nil
}

func (e *Exploration) moveTo(target Coord) {
	e.current = target
	e.visited.Put(target)
}

// VisibilityOf classifies c relative to the player's position.
func (e *Exploration) VisibilityOf(c Coord) Visibility {
	switch {
	case c == e.current:
		return Current
	case e.visited.Has(c):
		return Explored
	case e.CanEnter(c):
		return Neighbor
	default:
		return Hidden
	}
}

// CanSearch returns true if the current room has unvisited neighbours.
func (e *Exploration) CanSearch() bool {
	return len(e.SearchTargets()) > 0
}

// SearchTargets returns the unvisited neighbours of the current room. It
// only surfaces existing edges; the room graph is never modified.
func (e *Exploration) SearchTargets() []Coord {
	var out []Coord
	for _, n := range e.CurrentRoom().neighbors {
		if !e.visited.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
