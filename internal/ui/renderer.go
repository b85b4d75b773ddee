package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Map layout. Each room is a label cellWidth-2 columns wide followed by a
// two column horizontal connector; rows are separated by a connector line.
const (
	mapX       = 2
	mapY       = 2
	cellWidth  = 7
	labelWidth = cellWidth - 2
	rowHeight  = 2
	panelGap   = 4
	hpBarWidth = 20
)

// View is a snapshot of everything the renderer draws.
type View struct {
	Dungeon  *world.Dungeon
	Explore  *world.Exploration
	Player   *entity.Player
	Monster  *entity.Monster // nil outside combat
	Status   string          // banner under the stats, e.g. "VICTORY"
	Messages []string
	Seed     int64
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

var (
	styleDefault  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleExplored = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMonster  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHPFull   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHPLow    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Render draws the map and the side panel.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	r.renderMap(v)
	r.renderPanel(v)
	r.screen.Show()
}

// CellOrigin returns the screen position of a room label.
func CellOrigin(c world.Coord) (x, y int) {
	return mapX + c.X*cellWidth, mapY + c.Y*rowHeight
}

// CellAt maps a screen position back to the grid cell whose label covers it.
func CellAt(g world.Grid, x, y int) (world.Coord, bool) {
	dx, dy := x-mapX, y-mapY
	if dx < 0 || dy < 0 || dy%rowHeight != 0 || dx%cellWidth >= labelWidth {
		return world.Coord{}, false
	}
	c := world.Coord{X: dx / cellWidth, Y: dy / rowHeight}
	if !g.InBounds(c) {
		return world.Coord{}, false
	}
	return c, true
}

func (r *Renderer) renderMap(v View) {
	for _, room := range v.Dungeon.Rooms() {
		vis := v.Explore.VisibilityOf(room.Coord)
		if vis == world.Hidden {
			continue
		}

		label, style := roomLabel(room, vis)
		x, y := CellOrigin(room.Coord)
		r.screen.DrawText(x+(labelWidth-len(label))/2, y, label, style)

		// Connectors are drawn from the west and north ends only.
		for _, n := range room.Neighbors() {
			if v.Explore.VisibilityOf(n) == world.Hidden {
				continue
			}
			switch {
			case n.X == room.Coord.X+1:
				r.screen.DrawText(x+labelWidth, y, "──", styleDim)
			case n.Y == room.Coord.Y+1:
				r.screen.SetContent(x+labelWidth/2, y+1, '│', styleDim)
			}
		}
	}
}

func roomLabel(room *world.Room, vis world.Visibility) (string, tcell.Style) {
	switch vis {
	case world.Current:
		return "[@]", stylePlayer
	case world.Explored:
		if room.Type.IsCombat() || room.Type == world.RoomStart {
			return "[ ]", styleExplored
		}
		return room.Glyph(), styleExplored
	}

	switch room.Type {
	case world.RoomBoss:
		return room.Glyph(), styleBoss
	case world.RoomMonster:
		return room.Glyph(), styleMonster
	default:
		return room.Glyph(), styleDefault
	}
}

func (r *Renderer) renderPanel(v View) {
	g := v.Dungeon.Grid()
	x := mapX + g.Width*cellWidth + panelGap
	y := mapY

	r.screen.DrawText(x, y, "DUNGEON CRAWL", styleTitle)
	y++
	r.screen.DrawText(x, y, fmt.Sprintf("seed %d  rooms %d/%d", v.Seed, len(v.Explore.Visited()), v.Dungeon.Len()), styleDim)
	y += 2

	p := v.Player
	r.screen.DrawText(x, y, fmt.Sprintf("%c %s", p.Symbol, p.Name), stylePlayer)
	y++
	r.drawHP(x, y, p.HP, p.MaxHP)
	y++
	r.screen.DrawText(x, y, fmt.Sprintf("ATK %d  DEF %d  SPD %d", p.Attack, p.Defense, p.Speed), styleDefault)
	y += 2

	if m := v.Monster; m != nil {
		style := tcell.StyleDefault.Foreground(m.Color()).Bold(m.Boss)
		r.screen.DrawText(x, y, fmt.Sprintf("%c %s", m.Symbol, m.Name), style)
		y++
		r.drawHP(x, y, m.HP, m.MaxHP)
		y++
		r.screen.DrawText(x, y, fmt.Sprintf("ATK %d  DEF %d  SPD %d", m.GetAttack(), m.GetDefense(), m.GetSpeed()), styleDefault)
		y++
		if skills := m.Skills(); len(skills) > 0 {
			r.screen.DrawText(x, y, "skills: "+strings.Join(skills, ", "), styleDim)
			y++
		}
		y++
	}

	if v.Status != "" {
		r.screen.DrawText(x, y, v.Status, styleTitle)
		y += 2
	}

	_, height := r.screen.Size()
	help := helpText(v)
	space := max(height-y-2, 0)
	msgs := v.Messages
	if len(msgs) > space {
		msgs = msgs[len(msgs)-space:]
	}
	for _, m := range msgs {
		r.screen.DrawText(x, y, m, styleDefault)
		y++
	}

	r.screen.DrawText(mapX, height-1, help, styleDim)
}

func helpText(v View) string {
	switch {
	case v.Status != "":
		return "n new run   q quit"
	case v.Monster != nil:
		return "a attack   r retreat   q quit"
	default:
		return "arrows/click move   s search   q quit"
	}
}

func (r *Renderer) drawHP(x, y, hp, maxHP int) {
	filled := 0
	if maxHP > 0 {
		filled = hp * hpBarWidth / maxHP
	}
	if hp > 0 && filled == 0 {
		filled = 1
	}
	style := styleHPFull
	if hp*4 <= maxHP {
		style = styleHPLow
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", hpBarWidth-filled)
	x = r.screen.DrawText(x, y, bar, style)
	r.screen.DrawText(x+1, y, fmt.Sprintf("%d/%d", hp, maxHP), styleDefault)
}
