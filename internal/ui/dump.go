package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/dungeoncrawl/internal/world"
)

var (
	dumpConnector = color.Style{color.FgGray}
	dumpStart     = color.Style{color.FgGreen, color.OpBold}
	dumpBoss      = color.Style{color.FgMagenta, color.OpBold}
	dumpMonster   = color.Style{color.FgRed}
	dumpTrap      = color.Style{color.FgYellow}
	dumpTreasure  = color.Style{color.FgYellow, color.OpBold}
	dumpOther     = color.Style{color.FgBlue}
)

// DumpMap writes the whole dungeon, ignoring visibility, as a coloured
// ascii map using the same layout as the terminal renderer.
func DumpMap(w io.Writer, d *world.Dungeon) error {
	g := d.Grid()
	var b strings.Builder

	for y := 0; y < g.Height; y++ {
		var rooms, links strings.Builder
		for x := 0; x < g.Width; x++ {
			room, ok := d.RoomAt(world.Coord{X: x, Y: y})
			if !ok {
				rooms.WriteString(strings.Repeat(" ", cellWidth))
				links.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}

			label := room.Glyph()
			pad := labelWidth - len(label)
			rooms.WriteString(strings.Repeat(" ", pad/2))
			rooms.WriteString(dumpStyle(room.Type).Sprint(label))
			rooms.WriteString(strings.Repeat(" ", pad-pad/2))

			east := room.HasNeighbor(world.Coord{X: x + 1, Y: y})
			south := room.HasNeighbor(world.Coord{X: x, Y: y + 1})
			if east {
				rooms.WriteString(dumpConnector.Sprint("──"))
			} else {
				rooms.WriteString("  ")
			}
			links.WriteString(strings.Repeat(" ", labelWidth/2))
			if south {
				links.WriteString(dumpConnector.Sprint("│"))
			} else {
				links.WriteString(" ")
			}
			links.WriteString(strings.Repeat(" ", cellWidth-labelWidth/2-1))
		}
		b.WriteString(strings.TrimRight(rooms.String(), " "))
		b.WriteByte('\n')
		if y < g.Height-1 {
			b.WriteString(strings.TrimRight(links.String(), " "))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	fmt.Fprintf(&b, "start %s", d.Start())
	if boss, ok := d.Boss(); ok {
		fmt.Fprintf(&b, "  boss %s", boss)
	}
	fmt.Fprintf(&b, "  rooms %d/%d\n", d.Len(), d.Requested())

	_, err := io.WriteString(w, b.String())
	return err
}

func dumpStyle(t world.RoomType) color.Style {
	switch t {
	case world.RoomStart:
		return dumpStart
	case world.RoomBoss:
		return dumpBoss
	case world.RoomMonster:
		return dumpMonster
	case world.RoomTrap:
		return dumpTrap
	case world.RoomTreasure:
		return dumpTreasure
	default:
		return dumpOther
	}
}
