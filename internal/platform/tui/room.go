package tui

import (
	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/platform/host"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

// One screen cell covers cellW x cellH pixels, so a tile is four cells wide
// and one cell high.
const (
	cellW        = 8
	cellH        = 16
	cellsPerTile = data.TileWidth / cellW
)

// World is the part of the simulation the viewer drives and reads.
type World interface {
	host.World
	Snapshot() sim.Snapshot
	SaveBytes() ([]byte, error)
	LoadBytes(b []byte) error

	Current() int
	Room() uint16
	RoomSize(room uint16) (width, height int)
	TileRow(room uint16, ty int, dst []uint16) []uint16
	Walkable(room uint16, px, py int) bool
	Prisoner(n int) *sim.Guybrush
	PrisonerEvent(n int) *sim.PrisonerEvent
	Guard(i int) *sim.Guybrush
	RoomObjects() []sim.Object
	Overlays() []sim.Overlay

	Clock() (hours, minutes int)
	Palette() int
	RemainingToWin() int
	Props(n, item int) int
	SelectedProp(n int) int
}

// lighting maps the palette set by the scripted events to a screen palette.
func lighting(palette int) core.Palette {
	switch {
	case palette <= 0:
		return core.PaletteDay
	case palette == 1:
		return core.PaletteEvening
	default:
		return core.PaletteNight
	}
}

// camera is the top-left room cell shown at the top-left of the view.
type camera struct {
	col, row int
}

// cameraFor centers rooms smaller than the view and otherwise follows the
// active prisoner without scrolling past the room edges.
func cameraFor(area core.Rect, roomCols, roomRows, px, py int) camera {
	follow := func(size, view, at int) int {
		if size <= view {
			return -(view - size) / 2
		}
		return core.Clamp(at-view/2, 0, size-view)
	}
	return camera{
		col: follow(roomCols, area.W, (px+sim.GuyWidth/2)/cellW),
		row: follow(roomRows, area.H, (py+sim.GuyHeight/2)/cellH),
	}
}

// drawRoom draws the displayed room into area, with its objects,
// overlays and characters.
func drawRoom(s *core.Screen, area core.Rect, w World) {
	room := w.Room()
	tw, th := w.RoomSize(room)
	if tw == 0 || th == 0 {
		msg := "no map for room " + roomLabel(room)
		s.DrawText(area.X+max(area.W-len(msg), 0)/2, area.Y+area.H/2, msg, core.ColorGray)
		return
	}
	roomCols, roomRows := tw*cellsPerTile, th
	me := w.Prisoner(w.Current())
	cam := cameraFor(area, roomCols, roomRows, int(me.PX), me.PY())
	pal := lighting(w.Palette())

	put := func(px, py int, r rune, c core.Color) {
		x := px/cellW - cam.col
		y := py/cellH - cam.row
		if x < 0 || y < 0 || x >= area.W || y >= area.H {
			return
		}
		s.Set(area.X+x, area.Y+y, r, c.Under(pal))
	}

	var tiles []uint16
	for y := range area.H {
		row := cam.row + y
		if row >= 0 && row < roomRows {
			tiles = w.TileRow(room, row, tiles)
		}
		for x := range area.W {
			col := cam.col + x
			r, c := ' ', core.ColorDefault
			if row >= 0 && row < roomRows && col >= 0 && col < roomCols {
				r, c = tileGlyph(w, room, tiles[col/cellsPerTile], col, row)
			}
			s.Set(area.X+x, area.Y+y, r, c.Under(pal))
		}
	}

	for _, o := range w.RoomObjects() {
		put(o.PX, o.PY, '*', core.ColorBrightYellow)
	}
	for _, o := range w.Overlays() {
		if o.Room == room {
			put(int(o.PX), int(o.PY), '~', core.ColorOrange)
		}
	}
	for i := range sim.NbGuards {
		g := w.Guard(i)
		if g.Room != room {
			continue
		}
		c := core.ColorRed
		if g.State.Any(sim.StateInPursuit | sim.StateAiming) {
			c = core.ColorBrightRed
		}
		put(int(g.PX), g.PY(), 'G', c)
		if r := guardGlyph(g); r != ' ' {
			put(int(g.PX)+cellW, g.PY(), r, c)
		}
	}
	for n := range sim.NbNations {
		p := w.Prisoner(n)
		ev := w.PrisonerEvent(n)
		if p.Room != room || ev.Escaped {
			continue
		}
		c := core.ColorGreen
		if n == w.Current() {
			c = core.ColorBrightGreen
		}
		r := rune(sim.NationName(n)[0])
		if ev.Killed || p.State.Has(sim.StateShot) {
			r, c = 'x', core.ColorGray
		}
		put(int(p.PX), p.PY(), r, c)
		if r := prisonerGlyph(p); r != ' ' {
			put(int(p.PX)+cellW, p.PY(), r, c)
		}
	}
}

// tileGlyph samples the wall mask at the center of a cell.
func tileGlyph(w World, room uint16, tile uint16, col, row int) (rune, core.Color) {
	if tile&data.TileExitMask != 0 {
		return '+', core.ColorYellow
	}
	if w.Walkable(room, col*cellW+cellW/2, row*cellH+cellH/2) {
		return '·', core.ColorGray
	}
	return '█', core.ColorWhite
}

func guardGlyph(g *sim.Guybrush) rune {
	switch {
	case g.State.Has(sim.StateAiming):
		return '!'
	case g.State.Has(sim.StateInPursuit):
		return '?'
	}
	return directionGlyph(g.Direction)
}

func prisonerGlyph(p *sim.Guybrush) rune {
	switch {
	case p.State.Has(sim.StateSleeping):
		return 'z'
	case p.DressedAsGuard:
		return 'g'
	}
	return directionGlyph(p.Direction)
}

var directionGlyphs = [sim.NbDirections]rune{'<', '>', '^', '\\', '/', 'v', '/', '\\'}

func directionGlyph(dir int16) rune {
	if dir < 0 || int(dir) >= len(directionGlyphs) {
		return ' '
	}
	return directionGlyphs[dir]
}
