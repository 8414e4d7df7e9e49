package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// Footprint check results.
const (
	FootprintFree    = -1
	FootprintBlocked = 0
)

// footprintScan is a candidate footprint position within a room.
type footprintScan struct {
	tx, ty int    // top-left tile
	row    int    // first mask row within ty
	fp     uint64 // footprint aligned on the two tile columns tx and tx+1
	height int
}

// newFootprintScan positions a footprint at pixel (x, y). It returns false
// for negative coordinates, which never wrap.
func newFootprintScan(x, y int, footprint uint32, height int) (footprintScan, bool) {
	if x < 0 || y < 0 {
		return footprintScan{}, false
	}
	return footprintScan{
		tx:     x / data.TileWidth,
		ty:     y / data.TileHeight,
		row:    y % data.TileHeight,
		fp:     (uint64(footprint) << 32) >> (x % data.TileWidth),
		height: height,
	}, true
}

// hitsWall reports whether any footprint pixel falls on a non-walkable
// pixel of the 2x2 tiles under it.
func (w *World) hitsWall(v roomView, s footprintScan, rem uint32) bool {
	ty, row := s.ty, s.row
	for range s.height {
		if row == data.MaskRows {
			row = 0
			ty++
		}
		mask := uint64(w.wallMaskRow(v, s.tx, ty, row, rem))<<32 |
			uint64(w.wallMaskRow(v, s.tx+1, ty, row, rem))
		if s.fp&^mask != 0 {
			return true
		}
		row++
	}
	return false
}

// exitUnder returns the tile position of the first exit mask the footprint
// overlaps, or false if it stands on none.
func (w *World) exitUnder(v roomView, s footprintScan, rem uint32) (int, int, bool) {
	ty, row := s.ty, s.row
	for range s.height {
		if row == data.MaskRows {
			row = 0
			ty++
		}
		left := uint64(w.exitMaskRow(v, s.tx, ty, row, rem)) << 32
		right := uint64(w.exitMaskRow(v, s.tx+1, ty, row, rem))
		if s.fp&left != 0 {
			return s.tx, ty, true
		}
		if s.fp&right != 0 {
			return s.tx + 1, ty, true
		}
		row++
	}
	return 0, 0, false
}

// CheckFootprint tests whether the active prisoner can move by (dx, d2y).
// It returns FootprintFree, FootprintBlocked, or the index + 1 of the exit
// the prisoner walks into, in which case the caller must switch rooms.
//
// A (0, 0) call never moves anything and always reports FootprintFree
// unless the prisoner is inside a wall. It records the tile and exit under
// the prisoner for ToggleExit and CheckTunnelIO.
func (w *World) CheckFootprint(dx, d2y int) int {
	p := &w.guys[w.current]
	footprint := SpriteFootprint
	if p.State.Has(StateTunneling) {
		footprint = TunnelFootprint
	}
	x := int(p.PX) + dx
	y := (int(p.P2Y) + d2y) / 2
	if int(p.P2Y)+d2y < 0 {
		y = -1
	}
	s, ok := newFootprintScan(x, y, footprint, FootprintHeight)
	if !ok {
		return FootprintBlocked
	}
	rem := w.remBitmask[w.current]

	w.fpTileX = (x + GuyWidth/2) / data.TileWidth
	w.fpTileY = (y + GuyHeight/2) / data.TileHeight
	w.exit.valid = false

	if w.hitsWall(w.view, s, rem) {
		return FootprintBlocked
	}

	tx, ty, onExit := w.exitUnder(w.view, s, rem)
	if !onExit {
		return FootprintFree
	}
	tile, _ := w.tileAt(w.view, tx, ty)
	nr := tileExit(tile)
	if nr == 0 {
		return FootprintFree
	}
	buf, off := w.exitFlagsOffset(w.view, nr-1)
	w.exit = exitFlags{valid: true, file: w.exitFile(w.view), off: off}

	if dx == 0 && d2y == 0 {
		return FootprintFree
	}

	status := buf.Byte(off)
	if status&data.ExitOpen != 0 {
		return nr
	}
	w.tryUnlock(nr-1, status)
	return FootprintBlocked
}

// tryUnlock opens a closed exit if the active prisoner has what it takes.
// A key or lockpick works once per room entry.
func (w *World) tryUnlock(exitNr int, status uint8) {
	grade := int(status&data.ExitGradeMask) >> data.ExitGradeShift
	key := gradeKeys[grade]
	if key != ItemNone {
		if !w.keyEligible {
			return
		}
		if w.props[w.current][key] == 0 {
			w.status(MsgDoorLocked, PriorityLow)
			return
		}
		w.keyEligible = false
	}
	w.ToggleExit(exitNr)
	w.playSFX(SfxDoor)
	p := &w.guys[w.current]
	w.StartAnimation(p.Room, w.fpTileX*data.TileWidth, w.fpTileY*data.TileHeight, AniDoorOpen, CbNone, 0)
	w.log.Debug("exit unlocked", "room", p.Room, "exit", exitNr, "grade", grade)
}

// CheckGuardFootprint tests whether guard i can move by (dx, d2y). Only
// walls are considered; guards never use exits on their own.
func (w *World) CheckGuardFootprint(i, dx, d2y int) bool {
	g := w.guard(i)
	x := int(g.PX) + dx
	y2 := int(g.P2Y) + d2y
	if y2 < 0 {
		return false
	}
	s, ok := newFootprintScan(x, y2/2, SpriteFootprint, GuardFootprintHeight)
	if !ok {
		return false
	}
	v := w.view
	if v.room != g.Room {
		v = w.viewFor(g.Room)
	}
	rem := w.computeRemBitmask(g.Room, int(g.PX), g.PY())
	return !w.hitsWall(v, s, rem)
}
