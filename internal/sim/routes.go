package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// guardRecord returns the offset of guard i in the guard table.
func guardRecord(i int) uint32 {
	return uint32(i) * data.GuardRecordSize //#nosec G115 -- i < NbGuards
}

// routeCursor returns the route cursor of guard i, a byte offset into the
// route table.
func (w *World) routeCursor(i int) uint32 {
	return w.files.Guards().Long(guardRecord(i) + data.GuardRouteCursor)
}

func (w *World) setRouteCursor(i int, c uint32) {
	_ = w.files.Guards().SetLong(guardRecord(i)+data.GuardRouteCursor, c)
}

// resetGuard puts guard i back at the start of its route, as defined by the
// guard table.
func (w *World) resetGuard(i int) {
	gt := w.files.Guards()
	rec := guardRecord(i)
	g := w.guard(i)
	*g = Guybrush{
		Room:            gt.Word(rec + data.GuardRoom),
		PX:              gt.SignedWord(rec + data.GuardPX),
		P2Y:             2 * gt.SignedWord(rec+data.GuardPY),
		Direction:       gt.SignedWord(rec + data.GuardDirection),
		Speed:           SpeedWalk,
		ResetAnimation:  true,
		Target:          -1,
		ResumeDirection: DirectionStopped,
		Animation:       Animation{Index: -1},
	}
	if g.Direction < 0 || g.Direction >= NbDirections {
		g.Direction = DirectionStopped
	}
	w.setRouteCursor(i, gt.Long(rec+data.GuardRouteStart))
}

// ReinstantiateGuard resets guard i to its route start, whatever it was
// doing.
func (w *World) ReinstantiateGuard(i int) {
	w.log.Debug("guard reinstantiated", "guard", i)
	w.resetGuard(i)
}

// RouteGuard plays one tick of guard i's scripted route.
func (w *World) RouteGuard(i int) {
	g := w.guard(i)
	if g.GoOn > 0 {
		w.routeStep(i)
		return
	}

	routes := w.files.Routes()
	cursor := w.routeCursor(i)
	word := routes.Word(cursor)

	switch {
	case word == data.RouteRestart:
		gt := w.files.Guards()
		rec := guardRecord(i)
		startRoom := gt.Word(rec + data.GuardRoom)
		if w.onscreen(g.Room, int(g.PX), g.PY()) ||
			w.onscreen(startRoom, int(gt.SignedWord(rec+data.GuardPX)), int(gt.SignedWord(rec+data.GuardPY))) {
			// Wait until nobody can see the guard pop.
			g.State &^= StateMotion
			return
		}
		w.resetGuard(i)

	case word&data.RouteAbsolute != 0:
		room := routes.Word(cursor + 2)
		px := int(routes.SignedWord(cursor + 4))
		py := int(routes.SignedWord(cursor + 6))
		if w.onscreen(g.Room, int(g.PX), g.PY()) || w.onscreen(room, px, py) {
			g.State &^= StateMotion
			return
		}
		if room != g.Room {
			g.SpentInRoom = 0
		}
		g.Room = room
		g.PX = int16(px)      //#nosec G115 -- read from a word
		g.P2Y = int16(2 * py) //#nosec G115 -- map coordinates fit in 16 bits
		g.ResetAnimation = true
		w.setRouteCursor(i, cursor+8)

	default:
		dir := routes.Word(cursor + 2)
		w.setRouteCursor(i, cursor+4)
		g.GoOn = int16(word) //#nosec G115 -- bit 15 is clear
		prev := g.Direction
		if dir == data.RouteStopped || dir >= NbDirections {
			g.Direction = DirectionStopped
			g.State &^= StateMotion
		} else {
			g.Direction = int16(dir) //#nosec G115 -- checked above
			g.State |= StateMotion
		}
		if prev != g.Direction {
			g.ResetAnimation = true
		}
		if g.GoOn > 0 {
			w.routeStep(i)
		}
	}
}

// routeStep consumes one tick of the current relative route entry.
func (w *World) routeStep(i int) {
	g := w.guard(i)
	if g.Direction == DirectionStopped {
		g.GoOn--
		return
	}
	dx := dirToDx[g.Direction] * int(g.Speed)
	d2y := dirToD2y[g.Direction] * int(g.Speed)

	if !w.CheckGuardFootprint(i, dx, d2y) {
		// Turn around and reset once offscreen.
		g.Direction = invertDir[g.Direction]
		g.State |= StateReinstantiate
		g.ResetAnimation = true
		w.log.Debug("guard blocked by terrain", "guard", i, "room", g.Room, "px", g.PX, "py", g.PY())
		return
	}
	w.moveGuard(g, dx, d2y)
	g.GoOn--
}

// moveGuard applies a validated move.
func (w *World) moveGuard(g *Guybrush, dx, d2y int) {
	g.PX += int16(dx)   //#nosec G115 -- unit deltas
	g.P2Y += int16(d2y) //#nosec G115 -- unit deltas
}

// inPlay reports whether a prisoner is on the map and can interact.
func (w *World) inPlay(n int) bool {
	ev := &w.pevents[n]
	return !ev.Escaped && !ev.Killed && w.guys[n].Room != data.RoomNone
}
