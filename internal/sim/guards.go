package sim

import (
	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/data"
)

// updateGuards advances every guard by one repositioning tick, in table
// order.
func (w *World) updateGuards() {
	for i := range NbGuards {
		w.updateGuard(i)
	}
}

func (w *World) updateGuard(i int) {
	g := w.guard(i)
	if g.SpentInRoom < MinSpentInRoom {
		g.SpentInRoom++
	}

	if g.State.Has(StateReinstantiate) && !w.onscreen(g.Room, int(g.PX), g.PY()) {
		w.ReinstantiateGuard(i)
		return
	}

	switch {
	case g.State.Has(StateAiming):
		w.guardAiming(i)

	case g.State.Has(StateBlocked):
		if g.Wait > 0 {
			g.decWait()
			return
		}
		w.guardUnblock(i)

	case g.State.Has(StateInPursuit):
		w.GuardInPursuit(i)

	case g.State.Has(StateResumeRouteWait):
		// Standing still until the resume event fires.

	case g.State.Has(StateResumeRoute):
		w.walkBackToRoute(i)

	default:
		if g.Wait > 0 {
			// Distracted.
			g.decWait()
			return
		}
		if g.State.Has(StateReinstantiate) {
			return
		}
		if n := w.spotPrisoner(i); n >= 0 {
			w.startPursuit(i, n)
			w.GuardInPursuit(i)
			return
		}
		w.RouteGuard(i)
	}
}

// guardUnblock releases a guard whose block timeout ran out. A guard
// blocked by the active prisoner stays blocked while that prisoner keeps
// pushing into it.
func (w *World) guardUnblock(i int) {
	g := w.guard(i)
	if g.BlockedByPrisoner {
		p := &w.guys[w.current]
		if p.Moving() {
			dx, d2y := stepDelta(p)
			if overlapsAt(p, dx, d2y, g) {
				g.Wait = BlockedGuardTimeout
				return
			}
		}
	}
	g.State &^= StateBlocked
	g.BlockedByPrisoner = false
	w.continueGuard(i)
}

// continueGuard takes one step of whatever the guard was doing besides
// being blocked.
func (w *World) continueGuard(i int) {
	g := w.guard(i)
	switch {
	case g.State.Has(StateInPursuit):
		w.GuardInPursuit(i)
	case g.State.Has(StateResumeRoute):
		w.walkBackToRoute(i)
	case g.State.Has(StateResumeRouteWait):
	default:
		w.RouteGuard(i)
	}
}

// blockGuard stops guard i for BlockedGuardTimeout ticks.
func (w *World) blockGuard(i int, byPrisoner bool) {
	g := w.guard(i)
	if !g.State.Has(StateBlocked) {
		w.log.Debug("guard blocked", "guard", i, "by_prisoner", byPrisoner)
	}
	g.State |= StateBlocked
	g.BlockedByPrisoner = byPrisoner
	g.Wait = BlockedGuardTimeout
}

// guardInTheWay returns the guard a prisoner would walk into, or -1.
func (w *World) guardInTheWay(p *Guybrush, dx, d2y int) int {
	for i := range NbGuards {
		g := w.guard(i)
		if overlaps(p, g) || !overlapsAt(p, dx, d2y, g) {
			continue
		}
		return i
	}
	return -1
}

// inSight reports whether guard g can see prisoner n.
func (w *World) inSight(g *Guybrush, n int) bool {
	p := &w.guys[n]
	if g.Room != p.Room || !w.inPlay(n) {
		return false
	}
	if g.Room != data.RoomOutside {
		return true
	}
	if core.Abs(int(g.PX)-int(p.PX)) > SightRangeX || core.Abs(g.PY()-p.PY()) > SightRangeY {
		return false
	}
	// Walls that are up on one side and down on the other block the view.
	return w.computeRemBitmask(g.Room, int(g.PX), g.PY()) == w.remBitmask[n]
}

// spotPrisoner returns a prisoner guard i should start chasing, or -1.
func (w *World) spotPrisoner(i int) int {
	g := w.guard(i)
	if g.SpentInRoom < MinSpentInRoom {
		return -1
	}
	for n := range NbNations {
		ev := &w.pevents[n]
		if !ev.Unauthorized || !w.inSight(g, n) {
			continue
		}
		if w.guys[n].State.Any(StateInPrison | StateShot) {
			continue
		}
		if w.opts.FooledByPass && g.FooledBy[n] && w.guys[n].DressedAsGuard {
			continue
		}
		return n
	}
	return -1
}

// distractGuards makes every guard of a room that is not chasing anyone
// stand still for a while.
func (w *World) distractGuards(room uint16) {
	for i := range NbGuards {
		g := w.guard(i)
		if g.Room != room || g.State.Any(StateDeviatedFromRoute|StateAiming) {
			continue
		}
		g.Wait = StoneDistractionTimeout
		g.State &^= StateMotion
		g.ResetAnimation = true
	}
}

// GuardsInRoom returns the guard numbers located in a room.
func (w *World) GuardsInRoom(room uint16) []int {
	var out []int
	for i := range NbGuards {
		if w.guard(i).Room == room {
			out = append(out, i)
		}
	}
	return out
}
