package sim

// stepDelta returns the per-tick displacement of a moving guybrush.
func stepDelta(g *Guybrush) (int, int) {
	if g.Direction < 0 || g.Direction >= NbDirections {
		return 0, 0
	}
	return dirToDx[g.Direction] * int(g.Speed), dirToD2y[g.Direction] * int(g.Speed)
}

// canMove reports whether prisoner n accepts motion commands.
func (w *World) canMove(n int) bool {
	if !w.inPlay(n) || w.gameOver || w.gameWon {
		return false
	}
	return !w.guys[n].State.Any(StateShot | StateAnimated | StateSleeping | StateKneeling)
}

// movePrisoner resolves one repositioning tick of the active prisoner's
// motion: tunnels under the prisoner first, then guards in the way, then
// walls and exits.
func (w *World) movePrisoner() error {
	n := w.current
	p := &w.guys[n]
	if !p.Moving() || !w.canMove(n) {
		return nil
	}
	ev := &w.pevents[n]

	if p.Speed == SpeedRun {
		if ev.Fatigue >= MaxFatigue {
			p.Speed = SpeedWalk
			p.ResetAnimation = true
			w.status(MsgTooTired, PriorityLow)
		} else {
			ev.Fatigue = min(MaxFatigue, ev.Fatigue+FatigueRunCost)
		}
	}

	w.CheckFootprint(0, 0)
	switch r := w.CheckTunnelIO(); {
	case r > 0:
		return w.SwitchRoom(r-1, true)
	case r < 0:
		return nil
	}

	dx, d2y := stepDelta(p)
	if i := w.guardInTheWay(p, dx, d2y); i >= 0 {
		g := w.guard(i)
		if !g.State.Any(StateInPursuit | StateAiming) {
			w.blockGuard(i, true)
		}
		return nil
	}

	switch r := w.CheckFootprint(dx, d2y); {
	case r == FootprintBlocked:
		return nil
	case r == FootprintFree:
		x0, y0 := int(p.PX), p.PY()
		p.PX += int16(dx)   //#nosec G115 -- unit deltas
		p.P2Y += int16(d2y) //#nosec G115 -- unit deltas
		w.remBitmask[n] = w.updateRemBitmask(w.remBitmask[n], x0, y0, int(p.PX), p.PY())
		return nil
	default:
		return w.SwitchRoom(r-1, false)
	}
}
