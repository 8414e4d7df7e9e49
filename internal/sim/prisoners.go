package sim

import (
	"github.com/vovakirdan/tui-escape/internal/data"
)

// CheckOnPrisoners runs the per-tick prisoner checks, in order: escape of
// the active prisoner, end of game, fatigue recovery, then for every
// prisoner the highest priority pending event among solitary, pass check,
// shot, solitary release and authorization.
func (w *World) CheckOnPrisoners() {
	if w.gameOver || w.gameWon {
		return
	}
	w.checkEscape()
	if w.checkEndOfGame() {
		return
	}

	for n := range NbNations {
		p := &w.guys[n]
		ev := &w.pevents[n]
		if p.State.Has(StateSleeping) && ev.Fatigue > 0 {
			ev.Fatigue = max(0, ev.Fatigue-FatigueSleepGain)
		}
	}

	for n := range NbNations {
		ev := &w.pevents[n]
		if ev.Escaped || ev.Killed {
			continue
		}
		switch {
		case ev.ToSolitary:
			w.goToSolitary(n)
		case ev.RequirePass:
			w.checkPass(n)
		case ev.DisplayShot:
			ev.DisplayShot = false
			ev.Killed = true
			ev.Unauthorized = false
			w.host.StaticScreen(PicShot, CbNone, uint32(n)) //#nosec G115 -- n < NbNations
			w.log.Info("prisoner killed", "nation", n)
		case w.guys[n].State.Has(StateInPrison):
			if w.now >= ev.SolitaryRelease {
				w.releaseFromSolitary(n)
			}
		default:
			ev.Unauthorized = !w.authorized(n)
		}
	}
}

// checkEscape lets the active prisoner out of the castle once past the
// escape rectangle, provided they carry papers.
func (w *World) checkEscape() {
	n := w.current
	p := &w.guys[n]
	ev := &w.pevents[n]
	if p.Room != data.RoomOutside || ev.Escaped || ev.Killed || ev.ToSolitary {
		return
	}
	px, py := int(p.PX), p.PY()
	if px >= EscapeMinX && px <= EscapeMaxX && py >= EscapeMinY && py <= EscapeMaxY {
		return
	}
	if w.props[n][ItemPapers] == 0 {
		ev.ToSolitary = true
		w.host.StaticScreen(PicRequirePapers, CbNone, uint32(n)) //#nosec G115 -- n < NbNations
		w.log.Info("escape without papers", "nation", n)
		return
	}
	ev.Escaped = true
	ev.Unauthorized = false
	if w.remainingToWin > 0 {
		w.remainingToWin--
	}
	p.State &^= StateMotion
	p.Direction = DirectionStopped
	w.host.StaticScreen(PicEscaped, CbNone, uint32(n)) //#nosec G115 -- n < NbNations
	w.log.Info("prisoner escaped", "nation", n, "remaining", w.remainingToWin)
	w.stopChasing(n)
}

// checkEndOfGame flags the game won once every prisoner escaped. It is lost
// once nobody is free to move: all the rest are dead or locked up and none
// of them escaped, or the ones who did not escape are dead. Prisoners in
// solitary come back out, so they keep the game going while someone else
// got away.
func (w *World) checkEndOfGame() bool {
	escaped, killed, locked := 0, 0, 0
	for n := range NbNations {
		ev := &w.pevents[n]
		switch {
		case ev.Escaped:
			escaped++
		case ev.Killed:
			killed++
		case w.guys[n].State.Has(StateInPrison):
			locked++
		}
	}
	switch {
	case escaped == NbNations:
		w.gameWon = true
		w.host.StaticScreen(PicGameWon, CbGameEnded, 0)
		w.log.Info("game won")
		return true
	case killed+locked == NbNations, escaped+killed == NbNations:
		w.gameOver = true
		w.host.StaticScreen(PicGameOver, CbGameEnded, 0)
		w.log.Info("game over", "escaped", escaped, "killed", killed)
		return true
	}
	return false
}

// goToSolitary locks prisoner n up and confiscates their belongings.
func (w *World) goToSolitary(n int) {
	ev := &w.pevents[n]
	ev.ToSolitary = false
	ev.RequirePass = false
	ev.Unauthorized = false
	ev.PassGraceExpiry = 0
	ev.SolitaryRelease = w.now + SolitaryDuration

	w.initPrisoner(n, data.SolitaryPositions)
	p := &w.guys[n]
	p.State = StateInPrison
	p.ResetAnimation = true
	w.props[n] = [NbProps]uint8{}
	w.selected[n] = ItemNone

	for i := range NbGuards {
		w.guard(i).FooledBy[n] = false
	}
	w.stopChasing(n)
	if n == w.current {
		w.enterRoom(p.Room)
	}
	w.host.StaticScreen(PicSolitary, CbNone, uint32(n)) //#nosec G115 -- n < NbNations
	w.log.Info("prisoner sent to solitary", "nation", n, "by_guard", ev.CheckedBy)
}

// releaseFromSolitary sends prisoner n back to their quarters.
func (w *World) releaseFromSolitary(n int) {
	w.initPrisoner(n, data.InitialPositions)
	if n == w.current {
		w.enterRoom(w.guys[n].Room)
		w.status(MsgReleased, PriorityNormal)
	}
	w.log.Info("prisoner released", "nation", n)
}

// checkPass settles a guard's request to see a pass.
func (w *World) checkPass(n int) {
	ev := &w.pevents[n]
	ev.RequirePass = false
	if w.props[n][ItemPass] == 0 {
		ev.ToSolitary = true
		return
	}
	ev.PassGraceExpiry = w.now + PassGracePeriod
	ev.Unauthorized = false
	if w.opts.FooledByPass && ev.CheckedBy >= 0 && int(ev.CheckedBy) < NbGuards {
		w.guard(int(ev.CheckedBy)).FooledBy[n] = true
	}
	w.stopChasing(n)
	w.host.StaticScreen(PicRequirePass, CbNone, uint32(n)) //#nosec G115 -- n < NbNations
	if n == w.current {
		w.status(MsgPassShown, PriorityNormal)
	}
	w.log.Debug("pass accepted", "nation", n, "guard", ev.CheckedBy)
}

// stopChasing ends every pursuit of prisoner n.
func (w *World) stopChasing(n int) {
	for i := range NbGuards {
		g := w.guard(i)
		if int(g.Target) == n && g.State.Any(StateInPursuit|StateAiming) {
			g.State &^= StateAiming | StateAnimated
			w.stopPursuit(i)
		}
	}
}

// authorized reports whether prisoner n may be where they are.
func (w *World) authorized(n int) bool {
	p := &w.guys[n]
	ev := &w.pevents[n]
	if w.now < ev.PassGraceExpiry {
		return true
	}
	if p.DressedAsGuard && p.Speed != SpeedRun {
		return true
	}
	id := w.roomDescID(p.Room)
	if !w.idAuthorized(n, id) {
		return false
	}
	if p.Room == data.RoomOutside {
		px, py := int(p.PX), p.PY()
		return px >= CourtyardMinX && px <= CourtyardMaxX && py >= CourtyardMinY && py <= CourtyardMaxY
	}
	return true
}

// idAuthorized looks a room description id up in the authorized list of the
// current set for nation n.
func (w *World) idAuthorized(n int, id uint8) bool {
	ld := w.files.Loader()
	slot := uint32(w.authorizedSet)*NbNations + uint32(n) //#nosec G115 -- n < NbNations
	off := uint32(ld.Word(data.AuthorizedBase + slot*2))
	if off == 0 {
		return false
	}
	for ; off < ld.Len(); off++ {
		b := ld.Byte(off)
		if b == data.AuthorizedListEnd {
			return false
		}
		if b == id {
			return true
		}
	}
	return false
}
