package sim

// startPursuit makes guard i chase prisoner n, walking at first.
func (w *World) startPursuit(i, n int) {
	g := w.guard(i)
	if !g.State.Any(StateDeviatedFromRoute) {
		// Remember where the route was left.
		g.ResumePX = g.PX
		g.ResumeP2Y = g.P2Y
		g.ResumeDirection = g.Direction
	}
	g.State &^= StateResumeRoute | StateResumeRouteWait | StateBlocked
	g.State |= StateInPursuit | StateMotion
	g.BlockedByPrisoner = false
	g.Target = int16(n) //#nosec G115 -- n < NbNations
	g.Speed = SpeedWalk
	g.Wait = PursuitWalkTimeout
	g.ResetAnimation = true
	w.playSFX(SfxWhistle)
	w.log.Debug("pursuit started", "guard", i, "nation", n, "room", g.Room)
}

// GuardInPursuit plays one tick of guard i chasing its target: it steers
// toward the target, escalates from walking to running to aiming as its
// timer runs out, and catches the target on contact.
func (w *World) GuardInPursuit(i int) {
	g := w.guard(i)
	n := int(g.Target)
	if n < 0 || n >= NbNations || !w.inSight(g, n) ||
		w.guys[n].State.Any(StateInPrison|StateShot) {
		w.stopPursuit(i)
		return
	}
	p := &w.guys[n]

	if g.Wait > 0 {
		g.decWait()
	} else if g.Speed == SpeedWalk {
		g.Speed = SpeedRun
		g.Wait = RunningPursuitTimeout
		g.ResetAnimation = true
	} else {
		w.startAiming(n)
		return
	}

	// Deltas are halved before taking their sign.
	dx := (int(p.PX) - int(g.PX)) / 2
	d2y := (int(p.P2Y) - int(g.P2Y)) / 2
	dir := directionTo(dx, d2y)
	if dir != g.Direction {
		g.Direction = dir
		g.ResetAnimation = true
	}
	if dir == DirectionStopped || overlaps(g, p) {
		w.catchPrisoner(i, n)
		return
	}

	sx := dirToDx[dir] * int(g.Speed)
	s2y := dirToD2y[dir] * int(g.Speed)
	if overlapsAt(g, sx, s2y, p) {
		w.catchPrisoner(i, n)
		return
	}
	if w.CheckGuardFootprint(i, sx, s2y) {
		w.moveGuard(g, sx, s2y)
		return
	}
	// Slide along walls one axis at a time.
	if sx != 0 && w.CheckGuardFootprint(i, sx, 0) {
		w.moveGuard(g, sx, 0)
	} else if s2y != 0 && w.CheckGuardFootprint(i, 0, s2y) {
		w.moveGuard(g, 0, s2y)
	}
}

// startAiming freezes every guard chasing prisoner n into aiming.
func (w *World) startAiming(n int) {
	for j := range NbGuards {
		g := w.guard(j)
		if !g.State.Has(StateInPursuit) || int(g.Target) != n {
			continue
		}
		g.State &^= StateMotion
		g.State |= StateAiming | StateAnimated
		g.Wait = AimingTimeout
		g.ResetAnimation = true
	}
	w.log.Debug("guards aiming", "nation", n)
}

// guardAiming plays one tick of an aiming guard. When the timeout runs out
// the guard fires if the target is still moving, and otherwise gives the
// target one more chance.
func (w *World) guardAiming(i int) {
	g := w.guard(i)
	if g.Wait > 0 {
		g.decWait()
		return
	}
	n := int(g.Target)
	if n < 0 || n >= NbNations || !w.inSight(g, n) || w.guys[n].State.Any(StateInPrison|StateShot) {
		g.State &^= StateAiming | StateAnimated
		w.stopPursuit(i)
		return
	}
	p := &w.guys[n]
	if p.Moving() {
		w.fire(i, n)
		return
	}
	g.State &^= StateAiming | StateAnimated
	g.State |= StateMotion
	g.Speed = SpeedRun
	g.Wait = RunningPursuitTimeout
	g.ResetAnimation = true
}

// fire shoots prisoner n. The prisoner plays its shot animation, whose end
// callback flags the shot.
func (w *World) fire(i, n int) {
	w.playSFX(SfxShot)
	p := &w.guys[n]
	p.State &^= StateMotion | StateSleeping | StateKneeling
	p.State |= StateAnimated
	p.Direction = DirectionStopped
	p.ResetAnimation = false
	p.Animation = Animation{
		Index:    AniShot,
		EndParam: uint32(n), //#nosec G115 -- n < NbNations
		End:      CbPrisonerShot,
	}
	w.log.Info("prisoner shot", "guard", i, "nation", n)
	for j := range NbGuards {
		g := w.guard(j)
		if int(g.Target) == n && g.State.Any(StateInPursuit|StateAiming) {
			g.State &^= StateAiming | StateAnimated
			w.stopPursuit(j)
		}
	}
}

// catchPrisoner ends a pursuit on contact. A prisoner in a guard's uniform
// is asked for a pass, anybody else goes to solitary.
func (w *World) catchPrisoner(i, n int) {
	ev := &w.pevents[n]
	p := &w.guys[n]
	if p.DressedAsGuard {
		ev.RequirePass = true
	} else {
		ev.ToSolitary = true
	}
	ev.CheckedBy = int16(i) //#nosec G115 -- i < NbGuards
	w.log.Info("prisoner caught", "guard", i, "nation", n, "disguised", p.DressedAsGuard)
	w.stopPursuit(i)
}

// stopPursuit sends guard i back toward its route using the configured
// recovery mode.
func (w *World) stopPursuit(i int) {
	g := w.guard(i)
	g.State &^= StateInPursuit | StateMotion | StateBlocked
	g.BlockedByPrisoner = false
	g.Speed = SpeedWalk
	g.Wait = 0
	g.Target = -1
	g.ResetAnimation = true

	if w.opts.Recovery == RecoverResumeRoute {
		g.State |= StateResumeRouteWait
		delay := w.rng.Between(ResetGuardMinTimeout, ResetGuardMaxTimeout)
		if !w.EnqueueEvent(CbResumeRoute, uint32(i), uint64(delay)) { //#nosec G115 -- positive values
			// No slot: fall back to a reset.
			g.State &^= StateResumeRouteWait
			g.State |= StateReinstantiate
		}
		return
	}
	g.State |= StateReinstantiate
}

// resumeRoute is the CbResumeRoute handler.
func (w *World) resumeRoute(i int) {
	if i < 0 || i >= NbGuards {
		return
	}
	g := w.guard(i)
	if !g.State.Has(StateResumeRouteWait) {
		return
	}
	g.State &^= StateResumeRouteWait
	g.State |= StateResumeRoute | StateMotion
	g.Speed = SpeedWalk
	g.ResetAnimation = true
}

// walkBackToRoute moves a resuming guard one step toward the position it
// left its route from, and hands it back to its route once there.
func (w *World) walkBackToRoute(i int) {
	g := w.guard(i)
	dx := int(g.ResumePX) - int(g.PX)
	d2y := int(g.ResumeP2Y) - int(g.P2Y)
	if dx == 0 && d2y == 0 {
		g.State &^= StateResumeRoute
		g.Direction = g.ResumeDirection
		if g.Direction != DirectionStopped {
			g.State |= StateMotion
		} else {
			g.State &^= StateMotion
		}
		g.ResetAnimation = true
		return
	}
	sx := max(-1, min(1, dx))
	s2y := max(-2, min(2, d2y))
	dir := directionTo(sx, s2y)
	if dir != g.Direction {
		g.Direction = dir
		g.ResetAnimation = true
	}
	if !w.CheckGuardFootprint(i, sx, s2y) {
		g.State &^= StateResumeRoute | StateMotion
		g.State |= StateReinstantiate
		return
	}
	w.moveGuard(g, sx, s2y)
}
