package sim

import "github.com/vovakirdan/tui-escape/internal/core"

// Move sets the active prisoner walking or running in dir. Direction
// changes apply on the next repositioning tick.
func (w *World) Move(dir int16, run bool) {
	n := w.current
	if !w.canMove(n) || dir < 0 || dir >= NbDirections {
		return
	}
	p := &w.guys[n]
	speed := SpeedWalk
	if run && w.pevents[n].Fatigue < MaxFatigue {
		speed = SpeedRun
	}
	if p.Direction != dir || p.Speed != speed || !p.State.Has(StateMotion) {
		p.ResetAnimation = true
	}
	p.Direction = dir
	p.Speed = speed
	p.State |= StateMotion
}

// Stop halts the active prisoner.
func (w *World) Stop() {
	p := &w.guys[w.current]
	if p.State.Has(StateMotion) {
		p.ResetAnimation = true
	}
	p.State &^= StateMotion
	p.Direction = DirectionStopped
	p.Speed = SpeedWalk
}

// ToggleSleep puts the active prisoner to sleep or wakes them up.
func (w *World) ToggleSleep() {
	n := w.current
	p := &w.guys[n]
	if p.State.Has(StateSleeping) {
		w.wakeUp(n)
		return
	}
	if !w.canMove(n) {
		return
	}
	w.Stop()
	p.State |= StateSleeping
	p.ResetAnimation = true
}

func (w *World) wakeUp(n int) {
	p := &w.guys[n]
	p.State &^= StateSleeping
	p.ResetAnimation = true
}

// SelectNation makes nation n the active prisoner. Prisoners that escaped
// or were killed cannot be selected.
func (w *World) SelectNation(n int) bool {
	if n < 0 || n >= NbNations || n == w.current || !w.inPlay(n) {
		return false
	}
	w.Stop()
	w.current = n
	w.enterRoom(w.guys[n].Room)
	w.log.Debug("nation selected", "nation", n)
	return true
}

// NextNation selects the next prisoner still in play.
func (w *World) NextNation() bool {
	for k := 1; k < NbNations; k++ {
		if w.SelectNation((w.current + k) % NbNations) {
			return true
		}
	}
	return false
}

// HandleInput applies one frame of player input to the active prisoner.
func (w *World) HandleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionNextNation):
		w.NextNation()
	case in.Has(core.ActionSleep):
		w.ToggleSleep()
	case in.Has(core.ActionUniform):
		w.ToggleUniform()
	case in.Has(core.ActionStone):
		w.ThrowStone()
	case in.Has(core.ActionPickUp):
		w.PickUp()
	case in.Has(core.ActionDrop):
		w.Drop()
	case in.Has(core.ActionCycleProp):
		w.CycleProp()
	}

	dx, dy := 0, 0
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	if dir := directionTo(dx, dy); dir != DirectionStopped {
		w.Move(dir, in.Has(core.ActionRun))
	} else if in.Has(core.ActionStop) {
		w.Stop()
	}
}
