package sim

import (
	"time"

	"github.com/vovakirdan/tui-escape/internal/data"
)

// Scripted event kinds, in the high byte of the event word.
const (
	TimedPalette   = 0
	TimedAuthorize = 1
	TimedRollcall  = 2
)

// Step advances game time by elapsed and runs the ticks that fall due. At
// most one repositioning tick and one animation tick run per call: a stall
// does not trigger a burst of catch-up ticks.
//
// Only data integrity faults are returned; they leave the world in an
// undefined state and the driver must stop.
func (w *World) Step(elapsed time.Duration) error {
	if w.finished || elapsed <= 0 {
		return nil
	}
	ms := uint64(elapsed / time.Millisecond) //#nosec G115 -- positive duration
	w.now += ms
	w.repoAcc += ms
	w.aniAcc += ms

	if w.now >= w.nextMinute {
		w.nextMinute = w.now + w.minuteLength()
		w.advanceClock()
	}

	if w.repoAcc >= uint64(w.opts.RepositionInterval/time.Millisecond) { //#nosec G115 -- positive duration
		w.repoAcc = 0
		if err := w.RepositionTick(); err != nil {
			return err
		}
	}
	if w.aniAcc >= uint64(w.opts.AnimationInterval/time.Millisecond) { //#nosec G115 -- positive duration
		w.aniAcc = 0
		w.AnimationTick()
	}
	return nil
}

// RepositionTick runs one repositioning tick: guards, prisoner motion,
// expired events and prisoner checks, in that order.
func (w *World) RepositionTick() error {
	w.updateGuards()
	if err := w.movePrisoner(); err != nil {
		return err
	}
	w.ProcessEvents()
	w.CheckOnPrisoners()
	return nil
}

// advanceClock moves the in-game clock one minute forward.
func (w *World) advanceClock() {
	w.minutes++
	if w.minutes >= 60 {
		w.minutes = 0
		w.hours = (w.hours + 1) % 24
	}
	w.TimedEvents()
}

// TimedEvents runs the scripted events scheduled at the current in-game
// time. The cursor only moves forward and goes back to the start of the
// table on the end marker.
func (w *World) TimedEvents() {
	ld := w.files.Loader()
	for range data.NbTimedEvents {
		off := data.TimedEventsStart + uint32(w.timedCursor)*data.TimedEventSize
		hours := ld.Word(off)
		if hours == 0xFFFF {
			w.timedCursor = 0
			return
		}
		if hours != w.hours || ld.Word(off+2) != w.minutes {
			return
		}
		w.runTimedEvent(ld.Word(off + 4))
		w.timedCursor++
		if w.timedCursor >= data.NbTimedEvents {
			w.timedCursor = 0
			return
		}
	}
}

func (w *World) runTimedEvent(event uint16) {
	kind, param := event>>8, uint8(event)
	switch kind {
	case TimedPalette:
		w.palette = param
	case TimedAuthorize:
		w.setAuthorizedSet(param)
	case TimedRollcall:
		w.setAuthorizedSet(param)
		w.playSFX(SfxRollcall)
		w.status(MsgRollcall, PriorityHigh)
	default:
		w.log.Error("unknown timed event", "event", event, "err", ErrDataIntegrity)
		return
	}
	w.log.Debug("timed event", "kind", kind, "param", param, "hours", w.hours, "minutes", w.minutes)
}

func (w *World) setAuthorizedSet(set uint8) {
	if set >= data.NbAuthorizedSets {
		w.log.Error("invalid authorized set", "set", set, "err", ErrDataIntegrity)
		return
	}
	w.authorizedSet = set
}
