package sim

// Callback names a deferred action. Events, animation ends and static
// screens all carry a Callback plus a parameter instead of a function value,
// so pending work can be saved with the rest of the state.
type Callback uint8

const (
	CbNone Callback = iota
	// Guard param leaves the resume-route wait and walks back to its route.
	CbResumeRoute
	// The stone thrown by nation param has landed.
	CbStoneLanded
	// Shot animation of nation param is over.
	CbPrisonerShot
	// The end-of-game picture has been dismissed.
	CbGameEnded
	nbCallbacks
)

func (c Callback) String() string {
	switch c {
	case CbNone:
		return "none"
	case CbResumeRoute:
		return "resume-route"
	case CbStoneLanded:
		return "stone-landed"
	case CbPrisonerShot:
		return "prisoner-shot"
	case CbGameEnded:
		return "game-ended"
	default:
		return "unknown"
	}
}

// Event is a slot of the timed event pool. The slot is free when Callback
// is CbNone.
type Event struct {
	Expiration uint64 // game time in ms
	Param      uint32
	Callback   Callback
}

// EnqueueEvent schedules cb to run with param once delayMs of game time
// have passed. The event is dropped with a warning if the pool is full.
func (w *World) EnqueueEvent(cb Callback, param uint32, delayMs uint64) bool {
	if cb == CbNone {
		return false
	}
	for i := range w.events {
		if w.events[i].Callback != CbNone {
			continue
		}
		w.events[i] = Event{
			Expiration: w.now + delayMs,
			Param:      param,
			Callback:   cb,
		}
		return true
	}
	w.log.Warn("event pool full, event dropped", "callback", cb, "param", param, "delay", delayMs)
	return false
}

// ProcessEvents runs every event that has expired, in slot order, and frees
// its slot.
func (w *World) ProcessEvents() {
	for i := range w.events {
		ev := w.events[i]
		if ev.Callback == CbNone || ev.Expiration > w.now {
			continue
		}
		w.events[i] = Event{}
		w.RunCallback(ev.Callback, ev.Param)
	}
}

// PendingEvents returns the number of occupied event slots.
func (w *World) PendingEvents() int {
	n := 0
	for i := range w.events {
		if w.events[i].Callback != CbNone {
			n++
		}
	}
	return n
}

// RunCallback runs a deferred action. Hosts call it once a static screen
// they were given has completed.
func (w *World) RunCallback(cb Callback, param uint32) {
	switch cb {
	case CbNone:
	case CbResumeRoute:
		w.resumeRoute(int(param))
	case CbStoneLanded:
		if param < NbNations {
			w.pevents[param].ThrownStone = false
		}
	case CbPrisonerShot:
		if param < NbNations {
			w.guys[param].State |= StateShot
			w.pevents[param].DisplayShot = true
		}
	case CbGameEnded:
		w.finished = true
	default:
		w.log.Error("unknown callback", "callback", cb, "param", param)
	}
}
