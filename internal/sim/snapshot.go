package sim

// Snapshot is a compact view of the world used for determinism checks and
// by displays that only need positions. Uses primitive types only.
type Snapshot struct {
	Now     uint64
	Hours   int
	Minutes int
	Current int
	Room    int

	// Each guybrush is 6 ints: Room, PX, P2Y, Direction, Speed, State
	GuyData []int

	// Each prisoner is 3 ints: Fatigue, Escaped, Killed
	PrisonerData []int

	AuthorizedSet int
	Palette       int
	GameOver      bool
	GameWon       bool
	Pending       int

	RNGState uint64
}

// Snapshot returns the current world state as a Snapshot.
func (w *World) Snapshot() Snapshot {
	guyData := make([]int, len(w.guys)*6)
	for i := range w.guys {
		g := &w.guys[i]
		idx := i * 6
		guyData[idx] = int(g.Room)
		guyData[idx+1] = int(g.PX)
		guyData[idx+2] = int(g.P2Y)
		guyData[idx+3] = int(g.Direction)
		guyData[idx+4] = int(g.Speed)
		guyData[idx+5] = int(g.State)
	}

	prisonerData := make([]int, NbNations*3)
	for n := range NbNations {
		ev := &w.pevents[n]
		idx := n * 3
		prisonerData[idx] = int(ev.Fatigue)
		if ev.Escaped {
			prisonerData[idx+1] = 1
		}
		if ev.Killed {
			prisonerData[idx+2] = 1
		}
	}

	return Snapshot{
		Now:           w.now,
		Hours:         int(w.hours),
		Minutes:       int(w.minutes),
		Current:       w.current,
		Room:          int(w.view.room),
		GuyData:       guyData,
		PrisonerData:  prisonerData,
		AuthorizedSet: int(w.authorizedSet),
		Palette:       int(w.palette),
		GameOver:      w.gameOver,
		GameWon:       w.gameWon,
		Pending:       w.PendingEvents(),
		RNGState:      w.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Now
	h = h*31 + uint64(snap.Hours)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Minutes) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Current) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Room)    //#nosec G115 -- hash computation
	for _, v := range snap.GuyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PrisonerData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.AuthorizedSet) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Palette)       //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}
	if snap.GameWon {
		h = h*31 + 2
	}
	h = h*31 + uint64(snap.Pending) //#nosec G115 -- hash computation
	h = h*31 + snap.RNGState
	return h
}
