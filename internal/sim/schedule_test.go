package sim

import (
	"slices"
	"testing"
	"time"
)

func TestStepAdvancesClock(t *testing.T) {
	w, _ := newTestWorld(t)
	if h, m := w.Clock(); h != StartHours || m != 0 {
		t.Fatalf("Clock() = %d:%02d, want %d:00", h, m, StartHours)
	}

	if err := w.Step(TimeMarker * time.Millisecond); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if h, m := w.Clock(); h != StartHours || m != 1 {
		t.Errorf("Clock() = %d:%02d, want %d:01", h, m, StartHours)
	}
	if got := w.Now(); got != TimeMarker {
		t.Errorf("Now() = %d, want %d", got, TimeMarker)
	}

	// Short steps do not move the clock.
	for range 10 {
		if err := w.Step(RepositionInterval * time.Millisecond); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}
	if _, m := w.Clock(); m != 1 {
		t.Errorf("minutes = %d, want 1", m)
	}
}

func TestStepIgnoresNonPositive(t *testing.T) {
	w, _ := newTestWorld(t)
	for _, d := range []time.Duration{0, -time.Second} {
		if err := w.Step(d); err != nil {
			t.Fatalf("Step(%v) error = %v", d, err)
		}
	}
	if w.Now() != 0 {
		t.Errorf("Now() = %d, want 0", w.Now())
	}
}

func TestClockWraps(t *testing.T) {
	w, _ := newTestWorld(t)
	w.hours, w.minutes = 23, 59
	w.advanceClock()
	if h, m := w.Clock(); h != 0 || m != 0 {
		t.Errorf("Clock() = %d:%02d, want 0:00", h, m)
	}
}

func TestTimedEvents(t *testing.T) {
	w, host := newTestWorld(t)
	minute := TimeMarker * time.Millisecond

	steps := []struct {
		palette int
		set     int
	}{
		{palette: 3, set: 0},
		{palette: 3, set: 1},
		{palette: 3, set: 0},
		{palette: 3, set: 0},
	}
	for i, want := range steps {
		if err := w.Step(minute); err != nil {
			t.Fatalf("minute %d: Step() error = %v", i+1, err)
		}
		if got := w.Palette(); got != want.palette {
			t.Errorf("minute %d: Palette() = %d, want %d", i+1, got, want.palette)
		}
		if got := w.AuthorizedSet(); got != want.set {
			t.Errorf("minute %d: AuthorizedSet() = %d, want %d", i+1, got, want.set)
		}
	}

	if !host.sawSFX(SfxRollcall) {
		t.Errorf("sfx = %v, want rollcall", host.sfx)
	}
	if !slices.Contains(host.messages, "msg 5") {
		t.Errorf("messages = %v, want msg 5", host.messages)
	}
	if w.timedCursor != 0 {
		t.Errorf("timedCursor = %d after the end marker, want 0", w.timedCursor)
	}
}

func TestTimedEventsWaitForTheirTime(t *testing.T) {
	w, _ := newTestWorld(t)
	w.minutes = 2
	w.TimedEvents()
	// The palette change at 9:01 is still pending, so nothing runs.
	if w.Palette() != 0 || w.AuthorizedSet() != 0 || w.timedCursor != 0 {
		t.Errorf("palette = %d set = %d cursor = %d, want all 0", w.Palette(), w.AuthorizedSet(), w.timedCursor)
	}
}

func TestStepRunsOneTickPerCall(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Move(DirEast, false)
	x := w.Prisoner(0).PX

	// A long stall still moves the prisoner a single step.
	if err := w.Step(5 * time.Second); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := w.Prisoner(0).PX; got != x+1 {
		t.Errorf("PX = %d, want %d", got, x+1)
	}
}
