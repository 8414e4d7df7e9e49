package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

// fakeWorld ends the game at a given step by showing a picture, the way the
// world does when the last prisoner is caught.
type fakeWorld struct {
	host     sim.Host
	steps    int
	endAt    int
	inputs   int
	finished bool
	fail     error
}

func (w *fakeWorld) Step(time.Duration) error {
	if w.fail != nil {
		return w.fail
	}
	w.steps++
	if w.steps == w.endAt {
		w.host.StaticScreen(sim.PicGameOver, sim.CbGameEnded, 0)
	}
	return nil
}

func (w *fakeWorld) HandleInput(in core.InputFrame) {
	if len(in.Actions) > 0 {
		w.inputs++
	}
}

func (w *fakeWorld) RunCallback(cb sim.Callback, _ uint32) {
	if cb == sim.CbGameEnded {
		w.finished = true
	}
}

func (w *fakeWorld) Finished() bool { return w.finished }

func TestDriverRunsForLimit(t *testing.T) {
	q := NewQueue(nil, time.Second)
	w := &fakeWorld{host: q}
	d := Driver{World: w, Queue: q, Step: 10 * time.Millisecond}

	res, err := d.Run(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Steps != 100 || w.steps != 100 || res.Elapsed != time.Second || res.Finished {
		t.Errorf("Run() = %+v, world steps = %d", res, w.steps)
	}
}

func TestDriverPausesOnScreens(t *testing.T) {
	q := NewQueue(nil, 200*time.Millisecond)
	w := &fakeWorld{host: q, endAt: 5}
	d := Driver{World: w, Queue: q, Step: 10 * time.Millisecond}

	res, err := d.Run(context.Background(), time.Minute)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Finished {
		t.Fatal("game not finished")
	}
	if w.steps != 5 {
		t.Errorf("world stepped %d times, want 5", w.steps)
	}
	if res.Paused != 200*time.Millisecond {
		t.Errorf("Paused = %v, want 200ms", res.Paused)
	}
}

func TestDriverErrors(t *testing.T) {
	boom := errors.New("boom")
	q := NewQueue(nil, time.Second)

	d := Driver{World: &fakeWorld{host: q, fail: boom}, Queue: q, Step: time.Millisecond}
	if _, err := d.Run(context.Background(), time.Second); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}

	d = Driver{World: &fakeWorld{host: q}, Queue: q}
	if _, err := d.Run(context.Background(), time.Second); !errors.Is(err, ErrNoStep) {
		t.Errorf("Run() error = %v, want ErrNoStep", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d = Driver{World: &fakeWorld{host: q}, Queue: q, Step: time.Millisecond}
	if _, err := d.Run(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestWander(t *testing.T) {
	a := Wander(3, time.Second)
	b := Wander(3, time.Second)
	w := &fakeWorld{}
	for ms := 0; ms < 10000; ms += 15 {
		elapsed := time.Duration(ms) * time.Millisecond
		ia, ib := a(elapsed), b(elapsed)
		if len(ia.Actions) != len(ib.Actions) {
			t.Fatalf("at %v: inputs differ: %v vs %v", elapsed, ia.Actions, ib.Actions)
		}
		for act := range ia.Actions {
			if !ib.Has(act) {
				t.Fatalf("at %v: inputs differ: %v vs %v", elapsed, ia.Actions, ib.Actions)
			}
		}
		w.HandleInput(ia)
	}
	if w.inputs != 10 {
		t.Errorf("%d inputs in 10s, want 10", w.inputs)
	}
}
