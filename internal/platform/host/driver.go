package host

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-escape/internal/core"
)

// ErrNoStep is returned by Run when the driver has no step length.
var ErrNoStep = errors.New("host: step must be positive")

// World is the part of the simulation the driver needs.
type World interface {
	Runner
	Step(elapsed time.Duration) error
	HandleInput(in core.InputFrame)
	Finished() bool
}

// InputFunc returns the input for the step starting at elapsed run time.
type InputFunc func(elapsed time.Duration) core.InputFrame

// Driver steps a world in fixed increments of game time, as fast as it can.
type Driver struct {
	World World
	Queue *Queue
	Step  time.Duration
	Input InputFunc
}

// Result reports what a run did.
type Result struct {
	Elapsed  time.Duration
	Steps    int
	Paused   time.Duration // time spent on static screens
	Finished bool
}

// Run drives the world for limit of game time, until the game ends or ctx
// is cancelled. Static screens pause the world and are dismissed after the
// queue's hold time.
func (d *Driver) Run(ctx context.Context, limit time.Duration) (Result, error) {
	var res Result
	if d.Step <= 0 {
		return res, ErrNoStep
	}
	for res.Elapsed < limit {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if d.World.Finished() {
			res.Finished = true
			return res, nil
		}
		if _, showing := d.Queue.Showing(); showing {
			d.Queue.Advance(d.Step, d.World)
			res.Paused += d.Step
			res.Elapsed += d.Step
			continue
		}
		if d.Input != nil {
			d.World.HandleInput(d.Input(res.Elapsed))
		}
		d.Queue.Advance(d.Step, d.World)
		if err := d.World.Step(d.Step); err != nil {
			return res, fmt.Errorf("host: step %d: %w", res.Steps, err)
		}
		res.Steps++
		res.Elapsed += d.Step
	}
	res.Finished = d.World.Finished()
	return res, nil
}

// Wander returns input that walks the active prisoner in a new random
// direction every period. The same seed always gives the same walk.
func Wander(seed int64, period time.Duration) InputFunc {
	rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay input, not security
	moves := [][]core.Action{
		{core.ActionUp},
		{core.ActionDown},
		{core.ActionLeft},
		{core.ActionRight},
		{core.ActionUp, core.ActionLeft},
		{core.ActionUp, core.ActionRight},
		{core.ActionDown, core.ActionLeft},
		{core.ActionDown, core.ActionRight},
		{core.ActionStop},
	}
	next := time.Duration(0)
	return func(elapsed time.Duration) core.InputFrame {
		in := core.NewInputFrame()
		if elapsed < next {
			return in
		}
		next = elapsed + period
		for _, a := range moves[rng.Intn(len(moves))] {
			in.Set(a)
		}
		if rng.Intn(4) == 0 {
			in.Set(core.ActionRun)
		}
		if rng.Intn(8) == 0 {
			in.Set(core.ActionPickUp)
		}
		return in
	}
}
