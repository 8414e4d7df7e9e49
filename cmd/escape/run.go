package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-escape/internal/platform/host"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

var (
	flagDuration time.Duration
	flagWander   bool
	flagRecord   bool
	flagSaveTo   string
	flagLoadFrom string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation headless",
	Long: `Run the simulation without a display for a span of game time, then
print a summary of the clock, the prisoners and the guards.

Static screens are dismissed after the configured picture time, so a run
goes on through solitary confinement and escapes.

Examples:
  escape run --duration 1h
  escape run --wander --seed 7
  escape run --load quick --duration 10m --save quick
  escape run --wander --record`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Minute, "Game time to simulate")
	runCmd.Flags().BoolVar(&flagWander, "wander", false, "Walk the active prisoner in random directions")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record escapes and deaths in the database")
	runCmd.Flags().StringVar(&flagSaveTo, "save", "", "Save the final state to this slot")
	runCmd.Flags().StringVar(&flagLoadFrom, "load", "", "Start from this save slot")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, logger, files, err := setup()
	if err != nil {
		return err
	}

	q := host.NewQueue(logger.WithPrefix("host"), cfg.PictureDuration())
	w := newWorld(cfg, logger, files, q)

	needStore := flagRecord || flagSaveTo != "" || flagLoadFrom != ""
	if needStore {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if flagLoadFrom != "" {
			slot, err := store.GetSave(flagLoadFrom)
			if err != nil {
				return err
			}
			if err := w.LoadBytes(slot.Data); err != nil {
				return fmt.Errorf("load slot %s: %w", flagLoadFrom, err)
			}
		}
		defer func() {
			snap := w.Snapshot()
			if flagRecord {
				session := fmt.Sprintf("run-%d", cfg.Game.Seed)
				for _, rec := range host.Outcomes(session, snap) {
					if _, err := store.RecordEscape(rec); err != nil {
						logger.Warn("cannot record outcome", "error", err)
					}
				}
			}
			if flagSaveTo != "" {
				b, err := w.SaveBytes()
				if err == nil {
					err = store.PutSave(host.SaveSlot(flagSaveTo, b, snap))
				}
				if err != nil {
					logger.Error("cannot save", "slot", flagSaveTo, "error", err)
					return
				}
				logger.Info("game saved", "slot", flagSaveTo)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := host.Driver{
		World: w,
		Queue: q,
		Step:  w.Options().RepositionInterval,
	}
	if flagWander {
		d.Input = host.Wander(cfg.Game.Seed, 2*time.Second)
	}

	logger.Info("running", "duration", flagDuration, "seed", cfg.Game.Seed)
	start := time.Now()
	res, err := d.Run(ctx, flagDuration)
	if err != nil && ctx.Err() == nil {
		return err
	}

	printSummary(cmd, w, q, res, time.Since(start))
	return nil
}

// printSummary writes the state of the world after a run.
func printSummary(cmd *cobra.Command, w *sim.World, q *host.Queue, res host.Result, wall time.Duration) {
	out := cmd.OutOrStdout()
	hours, minutes := w.Clock()
	fmt.Fprintf(out, "Game time:  %v (%d steps, %v on static screens, %v wall)\n",
		res.Elapsed, res.Steps, res.Paused, wall.Round(time.Millisecond))
	fmt.Fprintf(out, "Clock:      %02d:%02d\n", hours, minutes)
	fmt.Fprintf(out, "Active:     %s in room %s\n", sim.NationName(w.Current()), roomName(w.Room()))
	switch {
	case w.GameWon():
		fmt.Fprintln(out, "Result:     every prisoner escaped")
	case w.GameOver():
		fmt.Fprintln(out, "Result:     game over")
	default:
		fmt.Fprintf(out, "Result:     %d prisoners still to escape\n", w.RemainingToWin())
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-9s  %-6s  %-11s  %-8s  %s\n", "Nation", "Room", "Position", "Fatigue", "Status")
	for n := range sim.NbNations {
		p := w.Prisoner(n)
		ev := w.PrisonerEvent(n)
		fmt.Fprintf(out, "  %-9s  %-6s  %4d,%-6d  %-8d  %s\n",
			sim.NationName(n), roomName(p.Room), p.PX, p.PY(), ev.Fatigue, prisonerStatus(p, ev))
	}

	pursuing := 0
	for i := range sim.NbGuards {
		if w.Guard(i).State.Has(sim.StateInPursuit) {
			pursuing++
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Guards in pursuit: %d of %d\n", pursuing, sim.NbGuards)
	fmt.Fprintf(out, "Pending events:    %d\n", w.PendingEvents())
	if pics := q.Pictures(); len(pics) > 0 {
		fmt.Fprintf(out, "Static screens:    %v\n", pics)
	}
	if hist := q.History(); len(hist) > 0 {
		fmt.Fprintf(out, "Last message:      %s\n", hist[len(hist)-1].Text)
	}
}

func prisonerStatus(p *sim.Guybrush, ev *sim.PrisonerEvent) string {
	switch {
	case ev.Escaped:
		return "escaped"
	case ev.Killed:
		return "killed"
	case p.State.Has(sim.StateInPrison):
		return "in solitary"
	case p.State.Has(sim.StateSleeping):
		return "asleep"
	case p.DressedAsGuard:
		return "in uniform"
	}
	return "in play"
}
