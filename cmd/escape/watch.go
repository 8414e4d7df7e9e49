package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-escape/internal/platform/host"
	"github.com/vovakirdan/tui-escape/internal/platform/tui"
	"github.com/vovakirdan/tui-escape/internal/sim"
	"github.com/vovakirdan/tui-escape/internal/storage"
)

var (
	flagSlot   string
	flagFPS    int
	flagNoSave bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play in the terminal",
	Long: `Play the simulation in the terminal. The room of the active prisoner
is drawn with guards, prisoners and objects on top of it.

Games are saved to the slot named by --slot (default "quick") with F5,
and resumed from it when it exists.

Examples:
  escape watch
  escape watch --slot evening --fps 20
  escape watch --no-save`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagSlot, "slot", "quick", "Save slot to resume from and save to")
	watchCmd.Flags().IntVar(&flagFPS, "fps", 0, "Frames per second (0 = config value)")
	watchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not open the database")
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, logger, files, err := setup()
	if err != nil {
		return err
	}

	rc := cfg.Runtime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if flagFPS > 0 {
		rc.FrameRate = flagFPS
	}

	q := host.NewQueue(logger.WithPrefix("host"), cfg.PictureDuration())
	w := newWorld(cfg, logger, files, q)
	opts := tui.Options{Runtime: rc, Logger: logger}

	if !flagNoSave {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := resume(store, w, flagSlot); err != nil {
			return err
		}
		opts.Save = func(b []byte, snap sim.Snapshot) error {
			return store.PutSave(host.SaveSlot(flagSlot, b, snap))
		}
		session := "watch-" + flagSlot
		opts.Finish = func(snap sim.Snapshot) {
			for _, rec := range host.Outcomes(session, snap) {
				if _, err := store.RecordEscape(rec); err != nil {
					logger.Warn("cannot record outcome", "error", err)
				}
			}
		}
	}

	return tui.Run(w, q, opts)
}

// resume loads slot into w. A missing slot starts a new game.
func resume(store *storage.Store, w *sim.World, slot string) error {
	saved, err := store.GetSave(slot)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := w.LoadBytes(saved.Data); err != nil {
		return fmt.Errorf("load slot %s: %w", slot, err)
	}
	return nil
}
