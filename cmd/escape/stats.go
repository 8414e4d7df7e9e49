package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-escape/internal/sim"
	"github.com/vovakirdan/tui-escape/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show escape records",
	Long: `Display escapes and deaths per nation, then the most recent records.

Examples:
  escape stats
  escape stats --recent 50`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent records to show")
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	recent, err := store.RecentEscapes(flagRecent)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Escape records")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-9s  %-7s  %-6s  %s\n", "Nation", "Escapes", "Deaths", "Fastest")
	for n := range sim.NbNations {
		ns, ok := stats[n]
		if !ok {
			ns = &storage.NationStats{Nation: n}
		}
		fmt.Fprintf(out, "  %-9s  %-7d  %-6d  %s\n", sim.NationName(n), ns.Escapes, ns.Deaths, gameTime(ns.FastestEscMs))
	}

	fmt.Fprintln(out)
	if len(recent) == 0 {
		fmt.Fprintln(out, "No records yet. Try 'escape run --wander --record'.")
		return nil
	}
	fmt.Fprintf(out, "  %-16s  %-9s  %-9s  %-10s  %s\n", "Session", "Nation", "Outcome", "Game time", "Date")
	for _, rec := range recent {
		fmt.Fprintf(out, "  %-16s  %-9s  %-9s  %-10s  %s\n",
			rec.Session, sim.NationName(rec.Nation), rec.Outcome, gameTime(rec.GameTime),
			rec.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// gameTime formats a game time in milliseconds, "-" for none.
func gameTime(ms uint64) string {
	if ms == 0 {
		return "-"
	}
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String() //#nosec G115 -- game time fits
}
