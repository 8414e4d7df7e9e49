package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-escape/internal/platform/host"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List, export, import and delete saved games",
	Long: `Manage the saved games of the database.

Examples:
  escape saves list
  escape saves export quick quick.sav
  escape saves import evening evening.sav
  escape saves delete quick`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runSavesList,
}

var savesExportCmd = &cobra.Command{
	Use:   "export <slot> <file>",
	Short: "Write a save slot to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavesExport,
}

var savesImportCmd = &cobra.Command{
	Use:   "import <slot> <file>",
	Short: "Check a saved game file and store it in a slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavesImport,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesListCmd, savesExportCmd, savesImportCmd, savesDeleteCmd)
}

func runSavesList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	slots, err := store.ListSaves()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, "No saved games.")
		return nil
	}
	fmt.Fprintf(out, "  %-16s  %-10s  %-9s  %-7s  %s\n", "Slot", "Game time", "Active", "Escaped", "Saved")
	fmt.Fprintf(out, "  %-16s  %-10s  %-9s  %-7s  %s\n", "----", "---------", "------", "-------", "-----")
	for _, s := range slots {
		played := time.Duration(s.GameTime) * time.Millisecond //#nosec G115 -- game time fits
		fmt.Fprintf(out, "  %-16s  %-10v  %-9s  %-7d  %s\n",
			s.Name, played.Round(time.Second), sim.NationName(s.Nation), s.Escaped,
			s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	slot, err := store.GetSave(args[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], slot.Data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s (%d bytes)\n", slot.Name, args[1], len(slot.Data))
	return nil
}

// runSavesImport loads the file into a fresh world before storing it, so
// only saves that match the data files reach the database.
func runSavesImport(cmd *cobra.Command, args []string) error {
	cfg, logger, files, err := setup()
	if err != nil {
		return err
	}
	b, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[1], err)
	}
	w := newWorld(cfg, logger, files, sim.NopHost{})
	if err := w.LoadBytes(b); err != nil {
		return fmt.Errorf("import %s: %w", args[1], err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutSave(host.SaveSlot(args[0], b, w.Snapshot())); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into slot %s\n", args[1], args[0])
	return nil
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
