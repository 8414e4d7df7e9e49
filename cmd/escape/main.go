// escape runs the Colditz escape simulation in the terminal.
//
// Usage:
//
//	escape run               - Run the simulation headless and print a summary
//	escape watch             - Play in the terminal
//	escape serve             - Start SSH server for remote play
//	escape saves <command>   - Manage saved games
//	escape rooms [room...]   - Inspect room geometry and exits
//	escape stats             - Show escape records
//
// Global flags:
//
//	--data <dir>         - Directory holding the original data files
//	--config <path>      - Configuration file
//	--db <path>          - Database path (default: ~/.escape/escape.db)
//	--seed <value>       - RNG seed for reproducible runs
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-escape/internal/config"
	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/sim"
	"github.com/vovakirdan/tui-escape/internal/storage"
)

var (
	// Global flags
	flagDataDir  string
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "escape",
	Short: "Escape - the Colditz escape simulation in your terminal",
	Long: `Escape runs the guards, prisoners and clock of the Colditz escape
game over the original data files.

Available commands:
  run      - Run the simulation headless
  watch    - Play in the terminal
  serve    - Start SSH server for remote play
  saves    - List, export, import and delete saved games
  rooms    - Inspect rooms from the data files
  stats    - Show escape records

Examples:
  escape run --duration 30m --wander
  escape watch --data ./data
  escape serve --address :2222
  escape saves list
  escape rooms 0 1 2`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", "", "Directory holding the data files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagDBPath != "" {
		cfg.Database = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

// newLogger creates the stderr logger at the --log-level level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "escape",
		Level:           level,
	})
	return logger, nil
}

// setup loads everything a command needs to create worlds.
func setup() (config.Config, *log.Logger, *data.Files, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return cfg, nil, nil, err
	}
	files, err := data.Load(config.ExpandHome(cfg.DataDir))
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, logger, files, nil
}

// newWorld creates a world over its own copy of files.
func newWorld(cfg config.Config, logger *log.Logger, files *data.Files, h sim.Host) *sim.World {
	return sim.New(files.Clone(), cfg.SimOptions(logger.WithPrefix("sim"), h))
}

// openStore opens the database of cfg.
func openStore(cfg config.Config) (*storage.Store, error) {
	return storage.Open(cfg.Database)
}
