package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-escape/internal/config"
	"github.com/vovakirdan/tui-escape/internal/platform/tui"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoStore     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server that gives every connection its own game.

Each user's game is saved to the slot "ssh-<user>" and resumed on the next
connection. Escape records of all sessions go to the same database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key from the config (generated if missing)

Examples:
  escape serve                           # Listen on the configured address
  escape serve --address :2222           # Listen on port 2222
  escape serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "address", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoStore, "no-save", false, "Do not keep saves or records")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, files, err := setup()
	if err != nil {
		return err
	}

	sc := tui.DefaultSSHServerConfig()
	sc.Address = cfg.Server.Address
	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	sc.HostKeyPath = config.ExpandHome(cfg.Server.HostKey)
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	sc.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sc.Runtime = cfg.Runtime()
	sc.PictureHold = cfg.PictureDuration()
	sc.Logger = logger.WithPrefix("ssh")
	sc.NewWorld = func(h sim.Host) (tui.World, error) {
		// Sessions share the seed of the server unless a save is resumed.
		return newWorld(cfg, logger, files, h), nil
	}

	if !flagNoStore {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		sc.Store = store
	}

	server, err := tui.NewSSHServer(sc)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting escape SSH server on %s\n", sc.Address)
	fmt.Fprintln(out, "Press Ctrl+C to stop")
	return server.ListenAndServe()
}
