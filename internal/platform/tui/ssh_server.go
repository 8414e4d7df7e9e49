package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/platform/host"
	"github.com/vovakirdan/tui-escape/internal/sim"
	"github.com/vovakirdan/tui-escape/internal/storage"
)

// NewWorldFunc creates the world of one session around its host.
type NewWorldFunc func(h sim.Host) (World, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file. Wish generates the key
	// if it does not exist.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Runtime     core.RuntimeConfig
	PictureHold time.Duration
	NewWorld    NewWorldFunc

	// Store keeps one save slot per user and the escape records of every
	// session. Optional.
	Store  *storage.Store
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2222",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
		PictureHold: 2 * time.Second,
	}
}

// SSHServer serves the viewer over SSH, one world per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.NewWorld == nil {
		return nil, errors.New("tui: ssh server needs a world factory")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("ssh")

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	if cfg.HostKeyPath == "" {
		return nil, errors.New("tui: ssh server needs a host key path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a world and a viewer for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "escape needs a terminal: connect with ssh -t")
		return nil, nil
	}

	q := host.NewQueue(s.logger, s.config.PictureHold)
	w, err := s.config.NewWorld(q)
	if err != nil {
		s.logger.Error("cannot create world", "user", sess.User(), "error", err)
		wish.Fatalln(sess, "cannot start a game")
		return nil, nil
	}

	rc := s.config.Runtime
	rc.ScreenW = pty.Window.Width
	rc.ScreenH = pty.Window.Height
	session := fmt.Sprintf("ssh-%s-%d", sess.User(), time.Now().UnixNano())

	opts := Options{Runtime: rc, Logger: s.logger.With("user", sess.User())}
	if store := s.config.Store; store != nil {
		slot := "ssh-" + sess.User()
		if saved, err := store.GetSave(slot); err == nil {
			if err := w.LoadBytes(saved.Data); err != nil {
				s.logger.Warn("cannot resume saved game", "slot", slot, "error", err)
			}
		}
		opts.Save = func(data []byte, snap sim.Snapshot) error {
			return store.PutSave(host.SaveSlot(slot, data, snap))
		}
		opts.Finish = func(snap sim.Snapshot) {
			for _, rec := range host.Outcomes(session, snap) {
				if _, err := store.RecordEscape(rec); err != nil {
					s.logger.Warn("cannot record outcome", "error", err)
				}
			}
		}
	}

	return NewModel(w, q, opts), []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
