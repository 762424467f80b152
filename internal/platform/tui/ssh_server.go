package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/fruitcatch/internal/engine"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
	"github.com/vovakirdan/fruitcatch/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.fruitcatch/host_key.
	HostKeyPath string

	// DBPath is the path to the replay journal. Empty disables recording.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Rules and Engine configure every player's session.
	Rules  fruit.Rules
	Engine engine.Config

	// Debug enables debug logging.
	Debug bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.fruitcatch/replays.db",
		IdleTimeout: 30 * time.Minute,
		Rules:       fruit.DefaultRules(),
		Engine:      engine.DefaultConfig(),
	}
}

// SSHServer serves the game over SSH. Every connection plays its own
// session; only the replay journal is shared between players.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
// A replay journal that cannot be opened only disables recording.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitcatch-ssh",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newGame),
			activeterm.Middleware(),
			srv.trackSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	if cfg.DBPath != "" {
		store, openErr := storage.Open(cfg.DBPath)
		if openErr != nil {
			logger.Warn("recording disabled", "db", cfg.DBPath, "error", openErr)
		} else {
			srv.store = store
		}
	}

	return srv, nil
}

// resolveHostKeyPath defaults to ~/.fruitcatch/host_key and makes sure
// the key's directory exists so wish can generate it there.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".fruitcatch", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// newGame builds the controller and model for one SSH session.
// activeterm has already rejected connections without a PTY.
func (s *SSHServer) newGame(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	controller := engine.NewController(s.config.Rules, s.config.Engine)
	controller.SetLogger(s.logger.With("user", sess.User()))
	if s.store != nil {
		controller.SetReplaySaver(s.store)
	}

	// The runner must not outlive the connection
	go func() {
		select {
		case <-sess.Context().Done():
			controller.Close()
		case <-controller.Done():
		}
	}()

	return NewModel(controller, pty.Window.Width, pty.Window.Height), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// trackSessions logs connects and disconnects with the number of
// players currently online.
func (s *SSHServer) trackSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		remote := sess.RemoteAddr().String()

		s.logger.Info("player connected",
			"user", sess.User(),
			"remote", remote,
			"online", s.active.Add(1),
		)
		defer func() {
			s.logger.Info("player disconnected",
				"user", sess.User(),
				"remote", remote,
				"online", s.active.Add(-1),
				"duration", time.Since(started).Round(time.Second),
			)
		}()

		next(sess)
	}
}

// Online returns the number of connected players.
func (s *SSHServer) Online() int64 {
	return s.active.Load()
}

// ListenAndServe starts the SSH server and blocks until SIGINT or
// SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "recording", s.store != nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "online", s.Online())
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the replay journal.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
