// Package server serves the window manager demo over SSH. Every session
// gets its own model and manager; nothing is shared between connections.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/tuimodal/internal/app"
	"github.com/Gaurav-Gosain/tuimodal/internal/config"
)

// Package-level logger
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "ssh",
})

// SetLogLevel sets the logging level for the server package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// hostKeyRelPath is the default host key location below the XDG data home.
const hostKeyRelPath = "tuimodal/ssh_host_key"

const shutdownTimeout = 5 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	// Config is handed to every session; nil loads the user config file
	// once per connection.
	Config *config.UserConfig
}

// Addr returns the listen address.
func (c *SSHServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// hostKeyPath returns the configured key path, or the default under the
// XDG data directory.
func (c *SSHServerConfig) hostKeyPath() (string, error) {
	if c.KeyPath != "" {
		return c.KeyPath, nil
	}
	path, err := xdg.DataFile(hostKeyRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve host key path: %w", err)
	}
	return path, nil
}

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	keyPath, err := cfg.hostKeyPath()
	if err != nil {
		return err
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(cfg)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", srv.Addr, "host_key", keyPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("SSH server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// teaHandler creates a model for each SSH session.
func teaHandler(cfg *SSHServerConfig) func(ssh.Session) (tea.Model, []tea.ProgramOption) {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := s.Pty()
		if !active {
			wish.Fatalln(s, "tuimodal needs an interactive terminal; connect with ssh -t")
			return nil, nil
		}

		l := logger.With("user", s.User(), "remote", s.RemoteAddr().String())
		l.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		m := app.New(app.Options{
			Config: sessionConfig(cfg, l),
			Logger: l,
		})
		go func() {
			<-s.Context().Done()
			m.Close()
			l.Info("session ended")
		}()

		return m, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
		}
	}
}

// sessionConfig returns the config for a new session.
func sessionConfig(cfg *SSHServerConfig, l *log.Logger) *config.UserConfig {
	if cfg.Config != nil {
		return cfg.Config
	}
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		l.Warn("failed to load config for SSH session, using defaults", "err", err)
		return config.DefaultConfig()
	}
	return userConfig
}
