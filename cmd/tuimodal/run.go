package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/tuimodal/internal/app"
	"github.com/Gaurav-Gosain/tuimodal/internal/config"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
	"github.com/Gaurav-Gosain/tuimodal/internal/server"
	"github.com/Gaurav-Gosain/tuimodal/internal/theme"
)

const debugLogRelPath = "tuimodal/debug.log"

// filterMouseMotion drops mouse motion unless a drag or resize is running.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	m, ok := model.(*app.Model)
	if !ok {
		return msg
	}
	if _, active := m.Manager().Pointer(); active {
		return msg
	}
	return nil
}

func overrides() config.Overrides {
	return config.Overrides{
		ASCIIOnly:    asciiOnly,
		BorderStyle:  borderStyle,
		DockPosition: dockPosition,
		NoAnimations: noAnimations,
		ThemeName:    themeName,
	}
}

// setupLogging returns the logger the UI writes to: a file in the XDG state
// directory with --debug, nothing otherwise. The terminal belongs to the UI.
func setupLogging() (*log.Logger, func(), error) {
	if !debugMode {
		config.SetLogOutput(io.Discard)
		return log.New(io.Discard), func() {}, nil
	}

	path, err := xdg.StateFile(debugLogRelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "app",
	})
	config.SetLogOutput(f)
	config.SetLogLevel(log.DebugLevel)
	fmt.Printf("Debug log: %s\n", path)

	return l, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}, nil
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("tuimodal needs an interactive terminal")
	}

	logger, closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	config.ApplyOverrides(overrides(), userConfig)

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		return fmt.Errorf("could not load theme: %w", err)
	}

	model := app.New(app.Options{
		Config: userConfig,
		Logger: logger,
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	if path, err := config.GetConfigPath(); err == nil {
		w, err := config.NewWatcher(path, func(c *config.UserConfig) {
			config.ApplyOverrides(overrides(), c)
			if err := theme.Initialize(c.Appearance.Theme); err != nil {
				logger.Warn("theme reload failed", "err", err)
			}
			p.Send(app.ConfigReloadMsg{Config: c})
		})
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			logger.Warn("config watcher disabled", "err", err)
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(ctx context.Context, sshHost, sshPort, sshKeyPath string) error {
	if debugMode {
		app.SetLogLevel(log.DebugLevel)
		manager.SetLogLevel(log.DebugLevel)
		server.SetLogLevel(log.DebugLevel)
		config.SetLogLevel(log.DebugLevel)
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	config.ApplyOverrides(overrides(), userConfig)
	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		return fmt.Errorf("could not load theme: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &server.SSHServerConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
		Config:  userConfig,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
