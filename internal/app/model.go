// Package app hosts the window manager inside a Bubble Tea program. It turns
// keyboard and mouse input into manager calls and draws every mounted window
// over a scrollable background.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone/v2"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
	"github.com/Gaurav-Gosain/tuimodal/internal/scrolllock"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "app",
	})
}

// SetLogLevel sets the logging level for the app package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// maxEvents caps the background event log.
const maxEvents = 200

// Options configures a Model.
type Options struct {
	Config *config.UserConfig
	// Logger replaces the package logger, e.g. with one tagged by SSH user.
	Logger *log.Logger
	// Now replaces the wall clock.
	Now func() time.Time
}

// Model is the Bubble Tea model of the demo. It owns one manager; every
// program (and every SSH session) gets its own.
type Model struct {
	ctx      context.Context
	mgr      *manager.Manager
	cfg      *config.UserConfig
	registry *config.KeybindRegistry
	zones    *zone.Manager
	logger   *log.Logger
	now      func() time.Time

	width  int
	height int

	// Background state. scrollLocked is driven by the manager's arbiter.
	scrollLocked bool
	scroll       int
	events       []string

	showHelp   bool
	animations bool
	opened     int
}

// New returns a model with an empty manager.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	l := opts.Logger
	if l == nil {
		l = logger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		cfg:        cfg,
		registry:   config.NewKeybindRegistry(cfg),
		zones:      zone.New(),
		logger:     l,
		now:        now,
		animations: cfg.Appearance.Animations && config.AnimationsEnabled,
	}
	m.mgr = manager.New(
		manager.WithLogger(l.WithPrefix("manager")),
		manager.WithClock(now),
		manager.WithScrollTarget(scrolllock.TargetFunc(m.setScrollLocked)),
	)
	m.ctx = manager.WithManager(context.Background(), m.mgr)
	m.logEvent("ready: press %s to open a window, %s for help",
		m.registry.GetKeysForDisplay("open_window"),
		m.registry.GetKeysForDisplay("toggle_help"))
	return m
}

// Manager returns the model's window manager.
func (m *Model) Manager() *manager.Manager { return m.mgr }

// Context returns a context carrying the model's manager.
func (m *Model) Context() context.Context { return m.ctx }

// Close releases the zone tracker. Call it after the program exits.
func (m *Model) Close() {
	m.zones.Close()
}

func (m *Model) setScrollLocked(locked bool) {
	m.scrollLocked = locked
	if locked {
		m.logEvent("background scroll locked")
	} else {
		m.logEvent("background scroll unlocked")
	}
}

func (m *Model) logEvent(format string, args ...any) {
	line := m.now().Format("15:04:05") + "  " + fmt.Sprintf(format, args...)
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	m.logger.Debug(line)
}

// Events returns the background event log, oldest first.
func (m *Model) Events() []string { return m.events }

// ScrollOffset returns how many event lines the background is scrolled by.
func (m *Model) ScrollOffset() int { return m.scroll }

// scrollBy moves the background unless a window blocks scrolling.
func (m *Model) scrollBy(n int) bool {
	if m.scrollLocked {
		return false
	}
	m.scroll = max(0, min(m.scroll+n, max(0, len(m.events)-1)))
	return true
}

// dockAtTop reports whether the dock row sits above the windows.
func (m *Model) dockAtTop() bool {
	return m.cfg.Appearance.DockPosition == "top"
}

// originY is the screen row of the manager viewport's first row.
func (m *Model) originY() int {
	if m.dockAtTop() {
		return config.DockHeight
	}
	return 0
}

// viewport is the area windows live in: the screen minus the dock.
func (m *Model) viewport() geometry.Viewport {
	return geometry.Viewport{
		Width:  m.width,
		Height: max(0, m.height-config.DockHeight),
	}
}

// point converts screen coordinates into viewport coordinates.
func (m *Model) point(x, y int) geometry.Point {
	return geometry.Point{X: x, Y: y - m.originY()}
}

// applyConfig swaps in a reloaded config. Open windows keep their props;
// new windows and key handling use the new values.
func (m *Model) applyConfig(cfg *config.UserConfig) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.registry = config.NewKeybindRegistry(cfg)
	m.setAnimations(cfg.Appearance.Animations && config.AnimationsEnabled)
	m.logEvent("config reloaded")
}
