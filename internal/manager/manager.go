// Package manager is the window registry facade. A Manager owns every
// window of one host program: their lifecycle machines, the stacking order,
// keyboard routing and the shared scroll lock.
//
// A Manager is not safe for concurrent use. The host drives it from a single
// event loop and calls Tick on every frame so timed transitions complete.
package manager

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/tuimodal/internal/focus"
	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/portal"
	"github.com/Gaurav-Gosain/tuimodal/internal/scrolllock"
	"github.com/Gaurav-Gosain/tuimodal/internal/stack"
	"github.com/Gaurav-Gosain/tuimodal/internal/transition"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "manager",
	})
}

// SetLogLevel sets the logging level for the manager package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger replaces the package logger for one manager.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTransition sets the transition driving enter and exit phases. The
// default is a timed transition advanced by Tick.
func WithTransition(t transition.Transition) Option {
	return func(m *Manager) {
		if t != nil {
			m.transition = t
		}
	}
}

// WithAnimations disables timed transitions when false.
func WithAnimations(enabled bool) Option {
	return func(m *Manager) {
		if !enabled {
			m.transition = transition.Instant{}
		}
	}
}

// WithScrollTarget receives the aggregate scroll-lock state.
func WithScrollTarget(t scrolllock.Target) Option {
	return func(m *Manager) { m.scrollTarget = t }
}

// WithRootLayer sets the layer windows mount on when their AppendTo is nil.
func WithRootLayer(l *portal.Layer) Option {
	return func(m *Manager) {
		if l != nil {
			m.root = l
		}
	}
}

// WithViewport sets the initial drawable area.
func WithViewport(vp geometry.Viewport) Option {
	return func(m *Manager) { m.viewport = vp }
}

// WithClock sets the time source of the default timed transition.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

type record struct {
	id      string
	cfg     Config
	machine *lifecycle.Machine
	portal  *portal.Portal

	bound   bool
	resized bool
	dispose bool

	// zIndex and showSeq outlive the stacking entry so exiting windows keep
	// rendering at their layer.
	zIndex  int
	showSeq int
}

// Manager is the registry facade.
type Manager struct {
	id     string
	logger *log.Logger

	transition   transition.Transition
	now          func() time.Time
	scrollTarget scrolllock.Target

	stack  *stack.Registry
	router *focus.Router
	scroll *scrolllock.Arbiter
	root   *portal.Layer

	records  map[string]*record
	nextID   int
	showSeq  int
	viewport geometry.Viewport
	lastTick time.Time

	// pointer is the window owning the active drag or resize.
	pointer string

	subscribers map[int]func()
	nextSub     int
}

// New returns an empty manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		id:          uuid.NewString(),
		stack:       stack.New(),
		router:      focus.NewRouter(),
		root:        portal.NewLayer("root"),
		records:     make(map[string]*record),
		subscribers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.transition == nil {
		m.transition = transition.NewTimed(m.now)
	}
	if m.logger == nil {
		m.logger = logger.With("manager", m.id[:8])
	}
	m.scroll = scrolllock.New(m.scrollTarget)
	m.lastTick = m.now()
	return m
}

// ID returns the manager's instance id.
func (m *Manager) ID() string { return m.id }

// RootLayer returns the layer windows mount on by default.
func (m *Manager) RootLayer() *portal.Layer { return m.root }

// ScrollLocked reports the aggregate scroll-lock state.
func (m *Manager) ScrollLocked() bool { return m.scroll.Locked() }

// Subscribe registers fn to run after every state change. The returned
// function removes it.
func (m *Manager) Subscribe(fn func()) func() {
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	return func() { delete(m.subscribers, id) }
}

func (m *Manager) notify() {
	for _, fn := range m.subscribers {
		fn()
	}
}

// Open shows a new window with a generated id.
func (m *Manager) Open(cfg Config) (string, error) {
	id := fmt.Sprintf("window_%d", m.nextID)
	for m.stack.Has(id) {
		m.nextID++
		id = fmt.Sprintf("window_%d", m.nextID)
	}
	m.nextID++

	if err := m.OpenID(id, cfg); err != nil {
		return "", err
	}
	return id, nil
}

// OpenID shows the window id, registering it with cfg when it is new. An
// existing window is shown again with its current props; change those with
// UpdateProps. Opening a visible window does nothing.
func (m *Manager) OpenID(id string, cfg Config) error {
	rec, registered := m.records[id]
	if !registered {
		if err := validateLengths(id, cfg); err != nil {
			return err
		}
		rec = m.register(id, cfg.clone())
		m.logger.Debug("window generated", "id", id)
	}

	switch rec.machine.Phase() {
	case lifecycle.Hidden, lifecycle.Unmounted:
	case lifecycle.Exiting:
		if rec.machine.Docking() {
			return nil
		}
		// Reopened before the exit finished: finish it now so cleanup runs
		// once, then start over.
		rec.dispose = false
		rec.machine.Abort()
		if _, alive := m.records[id]; !alive {
			return m.OpenID(id, cfg)
		}
	default:
		return nil
	}

	rec.dispose = false
	rec.resized = false
	m.syncGeometry(rec)
	if err := rec.machine.Open(); err != nil {
		// A window that never mounted is not kept around.
		if !registered {
			m.dispose(rec)
		}
		m.logger.Debug("open failed", "id", id, "err", err)
		return err
	}
	m.notify()
	return nil
}

func validate(id string, cfg Config) error {
	if err := portal.Validate(id, cfg.AppendTo); err != nil {
		return err
	}
	return validateLengths(id, cfg)
}

// validateLengths checks the size and position lengths. The portal target of
// a new window is checked when it mounts.
func validateLengths(id string, cfg Config) error {
	for _, l := range []string{cfg.Width, cfg.Height, cfg.Position.X, cfg.Position.Y} {
		if _, err := geometry.ResolveLength(l, 100); err != nil {
			return fmt.Errorf("window %s: %w", id, err)
		}
	}
	return nil
}

func (m *Manager) register(id string, cfg Config) *record {
	m.stack.Register(id, cfg.BaseZIndex)
	rec := &record{id: id, cfg: cfg}
	rec.portal = portal.New(id, cfg.AppendTo, m.root)
	rec.machine = lifecycle.New(id, machineOptions(cfg), m.transition, m.hooks(rec))
	m.records[id] = rec
	return rec
}

func machineOptions(cfg Config) lifecycle.Options {
	return lifecycle.Options{
		Draggable:      cfg.Draggable,
		Resizable:      cfg.Resizable,
		Minimizable:    cfg.Minimizable,
		Maximizable:    cfg.Maximizable,
		KeepInViewport: cfg.KeepInViewport,
		MinX:           cfg.MinX,
		MinY:           cfg.MinY,
		MinWidth:       cfg.MinWidth,
		MinHeight:      cfg.MinHeight,
		CenteredResize: cfg.ResizeMode == ResizeCentered,
		Duration:       cfg.AnimationDuration,
	}
}

func (m *Manager) hooks(rec *record) lifecycle.Hooks {
	return lifecycle.Hooks{
		Mount: func() error {
			if err := rec.portal.SetVisible(true); err != nil {
				return err
			}
			m.stack.Show(rec.id)
			rec.zIndex, _ = m.stack.ZIndex(rec.id)
			m.showSeq++
			rec.showSeq = m.showSeq
			m.logger.Debug("window mounted", "id", rec.id, "z", rec.zIndex)
			return nil
		},
		Entered: func() {
			m.router.Bind(focus.Params{ID: rec.id, BlockScroll: rec.cfg.BlockScroll})
			rec.bound = true
			m.syncScroll(rec)
			if rec.cfg.FocusOnShow && rec.cfg.Closable {
				if _, focused := m.router.Focused(rec.id); !focused {
					m.router.Focus(rec.id, CloseControlID(rec.id))
				}
			}
			if rec.cfg.OnShow != nil {
				rec.cfg.OnShow()
			}
			m.notify()
		},
		ExitStart: func() {
			m.endPointer(rec.id)
			if rec.bound {
				m.router.Unbind(rec.id)
				rec.bound = false
			}
			m.scroll.Release(rec.id)
			m.stack.Hide(rec.id)
			m.logger.Debug("window closing", "id", rec.id)
		},
		Unmounted: func() {
			if err := rec.portal.SetVisible(false); err != nil {
				m.logger.Error("unmount failed", "id", rec.id, "err", err)
			}
			m.router.Blur(rec.id)
			if rec.cfg.OnHide != nil {
				rec.cfg.OnHide()
			}
			if rec.dispose || rec.cfg.DisposeOnExit {
				m.dispose(rec)
			}
			m.notify()
		},
		Minimize: func(on bool) {
			if on {
				m.endPointer(rec.id)
			}
			m.syncScroll(rec)
			if rec.cfg.OnMinimize != nil {
				rec.cfg.OnMinimize(on)
			}
		},
		Maximize: func(on bool) {
			m.endPointer(rec.id)
			m.syncScroll(rec)
			if rec.cfg.OnMaximize != nil {
				rec.cfg.OnMaximize(on)
			}
		},
		DragStart: func(b geometry.Bounds) { call(rec.cfg.OnDragStart, b) },
		Drag:      func(b geometry.Bounds) { call(rec.cfg.OnDrag, b) },
		DragEnd:   func(b geometry.Bounds) { call(rec.cfg.OnDragEnd, b) },
		ResizeStart: func(b geometry.Bounds) {
			rec.resized = true
			call(rec.cfg.OnResizeStart, b)
		},
		Resize:    func(b geometry.Bounds) { call(rec.cfg.OnResize, b) },
		ResizeEnd: func(b geometry.Bounds) { call(rec.cfg.OnResizeEnd, b) },
		Place: func(vp geometry.Viewport, w, h int) geometry.Point {
			return place(rec.cfg.Position, vp, w, h)
		},
	}
}

func call(fn func(geometry.Bounds), b geometry.Bounds) {
	if fn != nil {
		fn(b)
	}
}

func place(pos Position, vp geometry.Viewport, w, h int) geometry.Point {
	p := geometry.Place(pos.Placement, w, h, vp)
	if x, err := geometry.ResolveLength(pos.X, vp.Width); err == nil && strings.TrimSpace(pos.X) != "" {
		p.X = x
	}
	if y, err := geometry.ResolveLength(pos.Y, vp.Height); err == nil && strings.TrimSpace(pos.Y) != "" {
		p.Y = y
	}
	return p
}

// size resolves the configured dimensions against the viewport.
func (m *Manager) size(cfg Config) (int, int) {
	def := DefaultConfig()
	w, err := geometry.ResolveLength(cfg.Width, m.viewport.Width)
	if err != nil || w <= 0 {
		w, _ = geometry.ResolveLength(def.Width, m.viewport.Width)
	}
	h, err := geometry.ResolveLength(cfg.Height, m.viewport.Height)
	if err != nil || h <= 0 {
		h, _ = geometry.ResolveLength(def.Height, m.viewport.Height)
	}

	w = max(w, cfg.MinWidth+1)
	h = max(h, cfg.MinHeight+1)
	if m.viewport.Width > 0 {
		w = min(w, m.viewport.Width)
	}
	if m.viewport.Height > 0 {
		h = min(h, m.viewport.Height)
	}
	return w, h
}

func (m *Manager) syncGeometry(rec *record) {
	rec.machine.SetViewport(m.viewport)
	if !rec.resized {
		w, h := m.size(rec.cfg)
		rec.machine.SetSize(w, h)
	}
}

// syncScroll counts the window as a lock holder while it is bound and either
// blocks scrolling or is maximized.
func (m *Manager) syncScroll(rec *record) {
	m.scroll.Set(rec.id, rec.bound && (rec.cfg.BlockScroll || rec.machine.Maximized()))
}

func (m *Manager) dispose(rec *record) {
	m.transition.Cancel(rec.id)
	m.endPointer(rec.id)
	if rec.bound {
		m.router.Unbind(rec.id)
	}
	m.router.Blur(rec.id)
	m.scroll.Release(rec.id)
	m.stack.Dispose(rec.id)
	delete(m.records, rec.id)
	m.logger.Debug("window disposed", "id", rec.id)
}

func (m *Manager) resolve(id string) (*record, bool) {
	if id == "" {
		top, ok := m.stack.Topmost()
		if !ok {
			return nil, false
		}
		id = top
	}
	rec, ok := m.records[id]
	return rec, ok
}

// Close starts hiding id; an empty id closes the topmost window. The window
// stays registered and can be opened again unless it disposes on exit.
// Unknown or hidden windows are ignored.
func (m *Manager) Close(id string) {
	rec, ok := m.resolve(id)
	if !ok {
		return
	}
	if err := rec.machine.Close(); err != nil {
		m.logger.Debug("close ignored", "id", rec.id, "err", err)
		return
	}
	m.logger.Debug("window closed", "id", rec.id)
	m.notify()
}

// CloseAll closes every visible window, topmost first.
func (m *Manager) CloseAll() {
	order := m.stack.Order()
	slices.Reverse(order)
	for _, id := range order {
		m.Close(id)
	}
}

// Destroy closes id and forgets it once the exit completes. A hidden window
// is forgotten immediately.
func (m *Manager) Destroy(id string) {
	rec, ok := m.resolve(id)
	if !ok {
		return
	}
	rec.dispose = true

	switch rec.machine.Phase() {
	case lifecycle.Hidden, lifecycle.Unmounted:
		m.dispose(rec)
		m.notify()
	case lifecycle.Exiting:
		if rec.machine.Docking() {
			m.Close(rec.id)
		}
	default:
		m.Close(rec.id)
	}
}

// UpdateProps applies fn to a copy of id's config and adopts it. Unknown ids
// are ignored; an invalid result is rejected and the old config kept.
func (m *Manager) UpdateProps(id string, fn func(*Config)) error {
	rec, ok := m.resolve(id)
	if !ok || fn == nil {
		return nil
	}

	cfg := rec.cfg.clone()
	fn(&cfg)
	if err := validate(rec.id, cfg); err != nil {
		return err
	}

	if cfg.AppendTo != rec.cfg.AppendTo && rec.portal.Mounted() {
		if err := rec.portal.SetVisible(false); err != nil {
			return err
		}
		rec.portal.AppendTo = cfg.AppendTo
		if err := rec.portal.SetVisible(true); err != nil {
			return err
		}
	}
	rec.portal.AppendTo = cfg.AppendTo

	rec.cfg = cfg
	rec.machine.SetOptions(machineOptions(cfg))
	m.stack.SetBaseZIndex(rec.id, cfg.BaseZIndex)
	m.syncGeometry(rec)
	if rec.bound {
		m.syncScroll(rec)
	}
	m.logger.Debug("window updated", "id", rec.id)
	m.notify()
	return nil
}

// UpdateTopmost applies fn to the topmost window.
func (m *Manager) UpdateTopmost(fn func(*Config)) error {
	return m.UpdateProps("", fn)
}

// Minimize toggles the minimized state of id.
func (m *Manager) Minimize(id string) {
	rec, ok := m.resolve(id)
	if !ok || !rec.cfg.Minimizable {
		return
	}
	if err := rec.machine.ToggleMinimize(); err != nil {
		m.logger.Debug("minimize ignored", "id", rec.id, "err", err)
		return
	}
	m.notify()
}

// Maximize toggles the maximized state of id.
func (m *Manager) Maximize(id string) {
	rec, ok := m.resolve(id)
	if !ok || !rec.cfg.Maximizable {
		return
	}
	if err := rec.machine.ToggleMaximize(); err != nil {
		m.logger.Debug("maximize ignored", "id", rec.id, "err", err)
		return
	}
	m.notify()
}

// SetViewport records the drawable area and re-lays out every window.
func (m *Manager) SetViewport(vp geometry.Viewport) {
	if vp == m.viewport {
		return
	}
	m.viewport = vp
	for _, rec := range m.records {
		m.syncGeometry(rec)
	}
	m.notify()
}

// Viewport returns the drawable area.
func (m *Manager) Viewport() geometry.Viewport { return m.viewport }

// Tick advances timed transitions to now and reports whether any phase
// changed.
func (m *Manager) Tick(now time.Time) bool {
	m.lastTick = now
	timed, ok := m.transition.(*transition.Timed)
	if !ok {
		return false
	}
	return timed.Advance(now)
}

// Animating reports whether a transition is still running.
func (m *Manager) Animating() bool {
	timed, ok := m.transition.(*transition.Timed)
	return ok && timed.Active()
}

// Topmost returns the id of the topmost visible window.
func (m *Manager) Topmost() (string, bool) {
	return m.stack.Topmost()
}

// Active returns the topmost window that is not minimized. Keyboard input
// and mask clicks go to it.
func (m *Manager) Active() (string, bool) {
	order := m.stack.Order()
	for i := len(order) - 1; i >= 0; i-- {
		if !m.minimized(order[i]) {
			return order[i], true
		}
	}
	return "", false
}

func (m *Manager) minimized(id string) bool {
	rec, ok := m.records[id]
	return ok && rec.machine.Minimized()
}
