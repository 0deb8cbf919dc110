package lifecycle

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/transition"
)

// Options are the interaction settings of one window.
type Options struct {
	Draggable      bool
	Resizable      bool
	Minimizable    bool
	Maximizable    bool
	KeepInViewport bool
	MinX           int
	MinY           int
	MinWidth       int
	MinHeight      int
	// CenteredResize doubles resize deltas while the window still sits at
	// its placement, so a window growing around its center tracks the
	// pointer.
	CenteredResize bool
	Duration       time.Duration
}

// Hooks connect the machine to the rest of the window manager. Nil hooks are
// skipped.
type Hooks struct {
	// Mount attaches the window; a returned error aborts Open.
	Mount func() error
	// Entered runs when a real show completes (not after a minimize).
	Entered func()
	// ExitStart runs when a close starts the exit transition.
	ExitStart func()
	// Unmounted runs once the exit transition completed.
	Unmounted func()

	Minimize func(minimized bool)
	Maximize func(maximized bool)

	DragStart   func(geometry.Bounds)
	Drag        func(geometry.Bounds)
	DragEnd     func(geometry.Bounds)
	ResizeStart func(geometry.Bounds)
	Resize      func(geometry.Bounds)
	ResizeEnd   func(geometry.Bounds)

	// Place returns the top-left corner for a window that has not been
	// dragged.
	Place func(vp geometry.Viewport, width, height int) geometry.Point
}

// Session is an active drag or resize gesture.
type Session struct {
	Last   geometry.Point
	Active bool
}

// Machine is the state of one window. It is not safe for concurrent use.
type Machine struct {
	id    string
	opts  Options
	hooks Hooks
	tr    transition.Transition

	phase     Phase
	minimized bool
	maximized bool
	// docking is set while the minimize fade-out and the following
	// re-entry run; such an exit never unmounts.
	docking bool

	viewport    geometry.Viewport
	bounds      geometry.Bounds
	preMaximize geometry.Bounds
	// pinned windows keep their position instead of following placement.
	pinned bool

	drag   Session
	resize Session
}

// New returns a Hidden machine for the window id.
func New(id string, opts Options, tr transition.Transition, hooks Hooks) *Machine {
	if tr == nil {
		tr = transition.Instant{}
	}
	return &Machine{id: id, opts: opts, tr: tr, hooks: hooks}
}

// ID returns the window id.
func (m *Machine) ID() string { return m.id }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Minimized reports the minimized sub-state.
func (m *Machine) Minimized() bool { return m.minimized }

// Maximized reports the maximized sub-state.
func (m *Machine) Maximized() bool { return m.maximized }

// Docking reports whether a minimize transition is running.
func (m *Machine) Docking() bool { return m.docking }

// Pinned reports whether the window was moved away from its placement.
func (m *Machine) Pinned() bool { return m.pinned }

// Bounds returns the window's current geometry.
func (m *Machine) Bounds() geometry.Bounds { return m.bounds }

// Dragging reports whether a drag session is active.
func (m *Machine) Dragging() bool { return m.drag.Active }

// Resizing reports whether a resize session is active.
func (m *Machine) Resizing() bool { return m.resize.Active }

// SetOptions replaces the interaction settings.
func (m *Machine) SetOptions(opts Options) { m.opts = opts }

// SetSize sets the unmaximized size and re-places the window if it has not
// been pinned.
func (m *Machine) SetSize(width, height int) {
	if m.maximized {
		m.preMaximize.Width, m.preMaximize.Height = width, height
		return
	}
	m.bounds.Width, m.bounds.Height = width, height
	if !m.pinned {
		m.place()
	}
}

// SetViewport records the drawable area and keeps the window consistent
// with it.
func (m *Machine) SetViewport(vp geometry.Viewport) {
	m.viewport = vp
	switch {
	case m.maximized:
		m.bounds = geometry.Maximized(vp)
	case !m.pinned:
		m.place()
	case m.opts.KeepInViewport:
		pos := geometry.ClampedPosition(m.bounds, geometry.Delta{}, vp, m.opts.MinX, m.opts.MinY, true)
		m.bounds.Left, m.bounds.Top = pos.Left, pos.Top
	}
}

func (m *Machine) place() {
	if m.hooks.Place == nil {
		p := geometry.Place(geometry.PlaceCenter, m.bounds.Width, m.bounds.Height, m.viewport)
		m.bounds.Left, m.bounds.Top = p.X, p.Y
		return
	}
	p := m.hooks.Place(m.viewport, m.bounds.Width, m.bounds.Height)
	m.bounds.Left, m.bounds.Top = p.X, p.Y
}

// ResetPosition drops any drag offset and returns the window to its
// placement.
func (m *Machine) ResetPosition() {
	m.pinned = false
	if !m.maximized {
		m.place()
	}
}

func (m *Machine) fire(s Signal) error {
	p, err := next(m.phase, s)
	if err != nil {
		return err
	}
	m.phase = p
	return nil
}

// Open starts showing the window: Hidden→MaskVisible synchronously, then
// Entering once the mask is mounted, and Shown when the transition reports
// it entered.
func (m *Machine) Open() error {
	prev := m.phase
	if err := m.fire(SignalOpen); err != nil {
		return err
	}

	// A reopened window starts over at its placement. Sub-states are left
	// through their hooks so listeners see them end.
	m.setMaximized(false)
	if m.minimized {
		m.minimized = false
		if m.hooks.Minimize != nil {
			m.hooks.Minimize(false)
		}
	}
	m.docking = false
	m.cancelSessions()
	m.ResetPosition()

	if m.hooks.Mount != nil {
		if err := m.hooks.Mount(); err != nil {
			m.phase = prev
			return fmt.Errorf("mount %s: %w", m.id, err)
		}
	}
	if err := m.fire(SignalMaskMounted); err != nil {
		return err
	}
	m.runEnter()
	return nil
}

func (m *Machine) runEnter() {
	m.tr.Run(m.id, true, m.opts.Duration, transition.Callbacks{
		OnEntered: m.entered,
	})
}

func (m *Machine) entered() {
	if err := m.fire(SignalEntered); err != nil {
		return
	}
	if m.docking {
		m.docking = false
		return
	}
	if m.hooks.Entered != nil {
		m.hooks.Entered()
	}
}

// Close starts the exit transition. Closing during the enter transition or
// during a minimize still runs the full exit path.
func (m *Machine) Close() error {
	if m.phase == Exiting {
		if !m.docking {
			return fmt.Errorf("%w: close on %s", ErrInvalidTransition, m.phase)
		}
		// Minimize fade in progress: turn it into a real close.
		m.docking = false
	} else {
		if err := m.fire(SignalClose); err != nil {
			return err
		}
		m.docking = false
	}

	m.cancelSessions()
	if m.hooks.ExitStart != nil {
		m.hooks.ExitStart()
	}
	m.tr.Run(m.id, false, m.opts.Duration, transition.Callbacks{
		OnExited: m.exited,
	})
	return nil
}

func (m *Machine) exited() {
	if m.phase != Exiting {
		return
	}
	if m.docking {
		// Minimize animates out, then comes back as a docked strip.
		m.phase = Entering
		m.runEnter()
		return
	}
	m.phase = Unmounted
	if m.hooks.Unmounted != nil {
		m.hooks.Unmounted()
	}
}

// Abort detaches the window immediately, as when its owner goes away.
// Cleanup hooks run exactly as for a completed close.
func (m *Machine) Abort() {
	m.tr.Cancel(m.id)
	switch m.phase {
	case Hidden, Unmounted:
		return
	case Exiting:
		if m.docking {
			m.docking = false
			if m.hooks.ExitStart != nil {
				m.hooks.ExitStart()
			}
		}
	default:
		m.cancelSessions()
		if m.hooks.ExitStart != nil {
			m.hooks.ExitStart()
		}
	}
	m.phase = Unmounted
	m.docking = false
	if m.hooks.Unmounted != nil {
		m.hooks.Unmounted()
	}
}

func (m *Machine) interactive() bool {
	return m.phase == Shown || m.docking
}

// ToggleMinimize flips the minimized sub-state. An active maximize is turned
// off first. Minimizing runs the exit transition without unmounting; leaving
// minimized resets the window position.
func (m *Machine) ToggleMinimize() error {
	if !m.interactive() {
		return fmt.Errorf("%w: minimize on %s", ErrInvalidTransition, m.phase)
	}
	if m.maximized {
		m.setMaximized(false)
	}

	m.minimized = !m.minimized
	if m.hooks.Minimize != nil {
		m.hooks.Minimize(m.minimized)
	}

	if !m.minimized {
		m.ResetPosition()
		return nil
	}

	m.cancelSessions()
	if m.phase == Shown {
		m.docking = true
		m.phase = Exiting
		m.tr.Run(m.id, false, m.opts.Duration, transition.Callbacks{
			OnExited: m.exited,
		})
	}
	return nil
}

// ToggleMaximize flips the maximized sub-state. An active minimize is turned
// off first.
func (m *Machine) ToggleMaximize() error {
	if !m.interactive() {
		return fmt.Errorf("%w: maximize on %s", ErrInvalidTransition, m.phase)
	}
	if m.minimized {
		m.minimized = false
		if m.hooks.Minimize != nil {
			m.hooks.Minimize(false)
		}
		m.ResetPosition()
	}
	m.setMaximized(!m.maximized)
	return nil
}

func (m *Machine) setMaximized(on bool) {
	if on == m.maximized {
		return
	}
	m.cancelSessions()
	m.maximized = on
	if on {
		m.preMaximize = m.bounds
		m.bounds = geometry.Maximized(m.viewport)
	} else {
		m.bounds = m.preMaximize
		if !m.pinned {
			m.place()
		}
	}
	if m.hooks.Maximize != nil {
		m.hooks.Maximize(on)
	}
}

// BeginDrag starts a drag session at p. It reports false when the window
// cannot be dragged right now or another session is active.
func (m *Machine) BeginDrag(p geometry.Point) bool {
	if !m.opts.Draggable || m.phase != Shown || m.minimized || m.maximized {
		return false
	}
	if m.drag.Active || m.resize.Active {
		return false
	}
	m.drag = Session{Last: p, Active: true}
	if m.hooks.DragStart != nil {
		m.hooks.DragStart(m.bounds)
	}
	return true
}

// DragTo moves the window by the pointer movement since the last accepted
// position.
func (m *Machine) DragTo(p geometry.Point) bool {
	if !m.drag.Active {
		return false
	}
	d := geometry.DragDelta(p, m.drag.Last)
	pos := geometry.ClampedPosition(m.bounds, d, m.viewport, m.opts.MinX, m.opts.MinY, m.opts.KeepInViewport)

	if pos.MovedX {
		m.drag.Last.X = p.X
	}
	if pos.MovedY {
		m.drag.Last.Y = p.Y
	}
	if pos.Left != m.bounds.Left || pos.Top != m.bounds.Top {
		m.pinned = true
	}
	m.bounds.Left, m.bounds.Top = pos.Left, pos.Top

	if m.hooks.Drag != nil {
		m.hooks.Drag(m.bounds)
	}
	return true
}

// EndDrag finishes the drag session.
func (m *Machine) EndDrag() bool {
	if !m.drag.Active {
		return false
	}
	m.drag = Session{}
	if m.hooks.DragEnd != nil {
		m.hooks.DragEnd(m.bounds)
	}
	return true
}

// BeginResize starts a resize session at p.
func (m *Machine) BeginResize(p geometry.Point) bool {
	if !m.opts.Resizable || m.phase != Shown || m.minimized || m.maximized {
		return false
	}
	if m.drag.Active || m.resize.Active {
		return false
	}
	m.resize = Session{Last: p, Active: true}
	if !m.opts.CenteredResize {
		m.pinned = true
	}
	if m.hooks.ResizeStart != nil {
		m.hooks.ResizeStart(m.bounds)
	}
	return true
}

// ResizeTo grows or shrinks the window by the pointer movement.
func (m *Machine) ResizeTo(p geometry.Point) bool {
	if !m.resize.Active {
		return false
	}
	d := geometry.DragDelta(p, m.resize.Last)
	doubled := m.opts.CenteredResize && !m.pinned
	size := geometry.ClampedSize(m.bounds, d, m.viewport, m.opts.MinWidth, m.opts.MinHeight, doubled)

	m.bounds.Width, m.bounds.Height = size.Width, size.Height
	if !m.pinned {
		m.place()
	}
	m.resize.Last = p

	if m.hooks.Resize != nil {
		m.hooks.Resize(m.bounds)
	}
	return true
}

// EndResize finishes the resize session.
func (m *Machine) EndResize() bool {
	if !m.resize.Active {
		return false
	}
	m.resize = Session{}
	if m.hooks.ResizeEnd != nil {
		m.hooks.ResizeEnd(m.bounds)
	}
	return true
}

// cancelSessions drops active sessions without end callbacks; the window
// keeps its last computed geometry.
func (m *Machine) cancelSessions() {
	m.drag = Session{}
	m.resize = Session{}
}
