package manager

import (
	"github.com/Gaurav-Gosain/tuimodal/internal/focus"
	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
)

// Key is a keyboard action the manager routes.
type Key int

const (
	KeyEscape Key = iota
	KeyTab
	KeyShiftTab
)

// String returns a string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "esc"
	case KeyTab:
		return "tab"
	case KeyShiftTab:
		return "shift+tab"
	default:
		return "unknown"
	}
}

// HandleKey routes k to the active window and reports whether it was
// consumed. Escape closes the active window when it is closable and closes
// on escape; with no window open it does nothing.
func (m *Manager) HandleKey(k Key) bool {
	top, ok := m.Active()
	if !ok {
		return false
	}

	switch k {
	case KeyEscape:
		id, ok := m.router.EscapeVisible(top, m.minimized, func(id string) bool {
			rec, ok := m.records[id]
			return ok && rec.cfg.Closable && rec.cfg.CloseOnEscape
		})
		if !ok {
			return false
		}
		m.logger.Debug("escape", "id", id)
		m.Close(id)
		return true

	case KeyTab, KeyShiftTab:
		if !m.router.Bound(top) {
			return false
		}
		elems := m.Focusables(top)
		var moved bool
		if k == KeyTab {
			_, moved = m.router.Next(top, elems)
		} else {
			_, moved = m.router.Prev(top, elems)
		}
		if moved {
			m.notify()
		}
		return moved
	}
	return false
}

// Focusables returns the focus ring of id in render order: the close
// control followed by the footer buttons.
func (m *Manager) Focusables(id string) []focus.Element {
	rec, ok := m.records[id]
	if !ok {
		return nil
	}
	elems := make([]focus.Element, 0, len(rec.cfg.Buttons)+1)
	elems = append(elems, focus.Element{
		ID:     CloseControlID(id),
		Hidden: !rec.cfg.Closable,
	})
	for i, b := range rec.cfg.Buttons {
		elems = append(elems, focus.Element{
			ID:       ButtonID(id, i),
			Hidden:   b.Hidden,
			Disabled: b.Disabled,
		})
	}
	return elems
}

// Focus moves keyboard focus to element inside window id.
func (m *Manager) Focus(id, element string) {
	if _, ok := m.records[id]; !ok {
		return
	}
	m.router.Focus(id, element)
	m.notify()
}

// Activate presses the focused control of the active window.
func (m *Manager) Activate() bool {
	top, ok := m.Active()
	if !ok {
		return false
	}
	el, ok := m.router.Focused(top)
	if !ok {
		return false
	}
	if el == CloseControlID(top) {
		m.Close(top)
		return true
	}
	rec := m.records[top]
	for i := range rec.cfg.Buttons {
		if ButtonID(top, i) == el {
			return m.PressButton(top, i)
		}
	}
	return false
}

// PressButton runs the i-th footer button of id when it is enabled.
func (m *Manager) PressButton(id string, i int) bool {
	rec, ok := m.records[id]
	if !ok || rec.machine.Phase() != lifecycle.Shown || i < 0 || i >= len(rec.cfg.Buttons) {
		return false
	}
	b := rec.cfg.Buttons[i]
	if b.Disabled || b.Hidden {
		return false
	}
	m.router.Focus(id, ButtonID(id, i))
	if b.OnPress != nil {
		b.OnPress(id)
	}
	m.notify()
	return true
}

// MaskClick handles a click on the mask. It goes to the highest window that
// draws one; docked windows draw nothing and are skipped. The window is
// always notified and closes when its mask is dismissible.
func (m *Manager) MaskClick() {
	order := m.stack.Order()
	for i := len(order) - 1; i >= 0; i-- {
		rec, ok := m.records[order[i]]
		if !ok || rec.machine.Minimized() || !rec.cfg.DisplayMask {
			continue
		}
		if rec.cfg.OnMaskClick != nil {
			rec.cfg.OnMaskClick()
		}
		if rec.cfg.DismissibleMask && rec.cfg.Closable {
			m.Close(rec.id)
		}
		return
	}
}

// BeginDrag starts dragging id by its header at p.
func (m *Manager) BeginDrag(id string, p geometry.Point) bool {
	rec, ok := m.records[id]
	if !ok || m.pointer != "" {
		return false
	}
	if !rec.machine.BeginDrag(p) {
		return false
	}
	m.pointer = id
	return true
}

// BeginResize starts resizing id from its handle at p.
func (m *Manager) BeginResize(id string, p geometry.Point) bool {
	rec, ok := m.records[id]
	if !ok || m.pointer != "" {
		return false
	}
	if !rec.machine.BeginResize(p) {
		return false
	}
	m.pointer = id
	return true
}

// PointerMove feeds the active drag or resize session.
func (m *Manager) PointerMove(p geometry.Point) bool {
	rec, ok := m.records[m.pointer]
	if !ok {
		return false
	}
	var moved bool
	switch {
	case rec.machine.Dragging():
		moved = rec.machine.DragTo(p)
	case rec.machine.Resizing():
		moved = rec.machine.ResizeTo(p)
	}
	if moved {
		m.notify()
	}
	return moved
}

// PointerUp ends the active session.
func (m *Manager) PointerUp(geometry.Point) bool {
	rec, ok := m.records[m.pointer]
	m.pointer = ""
	if !ok {
		return false
	}
	ended := rec.machine.EndDrag() || rec.machine.EndResize()
	if ended {
		m.notify()
	}
	return ended
}

// endPointer forgets the pointer owner when it is id. The machine drops its
// own session without end callbacks.
func (m *Manager) endPointer(id string) {
	if m.pointer == id {
		m.pointer = ""
	}
}

// Pointer returns the window owning the active drag or resize.
func (m *Manager) Pointer() (string, bool) {
	return m.pointer, m.pointer != ""
}
