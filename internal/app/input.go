package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

// handleKey dispatches a key press through the keybind registry.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	k := msg.String()
	action := m.registry.GetAction(k)

	if m.showHelp {
		switch action {
		case "quit":
			return tea.Quit
		case "toggle_help", "escape":
			m.showHelp = false
		}
		return nil
	}

	switch action {
	case "open_window":
		if _, err := m.openWindow(m.ctx); err != nil {
			m.logEvent("open failed: %v", err)
		}
	case "open_blocking":
		if err := m.openConfirm(m.ctx); err != nil {
			m.logEvent("open failed: %v", err)
		}
	case "close_window":
		m.mgr.Close("")
	case "close_all":
		m.mgr.CloseAll()
	case "destroy_window":
		m.mgr.Destroy("")
	case "minimize_window":
		m.mgr.Minimize("")
	case "maximize_window":
		m.mgr.Maximize("")
	case "rename_window":
		if err := m.toggleRename(m.ctx); err != nil {
			m.logEvent("rename failed: %v", err)
		}

	case "escape":
		m.mgr.HandleKey(manager.KeyEscape)
	case "next_focus":
		m.mgr.HandleKey(manager.KeyTab)
	case "prev_focus":
		m.mgr.HandleKey(manager.KeyShiftTab)
	case "activate":
		m.mgr.Activate()

	case "toggle_animations":
		m.setAnimations(!m.animations)
		m.logEvent("animations=%t", m.animations)
	case "toggle_help":
		m.showHelp = true
	case "quit":
		return tea.Quit

	default:
		switch k {
		case "up", "k":
			m.scrollBy(-1)
		case "down", "j":
			m.scrollBy(1)
		}
	}
	return nil
}

// handleClick routes a left click to the dock, the topmost window under the
// pointer, or the mask.
func (m *Model) handleClick(msg tea.MouseClickMsg) {
	if m.showHelp {
		m.showHelp = false
		return
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return
	}

	for _, s := range m.mgr.Windows() {
		if s.Minimized && m.inZone(dockZoneID(s.ID), msg) {
			m.mgr.Minimize(s.ID)
			return
		}
	}

	p := m.point(mouse.X, mouse.Y)
	frames := m.frames()
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if f.bounds.Contains(p) {
			if f.interactive {
				m.clickWindow(f, p, msg)
			}
			return
		}
		if f.masked {
			m.mgr.MaskClick()
			return
		}
	}
}

func (m *Model) clickWindow(f frame, p geometry.Point, msg tea.MouseClickMsg) {
	id := f.snap.ID

	if p.Y == f.bounds.Top {
		for _, c := range headerControls(f.snap, f.bounds) {
			if p.X >= c.x && p.X < c.x+c.width {
				c.press(m.mgr, id)
				return
			}
		}
		m.mgr.BeginDrag(id, p)
		return
	}

	if onResizeHandle(f, p) {
		m.mgr.BeginResize(id, p)
		return
	}

	for i := range f.snap.Config.Buttons {
		if m.inZone(manager.ButtonID(id, i), msg) {
			m.mgr.PressButton(id, i)
			return
		}
	}
}

// inZone reports whether the click landed inside the marked zone id.
func (m *Model) inZone(id string, msg tea.MouseMsg) bool {
	zi := m.zones.Get(id)
	return zi != nil && zi.InBounds(msg)
}
