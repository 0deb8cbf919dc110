package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

// ConfirmID is the fixed id of the blocking dialog, so reopening it reuses
// the same window.
const ConfirmID = "confirm"

const renamedSuffix = " (renamed)"

// windowConfig starts from the user's window defaults.
func (m *Model) windowConfig() manager.Config {
	cfg := m.cfg.WindowConfig()
	if !m.animations {
		cfg.AnimationDuration = 0
	}
	return cfg
}

// traced wires the lifecycle callbacks of cfg into the event log.
func (m *Model) traced(cfg manager.Config) manager.Config {
	title := cfg.Title
	cfg.OnShow = func() { m.logEvent("%s shown", title) }
	cfg.OnHide = func() { m.logEvent("%s hidden", title) }
	cfg.OnDragEnd = func(b geometry.Bounds) {
		m.logEvent("%s moved to %d,%d", title, b.Left, b.Top)
	}
	cfg.OnResizeEnd = func(b geometry.Bounds) {
		m.logEvent("%s resized to %dx%d", title, b.Width, b.Height)
	}
	cfg.OnMaximize = func(on bool) { m.logEvent("%s maximized=%t", title, on) }
	cfg.OnMinimize = func(on bool) { m.logEvent("%s minimized=%t", title, on) }
	cfg.OnMaskClick = func() { m.logEvent("%s mask clicked", title) }
	return cfg
}

// openWindow opens a throwaway window with a single Close button.
func (m *Model) openWindow(ctx context.Context) (string, error) {
	mgr, err := manager.FromContext(ctx)
	if err != nil {
		return "", err
	}
	m.opened++

	cfg := m.windowConfig()
	cfg.Title = fmt.Sprintf("Window %d", m.opened)
	cfg.Body = "Drag the title bar to move this window.\n" +
		"Drag the corner handle to resize it.\n" +
		"Tab cycles focus, Enter presses the focused control."
	cfg.DisposeOnExit = true
	cfg.Buttons = []manager.Button{
		{Label: "Close", OnPress: mgr.Close},
	}
	cfg = m.traced(cfg)

	id, err := mgr.Open(cfg)
	if err != nil {
		return "", err
	}
	m.logEvent("%s opened as %s", cfg.Title, id)
	return id, nil
}

// openConfirm opens the blocking dialog. It masks everything below it and
// locks background scrolling while shown.
func (m *Model) openConfirm(ctx context.Context) error {
	mgr, err := manager.FromContext(ctx)
	if err != nil {
		return err
	}

	cfg := m.windowConfig()
	cfg.Title = "Confirm"
	cfg.Body = "Close every window?\nThe background stops scrolling while this dialog is open."
	cfg.Width = "48"
	cfg.Height = "9"
	cfg.AnimationDuration = min(cfg.AnimationDuration, config.GetFastAnimationDuration())
	cfg.Position = manager.Position{Placement: geometry.PlaceCenter}
	cfg.DisplayMask = true
	cfg.BlockScroll = true
	cfg.Resizable = false
	cfg.Minimizable = false
	cfg.Maximizable = false
	cfg.Buttons = []manager.Button{
		{Label: "Cancel", OnPress: mgr.Close},
		{Label: "Close all", OnPress: func(string) { mgr.CloseAll() }},
	}
	cfg = m.traced(cfg)

	return mgr.OpenID(ConfirmID, cfg)
}

// toggleRename marks or unmarks the topmost window's title.
func (m *Model) toggleRename(ctx context.Context) error {
	mgr, err := manager.FromContext(ctx)
	if err != nil {
		return err
	}
	return mgr.UpdateTopmost(func(c *manager.Config) {
		if t, ok := strings.CutSuffix(c.Title, renamedSuffix); ok {
			c.Title = t
		} else {
			c.Title += renamedSuffix
		}
	})
}

// setAnimations turns transitions on or off for new and open windows.
func (m *Model) setAnimations(on bool) {
	m.animations = on
	d := m.windowConfig().AnimationDuration
	for _, id := range m.mgr.IDs() {
		if err := m.mgr.UpdateProps(id, func(c *manager.Config) { c.AnimationDuration = d }); err != nil {
			m.logger.Warn("update animation", "id", id, "err", err)
		}
	}
}
