package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
)

// TickerMsg represents a periodic tick event for advancing transitions.
type TickerMsg time.Time

// ConfigReloadMsg carries a config file that changed on disk.
type ConfigReloadMsg struct {
	Config *config.UserConfig
}

// TickCmd creates a command that generates tick messages at fps.
func TickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return TickCmd(config.NormalFPS)
}

// fps drops the tick rate while a drag or resize runs; pointer motion
// already triggers redraws.
func (m *Model) fps() int {
	if _, ok := m.mgr.Pointer(); ok {
		return config.InteractionFPS
	}
	return config.NormalFPS
}

// Update handles every message the program receives.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.mgr.Tick(time.Time(msg))
		return m, TickCmd(m.fps())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mgr.SetViewport(m.viewport())
		return m, nil

	case ConfigReloadMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		m.handleClick(msg)
		return m, nil

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.mgr.PointerMove(m.point(mouse.X, mouse.Y))
		return m, nil

	case tea.MouseReleaseMsg:
		mouse := msg.Mouse()
		m.mgr.PointerUp(m.point(mouse.X, mouse.Y))
		return m, nil

	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.scrollBy(-1)
		case tea.MouseWheelDown:
			m.scrollBy(1)
		}
		return m, nil
	}
	return m, nil
}
