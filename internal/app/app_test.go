package app

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Appearance.Animations = false
	return newTestModelWith(t, cfg)
}

func newTestModelWith(t *testing.T, cfg *config.UserConfig) *Model {
	t.Helper()
	m := New(Options{
		Config: cfg,
		Logger: log.New(io.Discard),
		Now:    func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) },
	})
	t.Cleanup(m.Close)
	// One row goes to the dock: the viewport is 100x40.
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 41})
	return m
}

func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch k {
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		msg = tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		msg = tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func click(m *Model, x, y int) {
	m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func topWindow(t *testing.T, m *Model) manager.Snapshot {
	t.Helper()
	id, ok := m.Manager().Topmost()
	require.True(t, ok, "no window open")
	s, ok := m.Manager().Window(id)
	require.True(t, ok)
	return s
}

func lastEvent(m *Model) string {
	ev := m.Events()
	if len(ev) == 0 {
		return ""
	}
	return ev[len(ev)-1]
}

func TestOpenAndClose(t *testing.T) {
	m := newTestModel(t)

	press(m, "n")
	s := topWindow(t, m)
	assert.Equal(t, "Window 1", s.Config.Title)
	assert.Equal(t, lifecycle.Shown, s.Phase)
	assert.Equal(t, geometry.Bounds{Left: 25, Top: 12, Width: 50, Height: 16}, s.Bounds)

	press(m, "x")
	assert.Empty(t, m.Manager().Windows())
	assert.Empty(t, m.Manager().IDs(), "plain windows are disposed on exit")
}

func TestBlockingDialogLocksScroll(t *testing.T) {
	m := newTestModel(t)

	press(m, "b")
	require.True(t, m.Manager().ScrollLocked())
	assert.True(t, m.scrollLocked)

	press(m, "down")
	assert.Equal(t, 0, m.ScrollOffset())

	press(m, "esc")
	assert.False(t, m.Manager().ScrollLocked())
	assert.False(t, m.scrollLocked)

	press(m, "down")
	assert.Equal(t, 1, m.ScrollOffset())
}

func TestDialogReopenKeepsID(t *testing.T) {
	m := newTestModel(t)

	press(m, "b")
	press(m, "esc")
	press(m, "b")

	assert.Equal(t, []string{ConfirmID}, m.Manager().IDs())
	assert.Equal(t, ConfirmID, topWindow(t, m).ID)
}

func TestDragByHeader(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")
	id := topWindow(t, m).ID

	click(m, 30, 12)
	m.Update(tea.MouseMotionMsg{X: 35, Y: 14})
	s, _ := m.Manager().Window(id)
	assert.True(t, s.Dragging)
	assert.Equal(t, 30, s.Bounds.Left)
	assert.Equal(t, 14, s.Bounds.Top)

	m.Update(tea.MouseReleaseMsg{X: 35, Y: 14})
	s, _ = m.Manager().Window(id)
	assert.False(t, s.Dragging)
	assert.Contains(t, lastEvent(m), "Window 1 moved to 30,14")
}

func TestResizeByGrip(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")
	id := topWindow(t, m).ID

	// Bottom-right cell of (25,12,50,16).
	click(m, 74, 27)
	m.Update(tea.MouseMotionMsg{X: 78, Y: 29})
	m.Update(tea.MouseReleaseMsg{X: 78, Y: 29})

	s, _ := m.Manager().Window(id)
	assert.Equal(t, 54, s.Bounds.Width)
	assert.Equal(t, 18, s.Bounds.Height)
	assert.Contains(t, lastEvent(m), "resized to 54x18")
}

func TestHeaderControls(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")
	id := topWindow(t, m).ID

	f := m.frames()[0]
	ctrls := headerControls(f.snap, f.bounds)
	require.Len(t, ctrls, 3)
	assert.Equal(t, []controlKind{controlMinimize, controlMaximize, controlClose},
		[]controlKind{ctrls[0].kind, ctrls[1].kind, ctrls[2].kind})
	assert.Equal(t, f.bounds.Right()-1-controlWidth, ctrls[2].x)

	click(m, ctrls[1].x+1, f.bounds.Top)
	s, _ := m.Manager().Window(id)
	require.True(t, s.Maximized)
	assert.Equal(t, geometry.Bounds{Width: 100, Height: 40}, s.Bounds)

	f = m.frames()[0]
	ctrls = headerControls(f.snap, f.bounds)
	click(m, ctrls[2].x, f.bounds.Top)
	assert.Empty(t, m.Manager().Windows())
}

func TestMaskClickKeepsDialog(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")
	press(m, "b")

	click(m, 2, 2)
	assert.Equal(t, ConfirmID, topWindow(t, m).ID)
	assert.Contains(t, lastEvent(m), "Confirm mask clicked")
}

func TestMaskDismisses(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.Animations = false
	cfg.Windows.DismissibleMask = true
	m := newTestModelWith(t, cfg)

	press(m, "b")
	click(m, 2, 2)
	assert.Empty(t, m.Manager().Windows())
}

func TestMinimizeToDock(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")

	press(m, "m")
	s := topWindow(t, m)
	require.True(t, s.Minimized)
	assert.Empty(t, m.frames(), "minimized windows are only drawn in the dock")

	lines := strings.Split(m.Render(), "\n")
	require.Len(t, lines, 41)
	assert.Contains(t, ansi.Strip(lines[40]), "Window 1")

	press(m, "m")
	assert.False(t, topWindow(t, m).Minimized)
	assert.Len(t, m.frames(), 1)
}

func TestDockAtTop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.Animations = false
	cfg.Appearance.DockPosition = "top"
	m := newTestModelWith(t, cfg)
	press(m, "n")
	id := topWindow(t, m).ID

	// Screen row 13 is viewport row 12, the header.
	click(m, 30, 13)
	m.Update(tea.MouseMotionMsg{X: 31, Y: 13})
	s, _ := m.Manager().Window(id)
	assert.Equal(t, 26, s.Bounds.Left)
	assert.Equal(t, 12, s.Bounds.Top)
}

func TestFocusRingAndActivate(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")
	id := topWindow(t, m).ID
	assert.Equal(t, manager.CloseControlID(id), topWindow(t, m).Focused)

	press(m, "tab")
	assert.Equal(t, manager.ButtonID(id, 0), topWindow(t, m).Focused)

	press(m, "enter")
	assert.Empty(t, m.Manager().Windows())
}

func TestRename(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")

	press(m, "r")
	assert.Equal(t, "Window 1 (renamed)", topWindow(t, m).Config.Title)
	press(m, "r")
	assert.Equal(t, "Window 1", topWindow(t, m).Config.Title)
}

func TestToggleAnimations(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestModelWith(t, cfg)
	require.True(t, m.animations)

	press(m, "n")
	s := topWindow(t, m)
	assert.Equal(t, lifecycle.Entering, s.Phase)
	assert.Equal(t, config.DefaultAnimationDuration, s.Config.AnimationDuration)

	press(m, "a")
	assert.False(t, m.animations)
	assert.Zero(t, topWindow(t, m).Config.AnimationDuration)
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	press(m, "?")
	out := ansi.Strip(m.Render())
	assert.Contains(t, out, "WINDOWS")
	assert.Contains(t, out, "Open window")

	// Keys go to the overlay while it is shown.
	press(m, "n")
	assert.Empty(t, m.Manager().Windows())

	press(m, "esc")
	assert.False(t, m.showHelp)
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Appearance.Animations = false
	cfg.Keybindings.Windows["open_window"] = []string{"o"}
	m.Update(ConfigReloadMsg{Config: cfg})

	press(m, "n")
	assert.Empty(t, m.Manager().Windows())
	press(m, "o")
	assert.Len(t, m.Manager().Windows(), 1)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	press(m, "n")

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)

	lines := strings.Split(ansi.Strip(m.Render()), "\n")
	require.Len(t, lines, 41)
	for i, l := range lines {
		assert.Equal(t, 100, ansi.StringWidth(l), "line %d", i)
	}
	assert.Contains(t, lines[12], "Window 1")
	assert.Contains(t, lines[0], "topmost: window_0")
}
