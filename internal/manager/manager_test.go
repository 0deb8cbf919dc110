package manager

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/portal"
	"github.com/Gaurav-Gosain/tuimodal/internal/scrolllock"
	"github.com/Gaurav-Gosain/tuimodal/internal/transition"
)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	base := []Option{
		WithTransition(transition.Instant{}),
		WithViewport(geometry.Viewport{Width: 100, Height: 40}),
		WithLogger(log.New(io.Discard)),
	}
	return New(append(base, opts...)...)
}

func mustOpen(t *testing.T, m *Manager, id string, cfg Config) {
	t.Helper()
	require.NoError(t, m.OpenID(id, cfg))
}

func topmost(m *Manager) string {
	id, _ := m.Topmost()
	return id
}

func TestManager_Scenario(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()

	mustOpen(t, m, "a", cfg)
	mustOpen(t, m, "b", cfg)
	assert.Equal(t, "b", topmost(m))

	m.Close("b")
	assert.Equal(t, "a", topmost(m))

	require.True(t, m.HandleKey(KeyEscape))
	_, ok := m.Topmost()
	assert.False(t, ok)

	a, ok := m.Window("a")
	require.True(t, ok, "closed windows stay registered")
	assert.Equal(t, lifecycle.Unmounted, a.Phase)
}

func TestManager_GeneratedIDs(t *testing.T) {
	m := newTestManager(t)

	first, err := m.Open(DefaultConfig())
	require.NoError(t, err)
	second, err := m.Open(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "window_0", first)
	assert.Equal(t, "window_1", second)

	// A caller-supplied id never collides with a generated one.
	mustOpen(t, m, "window_2", DefaultConfig())
	third, err := m.Open(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "window_3", third)
}

func TestManager_TopmostTracking(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()

	mustOpen(t, m, "a", cfg)
	mustOpen(t, m, "b", cfg)
	mustOpen(t, m, "c", cfg)
	m.Close("c")
	assert.Equal(t, "b", topmost(m))

	// Disposing a hidden window leaves the order alone.
	m.Destroy("c")
	assert.Equal(t, "b", topmost(m))
	_, ok := m.Window("c")
	assert.False(t, ok)

	m.Destroy("a")
	assert.Equal(t, "b", topmost(m))

	mustOpen(t, m, "d", cfg)
	assert.Equal(t, "d", topmost(m))

	m.Close("")
	assert.Equal(t, "b", topmost(m))
	m.Close("")
	_, ok = m.Topmost()
	assert.False(t, ok)
}

func TestManager_Escape(t *testing.T) {
	t.Run("only the topmost window", func(t *testing.T) {
		m := newTestManager(t)
		mustOpen(t, m, "a", DefaultConfig())
		mustOpen(t, m, "b", DefaultConfig())

		require.True(t, m.HandleKey(KeyEscape))
		assert.Equal(t, "a", topmost(m))

		a, _ := m.Window("a")
		assert.Equal(t, lifecycle.Shown, a.Phase)
	})

	t.Run("close on escape disabled", func(t *testing.T) {
		m := newTestManager(t)
		cfg := DefaultConfig()
		cfg.CloseOnEscape = false
		mustOpen(t, m, "a", cfg)

		assert.False(t, m.HandleKey(KeyEscape))
		assert.Equal(t, "a", topmost(m))
	})

	t.Run("not closable", func(t *testing.T) {
		m := newTestManager(t)
		cfg := DefaultConfig()
		cfg.Closable = false
		mustOpen(t, m, "a", cfg)

		assert.False(t, m.HandleKey(KeyEscape))
		assert.Equal(t, "a", topmost(m))
	})

	t.Run("second escape is a no-op", func(t *testing.T) {
		m := newTestManager(t)
		hides := 0
		cfg := DefaultConfig()
		cfg.OnHide = func() { hides++ }
		mustOpen(t, m, "a", cfg)

		assert.True(t, m.HandleKey(KeyEscape))
		assert.False(t, m.HandleKey(KeyEscape))
		assert.Equal(t, 1, hides)
	})

	t.Run("topmost still entering", func(t *testing.T) {
		clock := time.Unix(0, 0)
		m := newTestManager(t, WithTransition(transition.NewTimed(func() time.Time { return clock })))
		mustOpen(t, m, "a", DefaultConfig())
		m.Tick(clock.Add(time.Second))

		mustOpen(t, m, "b", DefaultConfig())
		assert.False(t, m.HandleKey(KeyEscape), "b is not bound yet and a is not topmost")
		assert.Equal(t, "b", topmost(m))
	})
}

func TestManager_ZIndexStable(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()

	mustOpen(t, m, "a", cfg)
	mustOpen(t, m, "b", cfg)
	mustOpen(t, m, "c", cfg)

	za, _ := m.Window("a")
	zc, _ := m.Window("c")
	assert.Equal(t, 1000, za.ZIndex)
	assert.Equal(t, 1002, zc.ZIndex)

	m.Close("b")
	m.Close("a")

	after, _ := m.Window("c")
	assert.Equal(t, zc.ZIndex, after.ZIndex)

	mustOpen(t, m, "d", cfg)
	wins := m.Windows()
	require.Len(t, wins, 2)
	assert.Equal(t, "c", wins[0].ID)
	assert.Equal(t, "d", wins[1].ID, "later shows render on top")
}

func TestManager_ScrollLock(t *testing.T) {
	var applied []bool
	m := newTestManager(t, WithScrollTarget(scrolllock.TargetFunc(func(locked bool) {
		applied = append(applied, locked)
	})))

	blocking := DefaultConfig()
	blocking.BlockScroll = true

	mustOpen(t, m, "a", blocking)
	mustOpen(t, m, "b", blocking)
	assert.True(t, m.ScrollLocked())

	m.Close("a")
	assert.True(t, m.ScrollLocked(), "b still holds the lock")

	m.Close("b")
	assert.False(t, m.ScrollLocked())
	assert.Equal(t, []bool{true, false}, applied)
}

func TestManager_ScrollLockMaximized(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.Maximizable = true

	mustOpen(t, m, "a", cfg)
	assert.False(t, m.ScrollLocked())

	m.Maximize("a")
	assert.True(t, m.ScrollLocked())

	m.Maximize("a")
	assert.False(t, m.ScrollLocked())

	m.Maximize("a")
	m.Close("a")
	assert.False(t, m.ScrollLocked(), "released on exit")
}

func TestManager_ToggleAlgebra(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Minimizable = true
	cfg.Maximizable = true

	tests := []struct {
		name          string
		toggles       []func(*Manager, string)
		wantMinimized bool
		wantMaximized bool
	}{
		{"minimize then maximize", []func(*Manager, string){(*Manager).Minimize, (*Manager).Maximize}, false, true},
		{"maximize then minimize", []func(*Manager, string){(*Manager).Maximize, (*Manager).Minimize}, true, false},
		{"minimize twice", []func(*Manager, string){(*Manager).Minimize, (*Manager).Minimize}, false, false},
		{"maximize twice", []func(*Manager, string){(*Manager).Maximize, (*Manager).Maximize}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			mustOpen(t, m, "a", cfg)

			for _, toggle := range tt.toggles {
				toggle(m, "a")
			}

			w, _ := m.Window("a")
			assert.Equal(t, tt.wantMinimized, w.Minimized)
			assert.Equal(t, tt.wantMaximized, w.Maximized)
			assert.Equal(t, lifecycle.Shown, w.Phase)
		})
	}
}

func TestManager_ToggleCallbacksInOrder(t *testing.T) {
	m := newTestManager(t)
	var events []string
	cfg := DefaultConfig()
	cfg.Minimizable = true
	cfg.Maximizable = true
	cfg.OnMinimize = func(on bool) { events = append(events, "minimize", onOff(on)) }
	cfg.OnMaximize = func(on bool) { events = append(events, "maximize", onOff(on)) }
	mustOpen(t, m, "a", cfg)

	m.Minimize("a")
	m.Maximize("a")

	assert.Equal(t, []string{"minimize", "on", "minimize", "off", "maximize", "on"}, events)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func TestManager_DragClampedToViewport(t *testing.T) {
	m := newTestManager(t, WithViewport(geometry.Viewport{Width: 800, Height: 600}))
	cfg := DefaultConfig()
	cfg.Width = "200"
	cfg.Height = "100"
	cfg.Position = Position{X: "550", Y: "0"}
	mustOpen(t, m, "a", cfg)

	w, _ := m.Window("a")
	require.Equal(t, 550, w.Bounds.Left)

	require.True(t, m.BeginDrag("a", geometry.Point{X: 560, Y: 0}))
	m.PointerMove(geometry.Point{X: 710, Y: 0})
	w, _ = m.Window("a")
	assert.Equal(t, 550, w.Bounds.Left, "left+width would pass 800")

	m.PointerMove(geometry.Point{X: 610, Y: 0})
	w, _ = m.Window("a")
	assert.Equal(t, 600, w.Bounds.Left)

	require.True(t, m.PointerUp(geometry.Point{X: 610, Y: 0}))
	_, active := m.Pointer()
	assert.False(t, active)
}

func TestManager_UpdateProps(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.Title = "before"
	cfg.Body = "body"
	mustOpen(t, m, "a", cfg)

	require.NoError(t, m.UpdateProps("a", func(c *Config) { c.Title = "X" }))

	w, _ := m.Window("a")
	assert.Equal(t, "X", w.Config.Title)
	assert.Equal(t, "body", w.Config.Body)
	assert.Equal(t, cfg.Closable, w.Config.Closable)

	require.NoError(t, m.UpdateTopmost(func(c *Config) { c.Body = "new" }))
	w, _ = m.Window("a")
	assert.Equal(t, "new", w.Config.Body)

	err := m.UpdateProps("a", func(c *Config) { c.Width = "wide" })
	assert.ErrorIs(t, err, geometry.ErrInvalidLength)
	w, _ = m.Window("a")
	assert.Equal(t, cfg.Width, w.Config.Width, "rejected update keeps old config")
}

func TestManager_UnknownIDsAreIgnored(t *testing.T) {
	m := newTestManager(t)

	assert.NotPanics(t, func() {
		m.Close("missing")
		m.Close("")
		m.Destroy("missing")
		m.Minimize("missing")
		m.Maximize("missing")
		assert.NoError(t, m.UpdateProps("missing", func(c *Config) { c.Title = "x" }))
		m.MaskClick()
	})
	assert.False(t, m.HandleKey(KeyEscape))
}

func TestManager_CloseMidEnter(t *testing.T) {
	clock := time.Unix(0, 0)
	m := newTestManager(t, WithTransition(transition.NewTimed(func() time.Time { return clock })))

	var shows, hides int
	cfg := DefaultConfig()
	cfg.BlockScroll = true
	cfg.OnShow = func() { shows++ }
	cfg.OnHide = func() { hides++ }
	mustOpen(t, m, "a", cfg)

	w, _ := m.Window("a")
	require.Equal(t, lifecycle.Entering, w.Phase)

	m.Close("a")
	w, _ = m.Window("a")
	assert.Equal(t, lifecycle.Exiting, w.Phase)
	_, ok := m.Topmost()
	assert.False(t, ok)

	assert.True(t, m.Tick(clock.Add(time.Second)))
	w, _ = m.Window("a")
	assert.Equal(t, lifecycle.Unmounted, w.Phase)
	assert.Equal(t, 0, shows)
	assert.Equal(t, 1, hides)
	assert.False(t, m.ScrollLocked())
	assert.Empty(t, m.RootLayer().Children())
}

func TestManager_DestroyCleansUpOnce(t *testing.T) {
	m := newTestManager(t)
	hides := 0
	cfg := DefaultConfig()
	cfg.BlockScroll = true
	cfg.OnHide = func() { hides++ }
	mustOpen(t, m, "a", cfg)

	m.Destroy("a")
	m.Destroy("a")
	m.Close("a")

	assert.Equal(t, 1, hides)
	_, ok := m.Window("a")
	assert.False(t, ok)
	assert.False(t, m.ScrollLocked())
	assert.Empty(t, m.IDs())
}

func TestManager_DisposeOnExit(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.DisposeOnExit = true
	mustOpen(t, m, "a", cfg)

	m.Close("a")
	_, ok := m.Window("a")
	assert.False(t, ok)
}

func TestManager_ReopenKeepsProps(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.Title = "first"
	mustOpen(t, m, "a", cfg)
	m.Close("a")

	other := DefaultConfig()
	other.Title = "second"
	mustOpen(t, m, "a", other)

	w, _ := m.Window("a")
	assert.Equal(t, lifecycle.Shown, w.Phase)
	assert.Equal(t, "first", w.Config.Title)
}

func TestManager_ReopenWhileExiting(t *testing.T) {
	clock := time.Unix(0, 0)
	m := newTestManager(t, WithTransition(transition.NewTimed(func() time.Time { return clock })))

	hides := 0
	cfg := DefaultConfig()
	cfg.OnHide = func() { hides++ }
	mustOpen(t, m, "a", cfg)
	m.Tick(clock.Add(time.Second))

	m.Close("a")
	mustOpen(t, m, "a", cfg)
	assert.Equal(t, 1, hides, "the interrupted exit cleaned up once")

	m.Tick(clock.Add(2 * time.Second))
	w, _ := m.Window("a")
	assert.Equal(t, lifecycle.Shown, w.Phase)
	assert.Equal(t, "a", topmost(m))
}

func TestManager_InvalidTarget(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.AppendTo = "body"

	_, err := m.Open(cfg)
	var te *portal.TargetError
	require.ErrorAs(t, err, &te)
	assert.Empty(t, m.IDs())
}

func TestManager_CustomLayer(t *testing.T) {
	m := newTestManager(t)
	side := portal.NewLayer("side")
	cfg := DefaultConfig()
	cfg.AppendTo = side
	mustOpen(t, m, "a", cfg)

	assert.True(t, side.Contains("a"))
	assert.False(t, m.RootLayer().Contains("a"))

	require.NoError(t, m.UpdateProps("a", func(c *Config) { c.AppendTo = nil }))
	assert.False(t, side.Contains("a"))
	assert.True(t, m.RootLayer().Contains("a"))
}

func TestManager_FocusRing(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.Buttons = []Button{
		{Label: "OK"},
		{Label: "Hidden", Hidden: true},
		{Label: "Cancel"},
	}
	mustOpen(t, m, "a", cfg)

	w, _ := m.Window("a")
	assert.Equal(t, CloseControlID("a"), w.Focused, "focused on show")

	require.True(t, m.HandleKey(KeyTab))
	w, _ = m.Window("a")
	assert.Equal(t, ButtonID("a", 0), w.Focused)

	require.True(t, m.HandleKey(KeyTab))
	w, _ = m.Window("a")
	assert.Equal(t, ButtonID("a", 2), w.Focused)

	require.True(t, m.HandleKey(KeyTab))
	w, _ = m.Window("a")
	assert.Equal(t, CloseControlID("a"), w.Focused, "wraps")

	require.True(t, m.HandleKey(KeyShiftTab))
	w, _ = m.Window("a")
	assert.Equal(t, ButtonID("a", 2), w.Focused)
}

func TestManager_Activate(t *testing.T) {
	m := newTestManager(t)
	pressed := ""
	cfg := DefaultConfig()
	cfg.FocusOnShow = false
	cfg.Buttons = []Button{{Label: "OK", OnPress: func(id string) { pressed = id }}}
	mustOpen(t, m, "a", cfg)

	assert.False(t, m.Activate(), "nothing focused")

	m.Focus("a", ButtonID("a", 0))
	assert.True(t, m.Activate())
	assert.Equal(t, "a", pressed)

	m.Focus("a", CloseControlID("a"))
	assert.True(t, m.Activate())
	_, ok := m.Topmost()
	assert.False(t, ok)
}

func TestManager_MaskClick(t *testing.T) {
	m := newTestManager(t)
	clicks := 0
	cfg := DefaultConfig()
	cfg.OnMaskClick = func() { clicks++ }
	mustOpen(t, m, "a", cfg)

	m.MaskClick()
	assert.Equal(t, 1, clicks)
	assert.Equal(t, "a", topmost(m), "mask not dismissible")

	require.NoError(t, m.UpdateProps("a", func(c *Config) { c.DismissibleMask = true }))
	m.MaskClick()
	assert.Equal(t, 2, clicks)
	_, ok := m.Topmost()
	assert.False(t, ok)
}

func TestManager_ViewportResize(t *testing.T) {
	m := newTestManager(t)
	cfg := DefaultConfig()
	cfg.Width = "50%"
	cfg.Height = "50%"
	mustOpen(t, m, "a", cfg)

	w, _ := m.Window("a")
	assert.Equal(t, geometry.Bounds{Left: 25, Top: 10, Width: 50, Height: 20}, w.Bounds)

	m.SetViewport(geometry.Viewport{Width: 200, Height: 80})
	w, _ = m.Window("a")
	assert.Equal(t, geometry.Bounds{Left: 50, Top: 20, Width: 100, Height: 40}, w.Bounds)
}

func TestManager_Subscribe(t *testing.T) {
	m := newTestManager(t)
	calls := 0
	unsubscribe := m.Subscribe(func() { calls++ })

	mustOpen(t, m, "a", DefaultConfig())
	assert.Positive(t, calls)

	unsubscribe()
	before := calls
	m.Close("a")
	assert.Equal(t, before, calls)
}

func TestContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.PanicsWithError(t, ErrNoProvider.Error(), func() {
		MustFromContext(context.Background())
	})

	m := newTestManager(t)
	ctx := WithManager(context.Background(), m)
	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func TestManager_MaskClickBelowMinimized(t *testing.T) {
	m := newTestManager(t)
	clicks := 0
	a := DefaultConfig()
	a.DismissibleMask = true
	a.OnMaskClick = func() { clicks++ }
	mustOpen(t, m, "a", a)

	b := DefaultConfig()
	b.DisplayMask = false
	b.Minimizable = true
	mustOpen(t, m, "b", b)
	m.Minimize("b")
	require.Equal(t, "b", topmost(m), "docked windows keep their place in the stack")

	m.MaskClick()
	assert.Equal(t, 1, clicks)
	assert.Equal(t, lifecycle.Unmounted, m.records["a"].machine.Phase())
	w, ok := m.Window("b")
	require.True(t, ok)
	assert.True(t, w.Minimized, "the docked window is left alone")
}

func TestManager_KeysSkipMinimized(t *testing.T) {
	m := newTestManager(t)
	a := DefaultConfig()
	a.Buttons = []Button{{Label: "OK"}}
	mustOpen(t, m, "a", a)

	b := DefaultConfig()
	b.Minimizable = true
	mustOpen(t, m, "b", b)
	m.Minimize("b")

	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, "a", active)

	require.True(t, m.HandleKey(KeyTab))
	w, _ := m.Window("a")
	assert.Equal(t, ButtonID("a", 0), w.Focused)

	require.True(t, m.HandleKey(KeyEscape))
	assert.Equal(t, lifecycle.Unmounted, m.records["a"].machine.Phase())
	w, ok = m.Window("b")
	require.True(t, ok)
	assert.True(t, w.Minimized)

	_, ok = m.Active()
	assert.False(t, ok)
	assert.False(t, m.HandleKey(KeyEscape), "nothing visible to close")
}

func TestManager_ReopenMountFailureKeepsRecord(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "a", DefaultConfig())
	m.Close("a")
	require.Equal(t, lifecycle.Unmounted, m.records["a"].machine.Phase())

	m.records["a"].portal.AppendTo = "body"
	err := m.OpenID("a", DefaultConfig())
	var te *portal.TargetError
	require.ErrorAs(t, err, &te)

	assert.Equal(t, lifecycle.Unmounted, m.records["a"].machine.Phase())
	assert.Equal(t, []string{"a"}, m.IDs())
	_, ok := m.Topmost()
	assert.False(t, ok)
}
