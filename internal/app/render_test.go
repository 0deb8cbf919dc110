package app

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

func plain(c *canvas) []string {
	return strings.Split(ansi.Strip(c.String()), "\n")
}

func TestCanvasDraw(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		block string
		want  []string
	}{
		{"inside", 2, 1, "ab\ncd", []string{"..........", "..ab......", "..cd......"}},
		{"clipped right", 8, 0, "abcd", []string{"........ab", "..........", ".........."}},
		{"clipped left", -2, 2, "abcd", []string{"..........", "..........", "cd........"}},
		{"clipped bottom", 0, 2, "ab\ncd", []string{"..........", "..........", "ab........"}},
		{"outside", 12, 0, "ab", []string{"..........", "..........", ".........."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(10, 3)
			for y := range 3 {
				c.setLine(y, strings.Repeat(".", 10))
			}
			c.draw(tt.x, tt.y, tt.block)
			assert.Equal(t, tt.want, plain(c))
		})
	}
}

func TestCanvasKeepsStyledNeighbours(t *testing.T) {
	c := newCanvas(6, 1)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
	c.setLine(0, red.Render("abcdef"))
	c.draw(2, 0, "XY")

	assert.Equal(t, []string{"abXYef"}, plain(c))
	assert.Equal(t, 6, ansi.StringWidth(c.lines[0]))
}

func TestCanvasShade(t *testing.T) {
	c := newCanvas(4, 1)
	c.setLine(0, lipgloss.NewStyle().Bold(true).Render("ab"))
	assert.Contains(t, c.lines[0], "\x1b[1m")

	c.shade(lipgloss.NewStyle())
	assert.NotContains(t, c.lines[0], "\x1b[1m")
	assert.Equal(t, "ab  ", ansi.Strip(c.lines[0]))
}

func TestAnimatedBounds(t *testing.T) {
	b := geometry.Bounds{Left: 20, Top: 10, Width: 40, Height: 20}
	slot := geometry.Bounds{Left: 1, Top: 37, Width: 10, Height: 3}

	tests := []struct {
		name string
		snap manager.Snapshot
		want geometry.Bounds
		ok   bool
	}{
		{
			"shown",
			manager.Snapshot{Phase: lifecycle.Shown, Bounds: b, Opacity: 1},
			b, true,
		},
		{
			"entering starts small and centered",
			manager.Snapshot{Phase: lifecycle.Entering, Bounds: b, Opacity: 0},
			geometry.Bounds{Left: 36, Top: 18, Width: 8, Height: 3}, true,
		},
		{
			"halfway",
			manager.Snapshot{Phase: lifecycle.Exiting, Bounds: b, Opacity: 0.5},
			geometry.Bounds{Left: 28, Top: 14, Width: 24, Height: 12}, true,
		},
		{
			"docking ends in the slot",
			manager.Snapshot{Phase: lifecycle.Exiting, Bounds: b, Opacity: 0, Minimized: true, Docking: true},
			slot, true,
		},
		{
			"minimized",
			manager.Snapshot{Phase: lifecycle.Shown, Bounds: b, Opacity: 1, Minimized: true},
			geometry.Bounds{}, false,
		},
		{
			"re-entering minimized",
			manager.Snapshot{Phase: lifecycle.Entering, Bounds: b, Opacity: 0.2, Minimized: true, Docking: true},
			geometry.Bounds{}, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := animatedBounds(tt.snap, slot)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, easeInOutCubic(0))
	assert.Equal(t, 0.5, easeInOutCubic(0.5))
	assert.Equal(t, 1.0, easeInOutCubic(1))
	assert.Equal(t, 1.0, easeInOutCubic(2))
	assert.Equal(t, 0.0, easeInOutCubic(-1))
}

func TestDockItems(t *testing.T) {
	snaps := []manager.Snapshot{
		{ID: "a", Minimized: true, Config: manager.Config{Title: "Alpha"}},
		{ID: "b", Config: manager.Config{Title: "Beta"}},
		{ID: "c", Minimized: true, Config: manager.Config{Title: "A very long window title"}},
	}

	items := dockItems(snaps, 80)
	if assert.Len(t, items, 2) {
		assert.Equal(t, dockItem{id: "a", label: " Alpha ", x: 1}, items[0])
		assert.Equal(t, "c", items[1].id)
		assert.Equal(t, 9, items[1].x)
		assert.Equal(t, dockItemWidth, ansi.StringWidth(items[1].label))
	}

	assert.Len(t, dockItems(snaps, 10), 1, "items that do not fit are dropped")
}
