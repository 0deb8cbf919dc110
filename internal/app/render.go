package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
	"github.com/Gaurav-Gosain/tuimodal/internal/pool"
	"github.com/Gaurav-Gosain/tuimodal/internal/theme"
)

// View renders the screen and registers clickable zones.
func (m *Model) View() tea.View {
	view := tea.NewView(m.zones.Scan(m.Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// Render draws the background, windows, mask, dock and help overlay into
// one string, without zone scanning.
func (m *Model) Render() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	vp := m.viewport()
	c := newCanvas(vp.Width, vp.Height)
	m.renderBackground(c)

	for _, f := range m.frames() {
		if f.masked {
			c.shade(lipgloss.NewStyle().Foreground(theme.MaskFg()).Faint(true))
		}
		c.draw(f.bounds.Left, f.bounds.Top, m.renderWindow(f))
	}

	if m.showHelp {
		help := m.renderHelp()
		x := (vp.Width - lipgloss.Width(help)) / 2
		y := (vp.Height - lipgloss.Height(help)) / 2
		c.draw(max(x, 0), max(y, 0), help)
	}

	dock := m.renderDock()
	if m.dockAtTop() {
		return dock + "\n" + c.String()
	}
	return c.String() + "\n" + dock
}

func (m *Model) renderBackground(c *canvas) {
	fg := lipgloss.NewStyle().Foreground(theme.BackgroundFg())
	title := lipgloss.NewStyle().Foreground(theme.TitleFg()).Bold(true)

	status := fmt.Sprintf("  windows: %d", len(m.mgr.Windows()))
	if top, ok := m.mgr.Topmost(); ok {
		status += "  topmost: " + top
	}
	header := title.Render(" tuimodal") + fg.Render(status)
	if m.scrollLocked {
		lock := lipgloss.NewStyle().Foreground(theme.ScrollLocked()).Bold(true).Render("scroll locked ")
		pad := c.width - ansi.StringWidth(header) - ansi.StringWidth(lock)
		header += strings.Repeat(" ", max(pad, 1)) + lock
	}
	c.setLine(0, header)

	rows := len(c.lines) - 1
	for i := range rows {
		idx := m.scroll + i
		if idx >= len(m.events) {
			break
		}
		c.setLine(i+1, fg.Render(" "+m.events[idx]))
	}
}

func (m *Model) renderWindow(f frame) string {
	b := f.bounds
	if b.Width < 2 || b.Height < 2 {
		return ""
	}
	s := f.snap
	border := config.GetBorderForStyle(m.cfg.Appearance.BorderStyle)

	bc := theme.BorderUnfocused()
	switch {
	case s.Dragging || s.Resizing:
		bc = theme.BorderActive()
	case f.focused:
		bc = theme.BorderFocused()
	}
	bs := lipgloss.NewStyle().Foreground(bc).Background(theme.WindowBg())

	lines := make([]string, 0, b.Height)
	lines = append(lines, m.renderHeader(f, border, bs))
	for _, l := range m.renderBody(f, b.Width-2, b.Height-2) {
		lines = append(lines, bs.Render(border.Left)+l+bs.Render(border.Right))
	}
	lines = append(lines, renderBottom(f, border, bs))
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader(f frame, border lipgloss.Border, bs lipgloss.Style) string {
	s := f.snap
	ctrls := headerControls(s, f.bounds)
	fill := f.bounds.Width - 2 - len(ctrls)*controlWidth

	title := ""
	if s.Config.Title != "" && fill > 2 {
		title = ansi.Truncate(" "+s.Config.Title+" ", fill, "…")
	}
	ts := lipgloss.NewStyle().
		Foreground(theme.TitleFg()).
		Background(theme.WindowBg()).
		Bold(f.focused)

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	sb.WriteString(bs.Render(border.TopLeft))
	sb.WriteString(ts.Render(title))
	sb.WriteString(bs.Render(strings.Repeat(border.Top, max(fill-ansi.StringWidth(title), 0))))
	for _, c := range ctrls {
		sb.WriteString(renderControl(s, c))
	}
	sb.WriteString(bs.Render(border.TopRight))
	return sb.String()
}

func renderControl(s manager.Snapshot, c control) string {
	minimize, maximize, closeGlyph := config.GetWindowButtons()
	st := lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(theme.WindowBg())

	var glyph string
	switch c.kind {
	case controlMinimize:
		glyph = minimize
	case controlMaximize:
		glyph = maximize
	case controlClose:
		glyph = closeGlyph
		st = st.Foreground(theme.CloseButton())
		if s.Focused == manager.CloseControlID(s.ID) {
			st = st.Background(theme.ButtonFocusedBg())
		}
	}
	return st.Render(" " + glyph + " ")
}

// renderBody returns rows lines of exactly width cells: the wrapped body
// text, with the footer buttons on the last row when there is room.
func (m *Model) renderBody(f frame, width, rows int) []string {
	if rows <= 0 || width <= 0 {
		return nil
	}
	s := f.snap
	st := lipgloss.NewStyle().Foreground(theme.BodyFg()).Background(theme.WindowBg())

	footer := m.renderFooter(s, width)
	textRows := rows
	if footer != "" && rows >= 2 {
		textRows--
	}

	var text []string
	if s.Config.Body != "" && width > 2 {
		text = strings.Split(ansi.Wrap(s.Config.Body, width-2, ""), "\n")
	}

	out := make([]string, 0, rows)
	for i := range textRows {
		line := ""
		if i < len(text) {
			line = " " + text[i]
		}
		out = append(out, st.Render(fit(line, width)))
	}
	if len(out) < rows {
		pad := width - ansi.StringWidth(footer)
		out = append(out, st.Render(strings.Repeat(" ", max(pad, 0)))+fit(footer, min(width, ansi.StringWidth(footer))))
	}
	return out
}

// renderFooter renders the visible buttons right-aligned, each marked as a
// click zone.
func (m *Model) renderFooter(s manager.Snapshot, width int) string {
	var parts []string
	for i, btn := range s.Config.Buttons {
		if btn.Hidden {
			continue
		}
		id := manager.ButtonID(s.ID, i)
		st := lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(theme.WindowBg())
		switch {
		case btn.Disabled:
			st = st.Foreground(theme.ButtonDisabled())
		case s.Focused == id:
			st = st.Background(theme.ButtonFocusedBg()).Bold(true)
		}
		parts = append(parts, m.zones.Mark(id, st.Render("[ "+btn.Label+" ]")))
	}
	if len(parts) == 0 {
		return ""
	}
	gap := lipgloss.NewStyle().Background(theme.WindowBg()).Render(" ")
	footer := strings.Join(parts, gap) + gap
	if ansi.StringWidth(footer) > width {
		return ansi.Cut(footer, 0, width)
	}
	return footer
}

func renderBottom(f frame, border lipgloss.Border, bs lipgloss.Style) string {
	w := f.bounds.Width
	s := f.snap
	if !s.Config.Resizable || s.Maximized {
		return bs.Render(border.BottomLeft + strings.Repeat(border.Bottom, w-2) + border.BottomRight)
	}
	grip := "◢"
	if config.UseASCIIOnly {
		grip = "/"
	}
	gs := lipgloss.NewStyle().Foreground(theme.BorderActive()).Background(theme.WindowBg())
	return bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, max(w-2, 0))) + gs.Render(grip)
}

// renderDock draws the row of minimized windows.
func (m *Model) renderDock() string {
	st := lipgloss.NewStyle().Foreground(theme.DockFg()).Background(theme.DockBg())
	item := lipgloss.NewStyle().Foreground(theme.DockFg()).Background(theme.DockHighlight())

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	x := 0
	for _, it := range dockItems(m.mgr.Windows(), m.width) {
		sb.WriteString(st.Render(strings.Repeat(" ", it.x-x)))
		sb.WriteString(m.zones.Mark(dockZoneID(it.id), item.Render(it.label)))
		x = it.x + ansi.StringWidth(it.label)
	}

	hint := m.registry.GetKeysForDisplay("toggle_help")
	if hint != "" {
		hint = hint + " help "
	}
	pad := m.width - x - ansi.StringWidth(hint)
	if pad < 0 {
		hint = ""
		pad = m.width - x
	}
	sb.WriteString(st.Render(strings.Repeat(" ", max(pad, 0)) + hint))
	return sb.String()
}
