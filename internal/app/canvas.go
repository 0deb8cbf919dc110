package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuimodal/internal/pool"
)

// resetStyle ends whatever SGR state a cut left open.
const resetStyle = "\x1b[m"

// canvas is a fixed-size grid of styled lines that blocks are painted onto,
// bottom layer first.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// setLine replaces row y, padding or cutting it to the canvas width.
func (c *canvas) setLine(y int, s string) {
	if y < 0 || y >= len(c.lines) {
		return
	}
	c.lines[y] = fit(s, c.width)
}

// draw paints block with its top-left corner at (x, y). Parts outside the
// canvas are clipped.
func (c *canvas) draw(x, y int, block string) {
	if block == "" {
		return
	}
	rows := pool.GetLineSlice()
	defer pool.PutLineSlice(rows)
	for row := range strings.SplitSeq(block, "\n") {
		*rows = append(*rows, row)
	}

	for i, row := range *rows {
		ly := y + i
		if ly < 0 || ly >= len(c.lines) {
			continue
		}
		rw := ansi.StringWidth(row)
		rx := x
		if rx < 0 {
			row = ansi.Cut(row, -rx, rw)
			rw += rx
			rx = 0
		}
		if rw <= 0 || rx >= c.width {
			continue
		}
		if rx+rw > c.width {
			row = ansi.Cut(row, 0, c.width-rx)
			rw = c.width - rx
		}

		base := c.lines[ly]
		left := ansi.Cut(base, 0, rx)
		right := ansi.Cut(base, rx+rw, c.width)
		c.lines[ly] = left + resetStyle + row + resetStyle + right
	}
}

// shade redraws everything painted so far as plain text in style. Zone
// markers are stripped too, so shaded content stops receiving clicks.
func (c *canvas) shade(style lipgloss.Style) {
	for i, l := range c.lines {
		c.lines[i] = style.Render(ansi.Strip(l))
	}
}

func (c *canvas) String() string {
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	for i, l := range c.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l)
	}
	return sb.String()
}

// fit pads or cuts s to exactly width cells.
func fit(s string, width int) string {
	n := ansi.StringWidth(s)
	switch {
	case n > width:
		return ansi.Cut(s, 0, width)
	case n < width:
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
