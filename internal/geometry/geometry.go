// Package geometry computes window positions and sizes for drag, resize and
// initial placement. Everything here is a pure function over cell coordinates;
// callers own the state.
package geometry

// Point is a pointer position in terminal cells.
type Point struct {
	X int
	Y int
}

// Delta is the pointer movement between two events.
type Delta struct {
	DX int
	DY int
}

// Viewport is the drawable area windows live in.
type Viewport struct {
	Width  int
	Height int
}

// Bounds is the outer rectangle of a window, border included.
type Bounds struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the first column after the window.
func (b Bounds) Right() int { return b.Left + b.Width }

// Bottom returns the first row after the window.
func (b Bounds) Bottom() int { return b.Top + b.Height }

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right() && p.Y >= b.Top && p.Y < b.Bottom()
}

// Position is the result of a drag step. MovedX/MovedY report which axes
// accepted the candidate; a drag session only advances its last pointer on
// the axes that moved.
type Position struct {
	Left   int
	Top    int
	MovedX bool
	MovedY bool
}

// Size is the result of a resize step.
type Size struct {
	Width    int
	Height   int
	ResizedX bool
	ResizedY bool
}

// DragDelta returns the movement from last to p.
func DragDelta(p, last Point) Delta {
	return Delta{DX: p.X - last.X, DY: p.Y - last.Y}
}

// ClampedPosition applies delta to the window's top-left corner.
//
// With keepInViewport set, an axis accepts the candidate edge only when it is
// not below its minimum and the far edge still fits the viewport. A rejected
// axis keeps its current value, unless the window already sits outside the
// allowed range, in which case it is pulled to the nearest valid edge.
// Without keepInViewport the position is unconstrained.
func ClampedPosition(b Bounds, d Delta, vp Viewport, minX, minY int, keepInViewport bool) Position {
	left := b.Left + d.DX
	top := b.Top + d.DY

	if !keepInViewport {
		return Position{Left: left, Top: top, MovedX: true, MovedY: true}
	}

	pos := Position{Left: b.Left, Top: b.Top}
	pos.Left, pos.MovedX = clampAxis(b.Left, left, b.Width, minX, vp.Width)
	pos.Top, pos.MovedY = clampAxis(b.Top, top, b.Height, minY, vp.Height)
	return pos
}

func clampAxis(current, candidate, size, lo, limit int) (int, bool) {
	hi := limit - size
	if candidate >= lo && candidate <= hi {
		return candidate, true
	}
	if current >= lo && current <= hi {
		return current, false
	}
	// Already out of range (viewport shrank, or window larger than it).
	if hi < lo {
		return lo, current != lo
	}
	if current < lo {
		return lo, true
	}
	return hi, true
}

// ClampedSize applies delta to the window's width and height. When doubled is
// set the delta counts twice, which keeps the cursor on the handle of a window
// that grows symmetrically around its center. A dimension that would drop to
// or below its minimum, or push the far edge past the viewport, is rejected.
func ClampedSize(b Bounds, d Delta, vp Viewport, minWidth, minHeight int, doubled bool) Size {
	dx, dy := d.DX, d.DY
	if doubled {
		dx *= 2
		dy *= 2
	}

	size := Size{Width: b.Width, Height: b.Height}

	newWidth := b.Width + dx
	if (minWidth <= 0 || newWidth > minWidth) && newWidth > 0 && b.Left+newWidth <= vp.Width {
		size.Width = newWidth
		size.ResizedX = dx != 0
	}

	newHeight := b.Height + dy
	if (minHeight <= 0 || newHeight > minHeight) && newHeight > 0 && b.Top+newHeight <= vp.Height {
		size.Height = newHeight
		size.ResizedY = dy != 0
	}

	return size
}

// Maximized returns the bounds of a window filling the viewport.
func Maximized(vp Viewport) Bounds {
	return Bounds{Width: vp.Width, Height: vp.Height}
}
