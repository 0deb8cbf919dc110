package app

import (
	"math"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

// animatedBounds returns where s is drawn this frame. Entering and exiting
// windows grow from (or shrink to) their center; a window being minimized
// flies into its dock slot. Minimized windows are only drawn in the dock.
func animatedBounds(s manager.Snapshot, slot geometry.Bounds) (geometry.Bounds, bool) {
	if s.Minimized && !(s.Docking && s.Phase == lifecycle.Exiting) {
		return geometry.Bounds{}, false
	}

	b := s.Bounds
	t := easeInOutCubic(s.Opacity)
	if s.Docking {
		return interpolateBounds(slot, b, t), true
	}
	if s.Opacity >= 1 {
		return b, true
	}

	from := geometry.Bounds{
		Width:  min(b.Width, minFrameWidth),
		Height: min(b.Height, minFrameHeight),
	}
	from.Left = b.Left + (b.Width-from.Width)/2
	from.Top = b.Top + (b.Height-from.Height)/2
	return interpolateBounds(from, b, t), true
}

func interpolateBounds(from, to geometry.Bounds, progress float64) geometry.Bounds {
	return geometry.Bounds{
		Left:   interpolate(from.Left, to.Left, progress),
		Top:    interpolate(from.Top, to.Top, progress),
		Width:  interpolate(from.Width, to.Width, progress),
		Height: interpolate(from.Height, to.Height, progress),
	}
}

// Easing function for smooth animation
func easeInOutCubic(t float64) float64 {
	t = max(0, min(t, 1))
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

// Linear interpolation
func interpolate(start, end int, progress float64) int {
	return start + int(math.Round(float64(end-start)*progress))
}
