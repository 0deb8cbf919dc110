package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

const (
	// NormalFPS is the normal refresh rate in FPS.
	NormalFPS = 60
	// InteractionFPS is the refresh rate while a drag or resize runs.
	InteractionFPS = 30

	// DefaultAnimationDuration is the enter/exit transition length.
	DefaultAnimationDuration = 250 * time.Millisecond
	// FastAnimationDuration is used for dialogs.
	FastAnimationDuration = 150 * time.Millisecond

	// DockHeight is the number of rows reserved for minimized windows.
	DockHeight = 1
	// HelpWidth is the width of the help overlay.
	HelpWidth = 56
)

// AnimationsEnabled turns every window transition into an instant one when
// false. The CLI sets it from --no-animations.
var AnimationsEnabled = true

// UseASCIIOnly replaces box-drawing glyphs with ASCII.
var UseASCIIOnly = false

// GetFastAnimationDuration returns the short transition length, or zero when
// animations are off.
func GetFastAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return FastAnimationDuration
}

// GetBorderForStyle returns the lipgloss border named by style. Unknown
// names use the rounded border.
func GetBorderForStyle(style string) lipgloss.Border {
	if UseASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetWindowButtons returns the header glyphs for minimize, maximize and
// close.
func GetWindowButtons() (minimize, maximize, close string) {
	if UseASCIIOnly {
		return "_", "+", "x"
	}
	return "─", "□", "×"
}
