// Package theme provides the colors used to draw windows, the mask and the
// dock.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and fixed fallback colors are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

func pick(fallback string, f func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return f(t)
}

// Window border colors
func BorderUnfocused() color.Color {
	return pick("#FAAAAA", func(t *tint.Tint) color.Color { return t.Red })
}

func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// BorderActive is used while the window is dragged or resized.
func BorderActive() color.Color {
	return pick("#AAFFAA", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// Title and body text
func TitleFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

func BodyFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

func WindowBg() color.Color {
	return pick("#1a1b26", func(t *tint.Tint) color.Color { return t.Bg })
}

// Header and footer buttons
func ButtonFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.White })
}

func ButtonFocusedBg() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

func ButtonDisabled() color.Color {
	return pick("#7f7f7f", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func CloseButton() color.Color {
	return pick("#ff5f5f", func(t *tint.Tint) color.Color { return t.BrightRed })
}

// MaskFg colors the shade drawn over the background behind a masked window.
func MaskFg() color.Color {
	return pick("#3a3a3a", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// Background content
func BackgroundFg() color.Color {
	return pick("#9e9e9e", func(t *tint.Tint) color.Color { return t.White })
}

func ScrollLocked() color.Color {
	return pick("#ffff00", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

// Dock styling colors
func DockBg() color.Color {
	return pick("#262626", func(t *tint.Tint) color.Color { return t.Black })
}

func DockFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

func DockHighlight() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return pick("#00ffff", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func HelpTitle() color.Color {
	return pick("#ffff00", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

func HelpGray() color.Color {
	return pick("#7f7f7f", func(t *tint.Tint) color.Color { return t.BrightBlack })
}
