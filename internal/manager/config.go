package manager

import (
	"slices"
	"strconv"
	"time"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
)

// ResizeMode selects how pointer movement maps to a size change.
type ResizeMode int

const (
	// ResizeSingle grows the window by the pointer delta and pins its
	// position when the resize starts.
	ResizeSingle ResizeMode = iota
	// ResizeCentered doubles the delta while the window was never dragged
	// and keeps it at its placement, so it grows around its center.
	ResizeCentered
)

// String returns a string representation of the resize mode.
func (r ResizeMode) String() string {
	if r == ResizeCentered {
		return "centered"
	}
	return "single"
}

// Position is where a window appears before it is dragged. X and Y are
// lengths ("12", "25%") and override the placement for their axis when set.
type Position struct {
	Placement geometry.Placement
	X         string
	Y         string
}

// Button is a footer control. Buttons take part in the focus ring.
type Button struct {
	Label    string
	Disabled bool
	Hidden   bool
	OnPress  func(window string)
}

// Config describes one window. Zero values are meaningful, so start from
// DefaultConfig.
type Config struct {
	Title string
	Body  string

	Draggable   bool
	Resizable   bool
	Closable    bool
	Minimizable bool
	Maximizable bool

	DisplayMask     bool
	DismissibleMask bool
	BlockScroll     bool
	KeepInViewport  bool
	CloseOnEscape   bool
	FocusOnShow     bool

	MinX     int
	MinY     int
	Position Position

	AnimationDuration time.Duration
	BaseZIndex        int

	Width      string
	Height     string
	MinWidth   int
	MinHeight  int
	ResizeMode ResizeMode

	// AppendTo is the layer the window mounts on: nil for the manager's
	// root layer, portal.Self, or a *portal.Layer.
	AppendTo any
	// DisposeOnExit forgets the window once its exit completes instead of
	// keeping it for a reopen.
	DisposeOnExit bool

	Buttons []Button

	OnShow        func()
	OnHide        func()
	OnDragStart   func(geometry.Bounds)
	OnDrag        func(geometry.Bounds)
	OnDragEnd     func(geometry.Bounds)
	OnResizeStart func(geometry.Bounds)
	OnResize      func(geometry.Bounds)
	OnResizeEnd   func(geometry.Bounds)
	OnMaximize    func(maximized bool)
	OnMinimize    func(minimized bool)
	OnMaskClick   func()
}

// DefaultConfig returns the settings used by the demo and the config file
// when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Closable:          true,
		Draggable:         true,
		CloseOnEscape:     true,
		FocusOnShow:       true,
		DisplayMask:       true,
		KeepInViewport:    true,
		Position:          Position{Placement: geometry.PlaceCenter},
		AnimationDuration: 250 * time.Millisecond,
		BaseZIndex:        1000,
		Width:             "50%",
		Height:            "40%",
		MinWidth:          12,
		MinHeight:         5,
	}
}

func (c Config) clone() Config {
	c.Buttons = slices.Clone(c.Buttons)
	return c
}

// CloseControlID returns the focus id of the header close control.
func CloseControlID(window string) string { return window + "_close" }

// ButtonID returns the focus id of the i-th footer button.
func ButtonID(window string, i int) string {
	return window + "_button_" + strconv.Itoa(i)
}
