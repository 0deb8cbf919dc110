package app

import (
	"slices"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

const (
	// Smallest box drawn while a window grows or shrinks.
	minFrameWidth  = 8
	minFrameHeight = 3

	controlWidth  = 3
	dockItemWidth = 18
)

// frame is one window as laid out for the current frame, in viewport
// coordinates.
type frame struct {
	snap   manager.Snapshot
	bounds geometry.Bounds

	// masked is set on the highest window that displays a mask; the mask
	// is drawn right below it.
	masked      bool
	interactive bool
	focused     bool
}

// frames lays out every mounted window, bottom first.
func (m *Model) frames() []frame {
	snaps := m.mgr.Windows()
	top, _ := m.mgr.Active()
	slots := m.dockSlots(snaps)

	out := make([]frame, 0, len(snaps))
	for _, s := range snaps {
		b, ok := animatedBounds(s, slots[s.ID])
		if !ok {
			continue
		}
		out = append(out, frame{
			snap:        s,
			bounds:      b,
			interactive: s.Phase == lifecycle.Shown && !s.Minimized,
			focused:     s.ID == top,
		})
	}
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].snap.Config.DisplayMask && !out[i].snap.Docking {
			out[i].masked = true
			break
		}
	}
	return out
}

// dockItem is one minimized window in the dock row.
type dockItem struct {
	id    string
	label string
	x     int
}

func dockZoneID(id string) string { return "dock_" + id }

// dockItems lays out minimized windows left to right, in stacking order.
func dockItems(snaps []manager.Snapshot, width int) []dockItem {
	var items []dockItem
	x := 1
	for _, s := range snaps {
		if !s.Minimized {
			continue
		}
		label := " " + ansi.Truncate(s.Config.Title, dockItemWidth-2, "…") + " "
		w := ansi.StringWidth(label)
		if x+w > width {
			break
		}
		items = append(items, dockItem{id: s.ID, label: label, x: x})
		x += w + 1
	}
	return items
}

// dockSlots returns, per minimized window, the box a minimizing window
// shrinks into: just above (or below) its dock item.
func (m *Model) dockSlots(snaps []manager.Snapshot) map[string]geometry.Bounds {
	vp := m.mgr.Viewport()
	top := vp.Height - minFrameHeight
	if m.dockAtTop() {
		top = 0
	}
	slots := make(map[string]geometry.Bounds)
	for _, it := range dockItems(snaps, vp.Width) {
		slots[it.id] = geometry.Bounds{
			Left:   it.x,
			Top:    top,
			Width:  max(ansi.StringWidth(it.label), minFrameWidth),
			Height: minFrameHeight,
		}
	}
	return slots
}

type controlKind int

const (
	controlMinimize controlKind = iota
	controlMaximize
	controlClose
)

// control is a header button, placed in screen columns.
type control struct {
	kind  controlKind
	x     int
	width int
}

func (c control) press(mgr *manager.Manager, id string) {
	switch c.kind {
	case controlMinimize:
		mgr.Minimize(id)
	case controlMaximize:
		mgr.Maximize(id)
	case controlClose:
		mgr.Close(id)
	}
}

// headerControls places the enabled header buttons right-aligned against
// the top-right corner. Buttons that do not fit are dropped.
func headerControls(s manager.Snapshot, b geometry.Bounds) []control {
	var kinds []controlKind
	if s.Config.Closable {
		kinds = append(kinds, controlClose)
	}
	if s.Config.Maximizable {
		kinds = append(kinds, controlMaximize)
	}
	if s.Config.Minimizable {
		kinds = append(kinds, controlMinimize)
	}

	var out []control
	x := b.Right() - 1
	for _, k := range kinds {
		x -= controlWidth
		if x <= b.Left+1 {
			break
		}
		out = append(out, control{kind: k, x: x, width: controlWidth})
	}
	slices.Reverse(out)
	return out
}

// onResizeHandle reports whether p is on the bottom-right resize grip.
func onResizeHandle(f frame, p geometry.Point) bool {
	s := f.snap
	if !s.Config.Resizable || s.Maximized {
		return false
	}
	b := f.bounds
	return p.Y == b.Bottom()-1 && p.X >= b.Right()-2 && p.X < b.Right()
}
