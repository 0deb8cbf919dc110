package manager

import (
	"slices"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/lifecycle"
	"github.com/Gaurav-Gosain/tuimodal/internal/transition"
)

// Snapshot is the render-facing view of one window.
type Snapshot struct {
	ID        string
	HeaderID  string
	ContentID string

	Config Config
	Phase  lifecycle.Phase

	// Visible is true while the window is in the stacking order.
	Visible   bool
	Minimized bool
	Maximized bool
	Docking   bool
	Dragging  bool
	Resizing  bool

	Bounds         geometry.Bounds
	ZIndex         int
	InsertionOrder int
	Focused        string

	// Opacity runs from 0 to 1 during the enter transition and back to 0
	// during the exit transition.
	Opacity float64
}

// Window returns the snapshot of id.
func (m *Manager) Window(id string) (Snapshot, bool) {
	rec, ok := m.records[id]
	if !ok {
		return Snapshot{}, false
	}
	return m.snapshot(rec), true
}

func (m *Manager) snapshot(rec *record) Snapshot {
	order, _ := m.stack.InsertionOrder(rec.id)
	focused, _ := m.router.Focused(rec.id)
	mc := rec.machine

	return Snapshot{
		ID:             rec.id,
		HeaderID:       rec.id + "_header",
		ContentID:      rec.id + "_content",
		Config:         rec.cfg.clone(),
		Phase:          mc.Phase(),
		Visible:        m.stack.Visible(rec.id),
		Minimized:      mc.Minimized(),
		Maximized:      mc.Maximized(),
		Docking:        mc.Docking(),
		Dragging:       mc.Dragging(),
		Resizing:       mc.Resizing(),
		Bounds:         mc.Bounds(),
		ZIndex:         rec.zIndex,
		InsertionOrder: order,
		Focused:        focused,
		Opacity:        m.opacity(rec),
	}
}

func (m *Manager) opacity(rec *record) float64 {
	switch rec.machine.Phase() {
	case lifecycle.Hidden, lifecycle.Unmounted:
		return 0
	case lifecycle.Shown:
		return 1
	}
	timed, ok := m.transition.(*transition.Timed)
	if !ok {
		return 1
	}
	p, entering := timed.Progress(rec.id, m.lastTick)
	if entering {
		return p
	}
	return 1 - p
}

// Windows returns every mounted window, bottom first. Exiting windows keep
// the layer they were shown at until their exit completes.
func (m *Manager) Windows() []Snapshot {
	recs := make([]*record, 0, len(m.records))
	for _, rec := range m.records {
		switch rec.machine.Phase() {
		case lifecycle.Hidden, lifecycle.Unmounted:
			continue
		}
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b *record) int {
		if a.zIndex != b.zIndex {
			return a.zIndex - b.zIndex
		}
		return a.showSeq - b.showSeq
	})

	out := make([]Snapshot, len(recs))
	for i, rec := range recs {
		out[i] = m.snapshot(rec)
	}
	return out
}

// IDs returns every registered window id in insertion order, hidden ones
// included.
func (m *Manager) IDs() []string {
	return m.stack.IDs()
}
