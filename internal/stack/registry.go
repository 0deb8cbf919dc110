// Package stack tracks which windows exist, which are visible and in what
// order they are stacked.
package stack

import "slices"

// DefaultBaseZIndex is used for windows registered without a base z-index.
const DefaultBaseZIndex = 1000

type entry struct {
	order   int
	base    int
	zIndex  int
	visible bool
}

// Registry holds every registered window id plus the stacking order of the
// visible ones. The last id in the order is the topmost window.
type Registry struct {
	entries   map[string]*entry
	order     []string
	nextOrder int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds id with the next insertion order. It returns false and
// changes nothing when id is already registered.
func (r *Registry) Register(id string, baseZIndex int) bool {
	if _, exists := r.entries[id]; exists {
		return false
	}
	if baseZIndex <= 0 {
		baseZIndex = DefaultBaseZIndex
	}
	r.entries[id] = &entry{order: r.nextOrder, base: baseZIndex}
	r.nextOrder++
	return true
}

// SetBaseZIndex changes the base used the next time id is shown.
func (r *Registry) SetBaseZIndex(id string, baseZIndex int) {
	if e, ok := r.entries[id]; ok && baseZIndex > 0 {
		e.base = baseZIndex
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Show appends id to the stacking order and captures its z-index: its base,
// or one above the current topmost window when that is higher. Showing an
// already visible id is a no-op, which keeps its z-index stable.
func (r *Registry) Show(id string) bool {
	e, ok := r.entries[id]
	if !ok || e.visible {
		return false
	}
	e.zIndex = e.base
	if top, ok := r.Topmost(); ok {
		e.zIndex = max(e.base, r.entries[top].zIndex+1)
	}
	e.visible = true
	r.order = append(r.order, id)
	return true
}

// Hide removes id from the stacking order. The registration is kept.
func (r *Registry) Hide(id string) bool {
	e, ok := r.entries[id]
	if !ok || !e.visible {
		return false
	}
	e.visible = false
	e.zIndex = 0
	r.order = slices.DeleteFunc(r.order, func(x string) bool { return x == id })
	return true
}

// HideAll clears the stacking order and returns the ids that were visible,
// bottom first.
func (r *Registry) HideAll() []string {
	hidden := r.order
	for _, id := range hidden {
		e := r.entries[id]
		e.visible = false
		e.zIndex = 0
	}
	r.order = nil
	return hidden
}

// Dispose forgets id entirely.
func (r *Registry) Dispose(id string) {
	r.Hide(id)
	delete(r.entries, id)
}

// Visible reports whether id is in the stacking order.
func (r *Registry) Visible(id string) bool {
	e, ok := r.entries[id]
	return ok && e.visible
}

// Topmost returns the last id of the stacking order.
func (r *Registry) Topmost() (string, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[len(r.order)-1], true
}

// ZIndex returns the z-index captured when id was shown.
func (r *Registry) ZIndex(id string) (int, bool) {
	e, ok := r.entries[id]
	if !ok || !e.visible {
		return 0, false
	}
	return e.zIndex, true
}

// InsertionOrder returns the order id was registered with.
func (r *Registry) InsertionOrder(id string) (int, bool) {
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return e.order, true
}

// Order returns a copy of the stacking order, bottom first.
func (r *Registry) Order() []string {
	return slices.Clone(r.order)
}

// IDs returns every registered id sorted by insertion order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return r.entries[a].order - r.entries[b].order
	})
	return ids
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	return len(r.entries)
}
