// Package focus routes keyboard input to the topmost window: Escape closes
// it, Tab and Shift+Tab cycle its focusable elements.
package focus

import "slices"

// Params are registered for a window while it is bound to the router.
type Params struct {
	ID          string
	BlockScroll bool
}

// Element is a focusable control inside a window, in render order.
type Element struct {
	ID       string
	Hidden   bool
	Disabled bool
}

// CanFocus reports whether the element takes part in the focus ring.
func (e Element) CanFocus() bool {
	return !e.Hidden && !e.Disabled && e.ID != ""
}

// Router holds the stack of bound window params and the focused element of
// each window. Binding is counted per window: a window bound twice needs two
// unbinds.
type Router struct {
	params  []Params
	focused map[string]string
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{focused: make(map[string]string)}
}

// Bind pushes p. It is called when a window finishes entering.
func (r *Router) Bind(p Params) {
	r.params = append(r.params, p)
}

// Unbind removes the most recent params of id. It is called when a window
// starts exiting; unknown ids are ignored.
func (r *Router) Unbind(id string) {
	for i := len(r.params) - 1; i >= 0; i-- {
		if r.params[i].ID == id {
			r.params = slices.Delete(r.params, i, i+1)
			break
		}
	}
	if !r.Bound(id) {
		delete(r.focused, id)
	}
}

// Bound reports whether id has at least one params entry.
func (r *Router) Bound(id string) bool {
	return slices.ContainsFunc(r.params, func(p Params) bool { return p.ID == id })
}

// Last returns the most recently bound params.
func (r *Router) Last() (Params, bool) {
	if len(r.params) == 0 {
		return Params{}, false
	}
	return r.params[len(r.params)-1], true
}

// Params returns a copy of the bound params, oldest first.
func (r *Router) Params() []Params {
	return slices.Clone(r.params)
}

// Escape resolves the window an Escape key targets. origin is the window the
// event was delivered to; only when it is the last bound window and
// closable(origin) holds is its entry removed and its id returned.
func (r *Router) Escape(origin string, closable func(id string) bool) (string, bool) {
	return r.EscapeVisible(origin, nil, closable)
}

// EscapeVisible is Escape over the bound windows for which hidden reports
// false. A hidden window neither takes Escape nor shields the ones below it.
func (r *Router) EscapeVisible(origin string, hidden, closable func(id string) bool) (string, bool) {
	i := len(r.params) - 1
	for ; i >= 0; i-- {
		if hidden == nil || !hidden(r.params[i].ID) {
			break
		}
	}
	if i < 0 || r.params[i].ID != origin {
		return "", false
	}
	if closable != nil && !closable(origin) {
		return "", false
	}
	r.params = slices.Delete(r.params, i, i+1)
	return origin, true
}

// Focused returns the focused element of window, if any.
func (r *Router) Focused(window string) (string, bool) {
	id, ok := r.focused[window]
	return id, ok
}

// Focus focuses element inside window.
func (r *Router) Focus(window, element string) {
	r.focused[window] = element
}

// Blur clears the focus of window.
func (r *Router) Blur(window string) {
	delete(r.focused, window)
}

// Next moves focus to the next focusable element of window, wrapping after
// the last. With nothing focused it focuses the first. The focused id is
// returned; ok is false when the window has no focusable element.
func (r *Router) Next(window string, elems []Element) (string, bool) {
	return r.cycle(window, elems, 1)
}

// Prev is Next in reverse: nothing focused selects the last element.
func (r *Router) Prev(window string, elems []Element) (string, bool) {
	return r.cycle(window, elems, -1)
}

func (r *Router) cycle(window string, elems []Element, step int) (string, bool) {
	ring := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.CanFocus() {
			ring = append(ring, e.ID)
		}
	}
	if len(ring) == 0 {
		return "", false
	}

	n := len(ring)
	idx := -1
	if cur, ok := r.focused[window]; ok {
		idx = slices.Index(ring, cur)
	}

	var target int
	switch {
	case idx < 0 && step > 0:
		target = 0
	case idx < 0:
		target = n - 1
	default:
		target = (idx + step + n) % n
	}

	r.focused[window] = ring[target]
	return ring[target], true
}
