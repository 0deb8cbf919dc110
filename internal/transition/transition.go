// Package transition drives the enter and exit phases of a window. The
// lifecycle state machine never assumes a duration; it only reacts to the
// callbacks fired from here.
package transition

import (
	"slices"
	"time"
)

// Callbacks are fired at the phase boundaries of a transition. Nil entries
// are skipped.
type Callbacks struct {
	OnEnter    func()
	OnEntering func()
	OnEntered  func()
	OnExit     func()
	OnExiting  func()
	OnExited   func()
}

// Transition runs enter (in=true) or exit (in=false) sequences keyed by
// window id. Starting a new run for a key replaces any run still pending for
// it; the replaced run never completes.
type Transition interface {
	Run(key string, in bool, d time.Duration, cb Callbacks)
	Cancel(key string)
}

func call(f func()) {
	if f != nil {
		f()
	}
}

func fireStart(in bool, cb Callbacks) {
	if in {
		call(cb.OnEnter)
		call(cb.OnEntering)
	} else {
		call(cb.OnExit)
		call(cb.OnExiting)
	}
}

func fireDone(in bool, cb Callbacks) {
	if in {
		call(cb.OnEntered)
	} else {
		call(cb.OnExited)
	}
}

// Instant fires the whole sequence synchronously. It is used when animations
// are disabled.
type Instant struct{}

// Run implements Transition.
func (Instant) Run(_ string, in bool, _ time.Duration, cb Callbacks) {
	fireStart(in, cb)
	fireDone(in, cb)
}

// Cancel implements Transition.
func (Instant) Cancel(string) {}

type pending struct {
	key      string
	in       bool
	start    time.Time
	deadline time.Time
	seq      uint64
	cb       Callbacks
}

// Timed fires the start callbacks immediately and the completion callback
// once Advance observes the deadline. The host calls Advance on every frame.
type Timed struct {
	now     func() time.Time
	pending map[string]*pending
	seq     uint64
}

// NewTimed returns a Timed transition reading time from now. A nil now uses
// time.Now.
func NewTimed(now func() time.Time) *Timed {
	if now == nil {
		now = time.Now
	}
	return &Timed{now: now, pending: make(map[string]*pending)}
}

// Run implements Transition. A non-positive duration completes
// synchronously.
func (t *Timed) Run(key string, in bool, d time.Duration, cb Callbacks) {
	delete(t.pending, key)

	if d <= 0 {
		Instant{}.Run(key, in, d, cb)
		return
	}

	start := t.now()
	t.seq++
	p := &pending{key: key, in: in, start: start, deadline: start.Add(d), seq: t.seq, cb: cb}
	t.pending[key] = p
	fireStart(in, cb)
}

// Cancel implements Transition.
func (t *Timed) Cancel(key string) {
	delete(t.pending, key)
}

// Advance completes every run whose deadline is not after now, oldest first,
// and reports whether any completed.
func (t *Timed) Advance(now time.Time) bool {
	var due []*pending
	for _, p := range t.pending {
		if !p.deadline.After(now) {
			due = append(due, p)
		}
	}
	if len(due) == 0 {
		return false
	}

	slices.SortFunc(due, func(a, b *pending) int {
		if c := a.deadline.Compare(b.deadline); c != 0 {
			return c
		}
		return int(a.seq) - int(b.seq)
	})

	for _, p := range due {
		// A callback fired earlier in this loop may have restarted or
		// cancelled this key.
		if cur, ok := t.pending[p.key]; !ok || cur != p {
			continue
		}
		delete(t.pending, p.key)
		fireDone(p.in, p.cb)
	}
	return true
}

// Active reports whether any run is pending.
func (t *Timed) Active() bool {
	return len(t.pending) > 0
}

// Progress returns how far the pending run for key has advanced, from 0 to
// 1, and whether it is entering. Keys without a pending run report 1.
func (t *Timed) Progress(key string, now time.Time) (float64, bool) {
	p, ok := t.pending[key]
	if !ok {
		return 1, true
	}
	total := p.deadline.Sub(p.start)
	if total <= 0 {
		return 1, p.in
	}
	elapsed := now.Sub(p.start)
	return min(max(float64(elapsed)/float64(total), 0), 1), p.in
}
