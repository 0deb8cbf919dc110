// Package scrolllock arbitrates the single background scroll lock shared by
// every open window.
package scrolllock

// Target receives the aggregate lock state. In the host program this is the
// background content viewport.
type Target interface {
	SetScrollLocked(locked bool)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(locked bool)

// SetScrollLocked implements Target.
func (f TargetFunc) SetScrollLocked(locked bool) { f(locked) }

// Arbiter keeps one entry per window that currently holds the lock and
// applies the aggregate to its target. The lock state is always recomputed
// from the holder set, so releasing twice or releasing an unknown window is
// harmless.
type Arbiter struct {
	target  Target
	holders map[string]struct{}
	locked  bool
}

// New returns an arbiter applying its state to target. A nil target is
// allowed; the state is then only observable through Locked.
func New(target Target) *Arbiter {
	return &Arbiter{
		target:  target,
		holders: make(map[string]struct{}),
	}
}

// Set records whether the window requires the lock and reapplies the
// aggregate.
func (a *Arbiter) Set(id string, requires bool) {
	if requires {
		a.holders[id] = struct{}{}
	} else {
		delete(a.holders, id)
	}
	a.apply()
}

// Release drops the window from the holder set.
func (a *Arbiter) Release(id string) {
	a.Set(id, false)
}

// Holds reports whether the window is currently counted.
func (a *Arbiter) Holds(id string) bool {
	_, ok := a.holders[id]
	return ok
}

// Locked reports the aggregate lock state.
func (a *Arbiter) Locked() bool {
	return a.locked
}

// Holders returns the number of windows holding the lock.
func (a *Arbiter) Holders() int {
	return len(a.holders)
}

func (a *Arbiter) apply() {
	want := len(a.holders) > 0
	if want == a.locked {
		return
	}
	a.locked = want
	if a.target != nil {
		a.target.SetScrollLocked(want)
	}
}
