// Package lifecycle implements the per-window state machine: the show/hide
// phases, the minimized and maximized sub-states, and the drag and resize
// sessions.
package lifecycle

import (
	"errors"
	"fmt"
)

// Phase is the stage of a window's show/hide sequence.
type Phase int

const (
	// Hidden is the initial phase; nothing is mounted.
	Hidden Phase = iota
	// MaskVisible means the mask is mounted and the window is about to enter.
	MaskVisible
	// Entering means the enter transition is running.
	Entering
	// Shown means the window is fully visible and interactive.
	Shown
	// Exiting means the exit transition is running.
	Exiting
	// Unmounted means the exit transition finished and the window is detached.
	Unmounted
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case MaskVisible:
		return "mask-visible"
	case Entering:
		return "entering"
	case Shown:
		return "shown"
	case Exiting:
		return "exiting"
	case Unmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// Signal is a discrete event advancing the phase.
type Signal int

const (
	SignalOpen Signal = iota
	SignalMaskMounted
	SignalEntered
	SignalClose
	SignalExited
)

// String returns a string representation of the signal.
func (s Signal) String() string {
	switch s {
	case SignalOpen:
		return "open"
	case SignalMaskMounted:
		return "mask-mounted"
	case SignalEntered:
		return "entered"
	case SignalClose:
		return "close"
	case SignalExited:
		return "exited"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a signal does not apply to the
// current phase.
var ErrInvalidTransition = errors.New("invalid transition")

// next returns the phase reached from p on s.
func next(p Phase, s Signal) (Phase, error) {
	switch {
	case s == SignalOpen && (p == Hidden || p == Unmounted):
		return MaskVisible, nil
	case s == SignalMaskMounted && p == MaskVisible:
		return Entering, nil
	case s == SignalEntered && p == Entering:
		return Shown, nil
	case s == SignalClose && (p == MaskVisible || p == Entering || p == Shown):
		return Exiting, nil
	case s == SignalExited && p == Exiting:
		return Unmounted, nil
	}
	return p, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, s, p)
}
