package manager

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when a manager is looked up in a context that
// never received one.
var ErrNoProvider = errors.New("no window manager in context: wrap the caller with manager.WithManager")

type contextKey struct{}

// WithManager returns a copy of ctx carrying m.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the manager stored by WithManager.
func FromContext(ctx context.Context) (*Manager, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	m, ok := ctx.Value(contextKey{}).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoProvider
	}
	return m, nil
}

// MustFromContext is FromContext that panics without a manager.
func MustFromContext(ctx context.Context) *Manager {
	m, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return m
}
