package session

import (
	"context"
	"errors"
)

// ErrNoScope is returned when session state is read outside a provided
// scope. Failing loudly here beats a silent empty session: it means a route
// was registered without the session middleware.
var ErrNoScope = errors.New("session: store accessed outside a provided scope")

type ctxKey struct{}

// NewContext returns ctx carrying the store.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext retrieves the store installed by the session middleware.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoScope
	}
	return s, nil
}
