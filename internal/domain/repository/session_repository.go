package repository

import (
	"context"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
)

// SessionRepository stores selection sessions. Get and Mutate return
// errors.ErrSessionNotFound for unknown or expired sessions.
type SessionRepository interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Mutate applies fn to the session under the session's lock and returns
	// a snapshot of the result. There is one logical writer per session at a
	// time; overlapping writers are serialized in arrival order.
	Mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)

	Delete(ctx context.Context, id string) error
}
