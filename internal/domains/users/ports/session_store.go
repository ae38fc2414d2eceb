package ports

import (
	"context"
	"time"
)

// SessionStore tracks issued login tokens so they can be revoked.
type SessionStore interface {
	Save(ctx context.Context, userID, token string, expiresAt time.Time) error
	Active(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, userID string) error
}

// NoopSessionStore accepts every token; use when revocation is not needed.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, string, string, time.Time) error { return nil }
func (noopSessionStore) Active(context.Context, string) (bool, error)         { return true, nil }
func (noopSessionStore) Delete(context.Context, string) error                 { return nil }

// SessionPurger drops expired sessions in bulk.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}
