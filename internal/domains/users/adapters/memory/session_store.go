package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

type session struct {
	userID    string
	expiresAt time.Time
}

// SessionStore keeps login sessions in process memory, keyed by token.
type SessionStore struct {
	sessions sync.Map
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *SessionStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *SessionStore) Save(_ context.Context, userID, token string, expiresAt time.Time) error {
	s.sessions.Store(token, session{userID: userID, expiresAt: expiresAt})
	return nil
}

func (s *SessionStore) Active(_ context.Context, token string) (bool, error) {
	value, ok := s.sessions.Load(token)
	if !ok {
		return false, nil
	}
	if !s.now().Before(value.(session).expiresAt) {
		s.sessions.Delete(token)
		return false, nil
	}
	return true, nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.sessions.Range(func(key, value any) bool {
		if value.(session).userID == userID {
			s.sessions.Delete(key)
		}
		return true
	})
	return nil
}

// PurgeExpired drops every expired session and reports how many were removed.
func (s *SessionStore) PurgeExpired(_ context.Context) (int, error) {
	now := s.now()
	removed := 0
	s.sessions.Range(func(key, value any) bool {
		if !now.Before(value.(session).expiresAt) {
			s.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed, nil
}
