package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user store keyed by id with a unique email index.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
	version uint64
}

func NewRepository(seed ...*domain.User) *Repository {
	r := &Repository{users: map[string]*domain.User{}, byEmail: map[string]string{}}
	for _, user := range seed {
		if user != nil {
			clone := user.Clone()
			r.users[clone.ID] = clone
			r.byEmail[domain.NormalizeEmail(clone.Email)] = clone.ID
		}
	}
	return r
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if strings.TrimSpace(user.ID) == "" {
		return nil, errors.New("user id is required")
	}
	clone := user.Clone()
	clone.Email = domain.NormalizeEmail(clone.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byEmail[clone.Email]; ok && owner != clone.ID {
		return nil, ports.ErrAlreadyExists
	}
	if previous, ok := r.users[clone.ID]; ok && previous.Email != clone.Email {
		delete(r.byEmail, previous.Email)
	}
	r.users[clone.ID] = clone
	r.byEmail[clone.Email] = clone.ID
	r.version++
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		list = append(list, user.Clone())
	}
	r.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *Repository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Clone returns an independent copy for staging a unit of work.
func (r *Repository) Clone() *Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Repository{
		users:   make(map[string]*domain.User, len(r.users)),
		byEmail: make(map[string]string, len(r.byEmail)),
		version: r.version,
	}
	for id, user := range r.users {
		clone.users[id] = user.Clone()
	}
	for email, id := range r.byEmail {
		clone.byEmail[email] = id
	}
	return clone
}

// Replace adopts the state of a staged copy.
func (r *Repository) Replace(staged *Repository) {
	staged.mu.RLock()
	users, byEmail, version := staged.users, staged.byEmail, staged.version
	staged.mu.RUnlock()
	r.mu.Lock()
	r.users, r.byEmail, r.version = users, byEmail, version
	r.mu.Unlock()
}
