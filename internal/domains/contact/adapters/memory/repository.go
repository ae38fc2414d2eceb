package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps contact messages in memory.
type Repository struct {
	mu       sync.RWMutex
	messages map[string]*domain.Message
	version  uint64
}

func NewRepository(seed ...*domain.Message) *Repository {
	r := &Repository{messages: map[string]*domain.Message{}}
	for _, m := range seed {
		if m != nil {
			clone := *m
			r.messages[m.ID] = &clone
		}
	}
	return r
}

func (r *Repository) Save(_ context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil || message.ID == "" {
		return nil, errors.New("message id is required")
	}
	clone := *message
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[clone.ID] = &clone
	r.version++
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

// List returns messages newest first.
func (r *Repository) List(_ context.Context) ([]*domain.Message, error) {
	r.mu.RLock()
	list := make([]*domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		clone := *m
		list = append(list, &clone)
	}
	r.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
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

func (r *Repository) Clone() *Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Repository{messages: make(map[string]*domain.Message, len(r.messages)), version: r.version}
	for id, m := range r.messages {
		c := *m
		clone.messages[id] = &c
	}
	return clone
}

func (r *Repository) Replace(staged *Repository) {
	staged.mu.RLock()
	messages, version := staged.messages, staged.version
	staged.mu.RUnlock()
	r.mu.Lock()
	r.messages, r.version = messages, version
	r.mu.Unlock()
}
