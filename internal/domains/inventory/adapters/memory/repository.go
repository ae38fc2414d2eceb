package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory, append-only transaction log.
type Repository struct {
	mu      sync.RWMutex
	entries []*domain.Transaction
	nextID  int64
}

func NewRepository(seed ...*domain.Transaction) *Repository {
	r := &Repository{}
	for _, tx := range seed {
		if tx == nil {
			continue
		}
		clone := *tx
		if clone.ID > r.nextID {
			r.nextID = clone.ID
		}
		r.entries = append(r.entries, &clone)
	}
	for _, tx := range r.entries {
		if tx.ID == 0 {
			r.nextID++
			tx.ID = r.nextID
		}
	}
	return r
}

func (r *Repository) Append(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx == nil {
		return nil, errors.New("transaction is nil")
	}
	clone := *tx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.entries = append(r.entries, &clone)
	saved := clone
	return &saved, nil
}

func (r *Repository) ListByProduct(_ context.Context, productID int64) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Transaction
	for _, tx := range r.entries {
		if tx.ProductID == productID {
			clone := *tx
			list = append(list, &clone)
		}
	}
	newestFirst(list)
	return list, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Transaction, error) {
	list := r.All()
	newestFirst(list)
	return list, nil
}

// All returns the log in append order.
func (r *Repository) All() []*domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Transaction, 0, len(r.entries))
	for _, tx := range r.entries {
		clone := *tx
		list = append(list, &clone)
	}
	return list
}

// Version is the number of entries; the log only grows.
func (r *Repository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.entries))
}

// Clone returns an independent copy for staging a unit of work. Entries
// are immutable so they are shared.
func (r *Repository) Clone() *Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Repository{
		entries: append([]*domain.Transaction(nil), r.entries...),
		nextID:  r.nextID,
	}
}

// Replace adopts the state of a staged copy.
func (r *Repository) Replace(staged *Repository) {
	staged.mu.RLock()
	entries, nextID := staged.entries, staged.nextID
	staged.mu.RUnlock()
	r.mu.Lock()
	r.entries, r.nextID = entries, nextID
	r.mu.Unlock()
}

func newestFirst(list []*domain.Transaction) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
