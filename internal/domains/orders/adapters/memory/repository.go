package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	version uint64
}

func NewRepository(seed ...*domain.Order) *Repository {
	r := &Repository{orders: map[string]*domain.Order{}}
	for _, order := range seed {
		if order != nil {
			r.orders[order.ID] = order.Clone()
		}
	}
	return r
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if strings.TrimSpace(order.ID) == "" {
		return nil, errors.New("order id is required")
	}
	if !order.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[clone.ID] = clone
	r.version++
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	return r.collect(func(*domain.Order) bool { return true }), nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return []*domain.Order{}, nil
	}
	return r.collect(func(o *domain.Order) bool { return o.UserID == userID }), nil
}

func (r *Repository) collect(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if keep(order) {
			list = append(list, order.Clone())
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// All returns every order oldest first.
func (r *Repository) All() []*domain.Order {
	list := r.collect(func(*domain.Order) bool { return true })
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list
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
	clone := &Repository{orders: make(map[string]*domain.Order, len(r.orders)), version: r.version}
	for id, order := range r.orders {
		clone.orders[id] = order.Clone()
	}
	return clone
}

// Replace adopts the state of a staged copy.
func (r *Repository) Replace(staged *Repository) {
	staged.mu.RLock()
	orders, version := staged.orders, staged.version
	staged.mu.RUnlock()
	r.mu.Lock()
	r.orders, r.version = orders, version
	r.mu.Unlock()
}
