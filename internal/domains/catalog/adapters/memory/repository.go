package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
	version  uint64
	now      func() time.Time
}

// NewRepository builds a catalog holding the given products. Products
// without an id are numbered after the highest existing id.
func NewRepository(seed ...*domain.Product) *Repository {
	r := &Repository{products: map[int64]*domain.Product{}, now: time.Now}
	for _, p := range seed {
		if p != nil && p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	for _, p := range seed {
		if p == nil {
			continue
		}
		clone := p.Clone()
		if clone.ID == 0 {
			r.nextID++
			clone.ID = r.nextID
		}
		r.products[clone.ID] = clone
	}
	return r
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := product.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	now := r.now()
	clone.CreatedAt, clone.UpdatedAt = now, now
	r.products[clone.ID] = clone
	r.version++
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return product.Clone(), nil
}

// GetForUpdate is GetByID; writers are already serialized by the unit of work.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *Repository) UpdateStock(_ context.Context, id int64, stock int) (*domain.Product, error) {
	if stock < 0 {
		return nil, domain.ErrNegativeStock
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	product.Stock = stock
	product.UpdatedAt = r.now()
	r.version++
	return product.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter domain.Filter) ([]*domain.Product, error) {
	r.mu.RLock()
	all := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		all = append(all, product.Clone())
	}
	r.mu.RUnlock()
	return filter.Apply(all), nil
}

// All returns every product ordered by id.
func (r *Repository) All() []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for id := int64(1); id <= r.nextID; id++ {
		if product, ok := r.products[id]; ok {
			list = append(list, product.Clone())
		}
	}
	return list
}

// Version changes whenever the catalog is written.
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
		products: make(map[int64]*domain.Product, len(r.products)),
		nextID:   r.nextID,
		version:  r.version,
		now:      r.now,
	}
	for id, product := range r.products {
		clone.products[id] = product.Clone()
	}
	return clone
}

// Replace adopts the state of a staged copy.
func (r *Repository) Replace(staged *Repository) {
	staged.mu.RLock()
	products, nextID, version := staged.products, staged.nextID, staged.version
	staged.mu.RUnlock()
	r.mu.Lock()
	r.products, r.nextID, r.version = products, nextID, version
	r.mu.Unlock()
}
