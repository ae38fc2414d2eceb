package ports

import (
	"context"
	"errors"

	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("plant not found")

// Repository persists catalog products.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetForUpdate loads a product and holds it for a stock change within the
	// current unit of work.
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) (*domain.Product, error)
	List(ctx context.Context, filter domain.Filter) ([]*domain.Product, error)
}
