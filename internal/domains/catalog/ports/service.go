package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
)

// ListInput carries catalog query options.
type ListInput struct {
	Filter domain.Filter
	// Page is nil for an unpaginated listing.
	Page *domain.Page
}

// ListResult is one page of a filtered catalog listing.
type ListResult struct {
	Products []*domain.Product
	// Pagination is nil when the listing was not paginated.
	Pagination *domain.Pagination
}

// AddProductInput describes a product added by an administrator.
type AddProductInput struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Featured    bool
	Description string
	Image       string
	ActorUserID string
}

// Service exposes catalog use cases to adapters.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.CategoryCount, error)
	LowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
	AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error)
}
