package ports

import (
	"context"

	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
)

// Repository is the append-only store of inventory transactions.
type Repository interface {
	Append(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListByProduct(ctx context.Context, productID int64) ([]*domain.Transaction, error)
	List(ctx context.Context) ([]*domain.Transaction, error)
}
