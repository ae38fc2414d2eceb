package ports

import (
	"context"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
)

// Service exposes the inventory ledger to adapters.
type Service interface {
	Apply(ctx context.Context, movement domain.Movement) (*catalogdomain.Product, *domain.Transaction, error)
	History(ctx context.Context, productID int64) ([]*domain.Transaction, error)
}
