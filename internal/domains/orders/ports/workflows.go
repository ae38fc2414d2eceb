package ports

import (
	"context"

	"github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
)

// PlacementOrchestrator runs checkout, either durably or inline.
type PlacementOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
