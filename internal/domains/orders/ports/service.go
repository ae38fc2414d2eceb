package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
)

// PlaceOrderInput is a checkout request.
type PlaceOrderInput struct {
	Customer domain.Customer
	Lines    []domain.LineRequest
	// ClaimedTotal is the total the client computed, if it sent one.
	ClaimedTotal *decimal.Decimal
	UserID       string
	// OrderID is optional; retried placements reuse it so a sale is
	// recorded at most once.
	OrderID string
}

// UpdateStatusInput changes the status of an order.
type UpdateStatusInput struct {
	OrderID     string
	Status      string
	Notes       string
	ActorUserID string
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
}
