package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs checkout against the configured storage backend.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs checkout. Business rule failures are returned as
// non-retryable application errors.
func (a *Activities) PlaceOrder(ctx context.Context, input orderports.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order placement activity not initialized")
	}
	info := activity.GetInfo(ctx)
	logger.Info("PlaceOrder activity started", "orderId", input.OrderID, "attempt", info.Attempt)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "total", order.Total.StringFixed(2))
	return order, nil
}
