package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/plant-nursery-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes checkout as a single retried activity.
// The order id is fixed by the caller so retries cannot sell twice.
func RunOrderPlacementSequence(ctx workflow.Context, input orderports.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "orderId", input.OrderID, "lines", len(input.Lines))
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.FailureInvalidInput,
				orderactivities.FailureProductNotFound,
				orderactivities.FailureInsufficientStock,
			},
		},
	}

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
