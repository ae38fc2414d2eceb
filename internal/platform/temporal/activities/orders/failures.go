package orders

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	ordersapp "github.com/Apurer/plant-nursery-api/internal/domains/orders/application"
)

// Failure types carried across the workflow boundary.
const (
	FailureInvalidInput      = "OrderInvalidInput"
	FailureProductNotFound   = "OrderProductNotFound"
	FailureInsufficientStock = "OrderInsufficientStock"
	FailureOrderIDInUse      = "OrderIDInUse"
)

var failureSentinels = map[string]error{
	FailureInvalidInput:      ordersapp.ErrInvalidInput,
	FailureProductNotFound:   catalogports.ErrNotFound,
	FailureInsufficientStock: inventorydomain.ErrInsufficientStock,
	FailureOrderIDInUse:      ordersapp.ErrOrderIDInUse,
}

func toApplicationError(err error) error {
	var kind string
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput):
		kind = FailureInvalidInput
	case errors.Is(err, catalogports.ErrNotFound):
		kind = FailureProductNotFound
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
		kind = FailureInsufficientStock
	case errors.Is(err, ordersapp.ErrOrderIDInUse):
		kind = FailureOrderIDInUse
	default:
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), kind, nil, err.Error())
}

// RestoreError maps a failed placement back onto the domain error the
// activity reported, so callers see the same errors as an inline checkout.
func RestoreError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	sentinel, ok := failureSentinels[appErr.Type()]
	if !ok {
		return err
	}
	var message string
	if appErr.HasDetails() {
		_ = appErr.Details(&message)
	}
	if message == "" {
		return sentinel
	}
	return &restoredError{sentinel: sentinel, message: message}
}

type restoredError struct {
	sentinel error
	message  string
}

func (e *restoredError) Error() string { return e.message }

func (e *restoredError) Unwrap() error { return e.sentinel }
