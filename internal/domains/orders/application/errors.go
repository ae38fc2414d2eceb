package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrTransitionNotAllowed signals the configured status policy refused the change.
	ErrTransitionNotAllowed = errors.New("order status transition not allowed")
	// ErrOrderIDInUse signals a caller supplied order id already belongs to a
	// different checkout.
	ErrOrderIDInUse = errors.New("order id already used by a different checkout")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrTerminalStatus):
		return fmt.Errorf("%w: %w", ErrTransitionNotAllowed, err)
	case errors.Is(err, domain.ErrMissingCustomer),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
