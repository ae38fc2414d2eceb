package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
)

var (
	// ErrInvalidInput signals the movement violated a ledger rule.
	ErrInvalidInput = errors.New("invalid inventory input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidProductID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
