package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
)

var (
	// ErrInvalidInput signals an incomplete or malformed submission.
	ErrInvalidInput = errors.New("invalid contact input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidPhone) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
