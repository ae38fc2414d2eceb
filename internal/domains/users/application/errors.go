package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals a registration that breaks an account rule.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps rejected credentials and tokens.
	ErrAuthentication = errors.New("authentication failed")
)

var registrationErrors = []error{
	domain.ErrEmptyName,
	domain.ErrEmptyPassword,
	domain.ErrWeakPassword,
	domain.ErrInvalidEmail,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, rule := range registrationErrors {
		if errors.Is(err, rule) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials), errors.Is(err, ports.ErrInvalidToken):
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
