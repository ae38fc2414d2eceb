package server

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	catalogapp "github.com/Apurer/plant-nursery-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	contactapp "github.com/Apurer/plant-nursery-api/internal/domains/contact/application"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	inventoryapp "github.com/Apurer/plant-nursery-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	ordersapp "github.com/Apurer/plant-nursery-api/internal/domains/orders/application"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	usersapp "github.com/Apurer/plant-nursery-api/internal/domains/users/application"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
	apierrors "github.com/Apurer/plant-nursery-api/internal/shared/errors"
)

func newResponder(debug bool) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("", debug,
		mapPersistence,
		mapValidation,
		mapNotFound,
		mapConflict,
		mapAuthentication,
	)
}

func mapPersistence(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, storage.ErrPersistence) {
		return apierrors.ErrPersistence.WithDetail("Failed to save changes"), true
	}
	return apierrors.ProblemDetail{}, false
}

var invalidInput = []error{
	catalogapp.ErrInvalidInput,
	inventoryapp.ErrInvalidInput,
	ordersapp.ErrInvalidInput,
	usersapp.ErrInvalidInput,
	contactapp.ErrInvalidInput,
}

func mapValidation(err error) (apierrors.ProblemDetail, bool) {
	for _, sentinel := range invalidInput {
		if errors.Is(err, sentinel) {
			return apierrors.ErrValidation.WithDetail(detail(err, sentinel)), true
		}
	}
	return apierrors.ProblemDetail{}, false
}

var notFound = []struct {
	sentinel error
	message  string
}{
	{catalogports.ErrNotFound, "Plant not found"},
	{orderports.ErrNotFound, "Order not found"},
	{userports.ErrNotFound, "User not found"},
	{contactports.ErrNotFound, "Message not found"},
}

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	for _, nf := range notFound {
		if !errors.Is(err, nf.sentinel) {
			continue
		}
		message := nf.message
		if err.Error() != nf.sentinel.Error() {
			message = detail(err, nf.sentinel)
		}
		return apierrors.ErrNotFound.WithDetail(message), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapConflict(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
		return apierrors.ErrInsufficientStock.WithDetail(capitalize(err.Error())), true
	case errors.Is(err, ordersapp.ErrTransitionNotAllowed):
		return apierrors.ErrConflict.WithDetail(detail(err, ordersapp.ErrTransitionNotAllowed)), true
	case errors.Is(err, ordersapp.ErrOrderIDInUse):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used for a different order"), true
	case errors.Is(err, userports.ErrAlreadyExists):
		return apierrors.ErrConflict.WithDetail("User already exists"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapAuthentication(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userports.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail("Invalid credentials"), true
	case errors.Is(err, userports.ErrInvalidToken), errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("Invalid token"), true
	}
	return apierrors.ProblemDetail{}, false
}

// detail strips the sentinel prefix that mapError adds and capitalizes
// what remains.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimLeft(msg, ": ")
	if msg == "" {
		msg = sentinel.Error()
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
