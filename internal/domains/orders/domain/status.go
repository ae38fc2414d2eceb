package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every recognized status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var (
	ErrInvalidStatus  = fmt.Errorf("invalid status. Must be one of: %s", joinStatuses())
	ErrTerminalStatus = errors.New("order is in a terminal status")
)

func joinStatuses() string {
	names := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further progression is expected.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionPolicy decides whether an order may move between statuses.
type TransitionPolicy interface {
	Allow(from, to Status) error
}

// PermissivePolicy accepts any recognized status after any other.
type PermissivePolicy struct{}

func (PermissivePolicy) Allow(_, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// StrictPolicy treats delivered and cancelled as terminal. Re-applying the
// current status is allowed.
type StrictPolicy struct{}

func (StrictPolicy) Allow(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from.Terminal() && from != to {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrTerminalStatus, from, to)
	}
	return nil
}
