package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/Apurer/plant-nursery-api/internal/shared/validation"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email is invalid")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// User is a registered nursery customer or administrator.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	OrderIDs     []string
	CreatedAt    time.Time
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the fields a new user supplies.
func ValidateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if !validation.IsEmail(email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// NewUser builds a user from already validated registration data.
func NewUser(id, name, email, passwordHash string, isAdmin bool, now time.Time) *User {
	return &User{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		OrderIDs:     []string{},
		CreatedAt:    now,
	}
}

// AddOrder records an order placed by the user. Duplicates are ignored.
func (u *User) AddOrder(orderID string) {
	for _, id := range u.OrderIDs {
		if id == orderID {
			return
		}
	}
	u.OrderIDs = append(u.OrderIDs, orderID)
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.OrderIDs = append([]string{}, u.OrderIDs...)
	return &clone
}
