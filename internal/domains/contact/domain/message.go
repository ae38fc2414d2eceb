package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/Apurer/plant-nursery-api/internal/shared/validation"
)

// Status tracks whether staff have looked at a message.
type Status string

const (
	StatusNew  Status = "new"
	StatusRead Status = "read"
)

var (
	ErrMissingFields = errors.New("name, email and message are required")
	ErrInvalidEmail  = errors.New("email is invalid")
	ErrInvalidPhone  = errors.New("phone is invalid")
)

// Message is a contact form submission.
type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Body      string
	Status    Status
	CreatedAt time.Time
}

// NewMessage validates and builds a new unread message.
func NewMessage(id, name, email, phone, body string, now time.Time) (*Message, error) {
	m := &Message{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Body:      strings.TrimSpace(body),
		Status:    StatusNew,
		CreatedAt: now,
	}
	if m.Name == "" || m.Email == "" || m.Body == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsEmail(m.Email) {
		return nil, ErrInvalidEmail
	}
	if m.Phone != "" && !validation.IsPhone(m.Phone) {
		return nil, ErrInvalidPhone
	}
	return m, nil
}

// MarkRead flags the message as handled.
func (m *Message) MarkRead() {
	m.Status = StatusRead
}
