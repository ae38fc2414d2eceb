package ports

import (
	"context"
	"errors"

	"github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
)

var ErrNotFound = errors.New("message not found")

// Repository persists contact messages.
type Repository interface {
	Save(ctx context.Context, message *domain.Message) (*domain.Message, error)
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
}

// SubmitInput is a contact form submission.
type SubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Service exposes contact use cases.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id string) (*domain.Message, error)
}
