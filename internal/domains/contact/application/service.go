package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// Service records contact form submissions.
type Service struct {
	repo  ports.Repository
	tx    storage.TransactionManager
	newID func() string
	now   func() time.Time
}

func NewService(repo ports.Repository, tx storage.TransactionManager) *Service {
	return &Service{repo: repo, tx: tx, newID: uuid.NewString, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Message, error) {
	message, err := domain.NewMessage(s.newID(), input.Name, input.Email, input.Phone, input.Message, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	var saved *domain.Message
	err = s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		saved, err = repos.Messages().Save(ctx, message)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Message, error) {
	return s.repo.List(ctx)
}

func (s *Service) MarkRead(ctx context.Context, id string) (*domain.Message, error) {
	var updated *domain.Message
	err := s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		message, err := repos.Messages().GetByID(ctx, strings.TrimSpace(id))
		if err != nil {
			return err
		}
		message.MarkRead()
		updated, err = repos.Messages().Save(ctx, message)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

var _ ports.Service = (*Service)(nil)
