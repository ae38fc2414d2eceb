package application

import (
	"context"
	"time"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// Service is the inventory ledger: the only path that changes product stock.
type Service struct {
	products catalogports.Repository
	ledger   ports.Repository
	tx       storage.TransactionManager
	now      func() time.Time
}

func NewService(products catalogports.Repository, ledger ports.Repository, tx storage.TransactionManager) *Service {
	return &Service{products: products, ledger: ledger, tx: tx, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) Apply(ctx context.Context, movement domain.Movement) (*catalogdomain.Product, *domain.Transaction, error) {
	var (
		product *catalogdomain.Product
		tx      *domain.Transaction
	)
	err := s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		product, tx, err = ApplyWithin(ctx, repos, movement, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return product, tx, nil
}

// History lists the transactions of one product, newest first.
func (s *Service) History(ctx context.Context, productID int64) ([]*domain.Transaction, error) {
	if productID <= 0 {
		return nil, mapError(domain.ErrInvalidProductID)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.ledger.ListByProduct(ctx, productID)
}

var _ ports.Service = (*Service)(nil)
