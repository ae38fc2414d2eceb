package application

import (
	"context"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/stats/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/stats/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// Service recomputes the dashboard on every call from one committed state.
type Service struct {
	views storage.Viewer
}

func NewService(views storage.Viewer) *Service {
	return &Service{views: views}
}

func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	err := s.views.View(ctx, func(ctx context.Context, repos storage.Repositories) error {
		orders, err := repos.Orders().List(ctx)
		if err != nil {
			return err
		}
		users, err := repos.Users().List(ctx)
		if err != nil {
			return err
		}
		products, err := repos.Products().List(ctx, catalogdomain.Filter{})
		if err != nil {
			return err
		}
		dashboard = domain.Compute(orders, len(users), products)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

var _ ports.Service = (*Service)(nil)
