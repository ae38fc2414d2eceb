package ports

import (
	"context"

	"github.com/Apurer/plant-nursery-api/internal/domains/stats/domain"
)

// Service computes the admin dashboard.
type Service interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}
