package application

import (
	"context"
	"sort"
	"time"

	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	inventoryapp "github.com/Apurer/plant-nursery-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// DefaultLowStockThreshold is used when no threshold is requested.
const DefaultLowStockThreshold = 10

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
	tx   storage.TransactionManager
	now  func() time.Time
}

func NewService(repo ports.Repository, tx storage.TransactionManager) *Service {
	return &Service{repo: repo, tx: tx, now: time.Now}
}

func (s *Service) List(ctx context.Context, input ports.ListInput) (*ports.ListResult, error) {
	products, err := s.repo.List(ctx, input.Filter)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Page == nil {
		return &ports.ListResult{Products: products}, nil
	}
	page, pagination := domain.Paginate(products, *input.Page)
	return &ports.ListResult{Products: page, Pagination: &pagination}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories counts products per category, sorted by name.
func (s *Service) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	products, err := s.repo.List(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, p := range products {
		counts[p.Category]++
	}
	result := make([]domain.CategoryCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, domain.CategoryCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// LowStock lists products at or below threshold, scarcest first.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	if threshold < 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	products, err := s.repo.List(ctx, domain.Filter{Sort: domain.SortNameAsc})
	if err != nil {
		return nil, err
	}
	low := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	return low, nil
}

// AddProduct creates a product with no stock and books its initial stock
// as a restock transaction in the same unit of work.
func (s *Service) AddProduct(ctx context.Context, input ports.AddProductInput) (*domain.Product, error) {
	if input.Stock < 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	product, err := domain.NewProduct(input.Name, input.Category, input.Price, 0, input.Featured, input.Description, input.Image)
	if err != nil {
		return nil, mapError(err)
	}
	var created *domain.Product
	err = s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		if created, err = repos.Products().Create(ctx, product); err != nil {
			return err
		}
		if input.Stock == 0 {
			return nil
		}
		created, _, err = inventoryapp.ApplyWithin(ctx, repos, inventorydomain.Movement{
			ProductID: created.ID,
			Type:      inventorydomain.TypeRestock,
			Quantity:  input.Stock,
			UserID:    input.ActorUserID,
			Note:      "initial stock",
		}, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

var _ ports.Service = (*Service)(nil)
