package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

func plant(id int64, name, category string, price int64, stock int) *domain.Product {
	return &domain.Product{
		ID: id, Name: name, Category: category, Price: decimal.NewFromInt(price),
		Stock: stock, Description: name + " plant", Image: "img.jpg",
	}
}

func newCatalog() (*Service, *memory.Backend) {
	backend := memory.New(memory.Snapshot{Products: []*domain.Product{
		plant(1, "Tulsi", "medicinal", 99, 25),
		plant(2, "Areca Palm", "indoor", 599, 4),
		plant(3, "Aloe Vera", "medicinal", 149, 10),
		plant(4, "Rose", "flowering", 199, 0),
	}})
	return NewService(backend.Products(), backend), backend
}

func TestList_PaginatesFilteredProducts(t *testing.T) {
	svc, _ := newCatalog()

	cases := []struct {
		name  string
		page  domain.Page
		names []string
		want  domain.Pagination
	}{
		{
			name:  "last partial page",
			page:  domain.Page{Number: 2, Limit: 3},
			names: []string{"Tulsi"},
			want:  domain.Pagination{Total: 4, Page: 2, Limit: 3, TotalPages: 2, HasNextPage: false, HasPrevPage: true},
		},
		{
			name:  "past the end",
			page:  domain.Page{Number: 5, Limit: 3},
			names: []string{},
			want:  domain.Pagination{Total: 4, Page: 5, Limit: 3, TotalPages: 2, HasNextPage: false, HasPrevPage: true},
		},
		{
			name:  "page number large enough to overflow the offset",
			page:  domain.Page{Number: 461168601842738792, Limit: 20},
			names: []string{},
			want:  domain.Pagination{Total: 4, Page: 461168601842738792, Limit: 20, TotalPages: 1, HasNextPage: false, HasPrevPage: true},
		},
		{
			name:  "defaults",
			page:  domain.Page{},
			names: []string{"Aloe Vera", "Areca Palm", "Rose", "Tulsi"},
			want:  domain.Pagination{Total: 4, Page: 1, Limit: domain.DefaultPageLimit, TotalPages: 1, HasNextPage: false, HasPrevPage: false},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := tc.page
			result, err := svc.List(context.Background(), ports.ListInput{Page: &page})
			require.NoError(t, err)
			names := make([]string, 0, len(result.Products))
			for _, p := range result.Products {
				names = append(names, p.Name)
			}
			require.Equal(t, tc.names, names)
			require.Equal(t, &tc.want, result.Pagination)
		})
	}
}

func TestList_UnpaginatedReturnsEverything(t *testing.T) {
	svc, _ := newCatalog()

	result, err := svc.List(context.Background(), ports.ListInput{Filter: domain.Filter{Sort: domain.SortPriceDesc}})
	require.NoError(t, err)
	require.Nil(t, result.Pagination)
	require.Len(t, result.Products, 4)
	require.Equal(t, "Areca Palm", result.Products[0].Name)
}

func TestCategories_CountsSortedByName(t *testing.T) {
	svc, _ := newCatalog()

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.CategoryCount{
		{Name: "flowering", Count: 1},
		{Name: "indoor", Count: 1},
		{Name: "medicinal", Count: 2},
	}, categories)
}

func TestLowStock_IncludesThreshold(t *testing.T) {
	svc, _ := newCatalog()

	low, err := svc.LowStock(context.Background(), DefaultLowStockThreshold)
	require.NoError(t, err)
	require.Len(t, low, 3)
	require.Equal(t, []int{0, 4, 10}, []int{low[0].Stock, low[1].Stock, low[2].Stock})
}

func TestAddProduct_BooksInitialStockInLedger(t *testing.T) {
	ctx := context.Background()
	svc, backend := newCatalog()

	created, err := svc.AddProduct(ctx, ports.AddProductInput{
		Name: "Money Plant", Category: "Indoor", Price: decimal.NewFromInt(149),
		Stock: 12, Description: "Trailing vine", Image: "money.jpg", ActorUserID: "admin-1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), created.ID)
	require.Equal(t, 12, created.Stock)
	require.Equal(t, "indoor", created.Category)

	history, err := backend.Ledger().ListByProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, inventorydomain.TypeRestock, history[0].Type)
	require.Equal(t, 0, history[0].PreviousStock)
	require.Equal(t, "admin-1", history[0].UserID)
}

func TestAddProduct_RejectsInvalidInput(t *testing.T) {
	svc, backend := newCatalog()

	_, err := svc.AddProduct(context.Background(), ports.AddProductInput{Name: "Fern", Category: "indoor", Price: decimal.Zero, Description: "x", Image: "y"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.AddProduct(context.Background(), ports.AddProductInput{Name: "Fern", Category: "indoor", Price: decimal.NewFromInt(5), Stock: -1, Description: "x", Image: "y"})
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	require.Len(t, backend.Products().(interface{ All() []*domain.Product }).All(), 4)
}
