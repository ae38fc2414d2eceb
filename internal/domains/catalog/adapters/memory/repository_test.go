package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
)

func plant(id int64, name, category string, price int64, stock int) *domain.Product {
	return &domain.Product{
		ID: id, Name: name, Category: category, Price: decimal.NewFromInt(price), Stock: stock,
		Description: name + " plant", Image: "https://img.example/" + name,
	}
}

func TestRepository_CreateAssignsNextID(t *testing.T) {
	repo := NewRepository(plant(7, "Tulsi", "medicinal", 20, 5))
	created, err := repo.Create(context.Background(), plant(0, "Mint", "medicinal", 20, 0))
	require.NoError(t, err)
	require.Equal(t, int64(8), created.ID)
	require.False(t, created.CreatedAt.IsZero())
}

func TestRepository_UpdateStock(t *testing.T) {
	repo := NewRepository(plant(1, "Tulsi", "medicinal", 20, 5))
	ctx := context.Background()

	updated, err := repo.UpdateStock(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, updated.Stock)

	_, err = repo.UpdateStock(ctx, 1, -1)
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	_, err = repo.UpdateStock(ctx, 99, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CloneIsIndependentUntilReplace(t *testing.T) {
	repo := NewRepository(plant(1, "Tulsi", "medicinal", 20, 5))
	ctx := context.Background()

	staged := repo.Clone()
	_, err := staged.UpdateStock(ctx, 1, 0)
	require.NoError(t, err)

	live, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, live.Stock)
	require.NotEqual(t, repo.Version(), staged.Version())

	repo.Replace(staged)
	live, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 0, live.Stock)
}

func TestRepository_ListFiltersAndSorts(t *testing.T) {
	repo := NewRepository(
		plant(1, "Tulsi", "medicinal", 20, 5),
		plant(2, "Bamboo", "ornamental", 50, 0),
		plant(3, "Aloe Vera", "Medicinal", 30, 9),
	)
	category := "MEDICINAL"
	list, err := repo.List(context.Background(), domain.Filter{Category: &category})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Aloe Vera", list[0].Name)
	require.Equal(t, "Tulsi", list[1].Name)

	all, err := repo.List(context.Background(), domain.Filter{Sort: domain.SortPriceDesc})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})
}
