//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/postgres/pgtest"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

func TestExecute_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	backend := New(pgtest.Start(t), nil)

	product, err := catalogdomain.NewProduct("Jade", "succulent", decimal.NewFromInt(250), 6, true, "Lucky plant", "jade.jpg")
	require.NoError(t, err)
	created, err := backend.Products().Create(ctx, product)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if _, err := repos.Products().GetForUpdate(ctx, created.ID); err != nil {
			return err
		}
		if _, err := repos.Products().UpdateStock(ctx, created.ID, 0); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	reloaded, err := backend.Products().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 6, reloaded.Stock)
}

func TestView_RejectsWrites(t *testing.T) {
	ctx := context.Background()
	backend := New(pgtest.Start(t), nil)

	product, err := catalogdomain.NewProduct("Snake Plant", "indoor", decimal.NewFromInt(300), 4, false, "Hardy", "snake.jpg")
	require.NoError(t, err)
	created, err := backend.Products().Create(ctx, product)
	require.NoError(t, err)

	err = backend.View(ctx, func(ctx context.Context, repos storage.Repositories) error {
		got, err := repos.Products().GetByID(ctx, created.ID)
		if err != nil {
			return err
		}
		require.Equal(t, 4, got.Stock)
		_, err = repos.Products().UpdateStock(ctx, created.ID, 0)
		return err
	})
	require.Error(t, err)

	reloaded, err := backend.Products().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 4, reloaded.Stock)
}
