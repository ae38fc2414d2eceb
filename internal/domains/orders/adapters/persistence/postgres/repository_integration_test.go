//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/postgres/pgtest"
)

func newOrder(t *testing.T, id, userID string, createdAt time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id,
		domain.Customer{Name: "Meera", Email: "meera@example.com", Address: "9 Hill St"},
		[]domain.Item{{ProductID: 1, Name: "Tulsi", Quantity: 3, UnitPrice: decimal.RequireFromString("99.50")}},
		userID, createdAt)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndUpdateStatus(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	saved, err := repo.Save(ctx, newOrder(t, "o-1", "u-1", now))
	require.NoError(t, err)
	assert.True(t, saved.Total.Equal(decimal.RequireFromString("348.50")))
	require.Len(t, saved.Items, 1)
	assert.True(t, saved.Items[0].UnitPrice.Equal(decimal.RequireFromString("99.50")))

	require.NoError(t, saved.UpdateStatus(domain.StatusDelivered, domain.PermissivePolicy{}, "done", now.Add(time.Hour)))
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.NotNil(t, updated.DeliveredAt)
	assert.Equal(t, "done", updated.Notes)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	_, err := repo.Save(ctx, newOrder(t, "o-old", "u-1", base))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newOrder(t, "o-new", "u-1", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newOrder(t, "o-guest", "", base.Add(2*time.Minute)))
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "o-guest", all[0].ID)

	mine, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "o-new", mine[0].ID)
}
