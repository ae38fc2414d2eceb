//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/postgres/pgtest"
)

func TestRepository_SaveAndGetByEmail(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	user := domain.NewUser("u-1", "Alice", "Alice@Example.com", "hash", false, time.Now().UTC())
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", saved.Email)

	fetched, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", fetched.ID)

	fetched.AddOrder("o-1")
	updated, err := repo.Save(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1"}, updated.OrderIDs)

	_, err = repo.Save(ctx, domain.NewUser("u-2", "Other", "alice@example.com", "hash", false, time.Now().UTC()))
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)

	_, err = repo.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_ActiveDeleteAndPurge(t *testing.T) {
	store := NewSessionStore(pgtest.Start(t))
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, "u-1", "live", now.Add(time.Hour)))
	require.NoError(t, store.Save(ctx, "u-1", "stale", now.Add(-time.Hour)))

	active, err := store.Active(ctx, "live")
	require.NoError(t, err)
	assert.True(t, active)
	active, err = store.Active(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, active)

	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	require.NoError(t, store.Delete(ctx, "u-1"))
	active, err = store.Active(ctx, "live")
	require.NoError(t, err)
	assert.False(t, active)
}
