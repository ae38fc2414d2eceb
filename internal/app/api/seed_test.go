package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/Apurer/plant-nursery-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	usermemory "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/memory"
	usersapp "github.com/Apurer/plant-nursery-api/internal/domains/users/application"
	"github.com/Apurer/plant-nursery-api/internal/platform/auth"
	storagememory "github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadSeedCatalog(t *testing.T) {
	plants, err := loadSeedCatalog(seedCatalog)
	require.NoError(t, err)
	require.NotEmpty(t, plants)

	for _, p := range plants {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Category)
		assert.Positive(t, p.Price, p.Name)
		assert.GreaterOrEqual(t, p.Stock, 0, p.Name)
	}
	assert.Equal(t, "Adulsa", plants[0].Name)
}

func TestSeedCatalog_OnlyIntoEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	backend := storagememory.New(storagememory.Snapshot{})
	catalog := catalogapp.NewService(backend.Products(), backend)

	added, err := SeedCatalog(ctx, catalog, discardLogger())
	require.NoError(t, err)
	require.Positive(t, added)

	products, err := backend.Products().List(ctx, catalogdomain.Filter{})
	require.NoError(t, err)
	assert.Len(t, products, added)

	ledger, err := backend.Ledger().List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, ledger)
	for _, tx := range ledger {
		assert.Equal(t, inventorydomain.TypeRestock, tx.Type)
		assert.Equal(t, 0, tx.PreviousStock)
	}

	again, err := SeedCatalog(ctx, catalog, discardLogger())
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestEnsureAdmin_CreatesConfiguredAccount(t *testing.T) {
	ctx := context.Background()
	backend := storagememory.New(storagememory.Snapshot{})
	tokens, err := auth.NewJWTService("seed-test-secret", time.Hour)
	require.NoError(t, err)
	users := usersapp.NewService(backend.Users(), backend, usermemory.NewSessionStore(), auth.NewBcryptHasher(4), tokens)

	cfg := Config{Auth: AuthConfig{AdminEmail: "admin@natureparknursery.com", AdminPassword: "admin123"}}
	require.NoError(t, EnsureAdmin(ctx, cfg, users, discardLogger()))

	result, err := users.Login(ctx, "admin@natureparknursery.com", "admin123")
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)
}
