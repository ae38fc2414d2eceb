package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

func fern() *catalogdomain.Product {
	return &catalogdomain.Product{
		ID: 1, Name: "Boston Fern", Category: "indoor", Price: decimal.RequireFromString("349.50"),
		Stock: 4, Description: "Lush fronds", Image: "fern.jpg",
	}
}

func TestStore_LoadEmptyDirectory(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	snapshot, empty, err := store.Load()
	require.NoError(t, err)
	require.True(t, empty)
	require.Empty(t, snapshot.Products)
}

func TestStore_PersistsCommittedWorkAndReloads(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	backend := memory.New(memory.Snapshot{Products: []*catalogdomain.Product{fern()}}, memory.WithPersister(store))

	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	err = backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		product, err := repos.Products().UpdateStock(ctx, 1, 1)
		if err != nil {
			return err
		}
		_, err = repos.Ledger().Append(ctx, &inventorydomain.Transaction{
			ProductID: product.ID, Type: inventorydomain.TypeSale, Quantity: 3,
			PreviousStock: 4, NewStock: 1, OrderID: "o-1", CreatedAt: now,
		})
		if err != nil {
			return err
		}
		order, err := orderdomain.NewOrder("o-1",
			orderdomain.Customer{Name: "Ravi", Email: "ravi@example.com", Address: "4 Lake Rd"},
			[]orderdomain.Item{{ProductID: 1, Name: "Boston Fern", Quantity: 3, UnitPrice: product.Price}},
			"", now)
		if err != nil {
			return err
		}
		_, err = repos.Orders().Save(ctx, order)
		return err
	})
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(dir, "products.json"))
	require.FileExists(t, filepath.Join(dir, "inventory.json"))
	require.FileExists(t, filepath.Join(dir, "orders.json"))
	require.NoFileExists(t, filepath.Join(dir, "users.json"))

	snapshot, empty, err := store.Load()
	require.NoError(t, err)
	require.False(t, empty)
	require.Len(t, snapshot.Products, 1)
	require.Equal(t, 1, snapshot.Products[0].Stock)
	require.True(t, snapshot.Products[0].Price.Equal(decimal.RequireFromString("349.50")))
	require.Len(t, snapshot.Ledger, 1)
	require.Equal(t, "o-1", snapshot.Ledger[0].OrderID)
	require.Len(t, snapshot.Orders, 1)
	require.True(t, snapshot.Orders[0].Total.Equal(decimal.RequireFromString("1048.50")))
	require.Equal(t, orderdomain.StatusPending, snapshot.Orders[0].Status)
}

func TestStore_FailedWriteLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))
	store := &Store{Dir: blocker}
	backend := memory.New(memory.Snapshot{Products: []*catalogdomain.Product{fern()}}, memory.WithPersister(store))

	err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		_, err := repos.Products().UpdateStock(ctx, 1, 0)
		return err
	})
	require.ErrorIs(t, err, storage.ErrPersistence)

	product, err := backend.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 4, product.Stock)
}

func TestStore_FailedRenameRestoresReplacedDocuments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, store.Persist(ctx,
		memory.Snapshot{Products: []*catalogdomain.Product{fern()}},
		[]memory.Collection{memory.CollectionProducts}))

	rename = func(from, to string) error {
		if filepath.Base(to) == "orders.json" {
			return os.ErrPermission
		}
		return os.Rename(from, to)
	}
	t.Cleanup(func() { rename = os.Rename })

	sold := fern()
	sold.Stock = 1
	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	order, err := orderdomain.NewOrder("o-1",
		orderdomain.Customer{Name: "Ravi", Email: "ravi@example.com", Address: "4 Lake Rd"},
		[]orderdomain.Item{{ProductID: 1, Name: "Boston Fern", Quantity: 3, UnitPrice: sold.Price}},
		"", now)
	require.NoError(t, err)

	err = store.Persist(ctx,
		memory.Snapshot{Products: []*catalogdomain.Product{sold}, Orders: []*orderdomain.Order{order}},
		[]memory.Collection{memory.CollectionOrders, memory.CollectionProducts})
	require.ErrorIs(t, err, os.ErrPermission)

	snapshot, empty, err := store.Load()
	require.NoError(t, err)
	require.False(t, empty)
	require.Len(t, snapshot.Products, 1)
	require.Equal(t, 4, snapshot.Products[0].Stock)
	require.Empty(t, snapshot.Orders)
	require.NoFileExists(t, filepath.Join(dir, "orders.json"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staged and previous copies are removed")
}

func TestStore_FailedRenameRemovesNewDocuments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	rename = func(from, to string) error {
		if filepath.Base(to) == "inventory.json" {
			return os.ErrPermission
		}
		return os.Rename(from, to)
	}
	t.Cleanup(func() { rename = os.Rename })

	err = store.Persist(ctx,
		memory.Snapshot{Products: []*catalogdomain.Product{fern()}},
		[]memory.Collection{memory.CollectionInventory, memory.CollectionProducts})
	require.Error(t, err)

	_, empty, err := store.Load()
	require.NoError(t, err)
	require.True(t, empty)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_SuccessfulPersistLeavesOnlyDocuments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	for range 2 {
		require.NoError(t, store.Persist(ctx,
			memory.Snapshot{Products: []*catalogdomain.Product{fern()}},
			[]memory.Collection{memory.CollectionProducts, memory.CollectionUsers}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{"products.json", "users.json"}, names)
}

func TestCommitOrder(t *testing.T) {
	cases := []struct {
		name  string
		dirty []memory.Collection
		want  []memory.Collection
	}{
		{name: "empty", dirty: nil, want: []memory.Collection{}},
		{
			name:  "reordered",
			dirty: []memory.Collection{memory.CollectionMessages, memory.CollectionOrders, memory.CollectionProducts},
			want:  []memory.Collection{memory.CollectionProducts, memory.CollectionOrders, memory.CollectionMessages},
		},
		{
			name:  "duplicates collapse",
			dirty: []memory.Collection{memory.CollectionInventory, memory.CollectionProducts, memory.CollectionInventory},
			want:  []memory.Collection{memory.CollectionProducts, memory.CollectionInventory},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := commitOrder(tc.dirty)
			if len(tc.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tc.want, got)
		})
	}
}
