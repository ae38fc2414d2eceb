package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

func newBackend(stock ...int) *memory.Backend {
	var products []*catalogdomain.Product
	for i, s := range stock {
		products = append(products, &catalogdomain.Product{
			ID: int64(i + 1), Name: "Plant", Category: "outdoor", Price: decimal.NewFromInt(100),
			Stock: s, Description: "green", Image: "plant.jpg",
		})
	}
	return memory.New(memory.Snapshot{Products: products})
}

func newService(backend *memory.Backend) *Service {
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return NewService(backend.Products(), backend.Ledger(), backend).WithClock(func() time.Time { return fixed })
}

func TestApply_SellOutThenReject(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(5)
	svc := newService(backend)

	product, tx, err := svc.Apply(ctx, domain.Movement{ProductID: 1, Type: domain.TypeSale, Quantity: 5, OrderID: "o-1"})
	require.NoError(t, err)
	require.Equal(t, 0, product.Stock)
	require.Equal(t, 5, tx.PreviousStock)
	require.Equal(t, 0, tx.NewStock)

	_, _, err = svc.Apply(ctx, domain.Movement{ProductID: 1, Type: domain.TypeSale, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Contains(t, err.Error(), "Available: 0")

	current, err := backend.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 0, current.Stock)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestApply_RestockAndNegativeAdjustment(t *testing.T) {
	ctx := context.Background()
	svc := newService(newBackend(2))

	product, _, err := svc.Apply(ctx, domain.Movement{ProductID: 1, Type: domain.TypeRestock, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, 12, product.Stock)

	product, tx, err := svc.Apply(ctx, domain.Movement{ProductID: 1, Type: domain.TypeAdjustment, Quantity: -4, Note: "damaged"})
	require.NoError(t, err)
	require.Equal(t, 8, product.Stock)
	require.Equal(t, "damaged", tx.Note)

	_, _, err = svc.Apply(ctx, domain.Movement{ProductID: 1, Type: domain.TypeAdjustment, Quantity: -9})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := newService(newBackend(3))

	_, _, err := svc.Apply(ctx, domain.Movement{ProductID: 1, Type: domain.TypeRestock, Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, _, err = svc.Apply(ctx, domain.Movement{ProductID: 99, Type: domain.TypeSale, Quantity: 1})
	require.ErrorIs(t, err, catalogports.ErrNotFound)

	_, err = svc.History(ctx, 99)
	require.ErrorIs(t, err, catalogports.ErrNotFound)
}

func TestApplyBatch_ChecksEveryLineBeforeWriting(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(5, 1)
	now := time.Now().UTC()

	err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		_, _, err := ApplyBatch(ctx, repos, []domain.Movement{
			{ProductID: 1, Type: domain.TypeSale, Quantity: 3},
			{ProductID: 2, Type: domain.TypeSale, Quantity: 1},
			{ProductID: 1, Type: domain.TypeSale, Quantity: 3},
		}, now)
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	first, err := backend.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, first.Stock)
	ledger, err := backend.Ledger().List(ctx)
	require.NoError(t, err)
	require.Empty(t, ledger)

	var txs []*domain.Transaction
	err = backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		_, txs, err = ApplyBatch(ctx, repos, []domain.Movement{
			{ProductID: 1, Type: domain.TypeSale, Quantity: 3},
			{ProductID: 1, Type: domain.TypeSale, Quantity: 2},
		}, now)
		return err
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, 2, txs[1].PreviousStock)
	require.Equal(t, 0, txs[1].NewStock)
}
