package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

type recordingPersister struct {
	err   error
	calls [][]Collection
	last  Snapshot
}

func (p *recordingPersister) Persist(_ context.Context, snapshot Snapshot, dirty []Collection) error {
	p.calls = append(p.calls, dirty)
	p.last = snapshot
	return p.err
}

func seeded() Snapshot {
	return Snapshot{Products: []*catalogdomain.Product{{
		ID: 1, Name: "Money Plant", Category: "indoor", Price: decimal.NewFromInt(199),
		Stock: 5, Description: "Easy to grow", Image: "money.jpg",
	}}}
}

func TestExecute_CommitsAndPersistsDirtyCollections(t *testing.T) {
	ctx := context.Background()
	persister := &recordingPersister{}
	backend := New(seeded(), WithPersister(persister))

	err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		_, err := repos.Products().UpdateStock(ctx, 1, 2)
		return err
	})
	require.NoError(t, err)

	product, err := backend.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, product.Stock)
	require.Equal(t, [][]Collection{{CollectionProducts}}, persister.calls)
	require.Equal(t, 2, persister.last.Products[0].Stock)
}

func TestExecute_FailedWorkLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	persister := &recordingPersister{}
	backend := New(seeded(), WithPersister(persister))
	boom := errors.New("boom")

	err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if _, err := repos.Products().UpdateStock(ctx, 1, 0); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	product, err := backend.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, product.Stock)
	require.Empty(t, persister.calls)
}

func TestExecute_PersistFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	persister := &recordingPersister{err: errors.New("disk full")}
	backend := New(seeded(), WithPersister(persister))

	err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		_, err := repos.Products().UpdateStock(ctx, 1, 1)
		return err
	})
	require.ErrorIs(t, err, storage.ErrPersistence)

	product, err := backend.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 5, product.Stock)
}

func TestExecute_ReadOnlyWorkSkipsPersister(t *testing.T) {
	ctx := context.Background()
	persister := &recordingPersister{}
	backend := New(seeded(), WithPersister(persister))

	err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		_, err := repos.Products().GetForUpdate(ctx, 1)
		return err
	})
	require.NoError(t, err)
	require.Empty(t, persister.calls)
}

func TestView_NeverSeesHalfACommit(t *testing.T) {
	ctx := context.Background()
	backend := New(seeded())
	const sales = 5

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range sales {
			err := backend.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
				product, err := repos.Products().GetForUpdate(ctx, 1)
				if err != nil {
					return err
				}
				if _, err := repos.Products().UpdateStock(ctx, 1, product.Stock-1); err != nil {
					return err
				}
				_, err = repos.Ledger().Append(ctx, &inventorydomain.Transaction{
					ProductID: 1, Type: inventorydomain.TypeSale, Quantity: 1,
					PreviousStock: product.Stock, NewStock: product.Stock - 1,
				})
				return err
			})
			if err != nil {
				t.Error(err)
				return
			}
		}
	}()

	for range 200 {
		err := backend.View(ctx, func(ctx context.Context, repos storage.Repositories) error {
			product, err := repos.Products().GetByID(ctx, 1)
			if err != nil {
				return err
			}
			ledger, err := repos.Ledger().List(ctx)
			if err != nil {
				return err
			}
			require.Equal(t, 5, product.Stock+len(ledger))
			return nil
		})
		require.NoError(t, err)
	}
	wg.Wait()

	snapshot := backend.Snapshot()
	require.Equal(t, 5-sales, snapshot.Products[0].Stock)
	require.Len(t, snapshot.Ledger, sales)
}

func TestView_ReturnsWorkError(t *testing.T) {
	backend := New(seeded())
	boom := errors.New("boom")
	err := backend.View(context.Background(), func(context.Context, storage.Repositories) error { return boom })
	require.ErrorIs(t, err, boom)
}
