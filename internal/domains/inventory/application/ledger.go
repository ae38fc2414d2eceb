package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// ApplyWithin applies one movement using repositories bound to an open unit
// of work. On error nothing has been written.
func ApplyWithin(ctx context.Context, repos storage.Repositories, movement domain.Movement, now time.Time) (*catalogdomain.Product, *domain.Transaction, error) {
	if err := movement.Validate(); err != nil {
		return nil, nil, mapError(err)
	}
	product, err := lockProduct(ctx, repos, movement.ProductID)
	if err != nil {
		return nil, nil, err
	}
	tx, err := domain.Record(movement, product.Stock, now)
	if err != nil {
		return nil, nil, describeShortfall(mapError(err), product)
	}
	return commit(ctx, repos, tx)
}

// ApplyBatch checks every movement against current stock before applying
// any of them, so a batch either succeeds entirely or writes nothing.
// Movements on the same product are checked cumulatively.
func ApplyBatch(ctx context.Context, repos storage.Repositories, movements []domain.Movement, now time.Time) ([]*catalogdomain.Product, []*domain.Transaction, error) {
	for _, m := range movements {
		if err := m.Validate(); err != nil {
			return nil, nil, mapError(err)
		}
	}
	locked := make(map[int64]*catalogdomain.Product, len(movements))
	projected := make(map[int64]int, len(movements))
	for _, m := range movements {
		product, ok := locked[m.ProductID]
		if !ok {
			var err error
			if product, err = lockProduct(ctx, repos, m.ProductID); err != nil {
				return nil, nil, err
			}
			locked[m.ProductID] = product
			projected[m.ProductID] = product.Stock
		}
		next, err := m.Resulting(projected[m.ProductID])
		if err != nil {
			return nil, nil, describeShortfall(err, product)
		}
		projected[m.ProductID] = next
	}

	products := make([]*catalogdomain.Product, 0, len(movements))
	txs := make([]*domain.Transaction, 0, len(movements))
	current := make(map[int64]int, len(locked))
	for id, p := range locked {
		current[id] = p.Stock
	}
	for _, m := range movements {
		tx, err := domain.Record(m, current[m.ProductID], now)
		if err != nil {
			return nil, nil, describeShortfall(mapError(err), locked[m.ProductID])
		}
		product, saved, err := commit(ctx, repos, tx)
		if err != nil {
			return nil, nil, err
		}
		current[m.ProductID] = product.Stock
		products = append(products, product)
		txs = append(txs, saved)
	}
	return products, txs, nil
}

func lockProduct(ctx context.Context, repos storage.Repositories, id int64) (*catalogdomain.Product, error) {
	product, err := repos.Products().GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, fmt.Errorf("%w: plant with ID %d not found", catalogports.ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func commit(ctx context.Context, repos storage.Repositories, tx *domain.Transaction) (*catalogdomain.Product, *domain.Transaction, error) {
	product, err := repos.Products().UpdateStock(ctx, tx.ProductID, tx.NewStock)
	if err != nil {
		return nil, nil, err
	}
	saved, err := repos.Ledger().Append(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	return product, saved, nil
}

func describeShortfall(err error, product *catalogdomain.Product) error {
	if errors.Is(err, domain.ErrInsufficientStock) && product != nil {
		return fmt.Errorf("%w for %s. Available: %d", domain.ErrInsufficientStock, product.Name, product.Stock)
	}
	return err
}
