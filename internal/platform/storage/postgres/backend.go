// Package postgres runs units of work inside GORM transactions.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	catalogpg "github.com/Apurer/plant-nursery-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	contactpg "github.com/Apurer/plant-nursery-api/internal/domains/contact/adapters/persistence/postgres"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	inventorypg "github.com/Apurer/plant-nursery-api/internal/domains/inventory/adapters/persistence/postgres"
	inventoryports "github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
	orderpg "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	userpg "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

var _ storage.Backend = (*Backend)(nil)

// Backend binds every repository to one *gorm.DB.
type Backend struct {
	db *gorm.DB
	repositories
	closeFn func() error
}

// New wraps db. closeFn, when set, runs on Close.
func New(db *gorm.DB, closeFn func() error) *Backend {
	return &Backend{db: db, repositories: bind(db), closeFn: closeFn}
}

// Execute runs fn in a database transaction; any error rolls it back.
func (b *Backend) Execute(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	if b == nil || b.db == nil {
		return errors.New("postgres storage not configured")
	}
	var workErr error
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		workErr = fn(ctx, bind(tx))
		return workErr
	})
	if err != nil && workErr == nil {
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}
	return err
}

// View runs fn in a read-only repeatable-read transaction.
func (b *Backend) View(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	if b == nil || b.db == nil {
		return errors.New("postgres storage not configured")
	}
	var workErr error
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		workErr = fn(ctx, bind(tx))
		return workErr
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil && workErr == nil {
		return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
	}
	return err
}

func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

type repositories struct {
	products *catalogpg.Repository
	ledger   *inventorypg.Repository
	orders   *orderpg.Repository
	users    *userpg.Repository
	messages *contactpg.Repository
}

func bind(db *gorm.DB) repositories {
	return repositories{
		products: catalogpg.NewRepository(db),
		ledger:   inventorypg.NewRepository(db),
		orders:   orderpg.NewRepository(db),
		users:    userpg.NewRepository(db),
		messages: contactpg.NewRepository(db),
	}
}

func (r repositories) Products() catalogports.Repository { return r.products }
func (r repositories) Ledger() inventoryports.Repository { return r.ledger }
func (r repositories) Orders() orderports.Repository     { return r.orders }
func (r repositories) Users() userports.Repository       { return r.users }
func (r repositories) Messages() contactports.Repository { return r.messages }
