// Package storage defines the unit of work shared by every persistence backend.
package storage

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	inventoryports "github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
)

// ErrPersistence marks a failure to durably record a unit of work.
var ErrPersistence = errors.New("persistence failure")

// Repositories bundles the repositories bound to one unit of work.
type Repositories interface {
	Products() catalogports.Repository
	Ledger() inventoryports.Repository
	Orders() orderports.Repository
	Users() userports.Repository
	Messages() contactports.Repository
}

// TransactionManager runs work atomically. Either every write made through
// the supplied repositories becomes visible, or none does.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Viewer runs read-only work against one committed state. Reads made
// through the supplied repositories never straddle a commit.
type Viewer interface {
	View(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Backend is a complete storage backend: committed repositories for reads
// plus the transaction manager for writes.
type Backend interface {
	Repositories
	TransactionManager
	Viewer
	Close() error
}
