// Package memory provides the in-process storage backend. Writes are staged
// on copies of the live repositories and swapped in only after the unit of
// work, and any configured persister, succeed.
package memory

import (
	"context"
	"fmt"
	"sync"

	catalogmemory "github.com/Apurer/plant-nursery-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	contactmemory "github.com/Apurer/plant-nursery-api/internal/domains/contact/adapters/memory"
	contactdomain "github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
	inventorymemory "github.com/Apurer/plant-nursery-api/internal/domains/inventory/adapters/memory"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
	ordermemory "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/memory"
	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	usermemory "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// Collection names one persisted data set.
type Collection string

const (
	CollectionProducts  Collection = "products"
	CollectionInventory Collection = "inventory"
	CollectionOrders    Collection = "orders"
	CollectionUsers     Collection = "users"
	CollectionMessages  Collection = "messages"
)

// Snapshot is the full state of the backend.
type Snapshot struct {
	Products []*catalogdomain.Product
	Ledger   []*inventorydomain.Transaction
	Orders   []*orderdomain.Order
	Users    []*userdomain.User
	Messages []*contactdomain.Message
}

// Persister durably records the collections changed by a unit of work.
// It must either record all of them or leave the previous state in place.
type Persister interface {
	Persist(ctx context.Context, snapshot Snapshot, dirty []Collection) error
}

var _ storage.Backend = (*Backend)(nil)

// Backend is the in-memory storage backend.
type Backend struct {
	writeMu sync.Mutex
	// commitMu is held for writing while a commit swaps repository state
	// and for reading by View.
	commitMu  sync.RWMutex
	repos     *repositories
	persister Persister
}

type Option func(*Backend)

// WithPersister makes every committed unit of work durable before it becomes visible.
func WithPersister(p Persister) Option {
	return func(b *Backend) {
		b.persister = p
	}
}

// New builds a backend preloaded with the snapshot.
func New(initial Snapshot, opts ...Option) *Backend {
	b := &Backend{repos: &repositories{
		products: catalogmemory.NewRepository(initial.Products...),
		ledger:   inventorymemory.NewRepository(initial.Ledger...),
		orders:   ordermemory.NewRepository(initial.Orders...),
		users:    usermemory.NewRepository(initial.Users...),
		messages: contactmemory.NewRepository(initial.Messages...),
	}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Products() catalogports.Repository { return b.repos.products }
func (b *Backend) Ledger() inventoryports.Repository { return b.repos.ledger }
func (b *Backend) Orders() orderports.Repository { return b.repos.orders }
func (b *Backend) Users() userports.Repository { return b.repos.users }
func (b *Backend) Messages() contactports.Repository { return b.repos.messages }
func (b *Backend) Close() error { return nil }

// Execute runs fn against staged copies of every repository. Units of work
// are serialized; fn must not call Execute again.
func (b *Backend) Execute(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	staged := b.repos.clone()
	if err := fn(ctx, staged); err != nil {
		return err
	}
	dirty := b.repos.dirty(staged)
	if len(dirty) == 0 {
		return nil
	}
	if b.persister != nil {
		if err := b.persister.Persist(ctx, staged.snapshot(), dirty); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrPersistence, err)
		}
	}
	b.commitMu.Lock()
	b.repos.replace(staged)
	b.commitMu.Unlock()
	return nil
}

// View runs fn against the committed repositories while no commit can swap
// their state. fn must not call Execute.
func (b *Backend) View(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	b.commitMu.RLock()
	defer b.commitMu.RUnlock()
	return fn(ctx, b.repos)
}

// Snapshot returns the committed state.
func (b *Backend) Snapshot() Snapshot {
	b.commitMu.RLock()
	defer b.commitMu.RUnlock()
	return b.repos.snapshot()
}

type repositories struct {
	products *catalogmemory.Repository
	ledger   *inventorymemory.Repository
	orders   *ordermemory.Repository
	users    *usermemory.Repository
	messages *contactmemory.Repository
}

func (r *repositories) Products() catalogports.Repository { return r.products }
func (r *repositories) Ledger() inventoryports.Repository { return r.ledger }
func (r *repositories) Orders() orderports.Repository { return r.orders }
func (r *repositories) Users() userports.Repository { return r.users }
func (r *repositories) Messages() contactports.Repository { return r.messages }

func (r *repositories) clone() *repositories {
	return &repositories{
		products: r.products.Clone(),
		ledger:   r.ledger.Clone(),
		orders:   r.orders.Clone(),
		users:    r.users.Clone(),
		messages: r.messages.Clone(),
	}
}

func (r *repositories) dirty(staged *repositories) []Collection {
	var dirty []Collection
	if staged.products.Version() != r.products.Version() {
		dirty = append(dirty, CollectionProducts)
	}
	if staged.ledger.Version() != r.ledger.Version() {
		dirty = append(dirty, CollectionInventory)
	}
	if staged.orders.Version() != r.orders.Version() {
		dirty = append(dirty, CollectionOrders)
	}
	if staged.users.Version() != r.users.Version() {
		dirty = append(dirty, CollectionUsers)
	}
	if staged.messages.Version() != r.messages.Version() {
		dirty = append(dirty, CollectionMessages)
	}
	return dirty
}

func (r *repositories) replace(staged *repositories) {
	r.products.Replace(staged.products)
	r.ledger.Replace(staged.ledger)
	r.orders.Replace(staged.orders)
	r.users.Replace(staged.users)
	r.messages.Replace(staged.messages)
}

func (r *repositories) snapshot() Snapshot {
	ctx := context.Background()
	users, _ := r.users.List(ctx)
	messages, _ := r.messages.List(ctx)
	return Snapshot{
		Products: r.products.All(),
		Ledger:   r.ledger.All(),
		Orders:   r.orders.All(),
		Users:    users,
		Messages: messages,
	}
}
