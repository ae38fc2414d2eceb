package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	inventoryapp "github.com/Apurer/plant-nursery-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// Service runs checkout and order administration.
type Service struct {
	orders          ports.Repository
	tx              storage.TransactionManager
	policy          domain.TransitionPolicy
	restockOnCancel bool
	newID           func() string
	now             func() time.Time
}

type Option func(*Service)

// WithStrictTransitions makes delivered and cancelled terminal.
func WithStrictTransitions(strict bool) Option {
	return func(s *Service) {
		if strict {
			s.policy = domain.StrictPolicy{}
		}
	}
}

// WithRestockOnCancel returns sold stock when an order is first cancelled.
func WithRestockOnCancel(enabled bool) Option {
	return func(s *Service) {
		s.restockOnCancel = enabled
	}
}

func WithIDGenerator(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(orders ports.Repository, tx storage.TransactionManager, opts ...Option) *Service {
	s := &Service{
		orders: orders,
		tx:     tx,
		policy: domain.PermissivePolicy{},
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the request, then inside one unit of work resolves
// prices, checks stock for every line, records one sale per line, saves
// the order and links it to the buyer. A caller supplied OrderID that is
// already stored returns the stored order unchanged when buyer and lines
// match, and ErrOrderIDInUse otherwise.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	customer := input.Customer.Normalize()
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	lines, err := domain.MergeLines(input.Lines)
	if err != nil {
		return nil, mapError(err)
	}
	userID := strings.TrimSpace(input.UserID)

	var placed *domain.Order
	err = s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		now := s.now().UTC()
		items := make([]domain.Item, 0, len(lines))
		movements := make([]inventorydomain.Movement, 0, len(lines))
		orderID := strings.TrimSpace(input.OrderID)
		if orderID == "" {
			orderID = s.newID()
		} else if existing, err := repos.Orders().GetByID(ctx, orderID); err == nil {
			if !existing.SameCheckout(customer, userID, lines) {
				return ErrOrderIDInUse
			}
			placed = existing
			return nil
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		for _, line := range lines {
			product, err := repos.Products().GetForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, catalogports.ErrNotFound) {
					return fmt.Errorf("%w: plant with ID %d not found", catalogports.ErrNotFound, line.ProductID)
				}
				return err
			}
			if product.Stock < line.Quantity {
				return insufficient(product)
			}
			items = append(items, domain.Item{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
			movements = append(movements, inventorydomain.Movement{
				ProductID: product.ID,
				Type:      inventorydomain.TypeSale,
				Quantity:  line.Quantity,
				OrderID:   orderID,
				UserID:    userID,
			})
		}

		order, err := domain.NewOrder(orderID, customer, items, userID, now)
		if err != nil {
			return err
		}
		if err := order.CheckClientTotal(input.ClaimedTotal); err != nil {
			return fmt.Errorf("%w: expected %s", err, order.Total.StringFixed(2))
		}
		if _, _, err := inventoryapp.ApplyBatch(ctx, repos, movements, now); err != nil {
			return err
		}
		if placed, err = repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		return linkToUser(ctx, repos, userID, order.ID)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return placed, nil
}

func insufficient(product *catalogdomain.Product) error {
	return fmt.Errorf("%w for %s. Available: %d", inventorydomain.ErrInsufficientStock, product.Name, product.Stock)
}

func linkToUser(ctx context.Context, repos storage.Repositories, userID, orderID string) error {
	if userID == "" {
		return nil
	}
	user, err := repos.Users().GetByID(ctx, userID)
	if errors.Is(err, userports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	user.AddOrder(orderID)
	_, err = repos.Users().Save(ctx, user)
	return err
}

// UpdateStatus moves an order to a new status. Unknown statuses are
// rejected before anything is read or written.
func (s *Service) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Order, error) {
	next, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	var updated *domain.Order
	err = s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		order, err := repos.Orders().GetByID(ctx, strings.TrimSpace(input.OrderID))
		if err != nil {
			return err
		}
		previous := order.Status
		now := s.now().UTC()
		if err := order.UpdateStatus(next, s.policy, input.Notes, now); err != nil {
			return err
		}
		if s.restockOnCancel && next == domain.StatusCancelled && previous != domain.StatusCancelled {
			if err := s.restock(ctx, repos, order, input.ActorUserID, now); err != nil {
				return err
			}
		}
		updated, err = repos.Orders().Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// restock returns the sold quantities once per order.
func (s *Service) restock(ctx context.Context, repos storage.Repositories, order *domain.Order, actor string, now time.Time) error {
	ledger, err := repos.Ledger().List(ctx)
	if err != nil {
		return err
	}
	for _, tx := range ledger {
		if tx.OrderID == order.ID && tx.Type == inventorydomain.TypeRestock {
			return nil
		}
	}
	movements := make([]inventorydomain.Movement, 0, len(order.Items))
	for _, item := range order.Items {
		movements = append(movements, inventorydomain.Movement{
			ProductID: item.ProductID,
			Type:      inventorydomain.TypeRestock,
			Quantity:  item.Quantity,
			OrderID:   order.ID,
			UserID:    actor,
			Note:      "order cancelled",
		})
	}
	_, _, err = inventoryapp.ApplyBatch(ctx, repos, movements, now)
	return err
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, strings.TrimSpace(userID))
}

var _ ports.Service = (*Service)(nil)
