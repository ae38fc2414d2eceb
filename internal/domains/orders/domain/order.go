package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/plant-nursery-api/internal/shared/validation"
)

var (
	ErrMissingCustomer  = errors.New("customer name, email and address are required")
	ErrInvalidEmail     = errors.New("customer email is invalid")
	ErrInvalidPhone     = errors.New("customer phone is invalid")
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidProductID = errors.New("item product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("item quantity must be greater than zero")
	ErrTotalMismatch    = errors.New("order total does not match the computed total")
)

var (
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(500)
	// StandardShippingFee applies below the free shipping threshold.
	StandardShippingFee = decimal.NewFromInt(50)
)

// ShippingFee returns the fee owed for a subtotal.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return StandardShippingFee
}

// Customer holds the contact and delivery details captured at checkout.
type Customer struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// Normalize trims whitespace from every field.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
	}
}

// Validate requires name, email and address; phone is optional.
func (c Customer) Validate() error {
	c = c.Normalize()
	if c.Name == "" || c.Email == "" || c.Address == "" {
		return ErrMissingCustomer
	}
	if !validation.IsEmail(c.Email) {
		return ErrInvalidEmail
	}
	if c.Phone != "" && !validation.IsPhone(c.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// LineRequest is a requested product quantity before prices are resolved.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// MergeLines validates requested lines and folds duplicates of the same
// product together, preserving first-seen order.
func MergeLines(lines []LineRequest) ([]LineRequest, error) {
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	index := make(map[int64]int, len(lines))
	merged := make([]LineRequest, 0, len(lines))
	for _, line := range lines {
		if line.ProductID <= 0 {
			return nil, ErrInvalidProductID
		}
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

// Item is an order line with the price captured at checkout.
type Item struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the checkout aggregate.
type Order struct {
	ID          string
	Customer    Customer
	Items       []Item
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
	Status      Status
	UserID      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time
}

// NewOrder builds a pending order and computes its totals.
func NewOrder(id string, customer Customer, items []Item, userID string, now time.Time) (*Order, error) {
	customer = customer.Normalize()
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, ErrInvalidProductID
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	order := &Order{
		ID:        id,
		Customer:  customer,
		Items:     append([]Item(nil), items...),
		Status:    StatusPending,
		UserID:    strings.TrimSpace(userID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.computeTotals()
	return order, nil
}

// SameCheckout reports whether a request for customer, userID and the
// merged lines would have produced this order.
func (o *Order) SameCheckout(customer Customer, userID string, lines []LineRequest) bool {
	if o.UserID != strings.TrimSpace(userID) {
		return false
	}
	if !strings.EqualFold(o.Customer.Email, strings.TrimSpace(customer.Email)) {
		return false
	}
	if len(o.Items) != len(lines) {
		return false
	}
	wanted := make(map[int64]int, len(lines))
	for _, line := range lines {
		wanted[line.ProductID] = line.Quantity
	}
	for _, item := range o.Items {
		if qty, ok := wanted[item.ProductID]; !ok || qty != item.Quantity {
			return false
		}
	}
	return true
}

func (o *Order) computeTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.Subtotal = subtotal
	o.ShippingFee = ShippingFee(subtotal)
	o.Total = subtotal.Add(o.ShippingFee)
}

// CheckClientTotal compares a client supplied total with the computed one.
func (o *Order) CheckClientTotal(claimed *decimal.Decimal) error {
	if claimed == nil {
		return nil
	}
	if !claimed.Round(2).Equal(o.Total.Round(2)) {
		return ErrTotalMismatch
	}
	return nil
}

// UpdateStatus moves the order to a new status under the given policy.
// Delivered orders get their delivery time stamped.
func (o *Order) UpdateStatus(next Status, policy TransitionPolicy, notes string, now time.Time) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if policy == nil {
		policy = PermissivePolicy{}
	}
	if err := policy.Allow(o.Status, next); err != nil {
		return err
	}
	o.Status = next
	if notes = strings.TrimSpace(notes); notes != "" {
		o.Notes = notes
	}
	if next == StatusDelivered {
		delivered := now
		o.DeliveredAt = &delivered
	}
	o.UpdatedAt = now
	return nil
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]Item(nil), o.Items...)
	if o.DeliveredAt != nil {
		delivered := *o.DeliveredAt
		clone.DeliveredAt = &delivered
	}
	return &clone
}
