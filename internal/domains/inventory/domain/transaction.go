package domain

import (
	"errors"
	"time"
)

// Type classifies a stock movement.
type Type string

const (
	TypeSale       Type = "sale"
	TypeRestock    Type = "restock"
	TypeAdjustment Type = "adjustment"
)

var (
	ErrInvalidType       = errors.New("transaction type must be one of sale, restock, adjustment")
	ErrInvalidQuantity   = errors.New("transaction quantity is invalid for its type")
	ErrInvalidProductID  = errors.New("product id must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ParseType validates a raw transaction type.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	switch t {
	case TypeSale, TypeRestock, TypeAdjustment:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// Movement is a requested stock change that has not been applied yet.
type Movement struct {
	ProductID int64
	Type      Type
	Quantity  int
	OrderID   string
	UserID    string
	Note      string
}

// Validate checks the movement shape. Sales and restocks move a positive
// quantity; adjustments may move stock either way but never by zero.
func (m Movement) Validate() error {
	if m.ProductID <= 0 {
		return ErrInvalidProductID
	}
	switch m.Type {
	case TypeSale, TypeRestock:
		if m.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	case TypeAdjustment:
		if m.Quantity == 0 {
			return ErrInvalidQuantity
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// Resulting computes the stock level after applying the movement.
func (m Movement) Resulting(previous int) (int, error) {
	next := previous + m.Quantity
	if m.Type == TypeSale {
		next = previous - m.Quantity
	}
	if next < 0 {
		return previous, ErrInsufficientStock
	}
	return next, nil
}

// Transaction is the immutable audit record of one applied movement.
type Transaction struct {
	ID            int64
	ProductID     int64
	Type          Type
	Quantity      int
	PreviousStock int
	NewStock      int
	OrderID       string
	UserID        string
	Note          string
	CreatedAt     time.Time
}

// Record builds the transaction for a movement applied against previous stock.
func Record(m Movement, previous int, now time.Time) (*Transaction, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	next, err := m.Resulting(previous)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: previous,
		NewStock:      next,
		OrderID:       m.OrderID,
		UserID:        m.UserID,
		Note:          m.Note,
		CreatedAt:     now,
	}, nil
}
