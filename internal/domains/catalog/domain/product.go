package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrEmptyCategory    = errors.New("product category is required")
	ErrEmptyDescription = errors.New("product description is required")
	ErrEmptyImage       = errors.New("product image is required")
	ErrInvalidPrice     = errors.New("product price must be greater than zero")
	ErrNegativeStock    = errors.New("product stock cannot be negative")
)

// Product is a sellable plant in the nursery catalog.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Featured    bool
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and constructs a product with the given initial stock.
func NewProduct(name, category string, price decimal.Decimal, stock int, featured bool, description, image string) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(name),
		Category:    strings.ToLower(strings.TrimSpace(category)),
		Price:       price,
		Stock:       stock,
		Featured:    featured,
		Description: strings.TrimSpace(description),
		Image:       strings.TrimSpace(image),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces catalog invariants.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return ErrEmptyName
	case strings.TrimSpace(p.Category) == "":
		return ErrEmptyCategory
	case strings.TrimSpace(p.Description) == "":
		return ErrEmptyDescription
	case strings.TrimSpace(p.Image) == "":
		return ErrEmptyImage
	case !p.Price.IsPositive():
		return ErrInvalidPrice
	case p.Stock < 0:
		return ErrNegativeStock
	}
	return nil
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Clone returns a detached copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// CategoryCount is the number of products filed under a category.
type CategoryCount struct {
	Name  string
	Count int
}
