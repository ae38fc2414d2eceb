package domain

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortOrder names a supported catalog ordering.
type SortOrder string

const (
	SortNameAsc   SortOrder = "name_asc"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortStockDesc SortOrder = "stock_desc"
)

var ErrInvalidSort = errors.New("sort must be one of name_asc, price_asc, price_desc, stock_desc")

// ParseSortOrder maps query values onto a SortOrder. Empty selects name_asc.
// The legacy values "name" and "stock" are accepted as aliases.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "name", string(SortNameAsc):
		return SortNameAsc, nil
	case string(SortPriceAsc):
		return SortPriceAsc, nil
	case string(SortPriceDesc):
		return SortPriceDesc, nil
	case "stock", string(SortStockDesc):
		return SortStockDesc, nil
	default:
		return "", ErrInvalidSort
	}
}

// Filter restricts catalog listings. Nil fields impose no constraint.
type Filter struct {
	Category *string
	Featured *bool
	Search   *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
	Sort     SortOrder
}

// Matches reports whether the product satisfies every configured option.
func (f Filter) Matches(p *Product) bool {
	if p == nil {
		return false
	}
	if f.Category != nil && !strings.EqualFold(strings.TrimSpace(*f.Category), p.Category) {
		return false
	}
	if f.Featured != nil && *f.Featured != p.Featured {
		return false
	}
	if f.Search != nil {
		needle := strings.ToLower(strings.TrimSpace(*f.Search))
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock != nil && *f.InStock != p.InStock() {
		return false
	}
	return true
}

// Apply filters and sorts products without mutating the input slice.
func (f Filter) Apply(products []*Product) []*Product {
	result := make([]*Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			result = append(result, p)
		}
	}
	SortProducts(result, f.Sort)
	return result
}

// SortProducts orders products in place. Ties fall back to name, then id.
func SortProducts(products []*Product, order SortOrder) {
	byName := func(a, b *Product) bool {
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.ID < b.ID
	}
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch order {
		case SortPriceAsc:
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
		case SortPriceDesc:
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
		case SortStockDesc:
			if a.Stock != b.Stock {
				return a.Stock > b.Stock
			}
		}
		return byName(a, b)
	})
}
