package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
)

// Plant is the transport shape of a catalog product.
type Plant struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	InStock     bool      `json:"inStock"`
	Featured    bool      `json:"featured"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatePlant is the admin request body for a new product.
type CreatePlant struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	Featured    bool            `json:"featured"`
	Description string          `json:"description" binding:"required"`
	Image       string          `json:"image" binding:"required"`
}

// ListQuery carries catalog query string parameters.
type ListQuery struct {
	Category string `form:"category"`
	Featured *bool  `form:"featured"`
	Search   string `form:"search"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	InStock  *bool  `form:"inStock"`
	Sort     string `form:"sort"`
	Page     int    `form:"page" binding:"min=0"`
	Limit    int    `form:"limit" binding:"min=0"`
}

// Pagination is the transport shape of a listing window.
type Pagination struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Category is a category name with its product count.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ToListInput parses query parameters into a catalog listing request.
func ToListInput(q ListQuery) (catalogports.ListInput, error) {
	sortOrder, err := catalogdomain.ParseSortOrder(q.Sort)
	if err != nil {
		return catalogports.ListInput{}, err
	}
	filter := catalogdomain.Filter{Featured: q.Featured, InStock: q.InStock, Sort: sortOrder}
	if v := strings.TrimSpace(q.Category); v != "" {
		filter.Category = &v
	}
	if v := strings.TrimSpace(q.Search); v != "" {
		filter.Search = &v
	}
	if filter.MinPrice, err = parsePrice("minPrice", q.MinPrice); err != nil {
		return catalogports.ListInput{}, err
	}
	if filter.MaxPrice, err = parsePrice("maxPrice", q.MaxPrice); err != nil {
		return catalogports.ListInput{}, err
	}
	input := catalogports.ListInput{Filter: filter}
	if q.Page > 0 || q.Limit > 0 {
		input.Page = &catalogdomain.Page{Number: q.Page, Limit: q.Limit}
	}
	return input, nil
}

func parsePrice(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &value, nil
}

// ToAddProductInput converts the admin request into the service input.
func ToAddProductInput(payload CreatePlant, actorUserID string) catalogports.AddProductInput {
	return catalogports.AddProductInput{
		Name:        payload.Name,
		Category:    payload.Category,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Featured:    payload.Featured,
		Description: payload.Description,
		Image:       payload.Image,
		ActorUserID: actorUserID,
	}
}

// FromDomainPlant converts a domain product to its transport representation.
func FromDomainPlant(p *catalogdomain.Product) Plant {
	if p == nil {
		return Plant{}
	}
	return Plant{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price.Round(2).InexactFloat64(),
		Stock:       p.Stock,
		InStock:     p.InStock(),
		Featured:    p.Featured,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDomainPlants(products []*catalogdomain.Product) []Plant {
	result := make([]Plant, 0, len(products))
	for _, p := range products {
		result = append(result, FromDomainPlant(p))
	}
	return result
}

// FromDomainPagination returns nil for unpaginated listings.
func FromDomainPagination(p *catalogdomain.Pagination) *Pagination {
	if p == nil {
		return nil
	}
	return &Pagination{
		Total:       p.Total,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}
}

func FromDomainCategories(counts []catalogdomain.CategoryCount) []Category {
	result := make([]Category, 0, len(counts))
	for _, c := range counts {
		result = append(result, Category{Name: c.Name, Count: c.Count})
	}
	return result
}
