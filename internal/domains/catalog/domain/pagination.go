package domain

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page selects a window of a listing. Zero values select the first page
// with the default limit.
type Page struct {
	Number int
	Limit  int
}

// Normalize clamps the page into the supported range.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Pagination describes the window returned for a listing.
type Pagination struct {
	Total       int
	Page        int
	Limit       int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// Paginate slices products to the requested window.
func Paginate(products []*Product, page Page) ([]*Product, Pagination) {
	page = page.Normalize()
	total := len(products)
	totalPages := (total + page.Limit - 1) / page.Limit
	// Pages past the end yield an empty window; the multiplication only runs
	// for pages that exist so huge page numbers cannot overflow.
	start, end := total, total
	if page.Number <= totalPages {
		start = (page.Number - 1) * page.Limit
		end = min(start+page.Limit, total)
	}
	return products[start:end], Pagination{
		Total:       total,
		Page:        page.Number,
		Limit:       page.Limit,
		TotalPages:  totalPages,
		HasNextPage: page.Number < totalPages,
		HasPrevPage: page.Number > 1,
	}
}
