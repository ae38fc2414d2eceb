package domain

import (
	"sort"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
)

// RecentOrderLimit caps the recent orders shown on the dashboard.
const RecentOrderLimit = 10

// Dashboard is the admin overview computed from current state.
type Dashboard struct {
	TotalOrders      int
	TotalUsers       int
	TotalPlants      int
	OrdersByStatus   map[orderdomain.Status]int
	TotalRevenue     decimal.Decimal
	RecentOrders     []*orderdomain.Order
	PlantsByCategory map[string]int
}

// Compute derives the dashboard. Revenue excludes cancelled orders and every
// status appears in OrdersByStatus, zero when unused.
func Compute(orders []*orderdomain.Order, totalUsers int, products []*catalogdomain.Product) Dashboard {
	d := Dashboard{
		TotalOrders:    len(orders),
		TotalUsers:     totalUsers,
		TotalPlants:    len(products),
		OrdersByStatus: make(map[orderdomain.Status]int, len(orderdomain.Statuses)),
		TotalRevenue:   decimal.Zero,
	}
	for _, s := range orderdomain.Statuses {
		d.OrdersByStatus[s] = 0
	}
	for _, o := range orders {
		d.OrdersByStatus[o.Status]++
		if o.Status != orderdomain.StatusCancelled {
			d.TotalRevenue = d.TotalRevenue.Add(o.Total)
		}
	}

	recent := append([]*orderdomain.Order(nil), orders...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > RecentOrderLimit {
		recent = recent[:RecentOrderLimit]
	}
	d.RecentOrders = recent

	d.PlantsByCategory = make(map[string]int)
	for _, p := range products {
		d.PlantsByCategory[p.Category]++
	}
	return d
}
