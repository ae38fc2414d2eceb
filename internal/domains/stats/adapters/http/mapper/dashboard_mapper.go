package mapper

import (
	"maps"

	ordermapper "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/http/mapper"
	statsdomain "github.com/Apurer/plant-nursery-api/internal/domains/stats/domain"
)

// Dashboard is the transport shape of the admin overview.
type Dashboard struct {
	TotalOrders    int            `json:"totalOrders"`
	TotalUsers     int            `json:"totalUsers"`
	TotalPlants    int            `json:"totalPlants"`
	TotalRevenue   float64        `json:"totalRevenue"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
	// PlantsByCategory maps category name to product count.
	PlantsByCategory map[string]int      `json:"plantsByCategory"`
	RecentOrders     []ordermapper.Order `json:"recentOrders"`
}

func FromDomainDashboard(d *statsdomain.Dashboard) Dashboard {
	if d == nil {
		return Dashboard{}
	}
	byStatus := make(map[string]int, len(d.OrdersByStatus))
	for status, n := range d.OrdersByStatus {
		byStatus[string(status)] = n
	}
	return Dashboard{
		TotalOrders:      d.TotalOrders,
		TotalUsers:       d.TotalUsers,
		TotalPlants:      d.TotalPlants,
		TotalRevenue:     d.TotalRevenue.Round(2).InexactFloat64(),
		OrdersByStatus:   byStatus,
		PlantsByCategory: maps.Clone(d.PlantsByCategory),
		RecentOrders:     ordermapper.FromDomainOrders(d.RecentOrders),
	}
}
