package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/plant-nursery-api/internal/domains/orders/ports"
)

// Checkout is the request body of POST /api/orders.
type Checkout struct {
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerAddress string           `json:"customerAddress"`
	CustomerPhone   string           `json:"customerPhone"`
	Items           []CheckoutLine   `json:"items"`
	Total           *decimal.Decimal `json:"total"`
}

// CheckoutLine accepts productId, or the plantId and id keys sent by
// cart-style clients.
type CheckoutLine struct {
	ProductID int64 `json:"productId"`
	PlantID   int64 `json:"plantId"`
	ID        int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

func (l CheckoutLine) productID() int64 {
	switch {
	case l.ProductID != 0:
		return l.ProductID
	case l.PlantID != 0:
		return l.PlantID
	}
	return l.ID
}

// StatusUpdate is the request body of the admin status route.
type StatusUpdate struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Order is the transport shape of an order.
type Order struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	CustomerAddress string     `json:"customerAddress"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	Items           []Item     `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	ShippingFee     float64    `json:"shippingFee"`
	Total           float64    `json:"total"`
	Status          string     `json:"status"`
	UserID          string     `json:"userId,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeliveredAt     *time.Time `json:"deliveredAt,omitempty"`
}

// Item is an order line as sent to clients.
type Item struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ToPlaceOrderInput converts a checkout body into the service input.
func ToPlaceOrderInput(payload Checkout, userID string) orderports.PlaceOrderInput {
	lines := make([]orderdomain.LineRequest, 0, len(payload.Items))
	for _, line := range payload.Items {
		lines = append(lines, orderdomain.LineRequest{ProductID: line.productID(), Quantity: line.Quantity})
	}
	return orderports.PlaceOrderInput{
		Customer: orderdomain.Customer{
			Name:    payload.CustomerName,
			Email:   payload.CustomerEmail,
			Address: payload.CustomerAddress,
			Phone:   payload.CustomerPhone,
		},
		Lines:        lines,
		ClaimedTotal: payload.Total,
		UserID:       userID,
	}
}

func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
		})
	}
	return Order{
		ID:              order.ID,
		CustomerName:    order.Customer.Name,
		CustomerEmail:   order.Customer.Email,
		CustomerAddress: order.Customer.Address,
		CustomerPhone:   order.Customer.Phone,
		Items:           items,
		Subtotal:        money(order.Subtotal),
		ShippingFee:     money(order.ShippingFee),
		Total:           money(order.Total),
		Status:          string(order.Status),
		UserID:          order.UserID,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		DeliveredAt:     order.DeliveredAt,
	}
}

func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
