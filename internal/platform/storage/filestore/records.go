package filestore

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/plant-nursery-api/internal/domains/catalog/domain"
	contactdomain "github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	orderdomain "github.com/Apurer/plant-nursery-api/internal/domains/orders/domain"
	userdomain "github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
)

type productRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toProductRecord(p *catalogdomain.Product) productRecord {
	return productRecord{
		ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price, Stock: p.Stock,
		Featured: p.Featured, Description: p.Description, Image: p.Image,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (r productRecord) toDomain() *catalogdomain.Product {
	return &catalogdomain.Product{
		ID: r.ID, Name: r.Name, Category: r.Category, Price: r.Price, Stock: r.Stock,
		Featured: r.Featured, Description: r.Description, Image: r.Image,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type transactionRecord struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"productId"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	OrderID       string    `json:"orderId,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toTransactionRecord(tx *inventorydomain.Transaction) transactionRecord {
	return transactionRecord{
		ID: tx.ID, ProductID: tx.ProductID, Type: string(tx.Type), Quantity: tx.Quantity,
		PreviousStock: tx.PreviousStock, NewStock: tx.NewStock,
		OrderID: tx.OrderID, UserID: tx.UserID, Note: tx.Note, CreatedAt: tx.CreatedAt,
	}
}

func (r transactionRecord) toDomain() *inventorydomain.Transaction {
	return &inventorydomain.Transaction{
		ID: r.ID, ProductID: r.ProductID, Type: inventorydomain.Type(r.Type), Quantity: r.Quantity,
		PreviousStock: r.PreviousStock, NewStock: r.NewStock,
		OrderID: r.OrderID, UserID: r.UserID, Note: r.Note, CreatedAt: r.CreatedAt,
	}
}

type orderItemRecord struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type orderRecord struct {
	ID              string            `json:"id"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerAddress string            `json:"customerAddress"`
	CustomerPhone   string            `json:"customerPhone,omitempty"`
	Items           []orderItemRecord `json:"items"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	ShippingFee     decimal.Decimal   `json:"shippingFee"`
	Total           decimal.Decimal   `json:"total"`
	Status          string            `json:"status"`
	UserID          string            `json:"userId,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	DeliveredAt     *time.Time        `json:"deliveredAt,omitempty"`
}

func toOrderRecord(o *orderdomain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemRecord{
			ProductID: item.ProductID, Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice,
		})
	}
	return orderRecord{
		ID:              o.ID,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerAddress: o.Customer.Address,
		CustomerPhone:   o.Customer.Phone,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		Status:          string(o.Status),
		UserID:          o.UserID,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		DeliveredAt:     o.DeliveredAt,
	}
}

func (r orderRecord) toDomain() *orderdomain.Order {
	items := make([]orderdomain.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, orderdomain.Item{
			ProductID: item.ProductID, Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice,
		})
	}
	return &orderdomain.Order{
		ID: r.ID,
		Customer: orderdomain.Customer{
			Name: r.CustomerName, Email: r.CustomerEmail, Address: r.CustomerAddress, Phone: r.CustomerPhone,
		},
		Items:       items,
		Subtotal:    r.Subtotal,
		ShippingFee: r.ShippingFee,
		Total:       r.Total,
		Status:      orderdomain.Status(r.Status),
		UserID:      r.UserID,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeliveredAt: r.DeliveredAt,
	}
}

type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	IsAdmin      bool      `json:"isAdmin"`
	OrderIDs     []string  `json:"orderIds"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toUserRecord(u *userdomain.User) userRecord {
	return userRecord{
		ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		IsAdmin: u.IsAdmin, OrderIDs: append([]string{}, u.OrderIDs...), CreatedAt: u.CreatedAt,
	}
}

func (r userRecord) toDomain() *userdomain.User {
	return &userdomain.User{
		ID: r.ID, Name: r.Name, Email: r.Email, PasswordHash: r.PasswordHash,
		IsAdmin: r.IsAdmin, OrderIDs: append([]string{}, r.OrderIDs...), CreatedAt: r.CreatedAt,
	}
}

type messageRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageRecord(m *contactdomain.Message) messageRecord {
	return messageRecord{
		ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone,
		Message: m.Body, Status: string(m.Status), CreatedAt: m.CreatedAt,
	}
}

func (r messageRecord) toDomain() *contactdomain.Message {
	return &contactdomain.Message{
		ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone,
		Body: r.Message, Status: contactdomain.Status(r.Status), CreatedAt: r.CreatedAt,
	}
}
