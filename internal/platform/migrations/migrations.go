package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&inventoryTransactionRecord{},
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
		&contactMessageRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string          `gorm:"column:name;not null"`
	Category    string          `gorm:"column:category;type:varchar(64);index"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null;check:chk_products_stock,stock >= 0"`
	Featured    bool            `gorm:"column:featured;index"`
	Description string          `gorm:"column:description"`
	Image       string          `gorm:"column:image"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Inventory schema mirrors the inventory Postgres adapter.
type inventoryTransactionRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ProductID     int64     `gorm:"column:product_id;index:idx_inventory_product_created"`
	Type          string    `gorm:"column:type;type:varchar(16)"`
	Quantity      int       `gorm:"column:quantity"`
	PreviousStock int       `gorm:"column:previous_stock"`
	NewStock      int       `gorm:"column:new_stock"`
	OrderID       string    `gorm:"column:order_id;type:varchar(64);index"`
	UserID        string    `gorm:"column:user_id;type:varchar(64)"`
	Note          string    `gorm:"column:note"`
	CreatedAt     time.Time `gorm:"column:created_at;index:idx_inventory_product_created"`
}

func (inventoryTransactionRecord) TableName() string { return "inventory_transactions" }

type orderItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	CustomerName    string          `gorm:"column:customer_name"`
	CustomerEmail   string          `gorm:"column:customer_email"`
	CustomerAddress string          `gorm:"column:customer_address"`
	CustomerPhone   string          `gorm:"column:customer_phone"`
	Items           []orderItem     `gorm:"column:items;type:jsonb;serializer:json"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	ShippingFee     decimal.Decimal `gorm:"column:shipping_fee;type:numeric(12,2)"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Status          string          `gorm:"column:status;type:varchar(32);index"`
	UserID          string          `gorm:"column:user_id;type:varchar(64);index"`
	Notes           string          `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	DeliveredAt     *time.Time      `gorm:"column:delivered_at"`
}

func (orderRecord) TableName() string { return "orders" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name         string         `gorm:"column:name"`
	Email        string         `gorm:"column:email;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash"`
	IsAdmin      bool           `gorm:"column:is_admin"`
	OrderIDs     pq.StringArray `gorm:"column:order_ids;type:text[]"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Contact message schema mirrors the contact Postgres adapter.
type contactMessageRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Message   string    `gorm:"column:message"`
	Status    string    `gorm:"column:status;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (contactMessageRecord) TableName() string { return "contact_messages" }
