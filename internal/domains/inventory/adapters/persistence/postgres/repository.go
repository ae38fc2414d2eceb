package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository stores the inventory ledger in PostgreSQL. Rows are only ever inserted.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type transactionRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ProductID     int64     `gorm:"column:product_id"`
	Type          string    `gorm:"column:type"`
	Quantity      int       `gorm:"column:quantity"`
	PreviousStock int       `gorm:"column:previous_stock"`
	NewStock      int       `gorm:"column:new_stock"`
	OrderID       string    `gorm:"column:order_id"`
	UserID        string    `gorm:"column:user_id"`
	Note          string    `gorm:"column:note"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (transactionRecord) TableName() string { return "inventory_transactions" }

func (r *Repository) Append(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.New("transaction is nil")
	}
	record := toRecord(tx)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Where("product_id = ?", productID))
}

func (r *Repository) List(ctx context.Context) ([]*domain.Transaction, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *Repository) find(query *gorm.DB) ([]*domain.Transaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []transactionRecord
	if err := query.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Transaction, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}

func toRecord(tx *domain.Transaction) transactionRecord {
	return transactionRecord{
		ID:            tx.ID,
		ProductID:     tx.ProductID,
		Type:          string(tx.Type),
		Quantity:      tx.Quantity,
		PreviousStock: tx.PreviousStock,
		NewStock:      tx.NewStock,
		OrderID:       tx.OrderID,
		UserID:        tx.UserID,
		Note:          tx.Note,
		CreatedAt:     tx.CreatedAt,
	}
}

func (r transactionRecord) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Type:          domain.Type(r.Type),
		Quantity:      r.Quantity,
		PreviousStock: r.PreviousStock,
		NewStock:      r.NewStock,
		OrderID:       r.OrderID,
		UserID:        r.UserID,
		Note:          r.Note,
		CreatedAt:     r.CreatedAt,
	}
}
