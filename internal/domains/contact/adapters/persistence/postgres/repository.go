package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type messageRecord struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Message   string    `gorm:"column:message"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (messageRecord) TableName() string { return "contact_messages" }

func (r *Repository) Save(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if message == nil || message.ID == "" {
		return nil, errors.New("message id is required")
	}
	record := messageRecord{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Message:   message.Body,
		Status:    string(message.Status),
		CreatedAt: message.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record messageRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns messages newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Message, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []messageRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Message, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres contact repository not configured")
	}
	return nil
}

func (r messageRecord) toDomain() *domain.Message {
	return &domain.Message{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Body:      r.Message,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
