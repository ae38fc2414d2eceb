package mapper

import (
	"time"

	inventorydomain "github.com/Apurer/plant-nursery-api/internal/domains/inventory/domain"
)

// Movement is the admin request body for a manual stock change.
type Movement struct {
	Type     string `json:"type" binding:"required,oneof=restock adjustment"`
	Quantity int    `json:"quantity" binding:"required"`
	Note     string `json:"note"`
}

// Transaction is the transport shape of a ledger entry.
type Transaction struct {
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

// ToDomainMovement builds a movement for productID issued by actorUserID.
func ToDomainMovement(productID int64, payload Movement, actorUserID string) inventorydomain.Movement {
	return inventorydomain.Movement{
		ProductID: productID,
		Type:      inventorydomain.Type(payload.Type),
		Quantity:  payload.Quantity,
		UserID:    actorUserID,
		Note:      payload.Note,
	}
}

func FromDomainTransaction(tx *inventorydomain.Transaction) Transaction {
	if tx == nil {
		return Transaction{}
	}
	return Transaction{
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

func FromDomainTransactions(txs []*inventorydomain.Transaction) []Transaction {
	result := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		result = append(result, FromDomainTransaction(tx))
	}
	return result
}
