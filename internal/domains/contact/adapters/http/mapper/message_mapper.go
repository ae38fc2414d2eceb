package mapper

import (
	"time"

	contactdomain "github.com/Apurer/plant-nursery-api/internal/domains/contact/domain"
	contactports "github.com/Apurer/plant-nursery-api/internal/domains/contact/ports"
)

// Submission is the contact form body.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Message is a stored contact message as shown to staff.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToSubmitInput(payload Submission) contactports.SubmitInput {
	return contactports.SubmitInput{Name: payload.Name, Email: payload.Email, Phone: payload.Phone, Message: payload.Message}
}

func FromDomainMessage(m *contactdomain.Message) Message {
	if m == nil {
		return Message{}
	}
	return Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Body,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func FromDomainMessages(messages []*contactdomain.Message) []Message {
	result := make([]Message, 0, len(messages))
	for _, m := range messages {
		result = append(result, FromDomainMessage(m))
	}
	return result
}
