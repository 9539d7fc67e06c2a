package contact

import (
	"time"

	contactDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/contact"
)

// Message is a note left through the public contact form.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDataModel(m *Message) *contactDatamodel.Message {
	return &contactDatamodel.Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func FromDataModel(m *contactDatamodel.Message) *Message {
	return &Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
