package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRegistered  = "user.registered"
	EventTypeContactReceived = "contact.message.received"
)

type UserRegisteredEvent struct {
	BaseEvent
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func NewUserRegisteredEvent(userID int64, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
			},
		},
		UserID: userID,
		Email:  email,
	}
}

type ContactReceivedEvent struct {
	BaseEvent
	ContactID int64  `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

func NewContactReceivedEvent(contactID int64, name, email string) *ContactReceivedEvent {
	return &ContactReceivedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeContactReceived,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"contact_id": contactID,
				"name":       name,
				"email":      email,
			},
		},
		ContactID: contactID,
		Name:      name,
		Email:     email,
	}
}
