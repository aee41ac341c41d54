package state

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a Message.
type Role string

const (
	RoleUser   Role = "user"
	RoleGame   Role = "game"
	RoleSystem Role = "system"
)

// Message is an entry in the session transcript. Stores treat it as an opaque value.
type Message struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	CreatedAt time.Time
}

// NewMessage creates a message with a fresh ID stamped with the current time.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
