package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once persisted. UserId is nil for assistant
// messages.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        *uuid.UUID
	Role          string
	Content       string
	CreatedAt     time.Time
}
