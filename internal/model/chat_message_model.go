package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are immutable once created. UserId is nil for
// assistant messages.
type ChatMessage struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId        *uuid.UUID `gorm:"type:uuid"`
	Role          string     `gorm:"type:varchar(50);not null"`
	Content       string     `gorm:"type:text;not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
