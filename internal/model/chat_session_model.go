package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession rows are never hard-deleted; Active=false archives them.
// Several active rows may exist per (user, notebook) pair.
type ChatSession struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	NotebookId uuid.UUID `gorm:"type:uuid;not null;index"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
