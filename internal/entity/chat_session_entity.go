package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	NotebookId uuid.UUID
	Active     bool
	CreatedAt  time.Time
}
