package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id          uuid.UUID
	Name        string
	Description string
	UserId      uuid.UUID
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
