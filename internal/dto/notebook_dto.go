package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type CreateNotebookResponse struct {
	Id uuid.UUID `json:"id"`
}

type NotebookResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type UpdateNotebookRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
}
