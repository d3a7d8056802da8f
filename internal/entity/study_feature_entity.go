package entity

import (
	"time"

	"github.com/google/uuid"
)

type StudyFeature struct {
	Id          uuid.UUID
	NotebookId  uuid.UUID
	FeatureType string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
