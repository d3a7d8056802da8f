package model

import (
	"time"

	"github.com/google/uuid"
)

// StudyFeature caches one generated artifact per (notebook, feature type).
// Regeneration upserts on the composite unique index.
type StudyFeature struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NotebookId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notebook_feature"`
	FeatureType string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_notebook_feature"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (StudyFeature) TableName() string {
	return "study_features"
}
