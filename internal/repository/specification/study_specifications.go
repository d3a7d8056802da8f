package specification

import (
	"gorm.io/gorm"
)

// ByFeatureType filters study features by type.
type ByFeatureType struct {
	Type string
}

func (s ByFeatureType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_type = ?", s.Type)
}

// NotArchived excludes archived notebooks.
type NotArchived struct{}

func (s NotArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("archived = ?", false)
}
