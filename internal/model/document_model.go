package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Document is the relational half of an uploaded file. The raw bytes live
// in object storage under StoragePath; Status=false is a logical delete.
type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NotebookId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	DocumentType string         `gorm:"type:varchar(50);not null"`
	DocumentName string         `gorm:"type:varchar(255);not null"`
	StoragePath  string         `gorm:"type:text;not null"`
	ByteSize     int64          `gorm:"not null"`
	ContentInfo  datatypes.JSON `gorm:"type:jsonb"`
	Status       bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
