package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContentInfo describes the stored payload of a document. Placeholder
// documents (review anchors without files) carry a fixed payload with
// Placeholder=true and an empty MimeType.
type ContentInfo struct {
	MimeType    string `json:"mime_type"`
	Extension   string `json:"extension"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type Document struct {
	Id           uuid.UUID
	NotebookId   uuid.UUID
	UserId       uuid.UUID
	DocumentType string
	DocumentName string
	StoragePath  string
	ByteSize     int64
	ContentInfo  ContentInfo
	Status       bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
