package specification

import (
	"gorm.io/gorm"
)

// ActiveDocuments excludes logically deleted documents (status=false).
type ActiveDocuments struct{}

func (s ActiveDocuments) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", true)
}

// ByDocumentName filters by exact file name.
type ByDocumentName struct {
	Name string
}

func (s ByDocumentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_name = ?", s.Name)
}

// ByByteSize filters by exact byte size. Combined with ByDocumentName
// and ByNotebookID this forms the dedup identity key.
type ByByteSize struct {
	Size int64
}

func (s ByByteSize) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("byte_size = ?", s.Size)
}

// ByDocumentType filters by document type.
type ByDocumentType struct {
	Type string
}

func (s ByDocumentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_type = ?", s.Type)
}
