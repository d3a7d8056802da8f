package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DocumentKey builds the object key for a raw uploaded file:
// private/{notebookId}/{userId}/{documentType}/{filename}.
func DocumentKey(notebookId, userId uuid.UUID, documentType, filename string) string {
	return fmt.Sprintf("private/%s/%s/%s/%s", notebookId, userId, documentType, SafeFilename(filename))
}

// ReviewKey builds the object key for a review metadata blob:
// private/{notebookId}/{userId}/reviews/review_{documentId}.json.
func ReviewKey(notebookId, userId, documentId uuid.UUID) string {
	return fmt.Sprintf("private/%s/%s/reviews/review_%s.json", notebookId, userId, documentId)
}

// SafeFilename strips any path components from a client-supplied name.
func SafeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return "document"
	}
	return name
}
