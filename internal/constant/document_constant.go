package constant

// Document types accepted by the upload pipeline.
const (
	DocumentTypeGeneralReview    = "general_review"
	DocumentTypeSyllabus         = "syllabus"
	DocumentTypeCourseFiles      = "course_files"
	DocumentTypePracticeExam     = "practice_exam"
	DocumentTypeHandwrittenNotes = "handwritten_notes"
)

// MaxUploadByteSize is the per-file upload ceiling (25 MB).
const MaxUploadByteSize = 25 * 1024 * 1024

// AllowedUploadExtensions maps the accepted file extensions (lowercase,
// without the dot) to their MIME types.
var AllowedUploadExtensions = map[string]string{
	"pdf":   "application/pdf",
	"doc":   "application/msword",
	"docx":  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"ppt":   "application/vnd.ms-powerpoint",
	"pptx":  "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":   "text/csv",
	"ipynb": "application/x-ipynb+json",
}

// IsDocumentTypeValid reports whether t is one of the known document types.
func IsDocumentTypeValid(t string) bool {
	switch t {
	case DocumentTypeGeneralReview, DocumentTypeSyllabus, DocumentTypeCourseFiles,
		DocumentTypePracticeExam, DocumentTypeHandwrittenNotes:
		return true
	}
	return false
}

// PlaceholderDocumentName anchors review metadata when a general_review
// submission carries no files.
const PlaceholderDocumentName = "Course Review"
