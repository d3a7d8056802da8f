package constant

// Study feature types cached per notebook.
const (
	StudyFeatureSummary    = "summary"
	StudyFeatureExam       = "exam"
	StudyFeatureFlashcards = "flashcards"
)

// IsStudyFeatureValid reports whether t is a known study feature type.
func IsStudyFeatureValid(t string) bool {
	switch t {
	case StudyFeatureSummary, StudyFeatureExam, StudyFeatureFlashcards:
		return true
	}
	return false
}
