package memory

import (
	"fmt"
	"time"

	"cramwell-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StudyFeatureCache is a read-through cache over generated study
// features. Generation invalidates the entry so stale content is never
// served after an overwrite.
type StudyFeatureCache struct {
	cache *cache.Cache
}

func NewStudyFeatureCache() *StudyFeatureCache {
	c := cache.New(15*time.Minute, 30*time.Minute)
	return &StudyFeatureCache{
		cache: c,
	}
}

func featureKey(notebookId uuid.UUID, featureType string) string {
	return fmt.Sprintf("%s:%s", notebookId, featureType)
}

func (r *StudyFeatureCache) Set(feature *entity.StudyFeature) {
	r.cache.Set(featureKey(feature.NotebookId, feature.FeatureType), feature, cache.DefaultExpiration)
}

func (r *StudyFeatureCache) Get(notebookId uuid.UUID, featureType string) (*entity.StudyFeature, bool) {
	if x, found := r.cache.Get(featureKey(notebookId, featureType)); found {
		return x.(*entity.StudyFeature), true
	}
	return nil, false
}

func (r *StudyFeatureCache) Invalidate(notebookId uuid.UUID, featureType string) {
	r.cache.Delete(featureKey(notebookId, featureType))
}
