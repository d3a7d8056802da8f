package service

import (
	"context"
	"fmt"
	"time"

	"cramwell-be/internal/constant"
	"cramwell-be/internal/dto"
	"cramwell-be/internal/entity"
	"cramwell-be/internal/pkg/logger"
	"cramwell-be/internal/repository/memory"
	"cramwell-be/internal/repository/specification"
	"cramwell-be/internal/repository/unitofwork"
	pkgEvents "cramwell-be/pkg/events"
	pkgNats "cramwell-be/pkg/nats"
	"cramwell-be/pkg/ragapi"
	"cramwell-be/pkg/studymd"

	"github.com/google/uuid"
)

type IStudyService interface {
	Generate(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID, featureType string) (*dto.StudyFeatureResponse, error)
	Get(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID, featureType string) (*dto.StudyFeatureResponse, error)
	GetFlashcards(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.FlashcardsResponse, error)
	GetExamQuestions(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.ExamResponse, error)
}

type studyService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  ragapi.Generator
	cache      *memory.StudyFeatureCache
	eventBus   pkgNats.Bus
	logger     logger.ILogger
}

func NewStudyService(
	uowFactory unitofwork.RepositoryFactory,
	generator ragapi.Generator,
	cache *memory.StudyFeatureCache,
	eventBus pkgNats.Bus,
	sysLogger logger.ILogger,
) IStudyService {
	return &studyService{
		uowFactory: uowFactory,
		generator:  generator,
		cache:      cache,
		eventBus:   eventBus,
		logger:     sysLogger,
	}
}

func toStudyFeatureResponse(feature *entity.StudyFeature) *dto.StudyFeatureResponse {
	return &dto.StudyFeatureResponse{
		Id:          feature.Id,
		NotebookId:  feature.NotebookId,
		FeatureType: feature.FeatureType,
		Content:     feature.Content,
		CreatedAt:   feature.CreatedAt,
		UpdatedAt:   feature.UpdatedAt,
	}
}

// Generate calls the generation service and overwrites the single
// (notebook, feature) row. Requesting the same feature twice updates
// that row in place.
func (s *studyService) Generate(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID, featureType string) (*dto.StudyFeatureResponse, error) {
	if !constant.IsStudyFeatureValid(featureType) {
		return nil, fmt.Errorf("unknown study feature type %q", featureType)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Generation over an empty notebook is meaningless.
	documentCount, err := uow.DocumentRepository().Count(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveDocuments{},
	)
	if err != nil {
		return nil, err
	}
	if documentCount == 0 {
		return nil, &dto.NoDocumentsError{NotebookId: notebookId}
	}

	content, err := s.generator.Generate(ctx, notebookId, featureType)
	if err != nil {
		s.logger.Error("STUDY_FEATURE", "Generation call failed", map[string]interface{}{
			"notebook_id": notebookId, "feature_type": featureType, "error": err.Error(),
		})
		return nil, err
	}

	now := time.Now()
	feature := entity.StudyFeature{
		Id:          uuid.New(),
		NotebookId:  notebookId,
		FeatureType: featureType,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}
	if err := uow.StudyFeatureRepository().Upsert(ctx, &feature); err != nil {
		return nil, err
	}

	// Re-read: on conflict the row keeps its original id and created_at.
	stored, err := uow.StudyFeatureRepository().FindOne(ctx, notebookId, featureType)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		feature = *stored
	}

	s.cache.Invalidate(notebookId, featureType)

	if s.eventBus != nil {
		evt := pkgEvents.NewStudyFeatureGenerated(notebookId, featureType)
		if err := s.eventBus.Publish(ctx, evt); err != nil {
			s.logger.Warn("STUDY_FEATURE", "Failed to publish generation event", map[string]interface{}{
				"notebook_id": notebookId, "error": err.Error(),
			})
		}
	}

	return toStudyFeatureResponse(&feature), nil
}

// Get serves from the in-memory cache when possible and falls back to
// the repository, populating the cache on the way out.
func (s *studyService) Get(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID, featureType string) (*dto.StudyFeatureResponse, error) {
	if cached, found := s.cache.Get(notebookId, featureType); found {
		return toStudyFeatureResponse(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	feature, err := uow.StudyFeatureRepository().FindOne(ctx, notebookId, featureType)
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, nil
	}

	s.cache.Set(feature)
	return toStudyFeatureResponse(feature), nil
}

// GetFlashcards parses the stored flashcards markdown. Zero cards is a
// valid outcome, not an error.
func (s *studyService) GetFlashcards(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.FlashcardsResponse, error) {
	feature, err := s.Get(ctx, userId, notebookId, constant.StudyFeatureFlashcards)
	if err != nil {
		return nil, err
	}

	cards := make([]studymd.Flashcard, 0)
	if feature != nil {
		cards = studymd.ParseFlashcards(feature.Content)
	}

	return &dto.FlashcardsResponse{
		NotebookId: notebookId,
		Cards:      cards,
		Count:      len(cards),
	}, nil
}

func (s *studyService) GetExamQuestions(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) (*dto.ExamResponse, error) {
	feature, err := s.Get(ctx, userId, notebookId, constant.StudyFeatureExam)
	if err != nil {
		return nil, err
	}

	questions := make([]studymd.ExamQuestion, 0)
	if feature != nil {
		questions = studymd.ParseExam(feature.Content)
	}

	return &dto.ExamResponse{
		NotebookId: notebookId,
		Questions:  questions,
		Count:      len(questions),
	}, nil
}
