package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cramwell-be/internal/constant"
	"cramwell-be/internal/dto"
	"cramwell-be/internal/entity"
	"cramwell-be/internal/pkg/inflight"
	"cramwell-be/internal/pkg/logger"
	"cramwell-be/internal/repository/specification"
	"cramwell-be/internal/repository/unitofwork"
	pkgEvents "cramwell-be/pkg/events"
	pkgNats "cramwell-be/pkg/nats"
	"cramwell-be/pkg/ragapi"
	"cramwell-be/pkg/storage"

	"github.com/google/uuid"
)

type IDocumentService interface {
	SubmitBatch(ctx context.Context, userId uuid.UUID, req *dto.UploadBatchRequest) (*dto.UploadBatchResult, error)
	GetAll(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) error
}

// documentService runs the upload pipeline: validation is fail-closed
// for the whole batch, everything after that is per-file and
// non-transactional across files.
type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	objectStore      storage.ObjectStore
	indexer          ragapi.Indexer
	locker           inflight.Locker
	publisherService IPublisherService
	eventBus         pkgNats.Bus
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	objectStore storage.ObjectStore,
	indexer ragapi.Indexer,
	locker inflight.Locker,
	publisherService IPublisherService,
	eventBus pkgNats.Bus,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		objectStore:      objectStore,
		indexer:          indexer,
		locker:           locker,
		publisherService: publisherService,
		eventBus:         eventBus,
		logger:           sysLogger,
	}
}

func fileExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// validateBatch checks every file up front. Any violation rejects the
// entire batch before a single write happens.
func validateBatch(files []dto.UploadFile) *dto.BatchValidationError {
	var invalid []dto.InvalidFile
	for _, f := range files {
		ext := fileExtension(f.Name)
		if _, ok := constant.AllowedUploadExtensions[ext]; !ok {
			invalid = append(invalid, dto.InvalidFile{
				Name:   f.Name,
				Kind:   dto.InvalidFileKindType,
				Reason: fmt.Sprintf("file type %q is not allowed", ext),
			})
			continue
		}
		if f.Size > constant.MaxUploadByteSize {
			invalid = append(invalid, dto.InvalidFile{
				Name:   f.Name,
				Kind:   dto.InvalidFileKindSize,
				Reason: fmt.Sprintf("file exceeds the %d byte limit", constant.MaxUploadByteSize),
			})
		}
	}
	if len(invalid) > 0 {
		return &dto.BatchValidationError{Invalid: invalid}
	}
	return nil
}

func (c *documentService) SubmitBatch(ctx context.Context, userId uuid.UUID, req *dto.UploadBatchRequest) (*dto.UploadBatchResult, error) {
	if !constant.IsDocumentTypeValid(req.DocumentType) {
		return nil, fmt.Errorf("unknown document type %q", req.DocumentType)
	}
	if len(req.Files) == 0 && req.DocumentType != constant.DocumentTypeGeneralReview {
		return nil, fmt.Errorf("no files supplied")
	}

	if err := validateBatch(req.Files); err != nil {
		return nil, err
	}

	acquired, err := c.locker.Acquire(ctx, req.NotebookId)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, &dto.UploadInFlightError{NotebookId: req.NotebookId}
	}
	defer func() {
		if err := c.locker.Release(context.WithoutCancel(ctx), req.NotebookId); err != nil {
			c.logger.Warn("DOCUMENT_UPLOAD", "Failed to release upload lock", map[string]interface{}{
				"notebook_id": req.NotebookId, "error": err.Error(),
			})
		}
	}()

	result := &dto.UploadBatchResult{
		Results:    make([]dto.UploadFileResult, 0, len(req.Files)),
		Uploaded:   make([]string, 0),
		Duplicates: make([]string, 0),
		Failed:     make([]dto.UploadFailure, 0),
	}

	if req.DocumentType == constant.DocumentTypeGeneralReview && len(req.Files) == 0 {
		if err := c.submitPlaceholderReview(ctx, userId, req, result); err != nil {
			return nil, err
		}
	}

	for _, file := range req.Files {
		c.processFile(ctx, userId, req, file, result)
	}

	c.publishBatchOutcome(ctx, userId, req.NotebookId, result)

	return result, nil
}

// processFile runs spec'd steps for one file. Every failure is caught
// here and recorded; sibling files are never affected.
func (c *documentService) processFile(ctx context.Context, userId uuid.UUID, req *dto.UploadBatchRequest, file dto.UploadFile, result *dto.UploadBatchResult) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// 1. Dedup by (notebook, name, size) over active documents.
	count, err := uow.DocumentRepository().Count(ctx,
		specification.ByNotebookID{NotebookID: req.NotebookId},
		specification.ByDocumentName{Name: file.Name},
		specification.ByByteSize{Size: file.Size},
		specification.ActiveDocuments{},
	)
	if err != nil {
		c.recordFailure(result, file.Name, dto.UploadStatusFailed, fmt.Sprintf("dedup check failed: %v", err))
		return
	}
	if count > 0 {
		result.Results = append(result.Results, dto.UploadFileResult{Name: file.Name, Status: dto.UploadStatusDuplicate})
		result.Duplicates = append(result.Duplicates, file.Name)
		return
	}

	ext := fileExtension(file.Name)
	contentType := constant.AllowedUploadExtensions[ext]
	key := storage.DocumentKey(req.NotebookId, userId, req.DocumentType, file.Name)

	// 2. Blob first. A failed blob write means no row at all.
	if err := c.objectStore.Put(ctx, key, bytes.NewReader(file.Content), file.Size, contentType); err != nil {
		c.logger.Error("DOCUMENT_UPLOAD", "Storage write failed", map[string]interface{}{
			"notebook_id": req.NotebookId, "file": file.Name, "error": err.Error(),
		})
		c.recordFailure(result, file.Name, dto.UploadStatusFailed, fmt.Sprintf("storage write failed: %v", err))
		return
	}

	// 3. Row second. A failed row write orphans the blob; tolerated.
	document := entity.Document{
		Id:           uuid.New(),
		NotebookId:   req.NotebookId,
		UserId:       userId,
		DocumentType: req.DocumentType,
		DocumentName: file.Name,
		StoragePath:  key,
		ByteSize:     file.Size,
		ContentInfo: entity.ContentInfo{
			MimeType:  contentType,
			Extension: ext,
		},
		Status:    true,
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		c.logger.Error("DOCUMENT_UPLOAD", "Metadata write failed, blob orphaned", map[string]interface{}{
			"notebook_id": req.NotebookId, "file": file.Name, "storage_path": key, "error": err.Error(),
		})
		c.recordFailure(result, file.Name, dto.UploadStatusFailed, fmt.Sprintf("metadata write failed: %v", err))
		return
	}

	// 4. Review blob for general_review uploads, best-effort.
	if req.DocumentType == constant.DocumentTypeGeneralReview {
		if req.Review != nil {
			c.writeReviewBlob(ctx, userId, req, document.Id)
		}
		result.Results = append(result.Results, dto.UploadFileResult{Name: file.Name, Status: dto.UploadStatusUploaded})
		result.Uploaded = append(result.Uploaded, file.Name)
		return
	}

	// 5. Index all other types. Failure leaves the row intact so a
	// user-triggered retry can pick it up.
	if err := c.indexer.IndexDocument(ctx, req.NotebookId, req.DocumentType, file.Name, bytes.NewReader(file.Content)); err != nil {
		c.logger.Error("DOCUMENT_UPLOAD", "Indexing failed", map[string]interface{}{
			"notebook_id": req.NotebookId, "file": file.Name, "error": err.Error(),
		})
		c.recordFailure(result, file.Name, dto.UploadStatusIndexFailed, fmt.Sprintf("indexing failed: %v", err))
		return
	}

	result.Results = append(result.Results, dto.UploadFileResult{Name: file.Name, Status: dto.UploadStatusUploaded})
	result.Uploaded = append(result.Uploaded, file.Name)
}

func (c *documentService) recordFailure(result *dto.UploadBatchResult, name, status, reason string) {
	result.Results = append(result.Results, dto.UploadFileResult{Name: name, Status: status, Reason: reason})
	result.Failed = append(result.Failed, dto.UploadFailure{Name: name, Reason: reason})
}

// submitPlaceholderReview anchors review metadata to a zero-byte
// placeholder document when a review arrives without files. Repeat
// submissions reuse the existing placeholder row.
func (c *documentService) submitPlaceholderReview(ctx context.Context, userId uuid.UUID, req *dto.UploadBatchRequest, result *dto.UploadBatchResult) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByNotebookID{NotebookID: req.NotebookId},
		specification.ByDocumentName{Name: constant.PlaceholderDocumentName},
		specification.ActiveDocuments{},
	)
	if err != nil {
		return err
	}

	documentId := uuid.New()
	if existing != nil {
		documentId = existing.Id
		result.Results = append(result.Results, dto.UploadFileResult{Name: constant.PlaceholderDocumentName, Status: dto.UploadStatusDuplicate})
		result.Duplicates = append(result.Duplicates, constant.PlaceholderDocumentName)
	} else {
		placeholder := entity.Document{
			Id:           documentId,
			NotebookId:   req.NotebookId,
			UserId:       userId,
			DocumentType: constant.DocumentTypeGeneralReview,
			DocumentName: constant.PlaceholderDocumentName,
			ByteSize:     0,
			ContentInfo: entity.ContentInfo{
				Placeholder: true,
			},
			Status:    true,
			CreatedAt: time.Now(),
		}
		if err := uow.DocumentRepository().Create(ctx, &placeholder); err != nil {
			return err
		}
		result.Results = append(result.Results, dto.UploadFileResult{Name: constant.PlaceholderDocumentName, Status: dto.UploadStatusUploaded})
		result.Uploaded = append(result.Uploaded, constant.PlaceholderDocumentName)
	}

	if req.Review != nil {
		c.writeReviewBlob(ctx, userId, req, documentId)
	}
	return nil
}

// writeReviewBlob is best-effort: a missing review blob next to an
// existing document row is a tolerated state.
func (c *documentService) writeReviewBlob(ctx context.Context, userId uuid.UUID, req *dto.UploadBatchRequest, documentId uuid.UUID) {
	review := entity.ReviewMetadata{
		DocumentId:           documentId,
		NotebookId:           req.NotebookId,
		TakenYear:            req.Review.TakenYear,
		TakenSemester:        req.Review.TakenSemester,
		Grade:                req.Review.Grade,
		CourseReviewScore:    req.Review.CourseReviewScore,
		ProfessorReviewScore: req.Review.ProfessorReviewScore,
		InputHours:           req.Review.InputHours,
		CreatedAt:            time.Now(),
	}

	payload, err := json.Marshal(review)
	if err != nil {
		c.logger.Warn("DOCUMENT_UPLOAD", "Failed to marshal review metadata", map[string]interface{}{
			"document_id": documentId, "error": err.Error(),
		})
		return
	}

	key := storage.ReviewKey(req.NotebookId, userId, documentId)
	if err := c.objectStore.Put(ctx, key, bytes.NewReader(payload), int64(len(payload)), "application/json"); err != nil {
		c.logger.Warn("DOCUMENT_UPLOAD", "Failed to write review metadata blob", map[string]interface{}{
			"document_id": documentId, "storage_path": key, "error": err.Error(),
		})
	}
}

// publishBatchOutcome emits the audit record and the domain event.
// Both are auxiliary; neither can fail the batch.
func (c *documentService) publishBatchOutcome(ctx context.Context, userId, notebookId uuid.UUID, result *dto.UploadBatchResult) {
	audit := dto.AuditLogMessage{
		Level:   "INFO",
		Module:  "DOCUMENT_UPLOAD",
		Message: "Upload batch completed",
		Details: map[string]interface{}{
			"notebook_id": notebookId.String(),
			"user_id":     userId.String(),
			"uploaded":    len(result.Uploaded),
			"duplicates":  len(result.Duplicates),
			"failed":      len(result.Failed),
		},
		OccurredAt: time.Now(),
	}
	if payload, err := json.Marshal(audit); err == nil {
		if err := c.publisherService.Publish(ctx, payload); err != nil {
			c.logger.Warn("DOCUMENT_UPLOAD", "Failed to publish audit message", map[string]interface{}{"error": err.Error()})
		}
	}

	if c.eventBus != nil {
		evt := pkgEvents.NewDocumentBatchCompleted(notebookId, userId, len(result.Uploaded), len(result.Duplicates), len(result.Failed))
		if err := c.eventBus.Publish(ctx, evt); err != nil {
			c.logger.Warn("DOCUMENT_UPLOAD", "Failed to publish batch event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (c *documentService) GetAll(ctx context.Context, userId uuid.UUID, notebookId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveDocuments{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		result = append(result, &dto.DocumentResponse{
			Id:           document.Id,
			NotebookId:   document.NotebookId,
			DocumentType: document.DocumentType,
			DocumentName: document.DocumentName,
			ByteSize:     document.ByteSize,
			CreatedAt:    document.CreatedAt,
			UpdatedAt:    document.UpdatedAt,
		})
	}
	return result, nil
}

// Delete is logical: the row flips to status=false and drops out of
// dedup and listings. The blob stays in place.
func (c *documentService) Delete(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveDocuments{},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	now := time.Now()
	document.Status = false
	document.UpdatedAt = &now

	return uow.DocumentRepository().Update(ctx, document)
}
