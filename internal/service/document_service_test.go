package service

import (
	"context"
	"encoding/json"
	"testing"

	"cramwell-be/internal/constant"
	"cramwell-be/internal/dto"
	"cramwell-be/internal/entity"
	"cramwell-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	uow       *fakeUnitOfWork
	store     *fakeObjectStore
	indexer   *fakeIndexer
	locker    *fakeLocker
	publisher *fakePublisher
	bus       *fakeBus
	service   IDocumentService
}

func newDocumentFixture() *documentFixture {
	uow := newFakeUnitOfWork()
	store := newFakeObjectStore()
	indexer := &fakeIndexer{failNames: make(map[string]bool)}
	locker := &fakeLocker{}
	publisher := &fakePublisher{}
	bus := &fakeBus{}

	svc := NewDocumentService(&fakeFactory{uow: uow}, store, indexer, locker, publisher, bus, nopLogger{})
	return &documentFixture{
		uow:       uow,
		store:     store,
		indexer:   indexer,
		locker:    locker,
		publisher: publisher,
		bus:       bus,
		service:   svc,
	}
}

func pdfFile(name string, size int) dto.UploadFile {
	content := make([]byte, size)
	return dto.UploadFile{Name: name, Size: int64(size), Content: content}
}

func TestSubmitBatchRejectsInvalidFilesBeforeAnyWrite(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	req := &dto.UploadBatchRequest{
		NotebookId:   uuid.New(),
		DocumentType: constant.DocumentTypeCourseFiles,
		Files: []dto.UploadFile{
			pdfFile("notes.pdf", 100),
			{Name: "malware.exe", Size: 100, Content: make([]byte, 100)},
			{Name: "huge.pdf", Size: constant.MaxUploadByteSize + 1},
		},
	}

	_, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.Error(t, err)

	var batchErr *dto.BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Invalid, 2)
	assert.Equal(t, "malware.exe", batchErr.Invalid[0].Name)
	assert.Equal(t, dto.InvalidFileKindType, batchErr.Invalid[0].Kind)
	assert.Equal(t, "huge.pdf", batchErr.Invalid[1].Name)
	assert.Equal(t, dto.InvalidFileKindSize, batchErr.Invalid[1].Kind)

	// Fail-closed: the valid file was not written either.
	assert.Empty(t, f.store.objects)
	assert.Empty(t, f.uow.documents.rows)
}

func TestSubmitBatchSecondAttemptIsDuplicate(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	notebookId := uuid.New()
	req := &dto.UploadBatchRequest{
		NotebookId:   notebookId,
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("week1.pdf", 2048)},
	}

	first, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	require.Equal(t, []string{"week1.pdf"}, first.Uploaded)

	second, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	assert.Empty(t, second.Uploaded)
	assert.Equal(t, []string{"week1.pdf"}, second.Duplicates)

	// No second row or blob.
	assert.Len(t, f.uow.documents.rows, 1)
	assert.Len(t, f.store.objects, 1)
}

func TestSubmitBatchResultsFollowInputOrder(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	failing := pdfFile("b.pdf", 10)
	f.store.failKeys[storage.DocumentKey(notebookId, userId, constant.DocumentTypeCourseFiles, "b.pdf")] = true

	req := &dto.UploadBatchRequest{
		NotebookId:   notebookId,
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("a.pdf", 10), failing, pdfFile("c.pdf", 10)},
	}

	result, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "a.pdf", result.Results[0].Name)
	assert.Equal(t, dto.UploadStatusUploaded, result.Results[0].Status)
	assert.Equal(t, "b.pdf", result.Results[1].Name)
	assert.Equal(t, dto.UploadStatusFailed, result.Results[1].Status)
	assert.Equal(t, "c.pdf", result.Results[2].Name)
	assert.Equal(t, dto.UploadStatusUploaded, result.Results[2].Status)
}

func TestSubmitBatchPartialFailureIndependence(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	f.store.failKeys[storage.DocumentKey(notebookId, userId, constant.DocumentTypeCourseFiles, "a.pdf")] = true

	req := &dto.UploadBatchRequest{
		NotebookId:   notebookId,
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("a.pdf", 10), pdfFile("b.pdf", 10)},
	}

	result, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.pdf"}, result.Uploaded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "a.pdf", result.Failed[0].Name)

	// b's row exists, a's does not.
	require.Len(t, f.uow.documents.rows, 1)
	assert.Equal(t, "b.pdf", f.uow.documents.rows[0].DocumentName)
}

func TestSubmitBatchIndexFailureKeepsRow(t *testing.T) {
	f := newDocumentFixture()
	f.indexer.failNames["a.pdf"] = true
	userId := uuid.New()

	req := &dto.UploadBatchRequest{
		NotebookId:   uuid.New(),
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("a.pdf", 10)},
	}

	result, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, dto.UploadStatusIndexFailed, result.Results[0].Status)

	// Row and blob survive an indexing failure.
	assert.Len(t, f.uow.documents.rows, 1)
	assert.Len(t, f.store.objects, 1)
}

func TestSubmitBatchReviewWithoutFiles(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	notebookId := uuid.New()

	year := 2023
	grade := "A"
	score := 4
	req := &dto.UploadBatchRequest{
		NotebookId:   notebookId,
		DocumentType: constant.DocumentTypeGeneralReview,
		Review: &dto.ReviewMetadataRequest{
			TakenYear:         &year,
			Grade:             &grade,
			CourseReviewScore: &score,
		},
	}

	_, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)

	// Exactly one placeholder document.
	require.Len(t, f.uow.documents.rows, 1)
	placeholder := f.uow.documents.rows[0]
	assert.Equal(t, constant.PlaceholderDocumentName, placeholder.DocumentName)
	assert.Equal(t, int64(0), placeholder.ByteSize)
	assert.True(t, placeholder.ContentInfo.Placeholder)

	// One linked review blob.
	key := storage.ReviewKey(notebookId, userId, placeholder.Id)
	blob, ok := f.store.objects[key]
	require.True(t, ok)

	var review entity.ReviewMetadata
	require.NoError(t, json.Unmarshal(blob, &review))
	assert.Equal(t, placeholder.Id, review.DocumentId)
	assert.Equal(t, 2023, *review.TakenYear)
	assert.Equal(t, "A", *review.Grade)
	assert.Equal(t, 4, *review.CourseReviewScore)
}

func TestSubmitBatchReviewResubmitReusesPlaceholder(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	req := &dto.UploadBatchRequest{
		NotebookId:   uuid.New(),
		DocumentType: constant.DocumentTypeGeneralReview,
		Review:       &dto.ReviewMetadataRequest{},
	}

	_, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	_, err = f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)

	assert.Len(t, f.uow.documents.rows, 1)
}

func TestSubmitBatchRejectedWhileInFlight(t *testing.T) {
	f := newDocumentFixture()
	f.locker.denied = true

	req := &dto.UploadBatchRequest{
		NotebookId:   uuid.New(),
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("a.pdf", 10)},
	}

	_, err := f.service.SubmitBatch(context.Background(), uuid.New(), req)
	var inFlight *dto.UploadInFlightError
	require.ErrorAs(t, err, &inFlight)
	assert.Empty(t, f.uow.documents.rows)
}

func TestSubmitBatchReleasesLockAndPublishes(t *testing.T) {
	f := newDocumentFixture()
	req := &dto.UploadBatchRequest{
		NotebookId:   uuid.New(),
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("a.pdf", 10)},
	}

	_, err := f.service.SubmitBatch(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)
	assert.Len(t, f.publisher.payloads, 1)
	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "DOCUMENT_BATCH_COMPLETED", f.bus.published[0].EventType())
}

func TestDeleteIsLogicalAndFreesDedupKey(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()
	notebookId := uuid.New()
	req := &dto.UploadBatchRequest{
		NotebookId:   notebookId,
		DocumentType: constant.DocumentTypeCourseFiles,
		Files:        []dto.UploadFile{pdfFile("week1.pdf", 64)},
	}

	first, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	require.Len(t, first.Uploaded, 1)

	require.NoError(t, f.service.Delete(context.Background(), userId, f.uow.documents.rows[0].Id))
	assert.False(t, f.uow.documents.rows[0].Status)

	docs, err := f.service.GetAll(context.Background(), userId, notebookId)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// Same name+size uploads cleanly again after the logical delete.
	second, err := f.service.SubmitBatch(context.Background(), userId, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"week1.pdf"}, second.Uploaded)
}
