package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"cramwell-be/internal/entity"
	"cramwell-be/internal/repository/contract"
	"cramwell-be/internal/repository/specification"
	"cramwell-be/internal/repository/unitofwork"
	"cramwell-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory doubles for the repository contracts and the external
// collaborators. Specifications are interpreted by type so service
// queries behave like the real thing.

type fakeNotebookRepo struct {
	rows []*entity.Notebook
}

func notebookMatches(n *entity.Notebook, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if n.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if n.UserId != sp.UserID {
				return false
			}
		case specification.NotArchived:
			if n.Archived {
				return false
			}
		}
	}
	return true
}

func (r *fakeNotebookRepo) Create(_ context.Context, notebook *entity.Notebook) error {
	r.rows = append(r.rows, notebook)
	return nil
}

func (r *fakeNotebookRepo) Update(_ context.Context, notebook *entity.Notebook) error {
	for i, row := range r.rows {
		if row.Id == notebook.Id {
			r.rows[i] = notebook
			return nil
		}
	}
	return fmt.Errorf("notebook not found")
}

func (r *fakeNotebookRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Notebook, error) {
	for _, row := range r.rows {
		if notebookMatches(row, specs) {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeNotebookRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	var out []*entity.Notebook
	for _, row := range r.rows {
		if notebookMatches(row, specs) {
			out = append(out, row)
		}
	}
	applyNotebookOrder(out, specs)
	return out, nil
}

func applyNotebookOrder(rows []*entity.Notebook, specs []specification.Specification) {
	for _, s := range specs {
		if ob, ok := s.(specification.OrderBy); ok && ob.Field == "created_at" {
			sort.SliceStable(rows, func(i, j int) bool {
				if ob.Desc {
					return rows[i].CreatedAt.After(rows[j].CreatedAt)
				}
				return rows[i].CreatedAt.Before(rows[j].CreatedAt)
			})
		}
	}
}

func (r *fakeNotebookRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeDocumentRepo struct {
	rows      []*entity.Document
	createErr error
}

func documentMatches(d *entity.Document, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if d.Id != sp.ID {
				return false
			}
		case specification.ByNotebookID:
			if d.NotebookId != sp.NotebookID {
				return false
			}
		case specification.UserOwnedBy:
			if d.UserId != sp.UserID {
				return false
			}
		case specification.ByDocumentName:
			if d.DocumentName != sp.Name {
				return false
			}
		case specification.ByByteSize:
			if d.ByteSize != sp.Size {
				return false
			}
		case specification.ByDocumentType:
			if d.DocumentType != sp.Type {
				return false
			}
		case specification.ActiveDocuments:
			if !d.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeDocumentRepo) Create(_ context.Context, document *entity.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows = append(r.rows, document)
	return nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, document *entity.Document) error {
	for i, row := range r.rows {
		if row.Id == document.Id {
			r.rows[i] = document
			return nil
		}
	}
	return fmt.Errorf("document not found")
}

func (r *fakeDocumentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, row := range r.rows {
		if documentMatches(row, specs) {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, row := range r.rows {
		if documentMatches(row, specs) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeChatSessionRepo struct {
	rows []*entity.ChatSession
}

func sessionMatches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		case specification.ByNotebookID:
			if s.NotebookId != sp.NotebookID {
				return false
			}
		case specification.ActiveSessions:
			if !s.Active {
				return false
			}
		}
	}
	return true
}

func applySessionOrder(rows []*entity.ChatSession, specs []specification.Specification) {
	for _, s := range specs {
		if ob, ok := s.(specification.OrderBy); ok && ob.Field == "created_at" {
			if ob.Desc {
				// Ties keep the most recently inserted row first.
				for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
					rows[i], rows[j] = rows[j], rows[i]
				}
				sort.SliceStable(rows, func(i, j int) bool {
					return rows[i].CreatedAt.After(rows[j].CreatedAt)
				})
			} else {
				sort.SliceStable(rows, func(i, j int) bool {
					return rows[i].CreatedAt.Before(rows[j].CreatedAt)
				})
			}
		}
	}
}

func (r *fakeChatSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.rows = append(r.rows, session)
	return nil
}

func (r *fakeChatSessionRepo) Update(_ context.Context, session *entity.ChatSession) error {
	for i, row := range r.rows {
		if row.Id == session.Id {
			r.rows[i] = session
			return nil
		}
	}
	return fmt.Errorf("session not found")
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	rows, _ := r.FindAll(ctx, specs...)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *fakeChatSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, row := range r.rows {
		if sessionMatches(row, specs) {
			out = append(out, row)
		}
	}
	applySessionOrder(out, specs)
	return out, nil
}

func (r *fakeChatSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeChatMessageRepo struct {
	rows []*entity.ChatMessage
}

func messageMatches(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		if sp, ok := spec.(specification.ByChatSessionID); ok {
			if m.ChatSessionId != sp.ChatSessionID {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.rows = append(r.rows, message)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, row := range r.rows {
		if messageMatches(row, specs) {
			out = append(out, row)
		}
	}
	for _, s := range specs {
		if ob, ok := s.(specification.OrderBy); ok && ob.Field == "created_at" {
			sort.SliceStable(out, func(i, j int) bool {
				if ob.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

type fakeStudyFeatureRepo struct {
	rows []*entity.StudyFeature
}

func (r *fakeStudyFeatureRepo) Upsert(_ context.Context, feature *entity.StudyFeature) error {
	for i, row := range r.rows {
		if row.NotebookId == feature.NotebookId && row.FeatureType == feature.FeatureType {
			feature.Id = row.Id
			feature.CreatedAt = row.CreatedAt
			r.rows[i] = feature
			return nil
		}
	}
	r.rows = append(r.rows, feature)
	return nil
}

func (r *fakeStudyFeatureRepo) FindOne(_ context.Context, notebookId uuid.UUID, featureType string) (*entity.StudyFeature, error) {
	for _, row := range r.rows {
		if row.NotebookId == notebookId && row.FeatureType == featureType {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeStudyFeatureRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

type fakeSystemLogRepo struct {
	rows []*entity.SystemLog
}

func (r *fakeSystemLogRepo) Create(_ context.Context, log *entity.SystemLog) error {
	r.rows = append(r.rows, log)
	return nil
}

type fakeUnitOfWork struct {
	notebooks     *fakeNotebookRepo
	documents     *fakeDocumentRepo
	chatSessions  *fakeChatSessionRepo
	chatMessages  *fakeChatMessageRepo
	studyFeatures *fakeStudyFeatureRepo
	systemLogs    *fakeSystemLogRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		notebooks:     &fakeNotebookRepo{},
		documents:     &fakeDocumentRepo{},
		chatSessions:  &fakeChatSessionRepo{},
		chatMessages:  &fakeChatMessageRepo{},
		studyFeatures: &fakeStudyFeatureRepo{},
		systemLogs:    &fakeSystemLogRepo{},
	}
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) NotebookRepository() contract.NotebookRepository         { return u.notebooks }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository         { return u.documents }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository   { return u.chatSessions }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository   { return u.chatMessages }
func (u *fakeUnitOfWork) StudyFeatureRepository() contract.StudyFeatureRepository { return u.studyFeatures }
func (u *fakeUnitOfWork) SystemLogRepository() contract.SystemLogRepository       { return u.systemLogs }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

// fakeObjectStore keeps blobs in a map; keys in failKeys reject Put.
type fakeObjectStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failKeys map[string]bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects:  make(map[string][]byte),
		failKeys: make(map[string]bool),
	}
}

func (s *fakeObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failKeys[key] {
		return fmt.Errorf("storage unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type fakeIndexer struct {
	failNames map[string]bool
	indexed   []string
}

func (f *fakeIndexer) IndexDocument(_ context.Context, _ uuid.UUID, _, filename string, _ io.Reader) error {
	if f.failNames[filename] {
		return fmt.Errorf("indexing service returned 502")
	}
	f.indexed = append(f.indexed, filename)
	return nil
}

type fakeConversationalist struct {
	reply string
	err   error
	calls int
}

func (f *fakeConversationalist) Chat(context.Context, uuid.UUID, uuid.UUID, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeGenerator struct {
	content string
	err     error
	calls   int
}

func (f *fakeGenerator) Generate(_ context.Context, _ uuid.UUID, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type fakeLocker struct {
	denied   bool
	acquired int
	released int
}

func (f *fakeLocker) Acquire(context.Context, uuid.UUID) (bool, error) {
	if f.denied {
		return false, nil
	}
	f.acquired++
	return true, nil
}

func (f *fakeLocker) Release(context.Context, uuid.UUID) error {
	f.released++
	return nil
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Close() {}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
