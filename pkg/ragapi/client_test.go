package ragapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cramwell-be/internal/constant"
)

func TestIndexDocumentSendsMultipart(t *testing.T) {
	notebookId := uuid.New()
	var gotPath, gotQuery, gotField, gotFilename, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("document_type")
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotField = "file"
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.IndexDocument(context.Background(), notebookId, constant.DocumentTypeCourseFiles, "week1.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "/notebooks/"+notebookId.String()+"/upload/", gotPath)
	assert.Equal(t, constant.DocumentTypeCourseFiles, gotQuery)
	assert.Equal(t, "file", gotField)
	assert.Equal(t, "week1.pdf", gotFilename)
	assert.Equal(t, "pdf-bytes", gotBody)
}

func TestIndexDocumentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.IndexDocument(context.Background(), uuid.New(), constant.DocumentTypeCourseFiles, "a.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestChatPrefersContentKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"from content","message":"from message"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reply, err := client.Chat(context.Background(), uuid.New(), uuid.New(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from content", reply)
}

func TestChatFallsBackToMessageKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"only message"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reply, err := client.Chat(context.Background(), uuid.New(), uuid.New(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "only message", reply)
}

func TestChatEmptyReplyUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reply, err := client.Chat(context.Background(), uuid.New(), uuid.New(), "hi")
	require.NoError(t, err)
	assert.Equal(t, constant.ChatFallbackReply, reply)
}

func TestChatSendsUserIdAndMessage(t *testing.T) {
	userId := uuid.New()
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = w.Write([]byte(`{"content":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Chat(context.Background(), uuid.New(), userId, "what is osmosis?")
	require.NoError(t, err)
	assert.Contains(t, gotBody, `"message":"what is osmosis?"`)
	assert.Contains(t, gotBody, `"user_id":"`+userId.String()+`"`)
}

func TestGenerateRoutesByFeature(t *testing.T) {
	tests := []struct {
		featureType string
		wantSegment string
	}{
		{constant.StudyFeatureSummary, "generate-summary"},
		{constant.StudyFeatureExam, "generate-sample-exam"},
		{constant.StudyFeatureFlashcards, "generate-flashcards"},
	}

	for _, tt := range tests {
		t.Run(tt.featureType, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"content":"# generated"}`))
			}))
			defer srv.Close()

			notebookId := uuid.New()
			client := NewClient(srv.URL)
			content, err := client.Generate(context.Background(), notebookId, tt.featureType)
			require.NoError(t, err)
			assert.Equal(t, "# generated", content)
			assert.Equal(t, "/notebooks/"+notebookId.String()+"/"+tt.wantSegment+"/", gotPath)
		})
	}
}

func TestGenerateUnknownFeature(t *testing.T) {
	client := NewClient("http://localhost:0")
	_, err := client.Generate(context.Background(), uuid.New(), "crossword")
	require.Error(t, err)
}
