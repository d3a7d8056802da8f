// Package ragapi talks to the external retrieval service that indexes
// uploaded documents, answers chat questions against them and generates
// study artifacts. The service owns embedding, vector search and LLM
// prompting; this client only moves bytes and JSON.
package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"cramwell-be/internal/constant"

	"github.com/google/uuid"
)

// Indexer makes an uploaded document retrievable for conversation.
type Indexer interface {
	IndexDocument(ctx context.Context, notebookId uuid.UUID, documentType, filename string, r io.Reader) error
}

// Conversationalist answers a user message from the indexed documents.
type Conversationalist interface {
	Chat(ctx context.Context, notebookId, userId uuid.UUID, message string) (string, error)
}

// Generator produces a study artifact (markdown) for a notebook.
type Generator interface {
	Generate(ctx context.Context, notebookId uuid.UUID, featureType string) (string, error)
}

// Client implements Indexer, Conversationalist and Generator against a
// single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Generation can take a while on large notebooks.
			Timeout: 120 * time.Second,
		},
	}
}

// IndexDocument performs the multipart upload to
// POST /notebooks/{id}/upload/?document_type={type}. The 2xx response
// body is opaque and discarded.
func (c *Client) IndexDocument(ctx context.Context, notebookId uuid.UUID, documentType, filename string, r io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("buffer file for indexing: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/notebooks/%s/upload/?document_type=%s", c.baseURL, notebookId, documentType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("indexing service returned %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

type chatRequest struct {
	Message string `json:"message"`
	UserId  string `json:"user_id"`
}

type chatResponse struct {
	Content string `json:"content"`
	Message string `json:"message"`
}

// Chat posts to /notebooks/{id}/chat/ and returns the reply text,
// preferring the "content" key over "message". An empty body yields the
// fixed fallback answer instead of an error.
func (c *Client) Chat(ctx context.Context, notebookId, userId uuid.UUID, message string) (string, error) {
	payload, err := json.Marshal(chatRequest{Message: message, UserId: userId.String()})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/notebooks/%s/chat/", c.baseURL, notebookId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("conversation service returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed chatResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode conversation reply: %w", err)
	}

	switch {
	case strings.TrimSpace(parsed.Content) != "":
		return parsed.Content, nil
	case strings.TrimSpace(parsed.Message) != "":
		return parsed.Message, nil
	default:
		return constant.ChatFallbackReply, nil
	}
}

type generateResponse struct {
	Content string `json:"content"`
}

// featurePathSegment maps a feature type to its endpoint segment.
func featurePathSegment(featureType string) (string, error) {
	switch featureType {
	case constant.StudyFeatureSummary:
		return "generate-summary", nil
	case constant.StudyFeatureExam:
		return "generate-sample-exam", nil
	case constant.StudyFeatureFlashcards:
		return "generate-flashcards", nil
	}
	return "", fmt.Errorf("unknown study feature type %q", featureType)
}

// Generate posts to /notebooks/{id}/generate-{feature}/ with an empty
// body and returns the generated markdown.
func (c *Client) Generate(ctx context.Context, notebookId uuid.UUID, featureType string) (string, error) {
	segment, err := featurePathSegment(featureType)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/notebooks/%s/%s/", c.baseURL, notebookId, segment)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed generateResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode generation reply: %w", err)
	}
	return parsed.Content, nil
}
