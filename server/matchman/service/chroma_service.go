package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"match_server/server/matchman/domain"
)

// inputTypeDocument is the embedding hint used for both stored documents and
// similarity probes. The upstream deployment embedded probes as documents
// too, so both sides of every comparison live in the same vector space.
const inputTypeDocument = "search_document"

// ChromaService stores messages in a Chroma collection. Document ids keep
// the user_message_<user_id>_ prefix with a uuid suffix so concurrent writers
// can never mint colliding ids.
type ChromaService struct {
	endpoint     string
	collection   string
	collectionID string
	embedder     Embedder
	client       *http.Client
}

func NewChromaService(endpoint, collection string, embedder Embedder) *ChromaService {
	normalizedEndpoint := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	normalizedCollection := strings.TrimSpace(collection)
	if normalizedCollection == "" {
		normalizedCollection = "memory"
	}
	return &ChromaService{
		endpoint:   normalizedEndpoint,
		collection: normalizedCollection,
		embedder:   embedder,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// EnsureCollection resolves the collection id, creating the collection when
// it does not exist yet. Must be called once before any other operation.
func (s *ChromaService) EnsureCollection(ctx context.Context) error {
	payload := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
	}
	body, statusCode, err := s.requestBytes(ctx, http.MethodPost, "/api/v1/collections", payload)
	if err != nil {
		return err
	}
	if statusCode >= 300 {
		return fmt.Errorf("chroma status %d while ensuring collection", statusCode)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("decode chroma collection: %w", err)
	}
	if out.ID == "" {
		return fmt.Errorf("chroma returned empty collection id")
	}
	s.collectionID = out.ID
	return nil
}

func (s *ChromaService) Add(ctx context.Context, text, userID string) error {
	vectors, err := s.embedder.Embed(ctx, []string{text}, inputTypeDocument)
	if err != nil {
		return fmt.Errorf("embed message: %w", err)
	}
	payload := map[string]any{
		"ids":        []string{fmt.Sprintf("user_message_%s_%s", userID, uuid.NewString())},
		"embeddings": vectors,
		"documents":  []string{text},
		"metadatas":  []map[string]any{{"user_id": userID}},
	}
	return s.requestNoDecode(ctx, http.MethodPost, fmt.Sprintf("/api/v1/collections/%s/add", s.collectionID), payload)
}

func (s *ChromaService) SearchByUser(ctx context.Context, query, userID string, limit int) ([]domain.Match, error) {
	return s.query(ctx, query, map[string]any{"user_id": userID}, limit)
}

func (s *ChromaService) SearchExcludingUser(ctx context.Context, query, userID string, limit int) ([]domain.Match, error) {
	return s.query(ctx, query, map[string]any{"user_id": map[string]any{"$ne": userID}}, limit)
}

func (s *ChromaService) query(ctx context.Context, query string, where map[string]any, limit int) ([]domain.Match, error) {
	vectors, err := s.embedder.Embed(ctx, []string{query}, inputTypeDocument)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	payload := map[string]any{
		"query_embeddings": vectors,
		"n_results":        limit,
		"where":            where,
		"include":          []string{"documents", "metadatas", "distances"},
	}
	body, statusCode, err := s.requestBytes(ctx, http.MethodPost, fmt.Sprintf("/api/v1/collections/%s/query", s.collectionID), payload)
	if err != nil {
		return nil, err
	}
	if statusCode >= 300 {
		return nil, fmt.Errorf("chroma status %d", statusCode)
	}

	var out struct {
		IDs       [][]string         `json:"ids"`
		Documents [][]string         `json:"documents"`
		Metadatas [][]map[string]any `json:"metadatas"`
		Distances [][]float64        `json:"distances"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode chroma query: %w", err)
	}
	if len(out.IDs) == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(out.IDs[0]))
	for i, id := range out.IDs[0] {
		match := domain.Match{Message: domain.Message{ID: id}}
		if len(out.Documents) > 0 && i < len(out.Documents[0]) {
			match.Text = out.Documents[0][i]
		}
		if len(out.Metadatas) > 0 && i < len(out.Metadatas[0]) {
			if userID, ok := out.Metadatas[0][i]["user_id"].(string); ok {
				match.UserID = userID
			}
		}
		if len(out.Distances) > 0 && i < len(out.Distances[0]) {
			match.Distance = out.Distances[0][i]
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (s *ChromaService) GetByUser(ctx context.Context, userID string) ([]domain.Message, error) {
	payload := map[string]any{
		"where":   map[string]any{"user_id": userID},
		"include": []string{"documents", "metadatas"},
	}
	body, statusCode, err := s.requestBytes(ctx, http.MethodPost, fmt.Sprintf("/api/v1/collections/%s/get", s.collectionID), payload)
	if err != nil {
		return nil, err
	}
	if statusCode >= 300 {
		return nil, fmt.Errorf("chroma status %d", statusCode)
	}

	var out struct {
		IDs       []string `json:"ids"`
		Documents []string `json:"documents"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode chroma get: %w", err)
	}

	messages := make([]domain.Message, 0, len(out.IDs))
	for i, id := range out.IDs {
		message := domain.Message{ID: id, UserID: userID}
		if i < len(out.Documents) {
			message.Text = out.Documents[i]
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (s *ChromaService) requestNoDecode(ctx context.Context, method, path string, payload any) error {
	_, statusCode, err := s.requestBytes(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if statusCode >= 300 {
		return fmt.Errorf("chroma status %d", statusCode)
	}
	return nil
}

func (s *ChromaService) requestBytes(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var bodyBytes []byte
	var err error
	if payload != nil {
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
	} else {
		bodyBytes = []byte{}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpoint+path, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return responseBody, resp.StatusCode, nil
}
