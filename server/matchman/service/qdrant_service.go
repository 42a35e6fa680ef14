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

const defaultVectorDim = 1024

// QdrantService stores messages as Qdrant points. Qdrant constrains point ids
// to uuids, so the uuid doubles as the point id and the prefixed message id
// lives in the payload.
type QdrantService struct {
	endpoint   string
	collection string
	embedder   Embedder
	client     *http.Client
}

func NewQdrantService(endpoint, collection string, embedder Embedder) *QdrantService {
	normalizedEndpoint := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	normalizedCollection := strings.TrimSpace(collection)
	if normalizedCollection == "" {
		normalizedCollection = "memory"
	}
	return &QdrantService{
		endpoint:   normalizedEndpoint,
		collection: normalizedCollection,
		embedder:   embedder,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (q *QdrantService) EnsureCollection(ctx context.Context) error {
	statusCode, err := q.statusOnly(ctx, http.MethodGet, fmt.Sprintf("/collections/%s", q.collection))
	if err != nil {
		return err
	}
	if statusCode == http.StatusOK {
		return nil
	}
	if statusCode != http.StatusNotFound {
		return fmt.Errorf("qdrant unexpected status %d while checking collection", statusCode)
	}

	createPayload := map[string]any{
		"vectors": map[string]any{
			"size":     defaultVectorDim,
			"distance": "Cosine",
		},
	}
	_, createStatus, err := q.requestBytes(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", q.collection), createPayload)
	if err != nil {
		return err
	}
	if createStatus != http.StatusOK && createStatus != http.StatusConflict {
		return fmt.Errorf("qdrant status %d while creating collection", createStatus)
	}
	return nil
}

func (q *QdrantService) Add(ctx context.Context, text, userID string) error {
	vectors, err := q.embedder.Embed(ctx, []string{text}, inputTypeDocument)
	if err != nil {
		return fmt.Errorf("embed message: %w", err)
	}
	pointID := uuid.NewString()
	payload := map[string]any{
		"points": []map[string]any{{
			"id":     pointID,
			"vector": vectors[0],
			"payload": map[string]any{
				"message_id": fmt.Sprintf("user_message_%s_%s", userID, pointID),
				"user_id":    userID,
				"text":       text,
			},
		}},
	}
	return q.requestNoDecode(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points", q.collection), payload)
}

func (q *QdrantService) SearchByUser(ctx context.Context, query, userID string, limit int) ([]domain.Match, error) {
	filter := map[string]any{
		"must": []map[string]any{{
			"key":   "user_id",
			"match": map[string]any{"value": userID},
		}},
	}
	return q.search(ctx, query, filter, limit)
}

func (q *QdrantService) SearchExcludingUser(ctx context.Context, query, userID string, limit int) ([]domain.Match, error) {
	filter := map[string]any{
		"must_not": []map[string]any{{
			"key":   "user_id",
			"match": map[string]any{"value": userID},
		}},
	}
	return q.search(ctx, query, filter, limit)
}

func (q *QdrantService) search(ctx context.Context, query string, filter map[string]any, limit int) ([]domain.Match, error) {
	vectors, err := q.embedder.Embed(ctx, []string{query}, inputTypeDocument)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	payload := map[string]any{
		"vector":       vectors[0],
		"limit":        limit,
		"filter":       filter,
		"with_payload": true,
	}
	body, statusCode, err := q.requestBytes(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", q.collection), payload)
	if err != nil {
		return nil, err
	}
	if statusCode >= 300 {
		return nil, fmt.Errorf("qdrant status %d", statusCode)
	}

	var out struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode qdrant search: %w", err)
	}

	matches := make([]domain.Match, 0, len(out.Result))
	for _, row := range out.Result {
		// cosine score is a similarity, flip it so lower stays closer
		match := domain.Match{Distance: 1 - row.Score}
		if id, ok := row.Payload["message_id"].(string); ok {
			match.ID = id
		}
		if userID, ok := row.Payload["user_id"].(string); ok {
			match.UserID = userID
		}
		if text, ok := row.Payload["text"].(string); ok {
			match.Text = text
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (q *QdrantService) GetByUser(ctx context.Context, userID string) ([]domain.Message, error) {
	payload := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{{
				"key":   "user_id",
				"match": map[string]any{"value": userID},
			}},
		},
		"limit":        1000,
		"with_payload": true,
	}
	body, statusCode, err := q.requestBytes(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/scroll", q.collection), payload)
	if err != nil {
		return nil, err
	}
	if statusCode >= 300 {
		return nil, fmt.Errorf("qdrant status %d", statusCode)
	}

	var out struct {
		Result struct {
			Points []struct {
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode qdrant scroll: %w", err)
	}

	messages := make([]domain.Message, 0, len(out.Result.Points))
	for _, point := range out.Result.Points {
		message := domain.Message{UserID: userID}
		if id, ok := point.Payload["message_id"].(string); ok {
			message.ID = id
		}
		if text, ok := point.Payload["text"].(string); ok {
			message.Text = text
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (q *QdrantService) statusOnly(ctx context.Context, method, path string) (int, error) {
	_, statusCode, err := q.requestBytes(ctx, method, path, nil)
	if err != nil {
		return 0, err
	}
	return statusCode, nil
}

func (q *QdrantService) requestNoDecode(ctx context.Context, method, path string, payload any) error {
	_, statusCode, err := q.requestBytes(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if statusCode >= 300 {
		return fmt.Errorf("qdrant status %d", statusCode)
	}
	return nil
}

func (q *QdrantService) requestBytes(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
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

	req, err := http.NewRequestWithContext(ctx, method, q.endpoint+path, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := q.client.Do(req)
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
