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
)

// CohereService embeds texts through Cohere's /v1/embed endpoint. A missing
// api key is not validated here; it surfaces as a 401 from Cohere.
type CohereService struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewCohereService(endpoint, apiKey, model string) *CohereService {
	normalizedEndpoint := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if normalizedEndpoint == "" {
		normalizedEndpoint = "https://api.cohere.com"
	}
	normalizedModel := strings.TrimSpace(model)
	if normalizedModel == "" {
		normalizedModel = "embed-english-v3.0"
	}
	return &CohereService{
		endpoint: normalizedEndpoint,
		apiKey:   apiKey,
		model:    normalizedModel,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *CohereService) Embed(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	payload := map[string]any{
		"texts":      texts,
		"model":      s.model,
		"input_type": inputType,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/v1/embed", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cohere status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var out struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(responseBody, &out); err != nil {
		return nil, fmt.Errorf("decode cohere embed: %w", err)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("cohere returned %d embeddings for %d texts", len(out.Embeddings), len(texts))
	}
	return out.Embeddings, nil
}
