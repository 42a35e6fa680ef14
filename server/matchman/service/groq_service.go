package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"match_server/server/matchman/domain"
)

// GroqService completes chat turns against Groq's OpenAI-compatible API.
type GroqService struct {
	client *openai.Client
	model  string
}

func NewGroqService(apiKey, baseURL, model string) *GroqService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &GroqService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *GroqService) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
