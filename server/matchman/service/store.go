package service

import (
	"context"

	"match_server/server/matchman/domain"
)

// MessageStore is the adapter contract over an external vector index.
// Search results come back ordered by ascending distance.
type MessageStore interface {
	Add(ctx context.Context, text, userID string) error
	SearchByUser(ctx context.Context, query, userID string, limit int) ([]domain.Match, error)
	SearchExcludingUser(ctx context.Context, query, userID string, limit int) ([]domain.Match, error)
	GetByUser(ctx context.Context, userID string) ([]domain.Message, error)
}

// Embedder maps texts to dense vectors. inputType is the provider-side hint
// for how the text will be used ("search_document", "search_query").
type Embedder interface {
	Embed(ctx context.Context, texts []string, inputType string) ([][]float32, error)
}

// Completer sends an ordered turn sequence to a language model and returns
// the first completion's text.
type Completer interface {
	Complete(ctx context.Context, turns []domain.Turn) (string, error)
}
