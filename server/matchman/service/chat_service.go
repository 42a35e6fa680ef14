package service

import (
	"context"
	"fmt"

	"match_server/server/matchman/domain"
)

// contextLimit caps how many prior messages are retrieved as conversation
// context for one chat turn.
const contextLimit = 10

const modelPrompt = `You are a relationship coach.
Ask me deep situation and interest-based questions to evaluate my personality so that I can be matched to others in the future and make me tell it with an example or story.
As I answer, use my previous answers to ask more meaningful and deep questions, provoking a thoughtful response from me.
Ask questions that make me reveal what my values are.`

type ChatService struct {
	store MessageStore
	llm   Completer
}

func NewChatService(store MessageStore, llm Completer) *ChatService {
	return &ChatService{store: store, llm: llm}
}

// Chat runs one turn: assemble context from the user's prior messages,
// complete against the LLM, then persist the user's message. The assistant
// reply is returned but never stored, so similarity search only ever sees
// human-written text.
func (s *ChatService) Chat(ctx context.Context, userID, userMessage string) (string, error) {
	turns, err := s.BuildContext(ctx, userID, userMessage)
	if err != nil {
		return "", fmt.Errorf("build context: %w", err)
	}

	reply, err := s.llm.Complete(ctx, turns)
	if err != nil {
		return "", fmt.Errorf("complete chat: %w", err)
	}

	if err := s.store.Add(ctx, userMessage, userID); err != nil {
		return "", fmt.Errorf("store user message: %w", err)
	}
	return reply, nil
}

// BuildContext retrieves the user's most relevant prior messages using the
// new message as the similarity probe and assembles the turn list: system
// prompt first, retrieved messages as prior user turns in the store's
// distance-ascending order, the new message last.
func (s *ChatService) BuildContext(ctx context.Context, userID, userMessage string) ([]domain.Turn, error) {
	matches, err := s.store.SearchByUser(ctx, userMessage, userID, contextLimit)
	if err != nil {
		return nil, err
	}

	turns := make([]domain.Turn, 0, len(matches)+2)
	turns = append(turns, domain.Turn{Role: domain.RoleSystem, Content: modelPrompt})
	for _, m := range matches {
		turns = append(turns, domain.Turn{Role: domain.RoleUser, Content: m.Text})
	}
	turns = append(turns, domain.Turn{Role: domain.RoleUser, Content: userMessage})
	return turns, nil
}

// UserMessages returns the raw texts of every stored message for a user.
func (s *ChatService) UserMessages(ctx context.Context, userID string) ([]string, error) {
	messages, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
	}
	return texts, nil
}
