package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"match_server/server/matchman/domain"
)

// neighborLimit caps how many cross-user neighbors one similarity lookup
// pulls from the index before per-user aggregation.
const neighborLimit = 50

var (
	ErrNoMessages     = errors.New("no messages found for this user")
	ErrNoSimilarUsers = errors.New("no similar users found")
)

type SimilarityService struct {
	store MessageStore
}

func NewSimilarityService(store MessageStore) *SimilarityService {
	return &SimilarityService{store: store}
}

// MostSimilar finds the other user whose stored messages sit closest to the
// combined text of userID's messages. Every candidate keeps only the minimum
// distance seen across their matches; candidates are ranked ascending by that
// distance, ties resolved by first-encounter order.
func (s *SimilarityService) MostSimilar(ctx context.Context, userID string) (domain.SimilarityResult, error) {
	messages, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return domain.SimilarityResult{}, fmt.Errorf("load user messages: %w", err)
	}
	if len(messages) == 0 {
		return domain.SimilarityResult{}, ErrNoMessages
	}

	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
	}
	probe := strings.Join(texts, " ")

	matches, err := s.store.SearchExcludingUser(ctx, probe, userID, neighborLimit)
	if err != nil {
		return domain.SimilarityResult{}, fmt.Errorf("search neighbors: %w", err)
	}

	best := map[string]float64{}
	order := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.UserID == userID {
			continue
		}
		if seen, ok := best[match.UserID]; !ok {
			best[match.UserID] = match.Distance
			order = append(order, match.UserID)
		} else if match.Distance < seen {
			best[match.UserID] = match.Distance
		}
	}
	if len(order) == 0 {
		return domain.SimilarityResult{}, ErrNoSimilarUsers
	}

	sort.SliceStable(order, func(i, j int) bool {
		return best[order[i]] < best[order[j]]
	})
	return domain.SimilarityResult{UserID: order[0], Distance: best[order[0]]}, nil
}
