package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// HistoryStore keeps the most-recent-first search history per user.
type HistoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]string
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{byUser: make(map[string][]string)}
}

func (s *HistoryStore) Push(ctx context.Context, userID, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUser[userID] = domain.PushSearchQuery(s.byUser[userID], query)
	return nil
}

func (s *HistoryStore) List(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string{}, s.byUser[userID]...), nil
}
