package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type BadgeStore struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Badge
}

func NewBadgeStore() *BadgeStore {
	return &BadgeStore{byUser: make(map[string][]domain.Badge)}
}

// Replace swaps the user's badge set wholesale.
func (s *BadgeStore) Replace(ctx context.Context, userID string, badges []domain.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUser[userID] = append([]domain.Badge{}, badges...)
	return nil
}

func (s *BadgeStore) List(ctx context.Context, userID string) ([]domain.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Badge{}, s.byUser[userID]...), nil
}
