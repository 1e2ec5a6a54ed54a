package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type SubscriptionStore struct {
	mu     sync.RWMutex
	byUser map[string]domain.Subscription
}

func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{byUser: make(map[string]domain.Subscription)}
}

func (s *SubscriptionStore) Get(ctx context.Context, userID string) (*domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound("subscription not found")
	}
	if sub.EndDate != nil {
		end := *sub.EndDate
		sub.EndDate = &end
	}
	return &sub, nil
}

func (s *SubscriptionStore) Save(ctx context.Context, sub *domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sub
	if sub.EndDate != nil {
		end := *sub.EndDate
		cp.EndDate = &end
	}
	s.byUser[sub.UserID] = cp
	return nil
}
