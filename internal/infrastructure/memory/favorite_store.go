package memory

import (
	"context"
	"sort"
	"sync"
)

// FavoriteStore keeps a set of listing ids per user.
type FavoriteStore struct {
	mu     sync.RWMutex
	byUser map[string]map[string]struct{}
}

func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{byUser: make(map[string]map[string]struct{})}
}

func (s *FavoriteStore) Add(ctx context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.byUser[userID]
	if !ok {
		set = make(map[string]struct{})
		s.byUser[userID] = set
	}
	set[listingID] = struct{}{}
	return nil
}

func (s *FavoriteStore) Remove(ctx context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byUser[userID], listingID)
	return nil
}

func (s *FavoriteStore) Contains(ctx context.Context, userID, listingID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byUser[userID][listingID]
	return ok, nil
}

// List returns the ids sorted, so callers get a stable order.
func (s *FavoriteStore) List(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.byUser[userID]))
	for id := range s.byUser[userID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
