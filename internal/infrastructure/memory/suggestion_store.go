package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// SuggestionStore holds one suggestion list per user plus the catalogue and
// per-user epochs.
type SuggestionStore struct {
	mu         sync.RWMutex
	byUser     map[string]domain.SuggestionList
	epoch      int64
	userEpochs map[string]int64
}

func NewSuggestionStore() *SuggestionStore {
	return &SuggestionStore{
		byUser:     make(map[string]domain.SuggestionList),
		userEpochs: make(map[string]int64),
	}
}

func (s *SuggestionStore) Get(ctx context.Context, userID string) (*domain.SuggestionList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound("no suggestions stored")
	}
	out := cloneList(l)
	return &out, nil
}

func (s *SuggestionStore) Save(ctx context.Context, l domain.SuggestionList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUser[l.UserID] = cloneList(l)
	return nil
}

// MarkViewed flips exactly one suggestion's flag.
func (s *SuggestionStore) MarkViewed(ctx context.Context, userID, suggestionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.byUser[userID]
	if !ok {
		return domain.ErrNotFound("suggestion not found")
	}
	for i := range l.Items {
		if l.Items[i].ID == suggestionID {
			l.Items[i].Viewed = true
			return nil
		}
	}
	return domain.ErrNotFound("suggestion not found")
}

func (s *SuggestionStore) Epoch(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch, nil
}

func (s *SuggestionStore) BumpEpoch(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch, nil
}

func (s *SuggestionStore) UserEpoch(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userEpochs[userID], nil
}

func (s *SuggestionStore) BumpUserEpoch(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userEpochs[userID]++
	return s.userEpochs[userID], nil
}

func cloneList(l domain.SuggestionList) domain.SuggestionList {
	out := l
	out.Items = make([]domain.Suggestion, len(l.Items))
	for i, it := range l.Items {
		it.SuggestedItem = it.SuggestedItem.Clone()
		if it.UserItem != nil {
			u := it.UserItem.Clone()
			it.UserItem = &u
		}
		out.Items[i] = it
	}
	return out
}
