package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// RatingStore is append-only apart from explicit removal.
type RatingStore struct {
	mu      sync.RWMutex
	ratings []domain.Rating
}

func NewRatingStore() *RatingStore { return &RatingStore{} }

func (s *RatingStore) Create(ctx context.Context, r *domain.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings = append(s.ratings, *r)
	return nil
}

func (s *RatingStore) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.ratings {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound("rating not found")
}

func (s *RatingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.ratings {
		if r.ID == id {
			s.ratings = append(s.ratings[:i:i], s.ratings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("rating not found")
}

func (s *RatingStore) ListByRated(ctx context.Context, userID string) ([]domain.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Rating{}
	for _, r := range s.ratings {
		if r.RatedUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
