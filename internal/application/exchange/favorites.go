package exchange

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// AddFavorite is idempotent; the listing must exist.
func (s *Service) AddFavorite(ctx context.Context, userID, listingID string) error {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return err
	}
	ok, err := s.favorites.Contains(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if err := s.favorites.Add(ctx, userID, listingID); err != nil {
		return err
	}
	s.userChanged(ctx, userID)
	return nil
}

// RemoveFavorite is idempotent.
func (s *Service) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	ok, err := s.favorites.Contains(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.favorites.Remove(ctx, userID, listingID); err != nil {
		return err
	}
	s.userChanged(ctx, userID)
	return nil
}

// ToggleFavorite flips membership and reports whether the listing is now a favorite.
func (s *Service) ToggleFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	ok, err := s.favorites.Contains(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	if ok {
		return false, s.RemoveFavorite(ctx, userID, listingID)
	}
	return true, s.AddFavorite(ctx, userID, listingID)
}

func (s *Service) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	return s.favorites.Contains(ctx, userID, listingID)
}

// Favorites resolves the user's favorite ids to listings, skipping deleted ones.
func (s *Service) Favorites(ctx context.Context, userID string) ([]domain.Listing, error) {
	ids, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		l, err := s.listings.GetByID(ctx, id)
		if err != nil {
			if domain.IsCode(err, domain.CodeNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *l)
	}
	return out, nil
}
