package exchange

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

func (s *Service) Preferences(ctx context.Context, userID string) (domain.UserPreferences, error) {
	in, err := s.SuggestionInput(ctx, userID)
	if err != nil {
		return domain.UserPreferences{}, err
	}
	return in.Preferences, nil
}

// SuggestionInput snapshots everything the suggestion engine needs for userID.
// Candidates are active listings; favorites follow catalogue order.
func (s *Service) SuggestionInput(ctx context.Context, userID string) (domain.SuggestionInput, error) {
	all, err := s.listings.Search(ctx, domain.ListingFilter{})
	if err != nil {
		return domain.SuggestionInput{}, err
	}
	favIDs, err := s.favorites.List(ctx, userID)
	if err != nil {
		return domain.SuggestionInput{}, err
	}
	history, err := s.history.List(ctx, userID)
	if err != nil {
		return domain.SuggestionInput{}, err
	}

	isFav := make(map[string]bool, len(favIDs))
	for _, id := range favIDs {
		isFav[id] = true
	}

	in := domain.SuggestionInput{
		UserID:    userID,
		Catalogue: []domain.Listing{},
		Own:       []domain.Listing{},
		Favorites: []domain.Listing{},
		History:   history,
	}
	for _, l := range all {
		switch {
		case l.OwnerID == userID:
			in.Own = append(in.Own, l)
		case isFav[l.ID]:
			in.Favorites = append(in.Favorites, l)
		}
		if l.Status == domain.StatusActive {
			in.Catalogue = append(in.Catalogue, l)
		}
	}
	in.Preferences = domain.AnalyzePreferences(in.Favorites, in.Own, in.History)
	return in, nil
}
