package exchange

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type RateCmd struct {
	ExchangeID  string
	RatedUserID string
	RaterUserID string
	Rating      int
	Comment     string
}

// Rate stores a clamped rating and recomputes the rated user's badges.
func (s *Service) Rate(ctx context.Context, cmd RateCmd) (*domain.Rating, error) {
	r, err := domain.NewRating(cmd.ExchangeID, cmd.RatedUserID, cmd.RaterUserID, cmd.Rating, cmd.Comment, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.ratings.Create(ctx, r); err != nil {
		return nil, err
	}

	badges, avg, err := s.recomputeBadges(ctx, r.RatedUserID)
	if err != nil {
		// the rating itself is stored; badges catch up on the next recompute
		zlog.Error().Err(err).Str("user_id", r.RatedUserID).Msg("badge recompute failed")
	}

	kinds := make([]string, 0, len(badges))
	for _, b := range badges {
		kinds = append(kinds, string(b.Kind))
	}
	events.Emit(ctx, s.em, events.RKRatingSubmitted, events.RatingSubmittedPayload{
		RatingID:    r.ID,
		ExchangeID:  r.ExchangeID,
		RatedUserID: r.RatedUserID,
		RaterUserID: r.RaterUserID,
		Rating:      r.Rating,
		Average:     avg,
		Badges:      kinds,
	})
	return r, nil
}

// RemoveRating deletes a rating written by actorID and recomputes badges.
func (s *Service) RemoveRating(ctx context.Context, actorID, ratingID string) error {
	r, err := s.ratings.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if r.RaterUserID != actorID {
		return domain.ErrForbidden("only the author can remove a rating")
	}
	if err := s.ratings.Delete(ctx, ratingID); err != nil {
		return err
	}
	_, _, err = s.recomputeBadges(ctx, r.RatedUserID)
	return err
}

func (s *Service) Ratings(ctx context.Context, userID string) ([]domain.Rating, error) {
	return s.ratings.ListByRated(ctx, userID)
}

// AverageRating is rounded to one decimal; 0 with no ratings.
func (s *Service) AverageRating(ctx context.Context, userID string) (float64, int, error) {
	rs, err := s.ratings.ListByRated(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return domain.AverageRating(rs), len(rs), nil
}

func (s *Service) Badges(ctx context.Context, userID string) ([]domain.Badge, error) {
	return s.badges.List(ctx, userID)
}

// UpdateUserBadges recomputes and replaces the user's badge set.
func (s *Service) UpdateUserBadges(ctx context.Context, userID string) ([]domain.Badge, error) {
	badges, _, err := s.recomputeBadges(ctx, userID)
	return badges, err
}

func (s *Service) recomputeBadges(ctx context.Context, userID string) ([]domain.Badge, float64, error) {
	rs, err := s.ratings.ListByRated(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	own, err := s.listings.ListByOwner(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	avg := domain.AverageRating(rs)
	badges := domain.ComputeBadges(userID, domain.ComputeUserStats(own), avg, len(rs), s.clock.Now())
	if err := s.badges.Replace(ctx, userID, badges); err != nil {
		return nil, avg, err
	}
	return badges, avg, nil
}
