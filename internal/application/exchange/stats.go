package exchange

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/entitlement"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// BasicStats is the part of domain.UserStats open to every plan.
type BasicStats struct {
	TotalExchanges     int
	CompletedExchanges int
	ActiveExchanges    int
}

func (s *Service) Stats(ctx context.Context, userID string) (BasicStats, error) {
	own, err := s.listings.ListByOwner(ctx, userID)
	if err != nil {
		return BasicStats{}, err
	}
	st := domain.ComputeUserStats(own)
	return BasicStats{
		TotalExchanges:     st.TotalExchanges,
		CompletedExchanges: st.CompletedExchanges,
		ActiveExchanges:    st.ActiveExchanges,
	}, nil
}

// AdvancedStats adds views and success rate; requires view_advanced_stats.
func (s *Service) AdvancedStats(ctx context.Context, userID string) (domain.UserStats, error) {
	if s.ent != nil {
		if err := s.ent.Require(ctx, userID, entitlement.ActionViewAdvancedStats, 0); err != nil {
			return domain.UserStats{}, err
		}
	}
	own, err := s.listings.ListByOwner(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	return domain.ComputeUserStats(own), nil
}
