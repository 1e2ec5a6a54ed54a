package subscription

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/entitlement"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

type Service struct {
	repo  SubscriptionRepo
	clock Clock
	em    *events.Emitter
}

func New(repo SubscriptionRepo, clock Clock, em *events.Emitter) *Service {
	return &Service{repo: repo, clock: clock, em: em}
}

// Current returns the user's subscription with lazy expiry applied: a paid plan whose
// end date has passed is downgraded to free and persisted.
func (s *Service) Current(ctx context.Context, userID string) (*domain.Subscription, error) {
	now := s.clock.Now()
	sub, err := s.repo.Get(ctx, userID)
	if err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			free := domain.FreeSubscription(userID, now)
			return &free, nil
		}
		return nil, err
	}

	if sub.PlanID != domain.PlanFree && sub.Expired(now) {
		prev := sub.PlanID
		sub.PlanID = domain.PlanFree
		sub.StartDate = now.UTC()
		sub.EndDate = nil
		sub.AutoRenew = false
		sub.IsActive = true
		if err := s.repo.Save(ctx, sub); err != nil {
			return nil, err
		}
		zlog.Info().Str("user_id", userID).Str("previous_plan", string(prev)).Msg("subscription expired, downgraded to free")
		s.emitChanged(ctx, sub, prev, "expired")
	}
	return sub, nil
}

// Upgrade switches the user to plan starting now.
func (s *Service) Upgrade(ctx context.Context, userID string, plan domain.PlanID) (*domain.Subscription, error) {
	cur, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := domain.NewSubscription(userID, plan, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, err
	}
	s.emitChanged(ctx, &next, cur.PlanID, "upgrade")
	return &next, nil
}

// Cancel turns auto-renew off; the plan stays until its end date.
func (s *Service) Cancel(ctx context.Context, userID string) (*domain.Subscription, error) {
	sub, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub.AutoRenew = false
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	s.emitChanged(ctx, sub, sub.PlanID, "cancel")
	return sub, nil
}

// DaysRemaining is nil for plans without an end date.
func (s *Service) DaysRemaining(ctx context.Context, userID string) (*int, error) {
	sub, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sub.DaysRemaining(s.clock.Now()), nil
}

// CanPerform resolves the user's current plan and applies entitlement.CanPerformAction.
func (s *Service) CanPerform(ctx context.Context, userID, action string, count int) (bool, domain.PlanID, error) {
	sub, err := s.Current(ctx, userID)
	if err != nil {
		return false, "", err
	}
	return entitlement.CanPerformAction(sub.PlanID, action, count), sub.PlanID, nil
}

// Require returns a plan_limit error when the user's plan does not grant action.
func (s *Service) Require(ctx context.Context, userID, action string, count int) error {
	ok, plan, err := s.CanPerform(ctx, userID, action, count)
	if err != nil {
		return err
	}
	if !ok {
		metrics.RecordPlanDenied(action, string(plan))
		return domain.ErrPlanLimit(action, plan)
	}
	return nil
}

func (s *Service) emitChanged(ctx context.Context, sub *domain.Subscription, prev domain.PlanID, reason string) {
	events.Emit(ctx, s.em, events.RKSubscriptionChanged, events.SubscriptionChangedPayload{
		UserID:    sub.UserID,
		PlanID:    string(sub.PlanID),
		Previous:  string(prev),
		EndDate:   sub.EndDate,
		AutoRenew: sub.AutoRenew,
		Reason:    reason,
	})
}
