package domain

import (
	"math"
	"time"
)

// SubscriptionPeriod is the paid period granted by an upgrade.
const SubscriptionPeriod = 30 * 24 * time.Hour

type Subscription struct {
	UserID    string
	PlanID    PlanID
	StartDate time.Time
	EndDate   *time.Time // nil for free
	IsActive  bool
	AutoRenew bool
}

// FreeSubscription is the state every user starts from and falls back to on expiry.
func FreeSubscription(userID string, now time.Time) Subscription {
	return Subscription{
		UserID:    userID,
		PlanID:    PlanFree,
		StartDate: now.UTC(),
		IsActive:  true,
	}
}

// NewSubscription starts plan at now; paid plans run for SubscriptionPeriod and auto-renew.
func NewSubscription(userID string, plan PlanID, now time.Time) (Subscription, error) {
	if !plan.Valid() {
		return Subscription{}, ErrValidationMeta("invalid plan", map[string]string{
			"plan": "must be one of: free, standard, premium, business",
		})
	}
	if plan == PlanFree {
		return FreeSubscription(userID, now), nil
	}
	end := now.UTC().Add(SubscriptionPeriod)
	return Subscription{
		UserID:    userID,
		PlanID:    plan,
		StartDate: now.UTC(),
		EndDate:   &end,
		IsActive:  true,
		AutoRenew: true,
	}, nil
}

func (s Subscription) Expired(now time.Time) bool {
	return s.EndDate != nil && now.After(*s.EndDate)
}

// DaysRemaining rounds up to whole days; nil when the plan has no end date.
func (s Subscription) DaysRemaining(now time.Time) *int {
	if s.EndDate == nil {
		return nil
	}
	d := int(math.Ceil(s.EndDate.Sub(now).Hours() / 24))
	if d < 0 {
		d = 0
	}
	return &d
}
