package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

func (r *SubscriptionRepo) Get(ctx context.Context, userID string) (*domain.Subscription, error) {
	var s domain.Subscription
	var plan string
	var end sql.NullTime
	err := r.db.QueryRowContext(ctx, getSubscriptionSQL, userID).Scan(
		&s.UserID, &plan, &s.StartDate, &end, &s.IsActive, &s.AutoRenew,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("subscription not found")
	}
	if err != nil {
		return nil, err
	}
	s.PlanID = domain.PlanID(plan)
	if !s.PlanID.Valid() {
		return nil, domain.ErrInvalidState("invalid plan in db")
	}
	if end.Valid {
		t := end.Time
		s.EndDate = &t
	}
	return &s, nil
}

func (r *SubscriptionRepo) Save(ctx context.Context, s *domain.Subscription) error {
	_, err := r.db.ExecContext(ctx, upsertSubscriptionSQL,
		s.UserID, string(s.PlanID), s.StartDate, s.EndDate, s.IsActive, s.AutoRenew,
	)
	return err
}
