package subscription

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// SubscriptionRepo stores one subscription per user. Get returns a not_found AppError
// for users that never subscribed.
type SubscriptionRepo interface {
	Get(ctx context.Context, userID string) (*domain.Subscription, error)
	Save(ctx context.Context, s *domain.Subscription) error
}
