package suggestion

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// InputSource snapshots a user's exchange state; exchange.Service implements it.
type InputSource interface {
	SuggestionInput(ctx context.Context, userID string) (domain.SuggestionInput, error)
}

// Store keeps one list per user, a global catalogue epoch and a per-user epoch.
// Get and MarkViewed return a not_found AppError when nothing matches.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.SuggestionList, error)
	Save(ctx context.Context, l domain.SuggestionList) error
	MarkViewed(ctx context.Context, userID, suggestionID string) error

	Epoch(ctx context.Context) (int64, error)
	BumpEpoch(ctx context.Context) (int64, error)

	UserEpoch(ctx context.Context, userID string) (int64, error)
	BumpUserEpoch(ctx context.Context, userID string) (int64, error)
}
