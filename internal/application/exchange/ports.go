package exchange

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// ListingRepo returns listings in creation order. Missing ids yield a not_found AppError.
type ListingRepo interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
	RegisterInterest(ctx context.Context, id, userID string, now time.Time) (*domain.Listing, error)

	Search(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	Contains(ctx context.Context, userID, listingID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
}

// HistoryStore keeps at most domain.SearchHistoryLimit queries, most recent first.
type HistoryStore interface {
	Push(ctx context.Context, userID, query string) error
	List(ctx context.Context, userID string) ([]string, error)
}

type RatingRepo interface {
	Create(ctx context.Context, r *domain.Rating) error
	GetByID(ctx context.Context, id string) (*domain.Rating, error)
	Delete(ctx context.Context, id string) error
	ListByRated(ctx context.Context, userID string) ([]domain.Rating, error)
}

type BadgeRepo interface {
	Replace(ctx context.Context, userID string, badges []domain.Badge) error
	List(ctx context.Context, userID string) ([]domain.Badge, error)
}

// Entitlements gates plan-limited actions; subscription.Service implements it.
type Entitlements interface {
	Require(ctx context.Context, userID, action string, count int) error
}

// Refresher is told about changes that invalidate suggestion lists.
type Refresher interface {
	UserChanged(ctx context.Context, userID string)
	CatalogueChanged(ctx context.Context)
}

type NoopRefresher struct{}

func (NoopRefresher) UserChanged(context.Context, string) {}
func (NoopRefresher) CatalogueChanged(context.Context)    {}
