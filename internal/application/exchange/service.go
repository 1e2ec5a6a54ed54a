package exchange

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
)

// Deps groups the stores the exchange service works over.
type Deps struct {
	Listings  ListingRepo
	Favorites FavoriteStore
	History   HistoryStore
	Ratings   RatingRepo
	Badges    BadgeRepo
}

type Service struct {
	listings  ListingRepo
	favorites FavoriteStore
	history   HistoryStore
	ratings   RatingRepo
	badges    BadgeRepo

	ent       Entitlements
	refresher Refresher
	em        *events.Emitter
	clock     Clock
}

func New(d Deps, ent Entitlements, clock Clock, em *events.Emitter) *Service {
	return &Service{
		listings:  d.Listings,
		favorites: d.Favorites,
		history:   d.History,
		ratings:   d.Ratings,
		badges:    d.Badges,
		ent:       ent,
		refresher: NoopRefresher{},
		em:        em,
		clock:     clock,
	}
}

// SetRefresher wires the suggestion refresher after construction, since the
// suggestion service itself reads from this service.
func (s *Service) SetRefresher(r Refresher) {
	if r == nil {
		r = NoopRefresher{}
	}
	s.refresher = r
}

func (s *Service) userChanged(ctx context.Context, userID string) {
	s.refresher.UserChanged(ctx, userID)
}

func (s *Service) catalogueChanged(ctx context.Context, ownerID string) {
	s.refresher.CatalogueChanged(ctx)
	s.refresher.UserChanged(ctx, ownerID)
}
