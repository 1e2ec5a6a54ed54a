package exchange

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/entitlement"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type CreateCmd struct {
	ActorID string

	Title       string
	Description string
	Category    string
	Location    string
}

// Create checks the create_ad entitlement against the owner's active listings.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Listing, error) {
	active, err := s.listings.CountActiveByOwner(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if s.ent != nil {
		if err := s.ent.Require(ctx, cmd.ActorID, entitlement.ActionCreateAd, active); err != nil {
			return nil, err
		}
	}

	l, err := domain.NewListing(cmd.ActorID, cmd.Title, cmd.Description, cmd.Category, cmd.Location, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}

	s.emitListing(ctx, events.RKListingCreated, l)
	s.catalogueChanged(ctx, l.OwnerID)
	return l, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

type UpdateCmd struct {
	ActorID   string
	ListingID string
	Patch     domain.ListingPatch
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Listing, error) {
	if cmd.Patch.Empty() {
		return nil, domain.ErrValidation("no fields to update")
	}
	l, err := s.listings.GetByID(ctx, cmd.ListingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != cmd.ActorID {
		return nil, domain.ErrForbidden("only the owner can edit a listing")
	}
	if err := l.ApplyPatch(cmd.Patch, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}

	s.emitListing(ctx, events.RKListingUpdated, l)
	s.catalogueChanged(ctx, l.OwnerID)
	return l, nil
}

// CompleteListing marks a listing completed after a validated exchange. It is a
// system transition and skips the owner check.
func (s *Service) CompleteListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	st := domain.StatusCompleted
	if err := l.ApplyPatch(domain.ListingPatch{Status: &st}, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}

	s.emitListing(ctx, events.RKListingUpdated, l)
	s.catalogueChanged(ctx, l.OwnerID)
	return l, nil
}

// Delete removes the listing; favorites pointing at it are dropped lazily on read.
func (s *Service) Delete(ctx context.Context, actorID, listingID string) error {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if l.OwnerID != actorID {
		return domain.ErrForbidden("only the owner can delete a listing")
	}
	if err := s.listings.Delete(ctx, listingID); err != nil {
		return err
	}

	s.emitListing(ctx, events.RKListingDeleted, l)
	s.catalogueChanged(ctx, l.OwnerID)
	return nil
}

// ShowInterest appends userID to the listing's interested list and counts a view.
// Repeat interest is kept. Stored suggestions embed the listing, so they go stale.
func (s *Service) ShowInterest(ctx context.Context, listingID, userID string) (*domain.Listing, error) {
	if userID == "" {
		return nil, domain.ErrValidation("user id is required")
	}
	l, err := s.listings.RegisterInterest(ctx, listingID, userID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.em, events.RKListingInterest, events.ListingInterestPayload{
		ListingID: l.ID,
		OwnerID:   l.OwnerID,
		UserID:    userID,
		Views:     l.Views,
	})
	zlog.Debug().Str("listing_id", l.ID).Str("user_id", userID).Msg("interest registered")
	s.catalogueChanged(ctx, l.OwnerID)
	return l, nil
}

// Search filters listings. A non-empty query from an identified user is pushed to
// that user's search history once the search succeeded.
func (s *Service) Search(ctx context.Context, userID string, f domain.ListingFilter) ([]domain.Listing, error) {
	if err := f.Normalize(); err != nil {
		return nil, err
	}
	out, err := s.listings.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	if userID != "" && f.Query != "" {
		if err := s.history.Push(ctx, userID, f.Query); err != nil {
			zlog.Warn().Err(err).Str("user_id", userID).Msg("search history push failed")
		} else {
			s.userChanged(ctx, userID)
		}
	}
	return out, nil
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Listing, error) {
	f := domain.ListingFilter{Category: category}
	if err := f.Normalize(); err != nil {
		return nil, err
	}
	if f.Category == "" {
		return nil, domain.ErrValidation("category is required")
	}
	return s.listings.Search(ctx, f)
}

func (s *Service) MyListings(ctx context.Context, userID string) ([]domain.Listing, error) {
	return s.listings.ListByOwner(ctx, userID)
}

func (s *Service) SearchHistory(ctx context.Context, userID string) ([]string, error) {
	return s.history.List(ctx, userID)
}

func (s *Service) emitListing(ctx context.Context, rk string, l *domain.Listing) {
	events.Emit(ctx, s.em, rk, events.ListingPayload{
		ListingID: l.ID,
		OwnerID:   l.OwnerID,
		Title:     l.Title,
		Category:  l.Category,
		Location:  l.Location,
		Status:    string(l.Status),
	})
}
