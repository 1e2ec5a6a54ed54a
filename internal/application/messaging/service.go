package messaging

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/entitlement"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type Service struct {
	repo     ConversationRepo
	listings Listings
	ent      Entitlements
	clock    Clock
	em       *events.Emitter
}

func New(repo ConversationRepo, listings Listings, ent Entitlements, clock Clock, em *events.Emitter) *Service {
	return &Service{repo: repo, listings: listings, ent: ent, clock: clock, em: em}
}

// Start opens (or returns the existing) conversation between actor and the listing owner.
func (s *Service) Start(ctx context.Context, actorID, listingID string) (*domain.Conversation, error) {
	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID == actorID {
		return nil, domain.ErrInvalidState("cannot start a conversation about your own listing")
	}
	c, err := domain.NewConversation(l.ID, []string{actorID, l.OwnerID}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Find(ctx, c.ListingID, c.Participants)
	if err == nil {
		return existing, nil
	}
	if !domain.IsCode(err, domain.CodeNotFound) {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return s.repo.ListByParticipant(ctx, userID)
}

// Send requires the message entitlement; blank text is rejected.
func (s *Service) Send(ctx context.Context, actorID, conversationID, text string) (*domain.Message, error) {
	c, err := s.participantConversation(ctx, actorID, conversationID)
	if err != nil {
		return nil, err
	}
	if err := s.ent.Require(ctx, actorID, entitlement.ActionMessage, 0); err != nil {
		return nil, err
	}
	m, err := domain.NewMessage(c.ID, actorID, text, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.AppendMessage(ctx, m); err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p != actorID {
			recipients = append(recipients, p)
		}
	}
	events.Emit(ctx, s.em, events.RKMessageSent, events.MessageSentPayload{
		MessageID:      m.ID,
		ConversationID: c.ID,
		ListingID:      c.ListingID,
		SenderID:       actorID,
		Recipients:     recipients,
	})
	return m, nil
}

func (s *Service) Messages(ctx context.Context, actorID, conversationID string) ([]domain.Message, error) {
	if _, err := s.participantConversation(ctx, actorID, conversationID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, conversationID)
}

// MarkRead resets the actor's unread count.
func (s *Service) MarkRead(ctx context.Context, actorID, conversationID string) error {
	if _, err := s.participantConversation(ctx, actorID, conversationID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, conversationID, actorID)
}

// ValidateExchange requires the exchange entitlement, flags the conversation
// and marks its listing completed.
func (s *Service) ValidateExchange(ctx context.Context, actorID, conversationID string) (*domain.Conversation, error) {
	c, err := s.participantConversation(ctx, actorID, conversationID)
	if err != nil {
		return nil, err
	}
	if c.ExchangeValidated {
		return nil, domain.ErrInvalidState("exchange already validated")
	}
	if err := s.ent.Require(ctx, actorID, entitlement.ActionExchange, 0); err != nil {
		return nil, err
	}
	if err := s.repo.MarkValidated(ctx, c.ID); err != nil {
		return nil, err
	}
	c.ExchangeValidated = true

	if _, err := s.listings.CompleteListing(ctx, c.ListingID); err != nil {
		// listing may have been deleted since; the validation stands
		zlog.Warn().Err(err).Str("listing_id", c.ListingID).Msg("complete listing after validation failed")
	}

	events.Emit(ctx, s.em, events.RKExchangeValidated, events.ExchangeValidatedPayload{
		ConversationID: c.ID,
		ListingID:      c.ListingID,
		ValidatedBy:    actorID,
		Participants:   c.Participants,
	})
	return c, nil
}

func (s *Service) participantConversation(ctx context.Context, actorID, conversationID string) (*domain.Conversation, error) {
	c, err := s.repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(actorID) {
		return nil, domain.ErrForbidden("not a participant of this conversation")
	}
	return c, nil
}
