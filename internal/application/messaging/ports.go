package messaging

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type ConversationRepo interface {
	Create(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	Find(ctx context.Context, listingID string, participants []string) (*domain.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]domain.Conversation, error)

	AppendMessage(ctx context.Context, m *domain.Message) (*domain.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
	MarkValidated(ctx context.Context, conversationID string) error
}

// Listings is the slice of the exchange store messaging needs.
type Listings interface {
	Get(ctx context.Context, id string) (*domain.Listing, error)
	CompleteListing(ctx context.Context, id string) (*domain.Listing, error)
}

type Entitlements interface {
	Require(ctx context.Context, userID, action string, count int) error
}
