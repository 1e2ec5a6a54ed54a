package events

import "time"

const (
	EventVersion  = 1
	EventProducer = "barter-service"
)

// Routing keys emitted by barter-service.
const (
	RKListingCreated      = "listing.created"
	RKListingUpdated      = "listing.updated"
	RKListingDeleted      = "listing.deleted"
	RKListingInterest     = "listing.interest"
	RKRatingSubmitted     = "rating.submitted"
	RKSubscriptionChanged = "subscription.changed"
	RKMessageSent         = "message.sent"
	RKExchangeValidated   = "exchange.validated"
)

// DomainEventEnvelope is the stable contract for all domain events emitted by barter-service.
// Consumers should rely on: version/producer/message_id/occurred_at + payload.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// ListingPayload is used for listing.created, listing.updated and listing.deleted.
type ListingPayload struct {
	ListingID string `json:"listing_id"`
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title,omitempty"`
	Category  string `json:"category,omitempty"`
	Location  string `json:"location,omitempty"`
	Status    string `json:"status,omitempty"`
}

// ListingInterestPayload is the business payload for routing key: listing.interest
type ListingInterestPayload struct {
	ListingID string `json:"listing_id"`
	OwnerID   string `json:"owner_id"`
	UserID    string `json:"user_id"`
	Views     int    `json:"views"`
}

// RatingSubmittedPayload is the business payload for routing key: rating.submitted
type RatingSubmittedPayload struct {
	RatingID    string   `json:"rating_id"`
	ExchangeID  string   `json:"exchange_id"`
	RatedUserID string   `json:"rated_user_id"`
	RaterUserID string   `json:"rater_user_id"`
	Rating      int      `json:"rating"`
	Average     float64  `json:"average"`
	Badges      []string `json:"badges"`
}

// SubscriptionChangedPayload is the business payload for routing key: subscription.changed
type SubscriptionChangedPayload struct {
	UserID    string     `json:"user_id"`
	PlanID    string     `json:"plan_id"`
	Previous  string     `json:"previous_plan_id"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	AutoRenew bool       `json:"auto_renew"`
	Reason    string     `json:"reason"` // upgrade | cancel | expired
}

// MessageSentPayload is the business payload for routing key: message.sent
type MessageSentPayload struct {
	MessageID      string   `json:"message_id"`
	ConversationID string   `json:"conversation_id"`
	ListingID      string   `json:"listing_id"`
	SenderID       string   `json:"sender_id"`
	Recipients     []string `json:"recipients"`
}

// ExchangeValidatedPayload is the business payload for routing key: exchange.validated
type ExchangeValidatedPayload struct {
	ConversationID string   `json:"conversation_id"`
	ListingID      string   `json:"listing_id"`
	ValidatedBy    string   `json:"validated_by"`
	Participants   []string `json:"participants"`
}
