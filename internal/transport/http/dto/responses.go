package dto

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type ListResp[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewList[T any](items []T) ListResp[T] {
	if items == nil {
		items = []T{}
	}
	return ListResp[T]{Items: items, Total: len(items)}
}

type RatingResp struct {
	ID          string    `json:"id"`
	ExchangeID  string    `json:"exchange_id"`
	RatedUserID string    `json:"rated_user_id"`
	RaterUserID string    `json:"rater_user_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

type AverageRatingResp struct {
	UserID  string  `json:"user_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type BadgeResp struct {
	Kind        string    `json:"kind"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
}

type StatsResp struct {
	TotalExchanges     int      `json:"total_exchanges"`
	CompletedExchanges int      `json:"completed_exchanges"`
	ActiveExchanges    int      `json:"active_exchanges"`
	TotalViews         *int     `json:"total_views,omitempty"`
	SuccessRate        *float64 `json:"success_rate,omitempty"`
}

type PreferencesResp struct {
	Categories []string `json:"categories"`
	Interests  []string `json:"interests"`
}

type FavoriteStateResp struct {
	ListingID  string `json:"listing_id"`
	IsFavorite bool   `json:"is_favorite"`
}

type SuggestionStatsResp struct {
	Total    int  `json:"total"`
	Viewed   int  `json:"viewed"`
	Unviewed int  `json:"unviewed"`
	HasMore  bool `json:"has_more"`
}

type SuggestionsResp struct {
	Items       []domain.Suggestion `json:"items"`
	GeneratedAt *time.Time          `json:"generated_at,omitempty"`
	Stats       SuggestionStatsResp `json:"stats"`
}

type SubscriptionResp struct {
	UserID        string     `json:"user_id"`
	PlanID        string     `json:"plan_id"`
	PlanName      string     `json:"plan_name"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	IsActive      bool       `json:"is_active"`
	AutoRenew     bool       `json:"auto_renew"`
	DaysRemaining *int       `json:"days_remaining"`
}

type EntitlementResp struct {
	Action  string `json:"action"`
	Plan    string `json:"plan"`
	Count   int    `json:"count"`
	Allowed bool   `json:"allowed"`
}

type ConversationResp struct {
	ID                string         `json:"id"`
	ListingID         string         `json:"listing_id"`
	Participants      []string       `json:"participants"`
	LastMessage       string         `json:"last_message"`
	LastMessageAt     *time.Time     `json:"last_message_at"`
	Unread            int            `json:"unread"`
	UnreadBy          map[string]int `json:"unread_by"`
	ExchangeValidated bool           `json:"exchange_validated"`
	CreatedAt         time.Time      `json:"created_at"`
}

type MessageResp struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}
