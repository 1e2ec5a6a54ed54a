package dto

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

func ToListingPatch(req UpdateListingReq) domain.ListingPatch {
	p := domain.ListingPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	}
	if req.Status != nil {
		st := domain.ListingStatus(*req.Status)
		p.Status = &st
	}
	return p
}

func ToRatingResp(r domain.Rating) RatingResp {
	return RatingResp{
		ID:          r.ID,
		ExchangeID:  r.ExchangeID,
		RatedUserID: r.RatedUserID,
		RaterUserID: r.RaterUserID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func ToRatingResps(rs []domain.Rating) []RatingResp {
	out := make([]RatingResp, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToRatingResp(r))
	}
	return out
}

func ToBadgeResps(bs []domain.Badge) []BadgeResp {
	out := make([]BadgeResp, 0, len(bs))
	for _, b := range bs {
		out = append(out, BadgeResp{
			Kind:        string(b.Kind),
			UserID:      b.UserID,
			Name:        b.Name,
			Description: b.Description,
			EarnedAt:    b.EarnedAt,
		})
	}
	return out
}

func ToStatsResp(st domain.UserStats, advanced bool) StatsResp {
	out := StatsResp{
		TotalExchanges:     st.TotalExchanges,
		CompletedExchanges: st.CompletedExchanges,
		ActiveExchanges:    st.ActiveExchanges,
	}
	if advanced {
		views, rate := st.TotalViews, st.SuccessRate
		out.TotalViews = &views
		out.SuccessRate = &rate
	}
	return out
}

func ToSuggestionStatsResp(st domain.SuggestionStats) SuggestionStatsResp {
	return SuggestionStatsResp{
		Total:    st.Total,
		Viewed:   st.Viewed,
		Unviewed: st.Unviewed,
		HasMore:  st.HasMore,
	}
}

func ToSubscriptionResp(s *domain.Subscription, now time.Time) SubscriptionResp {
	return SubscriptionResp{
		UserID:        s.UserID,
		PlanID:        string(s.PlanID),
		PlanName:      s.PlanID.DisplayName(),
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		IsActive:      s.IsActive,
		AutoRenew:     s.AutoRenew,
		DaysRemaining: s.DaysRemaining(now),
	}
}

// ToConversationResp reports Unread from the viewer's side.
func ToConversationResp(c domain.Conversation, viewerID string) ConversationResp {
	return ConversationResp{
		ID:                c.ID,
		ListingID:         c.ListingID,
		Participants:      c.Participants,
		LastMessage:       c.LastMessage,
		LastMessageAt:     c.LastMessageAt,
		Unread:            c.Unread[viewerID],
		UnreadBy:          c.Unread,
		ExchangeValidated: c.ExchangeValidated,
		CreatedAt:         c.CreatedAt,
	}
}

func ToMessageResp(m domain.Message) MessageResp {
	return MessageResp{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt,
	}
}
