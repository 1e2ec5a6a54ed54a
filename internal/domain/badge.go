package domain

import "time"

type BadgeKind string

const (
	BadgeReliable    BadgeKind = "reliable"
	BadgeResponsive  BadgeKind = "responsive"
	BadgeSuperTrader BadgeKind = "super_trader"
)

const (
	reliableMinAverage     = 4.5
	reliableMinRatings     = 5
	responsiveMinCompleted = 10
	superTraderMinComplete = 20
	superTraderMinAverage  = 4.0
)

type Badge struct {
	Kind        BadgeKind
	UserID      string
	Name        string
	Description string
	EarnedAt    time.Time
}

// UserStats aggregates a user's own listings.
type UserStats struct {
	TotalExchanges     int
	CompletedExchanges int
	ActiveExchanges    int
	TotalViews         int
	SuccessRate        float64 // percent
}

func ComputeUserStats(own []Listing) UserStats {
	var st UserStats
	st.TotalExchanges = len(own)
	for _, l := range own {
		switch l.Status {
		case StatusCompleted:
			st.CompletedExchanges++
		case StatusActive:
			st.ActiveExchanges++
		}
		st.TotalViews += l.Views
	}
	if st.TotalExchanges > 0 {
		st.SuccessRate = float64(st.CompletedExchanges) / float64(st.TotalExchanges) * 100
	}
	return st
}

// ComputeBadges evaluates every badge rule independently; a user may hold several.
// avg is expected to be the one-decimal average from AverageRating.
func ComputeBadges(userID string, stats UserStats, avg float64, ratingCount int, now time.Time) []Badge {
	out := []Badge{}
	earned := now.UTC()

	if avg >= reliableMinAverage && ratingCount >= reliableMinRatings {
		out = append(out, Badge{
			Kind:        BadgeReliable,
			UserID:      userID,
			Name:        "Reliable",
			Description: "Trusted trader with excellent ratings",
			EarnedAt:    earned,
		})
	}
	if stats.CompletedExchanges >= responsiveMinCompleted {
		out = append(out, Badge{
			Kind:        BadgeResponsive,
			UserID:      userID,
			Name:        "Responsive",
			Description: "Answers exchange requests quickly",
			EarnedAt:    earned,
		})
	}
	if stats.CompletedExchanges >= superTraderMinComplete && avg >= superTraderMinAverage {
		out = append(out, Badge{
			Kind:        BadgeSuperTrader,
			UserID:      userID,
			Name:        "Super trader",
			Description: "Many successful exchanges and a strong rating",
			EarnedAt:    earned,
		})
	}
	return out
}
