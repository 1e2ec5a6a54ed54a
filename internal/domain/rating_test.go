package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampRating(t *testing.T) {
	for _, v := range []int{-10, 0, 1, 2, 3, 4, 5, 6, 100} {
		assert.Equal(t, max(1, min(5, v)), ClampRating(v))
	}
}

func TestNewRating(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")

	t.Run("clamps_out_of_range", func(t *testing.T) {
		r, err := NewRating("ex1", "u1", "u2", 9, "great", now)
		require.NoError(t, err)
		assert.Equal(t, 5, r.Rating)
	})

	t.Run("self_rating_rejected", func(t *testing.T) {
		_, err := NewRating("ex1", "u1", "u1", 5, "", now)
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeValidation))
	})

	t.Run("missing_exchange", func(t *testing.T) {
		_, err := NewRating("", "u1", "u2", 5, "", now)
		require.Error(t, err)
	})
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	rs := []Rating{{Rating: 5}, {Rating: 4}, {Rating: 4}}
	assert.Equal(t, 4.3, AverageRating(rs))
}

func TestComputeBadges(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")

	kinds := func(bs []Badge) []BadgeKind {
		out := []BadgeKind{}
		for _, b := range bs {
			out = append(out, b.Kind)
		}
		return out
	}

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, ComputeBadges("u", UserStats{}, 0, 0, now))
	})

	t.Run("reliable_needs_five_ratings", func(t *testing.T) {
		assert.Empty(t, ComputeBadges("u", UserStats{}, 5, 4, now))
		assert.Equal(t, []BadgeKind{BadgeReliable}, kinds(ComputeBadges("u", UserStats{}, 4.5, 5, now)))
	})

	t.Run("all_three", func(t *testing.T) {
		bs := ComputeBadges("u", UserStats{CompletedExchanges: 20}, 4.8, 6, now)
		assert.Equal(t, []BadgeKind{BadgeReliable, BadgeResponsive, BadgeSuperTrader}, kinds(bs))
		assert.Equal(t, "u", bs[0].UserID)
		assert.Equal(t, now, bs[0].EarnedAt)
	})

	t.Run("super_trader_needs_average", func(t *testing.T) {
		bs := ComputeBadges("u", UserStats{CompletedExchanges: 25}, 3.9, 10, now)
		assert.Equal(t, []BadgeKind{BadgeResponsive}, kinds(bs))
	})
}

func TestComputeUserStats(t *testing.T) {
	own := []Listing{
		{Status: StatusCompleted, Views: 3},
		{Status: StatusActive, Views: 2},
		{Status: StatusActive},
		{Status: StatusCancelled, Views: 1},
	}
	st := ComputeUserStats(own)
	assert.Equal(t, 4, st.TotalExchanges)
	assert.Equal(t, 1, st.CompletedExchanges)
	assert.Equal(t, 2, st.ActiveExchanges)
	assert.Equal(t, 6, st.TotalViews)
	assert.Equal(t, 25.0, st.SuccessRate)

	assert.Equal(t, 0.0, ComputeUserStats(nil).SuccessRate)
}
