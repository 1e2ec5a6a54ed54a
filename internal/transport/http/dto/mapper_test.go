package dto

import (
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToListingPatch(t *testing.T) {
	title := "New"
	status := "completed"
	p := ToListingPatch(UpdateListingReq{Title: &title, Status: &status})

	require.NotNil(t, p.Title)
	assert.Equal(t, "New", *p.Title)
	require.NotNil(t, p.Status)
	assert.Equal(t, domain.StatusCompleted, *p.Status)
	assert.Nil(t, p.Category)

	assert.True(t, ToListingPatch(UpdateListingReq{}).Empty())
}

func TestToStatsResp(t *testing.T) {
	st := domain.UserStats{TotalExchanges: 4, CompletedExchanges: 1, ActiveExchanges: 3, TotalViews: 9, SuccessRate: 25}

	basic := ToStatsResp(st, false)
	assert.Nil(t, basic.TotalViews)
	assert.Nil(t, basic.SuccessRate)

	adv := ToStatsResp(st, true)
	require.NotNil(t, adv.TotalViews)
	assert.Equal(t, 9, *adv.TotalViews)
	assert.Equal(t, 25.0, *adv.SuccessRate)
}

func TestToSubscriptionResp(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	free := domain.FreeSubscription("u1", now)
	resp := ToSubscriptionResp(&free, now)
	assert.Equal(t, "free", resp.PlanID)
	assert.Nil(t, resp.DaysRemaining)

	paid, err := domain.NewSubscription("u1", domain.PlanPremium, now)
	require.NoError(t, err)
	resp = ToSubscriptionResp(&paid, now.Add(24*time.Hour))
	require.NotNil(t, resp.DaysRemaining)
	assert.Equal(t, 29, *resp.DaysRemaining)
	assert.Equal(t, paid.PlanID.DisplayName(), resp.PlanName)
}

func TestToConversationResp_ViewerUnread(t *testing.T) {
	c := domain.Conversation{
		ID:           "c1",
		Participants: []string{"u1", "u2"},
		Unread:       map[string]int{"u1": 0, "u2": 2},
	}
	assert.Equal(t, 2, ToConversationResp(c, "u2").Unread)
	assert.Equal(t, 0, ToConversationResp(c, "u1").Unread)
}

func TestNewList_NeverNull(t *testing.T) {
	l := NewList[string](nil)
	assert.NotNil(t, l.Items)
	assert.Equal(t, 0, l.Total)
}
