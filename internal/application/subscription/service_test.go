package subscription

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/entitlement"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// --- Mocks & Helpers ---

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type memRepo struct {
	byUser map[string]domain.Subscription
}

func newMemRepo() *memRepo { return &memRepo{byUser: map[string]domain.Subscription{}} }

func (m *memRepo) Get(ctx context.Context, userID string) (*domain.Subscription, error) {
	s, ok := m.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound("subscription not found")
	}
	return &s, nil
}

func (m *memRepo) Save(ctx context.Context, s *domain.Subscription) error {
	m.byUser[s.UserID] = *s
	return nil
}

type recordingPublisher struct {
	bodies map[string][][]byte
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, rk, id string, body []byte) error {
	if p.bodies == nil {
		p.bodies = map[string][][]byte{}
	}
	p.bodies[rk] = append(p.bodies[rk], body)
	return nil
}

func mustTime(t *testing.T, s string) time.Time {
	tt, _ := time.Parse(time.RFC3339, s)
	return tt.UTC()
}

// --- Test Cases ---

func TestService_Current_DefaultsToFree(t *testing.T) {
	clk := &fakeClock{t: mustTime(t, "2026-03-01T10:00:00Z")}
	svc := New(newMemRepo(), clk, nil)

	sub, err := svc.Current(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, sub.PlanID)
	assert.Nil(t, sub.EndDate)
	assert.True(t, sub.IsActive)
}

func TestService_Upgrade_ThenExpire(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	clk := &fakeClock{t: now}
	repo := newMemRepo()
	pub := &recordingPublisher{}
	svc := New(repo, clk, events.NewEmitter(pub, clk))
	ctx := context.Background()

	sub, err := svc.Upgrade(ctx, "u1", domain.PlanPremium)
	require.NoError(t, err)
	require.NotNil(t, sub.EndDate)
	assert.Equal(t, now.Add(30*24*time.Hour), *sub.EndDate)
	assert.True(t, sub.AutoRenew)

	t.Run("still_premium_before_end", func(t *testing.T) {
		clk.t = now.Add(29 * 24 * time.Hour)
		cur, err := svc.Current(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.PlanPremium, cur.PlanID)
	})

	t.Run("downgraded_after_end", func(t *testing.T) {
		clk.t = now.Add(31 * 24 * time.Hour)
		cur, err := svc.Current(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.PlanFree, cur.PlanID)
		assert.Nil(t, cur.EndDate)
		assert.Equal(t, clk.t, cur.StartDate)
		assert.Equal(t, domain.PlanFree, repo.byUser["u1"].PlanID)
		assert.Equal(t, clk.t, repo.byUser["u1"].StartDate)

		require.Len(t, pub.bodies[events.RKSubscriptionChanged], 2)
		var env events.DomainEventEnvelope[events.SubscriptionChangedPayload]
		require.NoError(t, json.Unmarshal(pub.bodies[events.RKSubscriptionChanged][1], &env))
		assert.Equal(t, "expired", env.Payload.Reason)
		assert.Equal(t, "premium", env.Payload.Previous)
	})
}

func TestService_Upgrade_InvalidPlan(t *testing.T) {
	svc := New(newMemRepo(), &fakeClock{t: time.Now()}, nil)
	_, err := svc.Upgrade(context.Background(), "u1", "gold")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestService_Cancel_KeepsPlanUntilEnd(t *testing.T) {
	now := mustTime(t, "2026-03-01T10:00:00Z")
	clk := &fakeClock{t: now}
	svc := New(newMemRepo(), clk, nil)
	ctx := context.Background()

	_, err := svc.Upgrade(ctx, "u1", domain.PlanStandard)
	require.NoError(t, err)

	sub, err := svc.Cancel(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, sub.AutoRenew)
	assert.Equal(t, domain.PlanStandard, sub.PlanID)

	days, err := svc.DaysRemaining(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, days)
	assert.Equal(t, 30, *days)
}

func TestService_Require(t *testing.T) {
	svc := New(newMemRepo(), &fakeClock{t: time.Now()}, nil)
	ctx := context.Background()

	err := svc.Require(ctx, "u1", entitlement.ActionExchange, 0)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodePlanLimit))
	assert.Equal(t, "free", err.(*domain.AppError).Meta["plan"])

	_, err = svc.Upgrade(ctx, "u1", domain.PlanStandard)
	require.NoError(t, err)
	assert.NoError(t, svc.Require(ctx, "u1", entitlement.ActionExchange, 0))

	ok, plan, err := svc.CanPerform(ctx, "u1", entitlement.ActionCreateAd, 35)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.PlanStandard, plan)
}
