package suggestion

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/events"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/application/exchange"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/infrastructure/memory"
)

// --- Mocks & Helpers ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

// fakeSource serves a mutable snapshot and counts reads.
type fakeSource struct {
	mu    sync.Mutex
	in    domain.SuggestionInput
	calls atomic.Int32
}

func (f *fakeSource) SuggestionInput(ctx context.Context, userID string) (domain.SuggestionInput, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	in := f.in
	in.UserID = userID
	return in, nil
}

func (f *fakeSource) set(in domain.SuggestionInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.in = in
}

func seededSource(n int) *fakeSource {
	own := listing("A", "u", "Widget", "", "Misc")
	catalogue := []domain.Listing{own}
	for i := 0; i < n; i++ {
		catalogue = append(catalogue, listing(fmt.Sprintf("W%d", i), "v", "Thing", "", "Misc"))
	}
	return &fakeSource{in: input("u", catalogue, []domain.Listing{own}, nil, nil)}
}

func newTestService(src InputSource) (*Service, *memory.SuggestionStore) {
	store := memory.NewSuggestionStore()
	return New(src, store, fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}, 3), store
}

// --- Test Cases ---

func TestService_List_GeneratesOnceThenServesStored(t *testing.T) {
	src := seededSource(2)
	svc, _ := newTestService(src)
	ctx := context.Background()

	l1, err := svc.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, l1.Items, 2)

	l2, err := svc.List(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, l1.Items, l2.Items)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestService_List_RegeneratesWhenCatalogueChanged(t *testing.T) {
	src := seededSource(1)
	svc, _ := newTestService(src)
	ctx := context.Background()

	_, err := svc.List(ctx, "u")
	require.NoError(t, err)

	src.set(seededSource(4).in)
	svc.CatalogueChanged(ctx)

	l, err := svc.List(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, l.Items, 4)
	assert.Equal(t, int64(1), l.Epoch)
}

func TestService_FavoriteDropsOutBeforeDebouncedRefresh(t *testing.T) {
	ctx := context.Background()
	clk := fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	ex := exchange.New(exchange.Deps{
		Listings:  memory.NewListingStore(),
		Favorites: memory.NewFavoriteStore(),
		History:   memory.NewHistoryStore(),
		Ratings:   memory.NewRatingStore(),
		Badges:    memory.NewBadgeStore(),
	}, nil, clk, events.NewEmitter(events.NoopPublisher{}, clk))

	svc := New(ex, memory.NewSuggestionStore(), clk, 10)
	r := NewRefresher(svc, time.Hour)
	defer r.Close()
	ex.SetRefresher(r)

	_, err := ex.Create(ctx, exchange.CreateCmd{ActorID: "u", Title: "Phone", Category: "Electronics"})
	require.NoError(t, err)
	laptop, err := ex.Create(ctx, exchange.CreateCmd{ActorID: "v", Title: "Laptop", Category: "Electronics"})
	require.NoError(t, err)

	suggested := func() bool {
		l, err := svc.List(ctx, "u")
		require.NoError(t, err)
		for _, it := range l.Items {
			if it.SuggestedItem.ID == laptop.ID {
				return true
			}
		}
		return false
	}

	require.True(t, suggested())

	t.Run("favorite", func(t *testing.T) {
		require.NoError(t, ex.AddFavorite(ctx, "u", laptop.ID))
		assert.False(t, suggested())
	})

	t.Run("unfavorite", func(t *testing.T) {
		require.NoError(t, ex.RemoveFavorite(ctx, "u", laptop.ID))
		assert.True(t, suggested())
	})
}

func TestService_List_RegeneratesWhenUserChanged(t *testing.T) {
	src := seededSource(1)
	svc, _ := newTestService(src)
	ctx := context.Background()

	_, err := svc.List(ctx, "u")
	require.NoError(t, err)

	src.set(seededSource(4).in)
	svc.UserChanged(ctx, "u")

	l, err := svc.List(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, l.Items, 4)
	assert.Equal(t, int64(1), l.UserEpoch)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestService_MarkViewed_DoesNotRegenerate(t *testing.T) {
	src := seededSource(2)
	svc, _ := newTestService(src)
	ctx := context.Background()

	l, err := svc.Regenerate(ctx, "u")
	require.NoError(t, err)
	id := l.Items[1].ID

	require.NoError(t, svc.MarkViewed(ctx, "u", id))
	assert.True(t, domain.IsCode(svc.MarkViewed(ctx, "u", "nope"), domain.CodeNotFound))

	got, err := svc.List(ctx, "u")
	require.NoError(t, err)
	assert.False(t, got.Items[0].Viewed)
	assert.True(t, got.Items[1].Viewed)
	assert.Equal(t, int32(1), src.calls.Load())

	// explicit regeneration replaces the list wholesale
	fresh, err := svc.Regenerate(ctx, "u")
	require.NoError(t, err)
	assert.False(t, fresh.Items[1].Viewed)
}

func TestService_Top(t *testing.T) {
	svc, _ := newTestService(seededSource(5))
	ctx := context.Background()

	l, err := svc.Regenerate(ctx, "u")
	require.NoError(t, err)
	require.NoError(t, svc.MarkViewed(ctx, "u", l.Items[0].ID))

	d, err := svc.Top(ctx, "u")
	require.NoError(t, err)
	require.Len(t, d.Items, 3)
	for _, it := range d.Items {
		assert.False(t, it.Viewed)
	}
	assert.Equal(t, domain.SuggestionStats{Total: 5, Viewed: 1, Unviewed: 4, HasMore: true}, d.Stats)
}

func TestService_ByType(t *testing.T) {
	svc, _ := newTestService(seededSource(2))
	ctx := context.Background()

	got, err := svc.ByType(ctx, "u", domain.SuggestionObjectMatch)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.ByType(ctx, "u", domain.SuggestionSearchBased)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ByType(ctx, "u", "popular")
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestRefresher_ZeroDelayIsSynchronous(t *testing.T) {
	src := seededSource(1)
	svc, store := newTestService(src)
	r := NewRefresher(svc, 0)

	r.UserChanged(context.Background(), "u")

	l, err := store.Get(context.Background(), "u")
	require.NoError(t, err)
	assert.Len(t, l.Items, 1)
}

func TestRefresher_DebouncesBursts(t *testing.T) {
	src := seededSource(1)
	svc, store := newTestService(src)
	r := NewRefresher(svc, 30*time.Millisecond)
	defer r.Close()

	for i := 0; i < 10; i++ {
		r.UserChanged(context.Background(), "u")
	}
	assert.Equal(t, 1, r.Pending())

	require.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), "u")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, 0, r.Pending())
}

func TestRefresher_CloseCancelsPending(t *testing.T) {
	src := seededSource(1)
	svc, store := newTestService(src)
	r := NewRefresher(svc, time.Hour)

	r.UserChanged(context.Background(), "u")
	r.Close()
	r.UserChanged(context.Background(), "u")

	assert.Equal(t, 0, r.Pending())
	_, err := store.Get(context.Background(), "u")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	assert.Equal(t, int32(0), src.calls.Load())
}
