package suggestion

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

const refreshTimeout = 5 * time.Second

// Refresher debounces per-user regeneration: a burst of changes for one user
// results in a single regeneration delay after the last change. A zero delay
// regenerates synchronously.
type Refresher struct {
	svc   *Service
	delay time.Duration

	mu      sync.Mutex
	pending map[string]pendingRefresh
	gen     uint64
	closed  bool
	wg      sync.WaitGroup
}

type pendingRefresh struct {
	timer *time.Timer
	gen   uint64
}

func NewRefresher(svc *Service, delay time.Duration) *Refresher {
	return &Refresher{
		svc:     svc,
		delay:   delay,
		pending: make(map[string]pendingRefresh),
	}
}

// UserChanged marks the user's list stale at once, so reads never serve it, and
// schedules the background regeneration.
func (r *Refresher) UserChanged(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	r.svc.UserChanged(ctx, userID)
	if r.delay <= 0 {
		r.run(userID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if p, ok := r.pending[userID]; ok {
		p.timer.Stop()
	}
	r.gen++
	gen := r.gen
	r.pending[userID] = pendingRefresh{
		timer: time.AfterFunc(r.delay, func() { r.fire(userID, gen) }),
		gen:   gen,
	}
	metrics.SetSuggestionRefreshPending(len(r.pending))
}

func (r *Refresher) CatalogueChanged(ctx context.Context) {
	r.svc.CatalogueChanged(ctx)
}

func (r *Refresher) fire(userID string, gen uint64) {
	r.mu.Lock()
	p, ok := r.pending[userID]
	if r.closed || !ok || p.gen != gen {
		r.mu.Unlock()
		return
	}
	delete(r.pending, userID)
	metrics.SetSuggestionRefreshPending(len(r.pending))
	r.wg.Add(1)
	r.mu.Unlock()

	defer r.wg.Done()
	r.run(userID)
}

func (r *Refresher) run(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := r.svc.regenerate(ctx, userID, TriggerDebounced); err != nil {
		zlog.Warn().Err(err).Str("user_id", userID).Msg("suggestion refresh failed")
	}
}

// Pending reports how many users have a refresh scheduled.
func (r *Refresher) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Close cancels scheduled refreshes and waits for running ones.
func (r *Refresher) Close() {
	r.mu.Lock()
	r.closed = true
	for id, p := range r.pending {
		p.timer.Stop()
		delete(r.pending, id)
	}
	metrics.SetSuggestionRefreshPending(0)
	r.mu.Unlock()

	r.wg.Wait()
}
