package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

// ListingStore is a single-writer listing store. Reads return copies.
type ListingStore struct {
	mu   sync.RWMutex
	byID map[string]listingEntry
	seq  int64
}

type listingEntry struct {
	l   domain.Listing
	seq int64
}

func NewListingStore() *ListingStore {
	return &ListingStore{byID: make(map[string]listingEntry)}
}

func (s *ListingStore) Create(ctx context.Context, l *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[l.ID]; ok {
		return domain.ErrInvalidState("listing already exists")
	}
	s.seq++
	s.byID[l.ID] = listingEntry{l: l.Clone(), seq: s.seq}
	return nil
}

func (s *ListingStore) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("listing not found")
	}
	l := e.l.Clone()
	return &l, nil
}

func (s *ListingStore) Update(ctx context.Context, l *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[l.ID]
	if !ok {
		return domain.ErrNotFound("listing not found")
	}
	e.l = l.Clone()
	s.byID[l.ID] = e
	return nil
}

func (s *ListingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound("listing not found")
	}
	delete(s.byID, id)
	return nil
}

// RegisterInterest appends userID and bumps views under the write lock.
func (s *ListingStore) RegisterInterest(ctx context.Context, id, userID string, now time.Time) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("listing not found")
	}
	e.l.RegisterInterest(userID, now)
	s.byID[id] = e
	l := e.l.Clone()
	return &l, nil
}

// Search returns matching listings in creation order.
func (s *ListingStore) Search(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	return s.collect(f.Matches), nil
}

func (s *ListingStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	return s.collect(func(l domain.Listing) bool { return l.OwnerID == ownerID }), nil
}

func (s *ListingStore) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.byID {
		if e.l.OwnerID == ownerID && e.l.Status == domain.StatusActive {
			n++
		}
	}
	return n, nil
}

func (s *ListingStore) collect(keep func(domain.Listing) bool) []domain.Listing {
	s.mu.RLock()
	entries := make([]listingEntry, 0, len(s.byID))
	for _, e := range s.byID {
		if keep(e.l) {
			entries = append(entries, listingEntry{l: e.l.Clone(), seq: e.seq})
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].l.CreatedAt.Equal(entries[j].l.CreatedAt) {
			return entries[i].l.CreatedAt.Before(entries[j].l.CreatedAt)
		}
		return entries[i].seq < entries[j].seq
	})
	out := make([]domain.Listing, len(entries))
	for i, e := range entries {
		out[i] = e.l
	}
	return out
}
