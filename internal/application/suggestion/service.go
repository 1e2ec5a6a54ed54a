package suggestion

import (
	"context"
	"sort"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

// Regeneration triggers, used as metric labels.
const (
	TriggerExplicit  = "explicit"
	TriggerDebounced = "debounced"
	TriggerStale     = "stale"
)

const defaultDisplayLimit = 3

type Service struct {
	src    InputSource
	store  Store
	engine Engine
	clock  Clock

	displayLimit int
}

func New(src InputSource, store Store, clock Clock, displayLimit int) *Service {
	if displayLimit <= 0 {
		displayLimit = defaultDisplayLimit
	}
	return &Service{
		src:          src,
		store:        store,
		clock:        clock,
		displayLimit: displayLimit,
	}
}

func (s *Service) DisplayLimit() int { return s.displayLimit }

// Regenerate recomputes the user's list and replaces the stored one wholesale.
func (s *Service) Regenerate(ctx context.Context, userID string) (*domain.SuggestionList, error) {
	return s.regenerate(ctx, userID, TriggerExplicit)
}

func (s *Service) regenerate(ctx context.Context, userID, trigger string) (list *domain.SuggestionList, err error) {
	start := time.Now()
	defer func() {
		size := 0
		if list != nil {
			size = len(list.Items)
		}
		metrics.RecordSuggestionRegeneration(trigger, time.Since(start), size, err)
	}()

	// read the epochs first so a concurrent change marks this list stale
	epoch, userEpoch, err := s.epochs(ctx, userID)
	if err != nil {
		return nil, err
	}
	in, err := s.src.SuggestionInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	l := domain.SuggestionList{
		UserID:      userID,
		Items:       s.engine.Generate(in),
		Epoch:       epoch,
		UserEpoch:   userEpoch,
		GeneratedAt: s.clock.Now().UTC(),
	}
	if err := s.store.Save(ctx, l); err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns the stored list, regenerating first when none is stored or the
// catalogue or the user's own state changed since it was generated.
func (s *Service) List(ctx context.Context, userID string) (*domain.SuggestionList, error) {
	l, err := s.store.Get(ctx, userID)
	if err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return s.regenerate(ctx, userID, TriggerStale)
		}
		return nil, err
	}
	epoch, userEpoch, err := s.epochs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if l.Epoch < epoch || l.UserEpoch < userEpoch {
		return s.regenerate(ctx, userID, TriggerStale)
	}
	return l, nil
}

func (s *Service) epochs(ctx context.Context, userID string) (int64, int64, error) {
	epoch, err := s.store.Epoch(ctx)
	if err != nil {
		return 0, 0, err
	}
	userEpoch, err := s.store.UserEpoch(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return epoch, userEpoch, nil
}

func (s *Service) ByType(ctx context.Context, userID string, t domain.SuggestionType) ([]domain.Suggestion, error) {
	if !t.Valid() {
		return nil, domain.ErrValidationMeta("invalid suggestion type", map[string]string{
			"type": "must be one of: object_match, category_preference, search_based, similar_to_favorite",
		})
	}
	l, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []domain.Suggestion{}
	for _, it := range l.Items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out, nil
}

// MarkViewed flips one suggestion's viewed flag without regenerating.
func (s *Service) MarkViewed(ctx context.Context, userID, suggestionID string) error {
	return s.store.MarkViewed(ctx, userID, suggestionID)
}

// Display is the read-time view: unviewed suggestions by score, capped.
type Display struct {
	Items []domain.Suggestion
	Stats domain.SuggestionStats
}

func (s *Service) Top(ctx context.Context, userID string) (Display, error) {
	l, err := s.List(ctx, userID)
	if err != nil {
		return Display{}, err
	}
	items := []domain.Suggestion{}
	for _, it := range l.Items {
		if !it.Viewed {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if len(items) > s.displayLimit {
		items = items[:s.displayLimit]
	}
	return Display{
		Items: items,
		Stats: domain.ComputeSuggestionStats(l.Items, s.displayLimit),
	}, nil
}

// UserChanged marks userID's stored list stale; the next read regenerates it.
func (s *Service) UserChanged(ctx context.Context, userID string) {
	if _, err := s.store.BumpUserEpoch(ctx, userID); err != nil {
		zlog.Warn().Err(err).Str("user_id", userID).Msg("suggestion user epoch bump failed")
	}
}

// CatalogueChanged marks every stored list stale.
func (s *Service) CatalogueChanged(ctx context.Context) {
	if _, err := s.store.BumpEpoch(ctx); err != nil {
		zlog.Warn().Err(err).Msg("suggestion epoch bump failed")
	}
}
