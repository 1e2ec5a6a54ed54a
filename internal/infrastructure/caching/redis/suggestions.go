package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SuggestionStore caches each user's list as JSON with a TTL. The catalogue and
// per-user epochs are plain counters with no expiry, so a list can never look
// fresher than it is.
type SuggestionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSuggestionStore(client *redis.Client, ttl time.Duration) *SuggestionStore {
	return &SuggestionStore{client: client, ttl: ttl}
}

func suggestionsKey(userID string) string { return keyPrefix + "suggestions:" + userID }

const epochKey = keyPrefix + "suggestions:epoch"

func userEpochKey(userID string) string { return keyPrefix + "suggestions-epoch:" + userID }

func (s *SuggestionStore) Get(ctx context.Context, userID string) (*domain.SuggestionList, error) {
	raw, err := s.client.Get(ctx, suggestionsKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound("no suggestions stored")
	}
	if err != nil {
		return nil, err
	}
	var l domain.SuggestionList
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SuggestionStore) Save(ctx context.Context, l domain.SuggestionList) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, suggestionsKey(l.UserID), raw, s.ttl).Err()
}

// MarkViewed rewrites the list under WATCH so a concurrent regeneration wins cleanly.
func (s *SuggestionStore) MarkViewed(ctx context.Context, userID, suggestionID string) error {
	key := suggestionsKey(userID)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound("suggestion not found")
		}
		if err != nil {
			return err
		}
		var l domain.SuggestionList
		if err := json.Unmarshal(raw, &l); err != nil {
			return err
		}

		found := false
		for i := range l.Items {
			if l.Items[i].ID == suggestionID {
				l.Items[i].Viewed = true
				found = true
				break
			}
		}
		if !found {
			return domain.ErrNotFound("suggestion not found")
		}

		out, err := json.Marshal(l)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.SetArgs(ctx, key, out, redis.SetArgs{KeepTTL: true})
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrInvalidState("suggestions changed concurrently")
	}
	return err
}

func (s *SuggestionStore) Epoch(ctx context.Context) (int64, error) {
	n, err := s.client.Get(ctx, epochKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (s *SuggestionStore) BumpEpoch(ctx context.Context) (int64, error) {
	return s.client.Incr(ctx, epochKey).Result()
}

func (s *SuggestionStore) UserEpoch(ctx context.Context, userID string) (int64, error) {
	n, err := s.client.Get(ctx, userEpochKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (s *SuggestionStore) BumpUserEpoch(ctx context.Context, userID string) (int64, error) {
	return s.client.Incr(ctx, userEpochKey(userID)).Result()
}
