package redis

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// HistoryStore keeps recent search queries as a capped list, most recent first.
type HistoryStore struct {
	client *redis.Client
}

func NewHistoryStore(client *redis.Client) *HistoryStore {
	return &HistoryStore{client: client}
}

func historyKey(userID string) string { return keyPrefix + "history:" + userID }

func (s *HistoryStore) Push(ctx context.Context, userID, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	key := historyKey(userID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LRem(ctx, key, 0, query)
		p.LPush(ctx, key, query)
		p.LTrim(ctx, key, 0, domain.SearchHistoryLimit-1)
		return nil
	})
	return err
}

func (s *HistoryStore) List(ctx context.Context, userID string) ([]string, error) {
	return s.client.LRange(ctx, historyKey(userID), 0, domain.SearchHistoryLimit-1).Result()
}
