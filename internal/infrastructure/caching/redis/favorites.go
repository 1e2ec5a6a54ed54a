package redis

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// FavoriteStore keeps one set of listing ids per user.
type FavoriteStore struct {
	client *redis.Client
}

func NewFavoriteStore(client *redis.Client) *FavoriteStore {
	return &FavoriteStore{client: client}
}

func favoritesKey(userID string) string { return keyPrefix + "favorites:" + userID }

func (s *FavoriteStore) Add(ctx context.Context, userID, listingID string) error {
	return s.client.SAdd(ctx, favoritesKey(userID), listingID).Err()
}

func (s *FavoriteStore) Remove(ctx context.Context, userID, listingID string) error {
	return s.client.SRem(ctx, favoritesKey(userID), listingID).Err()
}

func (s *FavoriteStore) Contains(ctx context.Context, userID, listingID string) (bool, error) {
	return s.client.SIsMember(ctx, favoritesKey(userID), listingID).Result()
}

// List returns ids sorted so callers see a stable order.
func (s *FavoriteStore) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, favoritesKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
