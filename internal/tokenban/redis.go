package tokenban

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const bannedTokenPrefix = "banned_token:"

// RedisStore keeps one key per revoked token id. Keys carry a TTL equal to
// the token lifetime, so the set cannot grow past the window in which a
// revoked token could still verify.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore creates a cache-backed revocation set.
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Set(ctx, bannedTokenPrefix+tokenID, "1", s.retention).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, bannedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// PruneExpired is a no-op: redis drops keys when their TTL lapses.
func (s *RedisStore) PruneExpired(_ context.Context) (int, error) {
	return 0, nil
}
