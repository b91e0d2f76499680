package twofa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatehouse/identity/internal/domain"
)

const twoFACodePrefix = "two_fa_code:"

// challengePayload is the serialized (login id, code) pair.
type challengePayload struct {
	LoginID string `json:"login_id"`
	Code    string `json:"code"`
}

// RedisStore keeps one key per email with the challenge pair as a JSON
// value. Redis enforces the TTL natively.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a cache-backed challenge store. A non-positive ttl
// falls back to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) CreateChallenge(ctx context.Context, email domain.Email, challenge Challenge) error {
	payload, err := json.Marshal(challengePayload{
		LoginID: challenge.LoginID.String(),
		Code:    challenge.Code.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize challenge: %w", err)
	}

	if err := s.client.Set(ctx, challengeKey(email), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, email domain.Email) (Challenge, error) {
	raw, err := s.client.Get(ctx, challengeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Challenge{}, ErrChallengeNotFound
		}
		return Challenge{}, fmt.Errorf("failed to read challenge: %w", err)
	}

	var payload challengePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Challenge{}, fmt.Errorf("failed to deserialize challenge: %w", err)
	}

	loginID, err := ParseLoginID(payload.LoginID)
	if err != nil {
		return Challenge{}, fmt.Errorf("corrupt challenge login id: %w", err)
	}
	code, err := ParseCode(payload.Code)
	if err != nil {
		return Challenge{}, fmt.Errorf("corrupt challenge code: %w", err)
	}

	return Challenge{LoginID: loginID, Code: code}, nil
}

func (s *RedisStore) RemoveChallenge(ctx context.Context, email domain.Email) error {
	deleted, err := s.client.Del(ctx, challengeKey(email)).Result()
	if err != nil {
		return fmt.Errorf("failed to remove challenge: %w", err)
	}
	if deleted == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// PruneExpired is a no-op: redis drops keys when their TTL lapses.
func (s *RedisStore) PruneExpired(_ context.Context) (int, error) {
	return 0, nil
}

func challengeKey(email domain.Email) string {
	return twoFACodePrefix + email.String()
}
