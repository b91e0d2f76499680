package tokenban

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndCheck(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "some-token-id")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "some-token-id"))

	revoked, err = store.IsRevoked(ctx, "some-token-id")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_RevokeIsIdempotent(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "some-token-id"))
	require.NoError(t, store.Revoke(ctx, "some-token-id"))

	revoked, err := store.IsRevoked(ctx, "some-token-id")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_RetentionExpiry(t *testing.T) {
	store := NewMemoryStore(15 * time.Minute)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Revoke(ctx, "some-token-id"))

	// Still inside the retention window.
	current = current.Add(14 * time.Minute)
	revoked, err := store.IsRevoked(ctx, "some-token-id")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Past it the record is moot: the token itself has expired.
	current = current.Add(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "some-token-id")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStore_PruneExpired(t *testing.T) {
	store := NewMemoryStore(15 * time.Minute)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Revoke(ctx, "old-token"))
	current = current.Add(20 * time.Minute)
	require.NoError(t, store.Revoke(ctx, "fresh-token"))

	pruned, err := store.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	revoked, err := store.IsRevoked(ctx, "fresh-token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_ZeroRetentionKeepsForever(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Revoke(ctx, "some-token-id"))
	current = current.Add(1000 * time.Hour)

	revoked, err := store.IsRevoked(ctx, "some-token-id")
	require.NoError(t, err)
	assert.True(t, revoked)

	pruned, err := store.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
