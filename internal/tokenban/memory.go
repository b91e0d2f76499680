package tokenban

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps revoked token ids in a map guarded by a reader-writer
// lock. Entries older than the retention period are treated as absent and
// reclaimed by PruneExpired; retention must be at least the token lifetime
// so a record never disappears while its token could still verify.
type MemoryStore struct {
	mu        sync.RWMutex
	revoked   map[string]time.Time
	retention time.Duration

	now func() time.Time
}

// NewMemoryStore creates an in-memory revocation set. A zero retention
// keeps records for the life of the store.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{
		revoked:   make(map[string]time.Time),
		retention: retention,
		now:       time.Now,
	}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.revoked[tokenID]; exists {
		return nil
	}
	s.revoked[tokenID] = s.now()
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revokedAt, exists := s.revoked[tokenID]
	if !exists {
		return false, nil
	}
	if s.expired(revokedAt) {
		return false, nil
	}
	return true, nil
}

// PruneExpired removes revocation records past the retention period and
// returns how many were dropped. Called by the cleanup task.
func (s *MemoryStore) PruneExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for tokenID, revokedAt := range s.revoked {
		if s.expired(revokedAt) {
			delete(s.revoked, tokenID)
			pruned++
		}
	}
	return pruned, nil
}

func (s *MemoryStore) expired(revokedAt time.Time) bool {
	return s.retention > 0 && s.now().Sub(revokedAt) > s.retention
}
