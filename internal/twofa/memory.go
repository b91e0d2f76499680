package twofa

import (
	"context"
	"sync"
	"time"

	"github.com/gatehouse/identity/internal/domain"
)

type entry struct {
	challenge Challenge
	createdAt time.Time
}

// MemoryStore keeps challenges in a map guarded by a reader-writer lock.
// Entries are timestamped and treated as absent once past the TTL; the
// cleanup task reclaims the memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.Email]entry
	ttl     time.Duration

	now func() time.Time
}

// NewMemoryStore creates an in-memory challenge store. A non-positive ttl
// falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[domain.Email]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) CreateChallenge(_ context.Context, email domain.Email, challenge Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = entry{challenge: challenge, createdAt: s.now()}
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, email domain.Email) (Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[email]
	if !exists || s.expired(e) {
		return Challenge{}, ErrChallengeNotFound
	}
	return e.challenge, nil
}

func (s *MemoryStore) RemoveChallenge(_ context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[email]
	if !exists {
		return ErrChallengeNotFound
	}
	delete(s.entries, email)
	if s.expired(e) {
		return ErrChallengeNotFound
	}
	return nil
}

// PruneExpired removes challenges past the TTL and returns how many were
// dropped. Called by the cleanup task.
func (s *MemoryStore) PruneExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for email, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, email)
			pruned++
		}
	}
	return pruned, nil
}

func (s *MemoryStore) expired(e entry) bool {
	return s.now().Sub(e.createdAt) > s.ttl
}
