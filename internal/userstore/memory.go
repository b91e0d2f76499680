package userstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gatehouse/identity/internal/domain"
	"github.com/gatehouse/identity/internal/security"
)

// record is the stored form of an account. Passwords are kept only as
// bcrypt hashes, same as the relational backend.
type record struct {
	passwordHash      string
	requiresTwoFactor bool
}

// MemoryStore is a map-backed user directory guarded by a single
// reader-writer lock. Reads may proceed concurrently; AddUser is exclusive.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[domain.Email]record
	hasher *security.Hasher
}

// NewMemoryStore creates an empty in-memory user directory.
func NewMemoryStore(hasher *security.Hasher) *MemoryStore {
	return &MemoryStore{
		users:  make(map[domain.Email]record),
		hasher: hasher,
	}
}

func (s *MemoryStore) AddUser(_ context.Context, user domain.User) error {
	// Hash outside the critical section; bcrypt is deliberately slow.
	hash, err := s.hasher.Hash(user.Password.Raw())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return ErrUserExists
	}

	s.users[user.Email] = record{
		passwordHash:      hash,
		requiresTwoFactor: user.RequiresTwoFactor,
	}
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, email domain.Email) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.users[email]
	if !exists {
		return domain.User{}, ErrUserNotFound
	}

	return domain.User{
		Email:             email,
		RequiresTwoFactor: rec.requiresTwoFactor,
	}, nil
}

func (s *MemoryStore) ValidateCredentials(_ context.Context, email domain.Email, password domain.Password) error {
	s.mu.RLock()
	rec, exists := s.users[email]
	s.mu.RUnlock()

	if !exists {
		return ErrUserNotFound
	}

	if err := s.hasher.Compare(rec.passwordHash, password.Raw()); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
