// Package userstore provides the user directory: the set of registered
// accounts keyed by email. Two backends conform to the same interface, an
// in-memory map for tests and single-process runs and a relational store
// for everything else. Backends are swapped by substituting the
// implementation at startup, never by branching on type.
package userstore

import (
	"context"
	"errors"

	"github.com/gatehouse/identity/internal/domain"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store is the user directory capability. AddUser is the only mutating
// operation; there is no update or delete.
type Store interface {
	// AddUser inserts a new account. Fails with ErrUserExists if the email
	// is already registered; an existing account is never overwritten.
	AddUser(ctx context.Context, user domain.User) error

	// GetUser looks up an account by email. The returned user carries no
	// password material.
	GetUser(ctx context.Context, email domain.Email) (domain.User, error)

	// ValidateCredentials checks the password for the given email against
	// the stored credential hash. Returns ErrUserNotFound or
	// ErrInvalidCredentials on failure.
	ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error
}
