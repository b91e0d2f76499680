// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Store Interfaces
//
//   - userstore.Store: account persistence and credential checks (internal/userstore/store.go)
//   - tokenban.Store: revoked token set (internal/tokenban/store.go)
//   - twofa.Store: pending two-factor challenges (internal/twofa/store.go)
//
// Each store ships two implementations, one in-memory and one durable
// (sqlite for users, redis for the others). The backend is chosen per
// store through configuration; see internal/config and internal/entrypoint.
//
// ## Capability Interfaces
//
//   - token.Service: session token minting and verification (internal/token/token.go)
//   - email.Client: one-time code delivery (internal/email/client.go)
//
// ## Maintenance Interfaces
//
//   - tasks.ChallengeSweeper: expired challenge cleanup (internal/tasks/cleanup_challenges.go)
//   - tasks.RevocationPruner: stale revocation cleanup (internal/tasks/cleanup_revocations.go)
//
// # Adding a New Store Backend
//
// To back one of the stores with a different system (e.g. postgres users):
//
//  1. Implement the store interface in the store's package
//
//     type PostgresStore struct { db *gorm.DB }
//
//     func (s *PostgresStore) AddUser(ctx context.Context, user domain.User) error
//     func (s *PostgresStore) GetUser(ctx context.Context, email domain.Email) (domain.User, error)
//     func (s *PostgresStore) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error
//
//  2. Add a compile-time check in checks.go
//
//  3. Add a backend constant in internal/config and wire it in
//     internal/entrypoint
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
