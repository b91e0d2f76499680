// Package tokenban provides the revocation set for session-token
// identifiers. Revocation is permanent from the caller's perspective: a
// revoked id stays rejected for at least as long as the token itself could
// still verify, after which the record may be discarded (the record is moot
// once the token's own expiry has passed).
package tokenban

import "context"

// Store is the banned-token capability.
type Store interface {
	// Revoke adds a token id to the revocation set. Idempotent; revoking an
	// already-revoked id is a no-op success.
	Revoke(ctx context.Context, tokenID string) error

	// IsRevoked reports whether a token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
