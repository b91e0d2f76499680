package twofa

import (
	"context"
	"errors"
	"time"

	"github.com/gatehouse/identity/internal/domain"
)

var ErrChallengeNotFound = errors.New("challenge not found")

// DefaultTTL is ChallengeTTL as a duration.
const DefaultTTL = ChallengeTTL * time.Second

// Challenge is the stored (login id, code) pair for one email.
type Challenge struct {
	LoginID LoginID
	Code    Code
}

// Store is the two-factor challenge capability. At most one live challenge
// exists per email.
type Store interface {
	// CreateChallenge stores a challenge for the email, replacing any
	// existing one.
	CreateChallenge(ctx context.Context, email domain.Email, challenge Challenge) error

	// Consume returns the live challenge for the email without deleting it,
	// so the caller can compare before committing to removal. Returns
	// ErrChallengeNotFound if none exists or it has expired.
	Consume(ctx context.Context, email domain.Email) (Challenge, error)

	// RemoveChallenge deletes the challenge for the email. Returns
	// ErrChallengeNotFound if none exists.
	RemoveChallenge(ctx context.Context, email domain.Email) error
}
