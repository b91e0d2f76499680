package auth

import "errors"

// Error taxonomy surfaced by the login service. Authentication failures are
// deliberately uniform: nothing here reveals whether an email is registered
// or which part of a credential pair was wrong.
var (
	// ErrInvalidCredentials: malformed input (unparsable email, password
	// outside the length bounds). A client error, not an authentication
	// failure.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIncorrectCredentials: wrong password, unknown user, or wrong
	// two-factor pair. All reported identically.
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	// ErrUserExists: duplicate signup.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidToken: malformed, expired, or revoked session token.
	ErrInvalidToken = errors.New("invalid auth token")

	// ErrMissingToken: no session cookie accompanied a logout.
	ErrMissingToken = errors.New("missing auth token")

	// ErrUnexpected: a store or dispatch failure. Details are logged, never
	// returned to the client.
	ErrUnexpected = errors.New("unexpected error")
)
