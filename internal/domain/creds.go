// Package domain holds the validated credential value objects shared by the
// stores and the login service. Values are constructed through Parse
// functions and are immutable afterwards.
package domain

import (
	"errors"
	"regexp"
)

// Validation patterns
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrEmailInvalid   = errors.New("invalid email format")
	ErrPasswordLength = errors.New("password must be between 8 and 256 characters")
)

// Password length bounds. Length is the only constraint; there is
// deliberately no entropy or character-class requirement.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 256
)

// Email is a syntactically valid email address. Equality is case-sensitive
// on the validated string, which also serves as the natural key for users
// and challenges.
type Email struct {
	value string
}

// ParseEmail validates raw against the email grammar (local part, "@",
// dotted domain; RFC 5321 length limit of 254).
func ParseEmail(raw string) (Email, error) {
	if len(raw) > 254 || !emailPattern.MatchString(raw) {
		return Email{}, ErrEmailInvalid
	}
	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}

// IsZero reports whether e is the unvalidated zero value.
func (e Email) IsZero() bool {
	return e.value == ""
}

// Password is an opaque credential with a validated length. The raw value is
// only ever read by the user store to derive a hash; it must never be logged
// or persisted as-is.
type Password struct {
	value string
}

// ParsePassword validates the length of raw. Content is unconstrained.
func ParsePassword(raw string) (Password, error) {
	if len(raw) < MinPasswordLength || len(raw) > MaxPasswordLength {
		return Password{}, ErrPasswordLength
	}
	return Password{value: raw}, nil
}

// Raw returns the plaintext value for hashing. Callers must not retain it.
func (p Password) Raw() string {
	return p.value
}
