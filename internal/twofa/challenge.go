// Package twofa provides the transient two-factor challenge store: a
// mapping of email to a single-use (login id, one-time code) pair with a
// fixed lifetime. Every backend enforces the same 10-minute expiry.
package twofa

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// ChallengeTTL is the absolute lifetime of a challenge on every backend.
const ChallengeTTL = 600 // seconds

var (
	ErrInvalidLoginID = errors.New("invalid login id format")
	ErrInvalidCode    = errors.New("invalid code format")
)

// LoginID identifies one login attempt awaiting its second factor. It is a
// UUIDv4, unguessable by construction.
type LoginID struct {
	value string
}

// NewLoginID generates a fresh login id.
func NewLoginID() LoginID {
	return LoginID{value: uuid.NewString()}
}

// ParseLoginID validates a client-presented login id.
func ParseLoginID(raw string) (LoginID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return LoginID{}, ErrInvalidLoginID
	}
	return LoginID{value: parsed.String()}, nil
}

func (id LoginID) String() string {
	return id.value
}

// Code is a 6-digit one-time code in [100000, 999999].
type Code struct {
	value string
}

// GenerateCode draws a code from crypto/rand.
func GenerateCode() (Code, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return Code{}, fmt.Errorf("failed to generate code: %w", err)
	}
	return Code{value: fmt.Sprintf("%06d", n.Int64()+100000)}, nil
}

// ParseCode validates a client-presented code.
func ParseCode(raw string) (Code, error) {
	if len(raw) != 6 {
		return Code{}, ErrInvalidCode
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return Code{}, ErrInvalidCode
		}
	}
	if raw[0] == '0' {
		return Code{}, ErrInvalidCode
	}
	return Code{value: raw}, nil
}

func (c Code) String() string {
	return c.value
}
