// Package token mints and verifies the session bearer tokens. A token binds
// an email to a unique token id (jti) which doubles as the revocation key.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatehouse/identity/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Service is the token capability consumed by the login service.
type Service interface {
	// Mint issues a signed token bound to the email.
	Mint(email domain.Email) (string, error)

	// Verify checks the signature and expiry of raw and returns the bound
	// email and the token id.
	Verify(raw string) (domain.Email, string, error)
}

// Claims are the JWT claims carried by a session token. Subject holds the
// email, ID the jti.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService signs session tokens with HS256.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a token service. ttl is the token lifetime and must
// match the revocation retention configured on the banned-token store.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

func (s *JWTService) Mint(email domain.Email) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   email.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(raw string) (domain.Email, string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return domain.Email{}, "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return domain.Email{}, "", ErrInvalidToken
	}

	email, err := domain.ParseEmail(claims.Subject)
	if err != nil {
		return domain.Email{}, "", ErrInvalidToken
	}

	return email, claims.ID, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
