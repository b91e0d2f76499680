// Package auth implements the login state machine: signup, single- and
// two-factor login, token verification, and revocation. The service owns no
// state of its own; it orchestrates the store and capability interfaces it
// is constructed with.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"

	"github.com/gatehouse/identity/internal/domain"
	"github.com/gatehouse/identity/internal/email"
	"github.com/gatehouse/identity/internal/token"
	"github.com/gatehouse/identity/internal/tokenban"
	"github.com/gatehouse/identity/internal/twofa"
	"github.com/gatehouse/identity/internal/userstore"
)

const twoFactorEmailSubject = "Your one-time sign-in code"

// Service orchestrates the authentication flows. Store locks are held only
// inside the individual store calls; the token service and email client are
// invoked with no lock outstanding.
type Service struct {
	users      userstore.Store
	banned     tokenban.Store
	challenges twofa.Store
	tokens     token.Service
	mailer     email.Client
}

// NewService creates the login service from its collaborators.
func NewService(users userstore.Store, banned tokenban.Store, challenges twofa.Store, tokens token.Service, mailer email.Client) *Service {
	return &Service{
		users:      users,
		banned:     banned,
		challenges: challenges,
		tokens:     tokens,
		mailer:     mailer,
	}
}

// SignUpParams carries the raw signup input.
type SignUpParams struct {
	Email             string
	Password          string
	RequiresTwoFactor bool
}

// SignUp registers a new account. Duplicate emails fail with ErrUserExists
// and never overwrite the existing account.
func (s *Service) SignUp(ctx context.Context, params SignUpParams) error {
	userEmail, err := domain.ParseEmail(params.Email)
	if err != nil {
		return ErrInvalidCredentials
	}
	userPassword, err := domain.ParsePassword(params.Password)
	if err != nil {
		return ErrInvalidCredentials
	}

	user := domain.User{
		Email:             userEmail,
		Password:          userPassword,
		RequiresTwoFactor: params.RequiresTwoFactor,
	}

	if err := s.users.AddUser(ctx, user); err != nil {
		if errors.Is(err, userstore.ErrUserExists) {
			return ErrUserExists
		}
		log.Printf("signup: failed to add user: %v", err)
		return ErrUnexpected
	}
	return nil
}

// LoginResult is the outcome of a successful credential check. Either Token
// is set (single factor) or TwoFactorRequired is true and LoginID carries
// the challenge id. The one-time code itself is never part of the result.
type LoginResult struct {
	TwoFactorRequired bool
	LoginID           string
	Token             string
}

// Login validates credentials and either mints a session token or issues a
// two-factor challenge, depending on the account's requires-2FA flag.
func (s *Service) Login(ctx context.Context, rawEmail, rawPassword string) (*LoginResult, error) {
	userEmail, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	userPassword, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.ValidateCredentials(ctx, userEmail, userPassword); err != nil {
		// Unknown user and wrong password are indistinguishable to the caller.
		return nil, ErrIncorrectCredentials
	}

	user, err := s.users.GetUser(ctx, userEmail)
	if err != nil {
		return nil, ErrIncorrectCredentials
	}

	if user.RequiresTwoFactor {
		return s.beginTwoFactor(ctx, userEmail)
	}

	minted, err := s.tokens.Mint(userEmail)
	if err != nil {
		log.Printf("login: failed to mint token: %v", err)
		return nil, ErrUnexpected
	}
	return &LoginResult{Token: minted}, nil
}

// beginTwoFactor stores a fresh challenge and dispatches the code. The
// challenge is reported to the caller only after it is durably stored and a
// delivery attempt has been made; a failure of either aborts the login.
func (s *Service) beginTwoFactor(ctx context.Context, userEmail domain.Email) (*LoginResult, error) {
	loginID := twofa.NewLoginID()
	code, err := twofa.GenerateCode()
	if err != nil {
		log.Printf("login: failed to generate 2fa code: %v", err)
		return nil, ErrUnexpected
	}

	challenge := twofa.Challenge{LoginID: loginID, Code: code}
	if err := s.challenges.CreateChallenge(ctx, userEmail, challenge); err != nil {
		log.Printf("login: failed to store 2fa challenge: %v", err)
		return nil, ErrUnexpected
	}

	msg := email.Message{
		Recipient: userEmail,
		Subject:   twoFactorEmailSubject,
		Body:      fmt.Sprintf("Your one-time code is %s. It expires in 10 minutes.", code.String()),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("login: failed to dispatch 2fa code: %v", err)
		return nil, ErrUnexpected
	}

	return &LoginResult{TwoFactorRequired: true, LoginID: loginID.String()}, nil
}

// VerifyTwoFactor completes a pending two-factor login. Both the login id
// and the code must match the stored pair; any mismatch is reported exactly
// like a missing challenge. On a match the challenge is removed before the
// session token is minted, so it can never be replayed.
func (s *Service) VerifyTwoFactor(ctx context.Context, rawEmail, rawLoginID, rawCode string) (string, error) {
	userEmail, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	loginID, err := twofa.ParseLoginID(rawLoginID)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	code, err := twofa.ParseCode(rawCode)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	stored, err := s.challenges.Consume(ctx, userEmail)
	if err != nil {
		if errors.Is(err, twofa.ErrChallengeNotFound) {
			return "", ErrIncorrectCredentials
		}
		log.Printf("verify-2fa: failed to read challenge: %v", err)
		return "", ErrUnexpected
	}

	if !pairMatches(stored, loginID, code) {
		return "", ErrIncorrectCredentials
	}

	// Consume-once: verification must not succeed while a replayable
	// challenge remains stored.
	if err := s.challenges.RemoveChallenge(ctx, userEmail); err != nil {
		log.Printf("verify-2fa: failed to remove challenge: %v", err)
		return "", ErrUnexpected
	}

	minted, err := s.tokens.Mint(userEmail)
	if err != nil {
		log.Printf("verify-2fa: failed to mint token: %v", err)
		return "", ErrUnexpected
	}
	return minted, nil
}

// VerifyToken checks that a presented token is cryptographically valid and
// not revoked, and returns the bound email. Anything that fails
// verification, an empty string included, reports ErrInvalidToken.
func (s *Service) VerifyToken(ctx context.Context, raw string) (domain.Email, error) {
	userEmail, tokenID, err := s.tokens.Verify(raw)
	if err != nil {
		return domain.Email{}, ErrInvalidToken
	}

	revoked, err := s.banned.IsRevoked(ctx, tokenID)
	if err != nil {
		log.Printf("verify-token: failed to check revocation: %v", err)
		return domain.Email{}, ErrUnexpected
	}
	if revoked {
		return domain.Email{}, ErrInvalidToken
	}
	return userEmail, nil
}

// RevokeToken validates a token and adds its id to the banned store. An
// already-revoked or otherwise invalid token fails with ErrInvalidToken.
func (s *Service) RevokeToken(ctx context.Context, raw string) error {
	if raw == "" {
		return ErrMissingToken
	}

	_, tokenID, err := s.tokens.Verify(raw)
	if err != nil {
		return ErrInvalidToken
	}

	revoked, err := s.banned.IsRevoked(ctx, tokenID)
	if err != nil {
		log.Printf("revoke: failed to check revocation: %v", err)
		return ErrUnexpected
	}
	if revoked {
		return ErrInvalidToken
	}

	if err := s.banned.Revoke(ctx, tokenID); err != nil {
		log.Printf("revoke: failed to ban token: %v", err)
		return ErrUnexpected
	}
	return nil
}

// pairMatches compares the presented (login id, code) pair against the
// stored one in constant time. Both halves are always compared so a
// mismatch on either is indistinguishable.
func pairMatches(stored twofa.Challenge, loginID twofa.LoginID, code twofa.Code) bool {
	idMatch := subtle.ConstantTimeCompare([]byte(stored.LoginID.String()), []byte(loginID.String()))
	codeMatch := subtle.ConstantTimeCompare([]byte(stored.Code.String()), []byte(code.String()))
	return idMatch&codeMatch == 1
}
