package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatehouse/identity/internal/audit"
	"github.com/gatehouse/identity/internal/auth"
	"github.com/gatehouse/identity/internal/entities"
)

// CookieConfig describes the session cookie issued on successful login.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// AuthController exposes the login state machine over HTTP. The rate
// limiter and auditor are optional; a nil value disables the concern.
type AuthController struct {
	service *auth.Service
	limiter *auth.RateLimiter
	auditor *audit.Service
	cookie  CookieConfig
}

// NewAuthController creates the controller from its dependencies.
func NewAuthController(service *auth.Service, limiter *auth.RateLimiter, auditor *audit.Service, cookie CookieConfig) *AuthController {
	return &AuthController{
		service: service,
		limiter: limiter,
		auditor: auditor,
		cookie:  cookie,
	}
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA bool   `json:"requires2FA"`
}

// Signup registers a new account.
// POST /signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid credentials")
		return
	}

	err := ac.service.SignUp(c.Request.Context(), auth.SignUpParams{
		Email:             req.Email,
		Password:          req.Password,
		RequiresTwoFactor: req.Requires2FA,
	})
	ac.logAuth(c, req.Email, entities.AuditActionSignup, err)
	if err != nil {
		respondServiceError(c, err, "signup")
		return
	}

	respondCreated(c, "User created successfully!")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// twoFactorResponse is returned with a 206 when a login needs a second
// factor. The one-time code travels by email, never in this response.
type twoFactorResponse struct {
	Message string `json:"message"`
	LoginID string `json:"loginId"`
}

// Login validates credentials. Single-factor accounts get a session cookie
// right away; two-factor accounts get a 206 with the challenge login id.
// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid credentials")
		return
	}

	if !ac.allowAttempt(c, req.Email) {
		return
	}

	result, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	ac.logAuth(c, req.Email, entities.AuditActionLogin, err)
	if err != nil {
		ac.recordOutcome(c, req.Email, err)
		respondServiceError(c, err, "login")
		return
	}
	ac.recordOutcome(c, req.Email, nil)

	if result.TwoFactorRequired {
		ac.logAuth(c, req.Email, entities.AuditActionTwoFactorIssued, nil)
		c.JSON(http.StatusPartialContent, twoFactorResponse{
			Message: "2FA required",
			LoginID: result.LoginID,
		})
		return
	}

	ac.setSessionCookie(c, result.Token)
	respondSuccess(c, "login successful")
}

type verifyTwoFactorRequest struct {
	Email   string `json:"email"`
	LoginID string `json:"loginId"`
	Code    string `json:"2FACode"`
}

// VerifyTwoFactor completes a pending two-factor login and issues the
// session cookie.
// POST /verify-2fa
func (ac *AuthController) VerifyTwoFactor(c *gin.Context) {
	var req verifyTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid credentials")
		return
	}

	if !ac.allowAttempt(c, req.Email) {
		return
	}

	minted, err := ac.service.VerifyTwoFactor(c.Request.Context(), req.Email, req.LoginID, req.Code)
	ac.logAuth(c, req.Email, entities.AuditActionTwoFactorVerify, err)
	if err != nil {
		ac.recordOutcome(c, req.Email, err)
		respondServiceError(c, err, "verify-2fa")
		return
	}
	ac.recordOutcome(c, req.Email, nil)

	ac.setSessionCookie(c, minted)
	respondSuccess(c, "login successful")
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyToken checks a presented token for validity and revocation.
// POST /verify-token
func (ac *AuthController) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing auth token")
		return
	}

	userEmail, err := ac.service.VerifyToken(c.Request.Context(), req.Token)
	ac.logAuth(c, userEmail.String(), entities.AuditActionTokenVerify, err)
	if err != nil {
		respondServiceError(c, err, "verify-token")
		return
	}

	respondSuccess(c, "token is valid")
}

// Logout revokes the session token carried by the cookie and clears the
// cookie. The cookie survives a failed revocation so the client can retry.
// POST /logout
func (ac *AuthController) Logout(c *gin.Context) {
	raw, err := c.Cookie(ac.cookie.Name)
	if err != nil {
		respondBadRequest(c, "missing auth token")
		return
	}

	revokeErr := ac.service.RevokeToken(c.Request.Context(), raw)
	ac.logAuth(c, "", entities.AuditActionTokenRevoked, revokeErr)
	if revokeErr != nil {
		respondServiceError(c, revokeErr, "logout")
		return
	}

	ac.clearSessionCookie(c)
	respondSuccess(c, "logged out")
}

// RegisterRoutes attaches the auth endpoints to the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/signup", ac.Signup)
	router.POST("/login", ac.Login)
	router.POST("/verify-2fa", ac.VerifyTwoFactor)
	router.POST("/verify-token", ac.VerifyToken)
	router.POST("/logout", ac.Logout)
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookie.Name, token, int(ac.cookie.MaxAge.Seconds()), "/", "", ac.cookie.Secure, true)
}

func (ac *AuthController) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookie.Name, "", -1, "/", "", ac.cookie.Secure, true)
}

// allowAttempt enforces the per ip+email rate limit. Responds with a 429
// and Retry-After when the caller is locked out.
func (ac *AuthController) allowAttempt(c *gin.Context, email string) bool {
	if ac.limiter == nil {
		return true
	}

	allowed, retryAfter := ac.limiter.Allow(c.ClientIP(), email)
	if allowed {
		return true
	}

	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many attempts, try again later"})
	return false
}

// recordOutcome feeds the rate limiter. Only authentication failures count
// against the caller; malformed input and server faults do not.
func (ac *AuthController) recordOutcome(c *gin.Context, email string, err error) {
	if ac.limiter == nil {
		return
	}

	switch {
	case err == nil:
		ac.limiter.RecordSuccess(c.ClientIP(), email)
	case errors.Is(err, auth.ErrIncorrectCredentials):
		ac.limiter.RecordFailure(c.ClientIP(), email)
	}
}

func (ac *AuthController) logAuth(c *gin.Context, email string, action entities.AuditAction, err error) {
	if ac.auditor == nil {
		return
	}
	ac.auditor.LogAuth(email, action, c.ClientIP(), err)
}
