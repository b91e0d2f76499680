package http

import (
	"github.com/redis/go-redis/v9"

	"github.com/gatehouse/identity/internal/audit"
	"github.com/gatehouse/identity/internal/auth"
	"github.com/gatehouse/identity/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	AuthService *auth.Service
	Auditor     *audit.Service

	// Rate limiting for login and verification attempts (optional)
	RateLimiter *auth.RateLimiter

	// Session cookie settings
	Cookie CookieConfig

	// Health check targets. Either may be nil when the corresponding
	// backend is not in use.
	Database *database.Database
	Redis    redis.UniversalClient

	// Application info
	Version string
}
