package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./identity.db"

	// DefaultRedisAddr is where the optional redis backend is expected locally
	DefaultRedisAddr = "127.0.0.1:6379"

	// DefaultCookieName is the name of the session cookie issued on login
	DefaultCookieName = "jwt"
)
