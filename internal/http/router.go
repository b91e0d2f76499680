package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gatehouse/identity/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	authController := NewAuthController(cfg.AuthService, cfg.RateLimiter, cfg.Auditor, cfg.Cookie)
	authController.RegisterRoutes(router)

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Redis, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	return router
}
