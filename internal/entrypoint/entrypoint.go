package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gatehouse/identity/internal/audit"
	"github.com/gatehouse/identity/internal/auth"
	"github.com/gatehouse/identity/internal/config"
	"github.com/gatehouse/identity/internal/database"
	dbaudit "github.com/gatehouse/identity/internal/database/audit"
	"github.com/gatehouse/identity/internal/email"
	http_controllers "github.com/gatehouse/identity/internal/http"
	"github.com/gatehouse/identity/internal/scheduler"
	"github.com/gatehouse/identity/internal/security"
	"github.com/gatehouse/identity/internal/tasks"
	"github.com/gatehouse/identity/internal/token"
	"github.com/gatehouse/identity/internal/tokenban"
	"github.com/gatehouse/identity/internal/twofa"
	"github.com/gatehouse/identity/internal/userstore"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. SIGKILL cannot be caught, so it
	// is not registered.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting identity service v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT secret is not set. Set the 'AUTH_JWT_SECRET' environment variable.")
	}

	// Initialize database. It always opens: the audit trail lives there
	// even when the user store backend is memory.
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Open redis only when a store backend asks for it
	var redisClient *redis.Client
	if cfg.Stores.Tokens == config.BackendRedis || cfg.Stores.Challenges == config.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing redis client: %v", err)
			}
		}()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()
		log.Printf("Connected to redis at %s", cfg.Redis.Addr)
	}

	hasher := security.NewHasher(cfg.Auth.BcryptCost)

	var users userstore.Store
	switch cfg.Stores.Users {
	case config.BackendMemory:
		users = userstore.NewMemoryStore(hasher)
		log.Printf("User store backend: memory")
	default:
		users = userstore.NewGormStore(db.DB, hasher)
		log.Printf("User store backend: sqlite")
	}

	var banned tokenban.Store
	var revocationPruner tasks.RevocationPruner
	switch cfg.Stores.Tokens {
	case config.BackendRedis:
		store := tokenban.NewRedisStore(redisClient, cfg.Auth.TokenExpiry)
		banned, revocationPruner = store, store
		log.Printf("Banned token store backend: redis")
	default:
		store := tokenban.NewMemoryStore(cfg.Auth.TokenExpiry)
		banned, revocationPruner = store, store
		log.Printf("Banned token store backend: memory")
	}

	var challenges twofa.Store
	var challengeSweeper tasks.ChallengeSweeper
	switch cfg.Stores.Challenges {
	case config.BackendRedis:
		store := twofa.NewRedisStore(redisClient, 0)
		challenges, challengeSweeper = store, store
		log.Printf("Challenge store backend: redis")
	default:
		store := twofa.NewMemoryStore(0)
		challenges, challengeSweeper = store, store
		log.Printf("Challenge store backend: memory")
	}

	tokens := token.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	mailer := email.NewLogClient()

	authService := auth.NewService(users, banned, challenges, tokens, mailer)

	auditService := audit.NewService(dbaudit.NewRepository(db.DB))

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	defer rateLimiter.Stop()

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.CleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewSweepChallengesQueue(challengeSweeper),
			tasks.NewPruneRevocationsQueue(revocationPruner),
			tasks.NewTrimAuditTrailQueue(auditService),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewCleanupScheduler(taskClient, cfg.Cleanup.Schedule, cfg.Audit.RetentionDays)
		if err := cleanupScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start cleanup scheduler: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		AuthService: authService,
		Auditor:     auditService,
		RateLimiter: rateLimiter,
		Cookie: http_controllers.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.SecureCookies,
			MaxAge: cfg.Auth.TokenExpiry,
		},
		Database: db,
		Version:  version,
	}
	// A typed nil in the interface field would defeat the health check's
	// nil test, so assign only when redis is actually configured.
	if redisClient != nil {
		routerCfg.Redis = redisClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
