// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caretrack/go-backend/internal/admin"
	"github.com/caretrack/go-backend/internal/assignment"
	"github.com/caretrack/go-backend/internal/auth"
	"github.com/caretrack/go-backend/internal/authz"
	"github.com/caretrack/go-backend/internal/config"
	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/health"
	"github.com/caretrack/go-backend/internal/meal"
	"github.com/caretrack/go-backend/internal/middleware"
	"github.com/caretrack/go-backend/internal/permission"
	"github.com/caretrack/go-backend/internal/reminder"
	"github.com/caretrack/go-backend/internal/server"
	"github.com/caretrack/go-backend/internal/user"
)

const (
	drainDelay         = 5 * time.Second
	tokenSweepInterval = time.Hour
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	permRepo := permission.NewRepository(db.DB)
	permSvc := permission.NewService(db.DB, permRepo)
	permHandler := permission.NewHandler(permSvc)

	assignRepo := assignment.NewRepository(db.DB)

	userRepo := user.NewRepository(db.DB)
	evaluator := authz.NewEvaluator(permSvc, assignRepo, userRepo)
	userSvc := user.NewService(db.DB, userRepo, permRepo, assignRepo, evaluator)
	userHandler := user.NewHandler(userSvc)

	reminderRepo := reminder.NewRepository(db.DB)
	reminderSvc := reminder.NewService(reminderRepo, userSvc)
	reminderHandler := reminder.NewHandler(reminderSvc, evaluator)

	mealRepo := meal.NewRepository(db.DB)
	mealSvc := meal.NewService(mealRepo, userSvc)
	mealHandler := meal.NewHandler(mealSvc, evaluator)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	roleLimiter := middleware.RoleRateLimiter(
		redis.Client,
		middleware.DefaultRoleLimits,
	)
	authenticator := func(next http.Handler) http.Handler {
		return middleware.Authenticator(jwtManager)(roleLimiter(next))
	}
	adminOnly := middleware.RequireAdmin
	caregiverOnly := middleware.RequireRole(
		authz.RoleCaregiver,
		authz.RoleAdmin,
	)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterCaretakerRoutes(r, authenticator, caregiverOnly)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		reminderHandler.RegisterRoutes(r, authenticator)
		mealHandler.RegisterRoutes(r, authenticator)

		permHandler.RegisterRoutes(r, authenticator)
		permHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	go sweepRefreshTokens(ctx, authRepo, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// sweepRefreshTokens purges refresh tokens that expired more than a day
// ago so revocation history stays queryable for recent incidents.
func sweepRefreshTokens(
	ctx context.Context,
	repo auth.Repository,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx)
			if err != nil {
				logger.Warn("refresh token sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired refresh tokens purged", "count", deleted)
			}
		}
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
