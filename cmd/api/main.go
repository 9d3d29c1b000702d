package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/park-api/internal/api/http"
	"github.com/spec-kit/park-api/internal/api/http/handlers"
	"github.com/spec-kit/park-api/internal/auth"
	"github.com/spec-kit/park-api/internal/config"
	"github.com/spec-kit/park-api/internal/events"
	"github.com/spec-kit/park-api/internal/observability"
	"github.com/spec-kit/park-api/internal/persistence"
	"github.com/spec-kit/park-api/internal/repository"
	"github.com/spec-kit/park-api/internal/service"
	"github.com/spec-kit/park-api/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	attemptRepo := repository.NewLoginAttemptRepository(redis.Client)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHash, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init password hasher", zap.Error(err))
	}
	verifier, err := auth.NewCredentialVerifier(userRepo, hasher)
	if err != nil {
		logger.Fatal("failed to init credential verifier", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(service.AuthDependencies{
		Verifier:   verifier,
		Users:      userRepo,
		Tokens:     tokens,
		Lockout:    auth.NewLockout(attemptRepo, cfg.Lockout, logger),
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	userService := service.NewUserService(userRepo, hasher, dispatcher, logger)
	customerService := service.NewCustomerService(customerRepo, dispatcher, logger)

	entry := auth.NewEntryPoint(cfg.Auth.ChallengeRealm, logger)
	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			map[string]handlers.Pinger{"postgres": pg},
			map[string]handlers.Pinger{"redis": redis},
		),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Customers:      handlers.NewCustomersHandler(customerService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, userRepo, logger, metrics),
		Access:         auth.NewAccessDecider(entry, logger, metrics),
		Metrics:        metrics.Handler(),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
