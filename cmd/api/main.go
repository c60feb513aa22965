package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	portfolioRepo := repository.NewPortfolioRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	authService := service.NewAuthService(cfg.Auth, accountRepo)
	portfolioService := service.NewPortfolioService(portfolioRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	mailService := service.NewMailService(cfg.SMTP, portfolioRepo, logger)

	if err := authService.EnsureAdmin(ctx, cfg.Admin, logger); err != nil {
		logger.Fatal("admin bootstrap failed", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg),
		Auth:           handlers.NewAuthHandler(authService),
		Portfolio:      handlers.NewPortfolioHandler(portfolioService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Contact:        handlers.NewContactHandler(mailService),
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.NewRateLimiter(cfg.RateLimit, redis, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
