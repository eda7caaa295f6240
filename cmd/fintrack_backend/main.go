package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/fintrack_app/internal/analytics"
	"github.com/SscSPs/fintrack_app/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/core/services"
	"github.com/SscSPs/fintrack_app/internal/handlers"
	"github.com/SscSPs/fintrack_app/internal/messaging/amqp"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
	"github.com/SscSPs/fintrack_app/internal/platform/database"
	"github.com/SscSPs/fintrack_app/internal/providers/marketdata"
	"github.com/SscSPs/fintrack_app/internal/providers/ratesapi"
	"github.com/SscSPs/fintrack_app/internal/providers/ratesfile"
	"github.com/SscSPs/fintrack_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/fintrack_app/internal/repositories/memory"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title FinTrack Backend API
// @version 1.0
// @description Personal finance tracking with multi-currency records and base-currency valuation.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	rateProvider, err := newRateProvider(cfg, logger)
	if err != nil {
		return err
	}

	posthogClient := analytics.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	hooks := []portssvc.RecordHook{posthogClient}
	if cfg.AMQPURL != "" {
		publisher, err := amqp.Dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				logger.Warn("Error closing AMQP publisher", slog.String("error", cerr.Error()))
			}
		}()
		hooks = append(hooks, publisher)
	}

	deps := services.Dependencies{
		Repos:        repos,
		RateProvider: rateProvider,
		ExtraHooks:   hooks,
		Logger:       logger,
	}
	if cfg.MarketDataAPIKey != "" {
		deps.MarketData = marketdata.New(cfg.MarketDataURL, cfg.MarketDataAPIKey, cfg.RateProviderTimeout)
	}

	container, rateSync, err := services.NewServiceContainer(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	router, err := newRouter(cfg, container, posthogClient, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rateSync.Start(gctx)
		<-gctx.Done()
		rateSync.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger, database.WithConnectTimeout(10*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool, logger) }, nil
}

func newRateProvider(cfg *config.Config, logger *slog.Logger) (providers.RateProvider, error) {
	switch cfg.RateProvider {
	case config.RateProviderFile:
		return ratesfile.New(cfg.RateProviderFile), nil
	default:
		client, err := ratesapi.New(ratesapi.Config{
			URLTemplate:   cfg.RateProviderURL,
			RatesPath:     cfg.RateProviderRatesPath,
			TimestampPath: cfg.RateProviderTimestampPath,
			Timeout:       cfg.RateProviderTimeout,
		}, ratesapi.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate provider: %w", err)
		}
		return client, nil
	}
}

func newRouter(cfg *config.Config, container *portssvc.ServiceContainer, posthogClient *analytics.PosthogClientWrapper, logger *slog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiLimiter, err := middleware.NewMemoryLimiter(cfg.APIRateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid API_RATE_LIMIT %q: %w", cfg.APIRateLimit, err)
	}
	r.Use(middleware.RateLimit(apiLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, middleware.PosthogMiddleware(posthogClient))
	return r, nil
}
