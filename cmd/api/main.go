package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradex/internal/api/config"
	delivery "tradex/internal/api/delivery/http"
	"tradex/internal/api/repository"
	"tradex/internal/api/service"
	"tradex/pkg/logger"
	"tradex/pkg/postgres"
	"tradex/pkg/redis"
	"tradex/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trading API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Trading API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	stockRepo := repository.NewStockRepository(db.DB)
	positionRepo := repository.NewStockPositionRepository(db.DB)
	feedAuditRepo := repository.NewFeedAuditRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	priceCache := repository.NewPriceCache(redisClient.Client)

	// Initialize services
	pricingSvc := service.NewPricingService(stockRepo, priceCache, appLogger)
	tradingSvc := service.NewTradingService(positionRepo, pricingSvc, appLogger)
	authSvc := service.NewAuthService(userRepo, appLogger)
	ingestionSvc := service.NewIngestionService(cfg.Feed.Directory, feedAuditRepo, priceCache, appLogger)

	ingestionScheduler, err := service.NewIngestionScheduler(ingestionSvc, cfg.Feed.Schedule, appLogger)
	if err != nil {
		appLogger.Fatal("Invalid feed schedule", logger.ErrorField(err))
	}

	// Start the ingestion scheduler
	utils.GoSafe(func() { ingestionScheduler.Start(ctx) })

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	if cfg.API.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.API.RateLimit))))
	}

	tokenCacheTTL := 5 * time.Minute
	if cfg.Auth.TokenCacheTTL != "" {
		tokenCacheTTL, err = time.ParseDuration(cfg.Auth.TokenCacheTTL)
		if err != nil {
			appLogger.Fatal("Invalid token cache TTL", logger.ErrorField(err))
		}
	}
	authMiddleware := delivery.NewTokenAuthMiddleware(authSvc, tokenCacheTTL)

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	authHandler := delivery.NewAuthHandler(authSvc, appLogger)
	authHandler.RegisterRoutes(apiV1.Group("/auth"))

	stockHandler := delivery.NewStockHandler(pricingSvc, appLogger)
	stockHandler.RegisterRoutes(apiV1.Group("/stocks", authMiddleware.Handle))

	portfolioHandler := delivery.NewPortfolioHandler(tradingSvc, appLogger)
	portfolioHandler.RegisterRoutes(apiV1.Group("/portfolio", authMiddleware.Handle))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "api"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api CLI: %s\n", err)
		os.Exit(1)
	}
}
