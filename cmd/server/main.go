// @title           PDFHub API
// @version         1.0.0
// @description     Document sharing and collaboration API for PDF files

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:9000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name session_token
// @description Session-based authentication cookie

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfhub/internal/cache"
	"pdfhub/internal/config"
	"pdfhub/internal/database"
	_ "pdfhub/internal/docs"
	"pdfhub/internal/events"
	"pdfhub/internal/middleware"
	"pdfhub/internal/repositories"
	"pdfhub/internal/response"
	"pdfhub/internal/router"
	"pdfhub/internal/services"
	"pdfhub/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting PDFHub",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Database
	dbManager, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database initialized and migrated")

	// Cache
	cacheInstance, err := newCache(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create cache", zap.Error(err))
	}
	defer cacheInstance.Close()

	// Blob storage
	blobStorage, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	logger.Info("Storage initialized", zap.String("provider", cfg.Storage.Provider))

	// Event bus for live document activity
	bus := events.NewBus(logger)

	// Repositories and services
	repoCollection := repositories.NewCollection(dbManager, logger)
	serviceCollection := services.NewCollection(repoCollection, blobStorage, cacheInstance, bus, cfg, logger)

	// HTTP plumbing
	authMiddleware := middleware.NewAuthMiddleware(serviceCollection.Auth, cfg.Auth, logger)

	responseConfig := response.DefaultConfig()
	if cfg.Server.Environment != "production" {
		responseConfig = response.DevelopmentConfig()
	}
	responseBuilder := response.NewBuilder(responseConfig, logger)

	handler := router.New(&router.Dependencies{
		Services:        serviceCollection,
		AuthMiddleware:  authMiddleware,
		ResponseBuilder: responseBuilder,
		Bus:             bus,
		DB:              dbManager,
		Config:          cfg,
		Logger:          logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	} else {
		logger.Info("Server shutdown completed")
	}
}

// newCache selects the cache backend from configuration.
func newCache(cfg *config.Config, logger *zap.Logger) (cache.Cache, error) {
	switch cfg.Cache.Provider {
	case "redis":
		return cache.NewRedisCache(cfg.Cache.RedisURL, logger)
	default:
		return cache.NewMemoryCache(), nil
	}
}

// initLogger builds the structured logger from configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err == nil {
		zapConfig.Level = level
	}

	return zapConfig.Build()
}
