package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linkguard/go-url-guard/internal/check/cache"
	"github.com/linkguard/go-url-guard/internal/check/config"
	"github.com/linkguard/go-url-guard/internal/check/events"
	"github.com/linkguard/go-url-guard/internal/check/handler"
	"github.com/linkguard/go-url-guard/internal/check/metrics"
	"github.com/linkguard/go-url-guard/internal/check/repository"
	"github.com/linkguard/go-url-guard/internal/check/safebrowsing"
	"github.com/linkguard/go-url-guard/internal/check/service"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize database
	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg.Redis)
	defer redisClient.Close()

	// Initialize Kafka publisher
	publisher, err := events.NewEventPublisher(cfg.Kafka.Brokers)
	if err != nil {
		logger.Fatal("Failed to initialize event publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Initialize dependencies
	repo := repository.NewPostgresRepository(db)
	verdictCache := cache.NewRedisCache(redisClient)
	reputationClient := safebrowsing.NewClient(safebrowsing.Config{
		Endpoint:        cfg.SafeBrowsing.Endpoint,
		APIKey:          cfg.SafeBrowsing.APIKey,
		Timeout:         cfg.SafeBrowsing.Timeout,
		BreakerFailures: cfg.SafeBrowsing.BreakerFailures,
		BreakerTimeout:  cfg.SafeBrowsing.BreakerTimeout,
	}, logger)

	// Initialize metrics
	metricsCollector := metrics.NewInMemoryMetrics()

	// Initialize service
	checkService := service.NewCheckService(
		repo,
		verdictCache,
		reputationClient,
		publisher,
		logger,
		metricsCollector,
	)

	// Start HTTP server
	httpHandler := handler.NewHTTPHandler(checkService, logger)
	router := setupHTTPRouter(httpHandler, metricsCollector)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Fatal("Server error", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func initDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func setupHTTPRouter(handler *handler.HTTPHandler,
	m *metrics.InMemoryMetrics) *gin.Engine {

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, m.Snapshot())
	})

	handler.RegisterRoutes(router)

	return router
}
