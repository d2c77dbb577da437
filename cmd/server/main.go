package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/finsight/internal/adapter/http"
	"github.com/iho/finsight/internal/adapter/http/handler"
	"github.com/iho/finsight/internal/adapter/http/middleware"
	"github.com/iho/finsight/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/finsight/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finsight/internal/adapter/repository/redis"
	"github.com/iho/finsight/internal/categorize"
	"github.com/iho/finsight/internal/infrastructure/config"
	"github.com/iho/finsight/internal/infrastructure/logger"
	"github.com/iho/finsight/internal/infrastructure/metrics"
	"github.com/iho/finsight/internal/infrastructure/postgres"
	"github.com/iho/finsight/internal/infrastructure/redis"
	"github.com/iho/finsight/internal/ingest"
	"github.com/iho/finsight/internal/usecase"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Pick the cache backend
	var (
		cache       usecase.Cache
		redisClient *goredis.Client
	)
	switch cfg.CacheBackend {
	case "redis":
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		appLogger.Info().Msg("using redis cache backend")
	default:
		cache = memory.NewCache()
		appLogger.Info().Msg("using in-memory cache backend")
	}

	m := metrics.New()

	// Repositories and collaborators
	retrier := postgresRepo.NewRetrier(appLogger)
	transactionRepo := postgresRepo.NewTransactionRepository(pool, retrier)
	idGen := postgresRepo.NewULIDGenerator()
	categorizer := categorize.NewKeywordCategorizer()

	var extractor usecase.StatementExtractor
	if cfg.GeminiAPIKey != "" {
		os.Setenv("GOOGLE_API_KEY", cfg.GeminiAPIKey)
		extractor = ingest.NewGenAIExtractor(cfg.GeminiModel, appLogger)
		appLogger.Info().Str("model", cfg.GeminiModel).Msg("pdf statement extraction enabled")
	} else {
		appLogger.Info().Msg("pdf statement extraction disabled, no api key configured")
	}

	// Use cases
	insightUC := usecase.NewInsightUseCase(transactionRepo, cache, cfg.CacheTTL, appLogger)
	ingestUC := usecase.NewIngestUseCase(transactionRepo, cache, extractor, categorizer, idGen, m, appLogger)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)

	// HTTP surface
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		InsightHandler:     handler.NewInsightHandler(insightUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC, ingestUC, cfg.MaxUploadBytes),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             appLogger,
		Metrics:            m,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
