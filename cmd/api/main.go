package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mediscope-ai/backend/internal/adapters/cache"
	"github.com/mediscope-ai/backend/internal/adapters/database"
	"github.com/mediscope-ai/backend/internal/api/handlers"
	"github.com/mediscope-ai/backend/internal/api/routes"
	"github.com/mediscope-ai/backend/internal/application/services"
	"github.com/mediscope-ai/backend/internal/domain/providers"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
	"github.com/mediscope-ai/backend/internal/infrastructure/clients/openairecs"
	"github.com/mediscope-ai/backend/internal/infrastructure/clients/postgres"
	"github.com/mediscope-ai/backend/internal/infrastructure/clients/redis"
	"github.com/mediscope-ai/backend/internal/infrastructure/observability"
	"github.com/mediscope-ai/backend/internal/ml"
	"github.com/mediscope-ai/backend/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Model and scaler artifacts load before anything serves. A missing or
	// corrupt artifact for any disease is fatal here, never per-request.
	registry, err := ml.LoadRegistry(cfg.Artifacts.Dir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Artifacts.Dir).Msg("failed to load model artifacts")
	}
	logger.Info().Str("dir", cfg.Artifacts.Dir).Msg("model and scaler artifacts loaded")

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// The application works without caching
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	var recordRepo repositories.PatientRecordRepository = database.NewPatientRecordAdapter(pgClient)
	if cacheProvider != nil {
		recordRepo = database.NewCachedPatientRecordAdapter(recordRepo, cacheProvider, metrics)
		logger.Info().Msg("patient record adapter wrapped with caching layer")
	}
	doctorRepo := database.NewDoctorAdapter(pgClient)

	var recommender providers.RecommendationProvider
	if cfg.OpenAI.APIKey != "" {
		client, err := openairecs.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("recommendation client unavailable, continuing without recommendations")
		} else {
			recommender = client
			logger.Info().Str("model", cfg.OpenAI.Model).Msg("recommendation client initialized")
		}
	}

	predictionService := services.NewPredictionService(registry, recordRepo, recommender, metrics)
	historyService := services.NewHistoryService(recordRepo)
	doctorService := services.NewDoctorService(doctorRepo)

	router := routes.NewRouter(
		handlers.NewPredictionHandler(predictionService),
		handlers.NewRecordHandler(historyService),
		handlers.NewDoctorHandler(doctorService),
		doctorService,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
