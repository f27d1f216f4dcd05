package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisAdapter "github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/cache/redis"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/classifier/gemini"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/messaging/nats"
	mongoRepo "github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded successfully",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("mongo_database", cfg.Mongo.Database),
		zap.String("bucket", cfg.Storage.Bucket),
		zap.Bool("auth_enabled", cfg.Auth.JWTSecret != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := tracer.InitTracer(cfg.ServiceName, cfg.Tracing, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager("agrilink")
	go func() {
		if err := metrics.StartMetricsServer(ctx, cfg.Metrics.Port, appLogger, metricsManager.Registry); err != nil {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	gateway, err := mongoRepo.Connect(ctx, cfg.Mongo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gateway.Close(closeCtx); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	listingRepo := mongoRepo.NewListingRepository(gateway, cfg.Mongo.ListingsColl, appLogger)
	if err := listingRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warn("Failed to ensure listing indexes", zap.Error(err))
	}
	tenderRepo := mongoRepo.NewTenderRepository(gateway, cfg.Mongo.TendersColl, appLogger)

	var images domain.ImageStore
	if storage, err := s3.NewImageStorage(ctx, cfg.Storage, metricsManager.UploadFailuresTotal, appLogger); err != nil {
		appLogger.Warn("Object storage unavailable, listings will be saved without images", zap.Error(err))
	} else {
		images = storage
	}

	var classifier domain.Classifier
	if cfg.Gemini.APIKey == "" {
		appLogger.Warn("gemini.api_key is empty, analysis requests will fail")
	} else if c, err := gemini.NewClassifier(ctx, cfg.Gemini, appLogger); err != nil {
		appLogger.Error("Failed to initialize Gemini classifier", zap.Error(err))
	} else {
		classifier = c
	}

	var publisher domain.EventPublisher
	if natsPublisher, err := natsAdapter.NewPublisher(cfg.NATS.URL, cfg.NATS.ConnectTimeout, appLogger, cfg.ServiceName); err != nil {
		appLogger.Warn("NATS unavailable, listing events will not be published", zap.Error(err))
	} else {
		publisher = natsPublisher
		defer natsPublisher.Close()
	}

	var cache domain.CacheRepository
	if redisClient, err := redisAdapter.NewRedisClient(ctx, cfg.Redis, appLogger); err != nil {
		appLogger.Warn("Redis unavailable, tenders will be served without cache", zap.Error(err))
	} else {
		cache = redisAdapter.NewRedisCacheRepository(redisClient, cfg.Redis.KeyPrefix, appLogger)
		defer func() {
			if err := redisClient.Close(); err != nil {
				appLogger.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	listingUC := usecase.NewListingUsecase(listingRepo, images, publisher, metricsManager, appLogger)
	valuationUC := usecase.NewValuationUsecase(classifier, metricsManager, appLogger)
	dashboardUC := usecase.NewDashboardUsecase(listingRepo, appLogger)
	tenderUC := usecase.NewTenderUsecase(tenderRepo, cache, cfg.Redis.TenderTTL, appLogger)

	h := handler.NewHandler(handler.Deps{
		Listings:     listingUC,
		Valuation:    valuationUC,
		Dashboard:    dashboardUC,
		Tenders:      tenderUC,
		Health:       gateway,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	}, appLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router.New(h, metricsManager, cfg.Auth.JWTSecret, appLogger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Received shutdown signal")
	case err := <-serverErr:
		appLogger.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
