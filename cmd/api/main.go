package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/config"
	"github.com/namefreezers/weather-lookup-api/internal/repository"
	"github.com/namefreezers/weather-lookup-api/internal/server"
	"github.com/namefreezers/weather-lookup-api/internal/services"
	"github.com/namefreezers/weather-lookup-api/internal/tracing"
	"github.com/namefreezers/weather-lookup-api/internal/weather"
	"github.com/namefreezers/weather-lookup-api/internal/weather/weatherstack"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1) Load configuration from .env and the environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Initialize structured logger
	var logger *zap.Logger
	if cfg.Development {
		logger, err = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.WeatherstackAPIKey == "" {
		logger.Warn("WEATHERSTACK_API_KEY is not set; weather lookups will fail until it is configured")
	}

	// 3) Tracing (no-op unless ZIPKIN_URL is set)
	shutdownTracing, err := tracing.Init(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// 4) Build the weather fetcher and the in-memory record store
	weatherFetcher := weather.NewLoggingFetcher(weatherstack.NewClient(cfg, &http.Client{}, logger), logger)
	recordRepo := repository.NewMemoryRepository(logger)

	// 5) Wire up the weather service and router
	weatherSvc := services.NewWeatherService(recordRepo, weatherFetcher, logger)
	router := server.NewRouter(cfg, weatherSvc, logger)

	// 6) Start HTTP server
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting API server",
			zap.String("address", srv.Addr),
			zap.String("frontend_origin", cfg.FrontendOrigin),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down API server")

	// 7) Graceful shutdown: drain in-flight requests, then flush spans
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error flushing traces", zap.Error(err))
	}
}
