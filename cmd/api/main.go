package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"profilemax/internal/config"
	apihttp "profilemax/internal/http"
	"profilemax/internal/llm"
	"profilemax/internal/logger"
	"profilemax/internal/metrics"
	"profilemax/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	appLogger := logger.New(cfg)
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		recorder       *metrics.Recorder
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		recorder, err = metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			appLogger.Fatal("metrics init", zap.Error(err))
		}
		metricsHandler = promhttp.Handler()
	}

	var limiter service.UpstreamLimiter = service.NewMemoryUpstreamLimiter(cfg.UpstreamRateWindow, cfg.UpstreamRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			appLogger.Warn("redis ping failed, using in-memory upstream limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisUpstreamLimiter(redisClient, cfg.UpstreamRateWindow, cfg.UpstreamRateLimit, recorder, appLogger)
		}
		cancel()
	}

	mockMode := cfg.MockMode()
	var llmClient llm.LLMClient
	if mockMode {
		appLogger.Warn("llm api key not configured, serving mock responses")
	} else {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, appLogger)
	}

	proxyOpts := service.ProxyOptions{
		MockMode: mockMode,
		Limiter:  limiter,
		Metrics:  recorder,
	}
	bioSvc := service.NewBioService(llmClient, proxyOpts, appLogger)
	messageSvc := service.NewMessageService(llmClient, proxyOpts, appLogger)
	profileAnalyzer := service.NewProfileAnalyzer(bioSvc, recorder, appLogger)

	bioHandler := apihttp.NewBioHandler(appLogger, bioSvc, cfg.ExposeDegraded)
	messageHandler := apihttp.NewMessageHandler(appLogger, messageSvc, cfg.ExposeDegraded)
	profileHandler := apihttp.NewProfileHandler(appLogger, profileAnalyzer, cfg.ExposeDegraded)
	healthHandler := apihttp.NewHealthHandler(mockMode)
	router := apihttp.NewRouter(appLogger, cfg.TrustedProxies, bioHandler, messageHandler, profileHandler, healthHandler, metricsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("server shutdown", zap.Error(err))
		}
	}()

	appLogger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Bool("mock_mode", mockMode),
		zap.String("model", cfg.LLMModel),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Fatal("server error", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
