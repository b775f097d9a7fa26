package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/CloudArcade/GameGate/pkg/config"
	handlers "github.com/CloudArcade/GameGate/pkg/handlers/http"
	"github.com/CloudArcade/GameGate/pkg/infra/cache"
	"github.com/CloudArcade/GameGate/pkg/infra/gateway"
	infraLogger "github.com/CloudArcade/GameGate/pkg/infra/logger"
	"github.com/CloudArcade/GameGate/pkg/infra/prometheus"
	"github.com/CloudArcade/GameGate/pkg/middleware"
	"github.com/CloudArcade/GameGate/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	// CONFIG_PATH overrides where config.yaml is looked up.
	if err := config.Load(os.Getenv("CONFIG_PATH")); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:         cfg.Metrics.EnableLatency,
		EnableUpstreamLatency: cfg.Metrics.EnableUpstream,
	})

	if !cfg.Gateway.Enabled() {
		logger.Warn("gateway url or token not configured, gateway endpoints will answer 503")
	}
	gatewayClient := gateway.NewClient(cfg.Gateway, logger)

	var gamesCache *cache.Cache
	if cfg.Redis.Enabled() {
		var err error
		gamesCache, err = cache.NewCache(cfg.Redis)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, games cache disabled")
		}
	}

	middlewareTransport := middleware.Transport{
		RequestLoggerMiddleware: middleware.NewRequestLoggerMiddleware(logger),
		MetricsMiddleware:       middleware.NewMetricsMiddleware(logger),
	}

	handlerTransport := handlers.HandlerTransport{
		CreateSessionHandler: handlers.NewCreateSessionHandler(logger, gatewayClient, cfg.Gateway.Enabled()),
		ListGamesHandler:     handlers.NewListGamesHandler(logger, gatewayClient, cfg.Gateway.Enabled(), gamesCache, cfg.Redis.GamesTTL),
		GetVersionHandler:    handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	if gamesCache != nil {
		_ = gamesCache.Close()
	}
	fmt.Println("server gracefully stopped")
}
