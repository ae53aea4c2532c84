package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"studentsites/internal/catalog"
	"studentsites/internal/config"
	"studentsites/internal/health"
	"studentsites/internal/infrastructure/cache"
	"studentsites/internal/infrastructure/logger"
	"studentsites/internal/infrastructure/storage"
	"studentsites/internal/offer"
	"studentsites/internal/order"
	"studentsites/internal/server"
	"studentsites/internal/server/middleware"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to storage", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			zapLogger.Error("closing storage", zap.Error(err))
		}
	}()

	checks := health.NewRegistry(backend.Checker())

	var readCache cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled() {
		redisClient := cache.NewRedisClient(cfg.Cache.RedisAddr)
		defer redisClient.Close()
		readCache = cache.NewRedisCache(redisClient, "studentsites")
		checks.Register(health.NewRedisChecker(redisClient))
		zapLogger.Info("read cache enabled", zap.String("addr", cfg.Cache.RedisAddr), zap.Duration("ttl", cfg.Cache.TTL))
	}

	packages, err := catalog.Default()
	if err != nil {
		zapLogger.Fatal("loading package catalog", zap.Error(err))
	}

	orderCtrl, err := order.NewModule(backend, readCache, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating order module", zap.Error(err))
	}
	offerCtrl := offer.NewModule(backend, readCache, packages, cfg, zapLogger)

	router := server.NewRouter(server.RouterConfig{
		Orders:         orderCtrl,
		Offers:         offerCtrl,
		Health:         checks,
		SubmitLimiter:  middleware.NewLimiter(cfg.Server.SubmitRateLimit, cfg.Server.SubmitRateBurst),
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}
