package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/retetar/backend/config"
	"github.com/retetar/backend/internal/database"
	"github.com/retetar/backend/internal/logging"
	"github.com/retetar/backend/internal/server"
	"github.com/retetar/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, config.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Burst rate limiting degrades gracefully without Redis; the daily
		// quota lives in the database and is unaffected.
		logger.Warn("redis unavailable, burst rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	quotaService := service.NewQuotaService(db)
	llmService := service.NewGeminiService(cfg, logger.Named("gemini"))
	generatorService := service.NewGeneratorService(llmService, quotaService, logger.Named("generator"))
	recipeService := service.NewRecipeService(db)

	srv := server.New(cfg, logger, db, redisClient, authService, generatorService, quotaService, recipeService)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
