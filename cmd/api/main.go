package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/smart-kitchen/backend/config"
	"github.com/pageza/smart-kitchen/backend/internal/api"
	"github.com/pageza/smart-kitchen/backend/internal/database"
	"github.com/pageza/smart-kitchen/backend/internal/llm"
	"github.com/pageza/smart-kitchen/backend/internal/logger"
	"github.com/pageza/smart-kitchen/backend/internal/router"
	"github.com/pageza/smart-kitchen/backend/internal/server"
	"github.com/pageza/smart-kitchen/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.Init(string(cfg.Environment))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	if !cfg.HasCredential() {
		zl.Warn("no provider API key configured, generation requests will fail", zap.String("provider", cfg.Provider))
	}

	db, err := database.New(cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	var audit *service.AuditService
	if db != nil {
		if err := database.RunMigrations(db); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
		audit = service.NewAuditService(db)
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		zl.Fatal("failed to create provider client", zap.Error(err))
	}

	var guard service.Guard
	if cfg.RedisGuard {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		guard = service.NewRedisGuard(client, cfg.GuardTTL)
	}

	var recorder service.AuditRecorder
	if audit != nil {
		recorder = audit
	}
	generator := service.NewGenerationService(cfg, provider, recorder)
	sessions := service.NewSessionStore()
	tokens := service.NewSessionService(cfg.SessionSecret, cfg.SessionTTL)

	handler := router.SetupRouter(zl, cfg.CORSOrigins, router.Handlers{
		Health:      api.NewHealthHandler(db),
		Generate:    api.NewGenerateHandler(generator),
		Stock:       api.NewStockHandler(tokens, sessions, service.NewSessionGenerator(generator, guard)),
		Generations: api.NewGenerationsHandler(audit, cfg.OperatorToken),
	})

	srv := server.New(cfg, handler, sessions)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown error", zap.Error(err))
	}
	closeDB(zl, db)
	zl.Info("server stopped")
}

func closeDB(zl *zap.Logger, db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		zl.Warn("failed to close database", zap.Error(err))
	}
}
