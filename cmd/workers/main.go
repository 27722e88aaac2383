package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	v1 "appbuilder/editor-backend/api/v1"
	"appbuilder/editor-backend/internal/config"
	"appbuilder/editor-backend/internal/database"
	"appbuilder/editor-backend/pkg/logging"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("Failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(connectCtx, cfg.Database)
	connectCancel()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	gdb, err := database.OpenGorm(db.DB)
	if err != nil {
		logger.Fatal("Failed to initialize gorm", zap.Error(err))
	}

	logger.Info("Connected to database")

	// Workers hold no editor sessions, so status pushes are disabled
	service := v1.NewOnboardingService(db, gdb, nil, logger)
	worker, err := NewOnboardingWorker(service, logger, OnboardingWorkerConfig{
		Schedule: cfg.Onboarding.ReconcileSchedule,
		Timeout:  cfg.Onboarding.ReconcileTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to create onboarding worker", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := worker.Start(ctx); err != nil {
		logger.Error("Worker error", zap.Error(err))
	}

	logger.Info("Onboarding worker stopped")
}
