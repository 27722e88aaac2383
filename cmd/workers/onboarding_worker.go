package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"appbuilder/editor-backend/internal/onboarding"
)

// OnboardingWorker completes running tours whose workspace reached 100 percent
// while no editor was polling the status bar
type OnboardingWorker struct {
	service onboarding.Service
	logger  *zap.Logger
	config  OnboardingWorkerConfig
	cron    *cron.Cron
}

// OnboardingWorkerConfig configuration for the onboarding worker
type OnboardingWorkerConfig struct {
	Schedule string
	Timeout  time.Duration
}

// NewOnboardingWorker validates the schedule and creates the worker
func NewOnboardingWorker(service onboarding.Service, logger *zap.Logger, config OnboardingWorkerConfig) (*OnboardingWorker, error) {
	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", config.Schedule, err)
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	return &OnboardingWorker{
		service: service,
		logger:  logger,
		config:  config,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger))),
	}, nil
}

// Start runs a reconciliation immediately, then on every tick until ctx is done
func (w *OnboardingWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.config.Schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule reconciliation: %w", err)
	}

	w.logger.Info("Starting onboarding worker", zap.String("schedule", w.config.Schedule))
	w.RunOnce(ctx)
	w.cron.Start()

	<-ctx.Done()
	w.logger.Info("Onboarding worker shutting down")
	<-w.cron.Stop().Done()
	return nil
}

// RunOnce reconciles every running tour and reports how many were completed
func (w *OnboardingWorker) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	runCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	start := time.Now()
	completed, err := w.service.Reconcile(runCtx)
	if err != nil {
		w.logger.Error("Onboarding reconciliation finished with errors",
			zap.Int("completed", completed),
			zap.Error(err))
		return completed
	}
	w.logger.Info("Onboarding reconciliation finished",
		zap.Int("completed", completed),
		zap.Duration("duration", time.Since(start)))
	return completed
}
