// Package main provides the entry point for the background edge worker.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/drift"
	"github.com/yourusername/clever-edge/internal/health"
	"github.com/yourusername/clever-edge/internal/logger"
	"github.com/yourusername/clever-edge/internal/metrics"
	"github.com/yourusername/clever-edge/internal/repository"
	"github.com/yourusername/clever-edge/internal/scheduler"
	"github.com/yourusername/clever-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		log.Fatalf("Failed to load secrets: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Edge worker starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	db, err := database.Initialize(ctx, cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	monitor, err := drift.NewMonitor(cfg.Engine.DriftBins, cfg.Engine.DriftThreshold)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid drift settings")
	}
	driftSvc := service.NewDriftService(repos.Feature, repos.DriftReport, monitor, cfg.Drift, appLog)
	calibrationSvc := service.NewCalibrationService(repos.Outcome, repos.PlattParams, cfg.Calibration, cfg.Engine, appLog)

	sched := scheduler.NewScheduler(appLog)
	if cfg.Drift.Enabled {
		if err := sched.Schedule(cfg.Drift.Schedule, scheduler.DriftJob(driftSvc)); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule drift job")
		}
	}
	if cfg.Calibration.Enabled {
		if err := sched.Schedule(cfg.Calibration.Schedule, scheduler.CalibrationJob(calibrationSvc)); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule calibration job")
		}
	}

	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        cfg.Health.Port,
		GRPCPort:    cfg.Health.GRPCPort,
		Logger:      appLog,
		DB:          db,
	}
	if cfg.Metrics.Enabled {
		healthCfg.MetricsPath = cfg.Metrics.Path
		healthCfg.MetricsHandler = metrics.Handler()
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	if cfg.Drift.Enabled || cfg.Calibration.Enabled {
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
	} else {
		appLog.Warn("No jobs enabled; serving health endpoints only")
	}
	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"drift_enabled":       cfg.Drift.Enabled,
		"calibration_enabled": cfg.Calibration.Enabled,
		"next_run":            sched.NextRun(),
	}).Info("Edge worker running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	cancel()
	if err := healthServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error shutting down health server")
	}

	appLog.Info("Edge worker shut down successfully")
}
