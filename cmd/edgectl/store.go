package main

import (
	"context"
	"fmt"

	"github.com/yourusername/clever-edge/internal/calibration"
	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/database"
	"github.com/yourusername/clever-edge/internal/repository"
	"github.com/yourusername/clever-edge/internal/service"
)

// storeOpener connects the repositories a command needs. The returned close
// function releases the connection.
type storeOpener func(ctx context.Context) (*repository.Repositories, func(), error)

// openDatabase connects to the configured PostgreSQL database.
func (a *app) openDatabase(ctx context.Context) (*repository.Repositories, func(), error) {
	if err := config.Validate(a.cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	db, err := database.Initialize(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repos, db.Close, nil
}

// storedScaler loads the latest Platt fit for the configured model version.
// It returns nil when nothing has been fitted yet.
func (a *app) storedScaler(ctx context.Context, repos *repository.Repositories) (*calibration.PlattScaler, error) {
	svc := service.NewCalibrationService(repos.Outcome, repos.PlattParams, a.cfg.Calibration, a.cfg.Engine, a.logger)
	scaler, err := svc.Scaler(ctx)
	if err != nil {
		return nil, err
	}
	if scaler == nil {
		a.logger.WithField("model_version", a.cfg.Calibration.ModelVersion).Warn("No Platt parameters stored; using raw probabilities")
	}
	return scaler, nil
}
