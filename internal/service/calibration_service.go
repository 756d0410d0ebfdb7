package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/calibration"
	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/logger"
	"github.com/yourusername/clever-edge/internal/metrics"
	"github.com/yourusername/clever-edge/internal/models"
	"github.com/yourusername/clever-edge/internal/repository"
)

// CalibrationRun is the result of one evaluation and refit.
type CalibrationRun struct {
	Report *models.CalibrationReport `json:"report"`
	Params *models.PlattParams       `json:"params"`
}

// CalibrationService evaluates stored predictions against outcomes and
// refits Platt scaling parameters
type CalibrationService struct {
	outcomes repository.OutcomeRepository
	params   repository.PlattParamsRepository
	cfg      config.CalibrationConfig
	bins     int
	platt    calibration.PlattConfig
	audit    *logger.AuditLogger
	logger   *logrus.Logger
	now      func() time.Time
}

// NewCalibrationService creates a new calibration service
func NewCalibrationService(
	outcomes repository.OutcomeRepository,
	params repository.PlattParamsRepository,
	cfg config.CalibrationConfig,
	engine config.EngineConfig,
	log *logrus.Logger,
) *CalibrationService {
	return &CalibrationService{
		outcomes: outcomes,
		params:   params,
		cfg:      cfg,
		bins:     engine.CalibrationBins,
		platt: calibration.PlattConfig{
			LearningRate: engine.PlattLearningRate,
			Iterations:   engine.PlattIterations,
		},
		audit:  logger.NewAuditLogger(log),
		logger: log,
		now:    time.Now,
	}
}

// Run evaluates the configured model version over the lookback window and
// stores a fresh Platt fit.
func (s *CalibrationService) Run(ctx context.Context) (*CalibrationRun, error) {
	now := s.now().UTC()
	rows, err := s.outcomes.GetSince(ctx, s.cfg.ModelVersion, now.Add(-s.cfg.Lookback))
	if err != nil {
		return nil, fmt.Errorf("failed to load outcomes for %s: %w", s.cfg.ModelVersion, err)
	}
	if len(rows) == 0 || len(rows) < s.cfg.MinSamples {
		return nil, fmt.Errorf("%w: %d outcomes for %s, need %d", ErrInsufficientSamples, len(rows), s.cfg.ModelVersion, s.cfg.MinSamples)
	}

	preds, outcomes := models.SplitOutcomes(rows)
	report, err := calibration.Evaluate(preds, outcomes, s.bins)
	if err != nil {
		return nil, fmt.Errorf("calibration evaluation failed: %w", err)
	}
	report.ModelVersion = s.cfg.ModelVersion
	report.EvaluatedAt = now

	scaler, err := calibration.FitPlatt(preds, outcomes, s.platt)
	if err != nil {
		return nil, fmt.Errorf("platt fit failed: %w", err)
	}
	fittedLoss, err := calibration.LogLoss(scaler.ApplyAll(preds), outcomes)
	if err != nil {
		return nil, fmt.Errorf("platt fit evaluation failed: %w", err)
	}

	params := &models.PlattParams{
		ModelVersion: s.cfg.ModelVersion,
		A:            scaler.A,
		B:            scaler.B,
		SampleSize:   len(rows),
		LogLoss:      fittedLoss,
		FittedAt:     now,
	}

	previous, err := s.params.GetLatest(ctx, s.cfg.ModelVersion)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to load previous platt params: %w", err)
	}
	if err := s.params.Save(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to store platt params: %w", err)
	}

	metrics.RecordCalibration(report.ModelVersion, report.BrierScore, report.LogLoss, report.ECE)
	metrics.RecordPlattParams(params.ModelVersion, params.A, params.B)
	s.audit.LogCalibrationRun(report)
	s.audit.LogPlattRefit(previous, params)

	return &CalibrationRun{Report: report, Params: params}, nil
}

// Scaler returns the latest stored scaler for the configured model version,
// or nil when none has been fitted yet.
func (s *CalibrationService) Scaler(ctx context.Context) (*calibration.PlattScaler, error) {
	p, err := s.params.GetLatest(ctx, s.cfg.ModelVersion)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load platt params: %w", err)
	}
	return &calibration.PlattScaler{A: p.A, B: p.B}, nil
}
