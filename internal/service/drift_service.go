package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/drift"
	"github.com/yourusername/clever-edge/internal/logger"
	"github.com/yourusername/clever-edge/internal/metrics"
	"github.com/yourusername/clever-edge/internal/models"
	"github.com/yourusername/clever-edge/internal/repository"
)

// DriftService runs scheduled feature drift checks
type DriftService struct {
	features repository.FeatureRepository
	reports  repository.DriftReportRepository
	monitor  *drift.Monitor
	cfg      config.DriftConfig
	audit    *logger.AuditLogger
	logger   *logrus.Logger
	now      func() time.Time
}

// NewDriftService creates a new drift service
func NewDriftService(
	features repository.FeatureRepository,
	reports repository.DriftReportRepository,
	monitor *drift.Monitor,
	cfg config.DriftConfig,
	log *logrus.Logger,
) *DriftService {
	return &DriftService{
		features: features,
		reports:  reports,
		monitor:  monitor,
		cfg:      cfg,
		audit:    logger.NewAuditLogger(log),
		logger:   log,
		now:      time.Now,
	}
}

// Windows returns the reference and current windows ending at now. The
// reference window ends where the current one starts.
func (s *DriftService) Windows(now time.Time) (reference, current models.TimeWindow) {
	now = now.UTC()
	current = models.TimeWindow{Start: now.Add(-s.cfg.CurrentWindow), End: now}
	reference = models.TimeWindow{Start: now.Add(-s.cfg.ReferenceWindow), End: current.Start}
	return reference, current
}

// RunCheck loads both windows for every monitored feature, compares them and
// persists the reports. Features with an empty window are skipped.
func (s *DriftService) RunCheck(ctx context.Context) ([]*models.DriftReport, error) {
	names := s.cfg.Features
	if len(names) == 0 {
		var err error
		if names, err = s.features.ListFeatures(ctx); err != nil {
			return nil, fmt.Errorf("failed to list features: %w", err)
		}
	}

	refWindow, curWindow := s.Windows(s.now())
	samples := make(map[string]drift.Samples, len(names))
	for _, name := range names {
		ref, err := s.features.GetSamples(ctx, name, refWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to load reference samples for %s: %w", name, err)
		}
		cur, err := s.features.GetSamples(ctx, name, curWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to load current samples for %s: %w", name, err)
		}
		if len(ref) == 0 || len(cur) == 0 {
			s.logger.WithFields(logrus.Fields{
				"feature":   name,
				"reference": len(ref),
				"current":   len(cur),
			}).Warn("Skipping drift check for feature with empty window")
			continue
		}
		samples[name] = drift.Samples{Reference: ref, Current: cur}
	}
	if len(samples) == 0 {
		return nil, ErrNoFeatures
	}

	reports, err := s.monitor.CheckAll(samples)
	if err != nil {
		return nil, fmt.Errorf("drift check failed: %w", err)
	}
	if err := s.reports.InsertBatch(ctx, reports); err != nil {
		return nil, fmt.Errorf("failed to store drift reports: %w", err)
	}

	for _, r := range reports {
		metrics.RecordDrift(r.FeatureName, r.PSI, r.IsDrifted, string(r.Severity))
		s.audit.LogDriftCheck(r)
	}
	return reports, nil
}
