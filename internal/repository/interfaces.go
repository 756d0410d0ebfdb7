package repository

import (
	"context"
	"time"

	"github.com/yourusername/clever-edge/internal/models"
)

// FeatureRepository reads historical feature values for drift monitoring
type FeatureRepository interface {
	ListFeatures(ctx context.Context) ([]string, error)
	GetSamples(ctx context.Context, feature string, window models.TimeWindow) ([]float64, error)
}

// OutcomeRepository stores predicted probabilities alongside realised results
type OutcomeRepository interface {
	Record(ctx context.Context, outcome *models.PredictionOutcome) error
	GetSince(ctx context.Context, modelVersion string, since time.Time) ([]*models.PredictionOutcome, error)
}

// DriftReportRepository persists drift check results
type DriftReportRepository interface {
	InsertBatch(ctx context.Context, reports []*models.DriftReport) error
	GetLatest(ctx context.Context, feature string) (*models.DriftReport, error)
}

// BookLineRepository reads and writes sportsbook line snapshots
type BookLineRepository interface {
	InsertBatch(ctx context.Context, lines []*models.BookLine) error
	GetLatestByGame(ctx context.Context, gameID string) ([]*models.BookLine, error)
}

// PlattParamsRepository stores fitted calibration parameters
type PlattParamsRepository interface {
	Save(ctx context.Context, params *models.PlattParams) error
	GetLatest(ctx context.Context, modelVersion string) (*models.PlattParams, error)
}

// SettledBetRepository reads the settled-bet ledger
type SettledBetRepository interface {
	GetSettled(ctx context.Context, window models.TimeWindow) ([]*models.SettledBet, error)
}
