package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/clever-edge/internal/models"
)

type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) ListFeatures(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFeatureRepository) GetSamples(ctx context.Context, feature string, window models.TimeWindow) ([]float64, error) {
	args := m.Called(ctx, feature, window)
	return args.Get(0).([]float64), args.Error(1)
}

type MockDriftReportRepository struct {
	mock.Mock
}

func (m *MockDriftReportRepository) InsertBatch(ctx context.Context, reports []*models.DriftReport) error {
	args := m.Called(ctx, reports)
	return args.Error(0)
}

func (m *MockDriftReportRepository) GetLatest(ctx context.Context, feature string) (*models.DriftReport, error) {
	args := m.Called(ctx, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DriftReport), args.Error(1)
}

type MockOutcomeRepository struct {
	mock.Mock
}

func (m *MockOutcomeRepository) Record(ctx context.Context, outcome *models.PredictionOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

func (m *MockOutcomeRepository) GetSince(ctx context.Context, modelVersion string, since time.Time) ([]*models.PredictionOutcome, error) {
	args := m.Called(ctx, modelVersion, since)
	return args.Get(0).([]*models.PredictionOutcome), args.Error(1)
}

type MockPlattParamsRepository struct {
	mock.Mock
}

func (m *MockPlattParamsRepository) Save(ctx context.Context, params *models.PlattParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockPlattParamsRepository) GetLatest(ctx context.Context, modelVersion string) (*models.PlattParams, error) {
	args := m.Called(ctx, modelVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlattParams), args.Error(1)
}

type MockBookLineRepository struct {
	mock.Mock
}

func (m *MockBookLineRepository) InsertBatch(ctx context.Context, lines []*models.BookLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockBookLineRepository) GetLatestByGame(ctx context.Context, gameID string) ([]*models.BookLine, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).([]*models.BookLine), args.Error(1)
}

type MockSettledBetRepository struct {
	mock.Mock
}

func (m *MockSettledBetRepository) GetSettled(ctx context.Context, window models.TimeWindow) ([]*models.SettledBet, error) {
	args := m.Called(ctx, window)
	return args.Get(0).([]*models.SettledBet), args.Error(1)
}
