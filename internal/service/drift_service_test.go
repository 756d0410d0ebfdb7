package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/drift"
	"github.com/yourusername/clever-edge/internal/logger"
	"github.com/yourusername/clever-edge/internal/models"
)

func newTestDriftService(t *testing.T, features *MockFeatureRepository, reports *MockDriftReportRepository, names []string) *DriftService {
	t.Helper()
	monitor, err := drift.NewMonitor(drift.DefaultBins, drift.DefaultThreshold)
	require.NoError(t, err)

	svc := NewDriftService(features, reports, monitor, config.DriftConfig{
		ReferenceWindow: 30 * 24 * time.Hour,
		CurrentWindow:   7 * 24 * time.Hour,
		Features:        names,
	}, logger.Discard())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func uniform(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func TestDriftServiceWindows(t *testing.T) {
	svc := newTestDriftService(t, &MockFeatureRepository{}, &MockDriftReportRepository{}, nil)
	ref, cur := svc.Windows(svc.now())

	assert.Equal(t, cur.Start, ref.End)
	assert.Equal(t, 7*24*time.Hour, cur.End.Sub(cur.Start))
	assert.Equal(t, 23*24*time.Hour, ref.End.Sub(ref.Start))
}

func TestDriftServiceRunCheck(t *testing.T) {
	features := &MockFeatureRepository{}
	reports := &MockDriftReportRepository{}
	svc := newTestDriftService(t, features, reports, []string{"home_elo", "away_elo", "head_to_head_rate"})
	ref, cur := svc.Windows(svc.now())

	base := uniform(200, 1400, 1600)
	features.On("GetSamples", mock.Anything, "home_elo", ref).Return(base, nil)
	features.On("GetSamples", mock.Anything, "home_elo", cur).Return(base, nil)
	features.On("GetSamples", mock.Anything, "away_elo", ref).Return(base, nil)
	features.On("GetSamples", mock.Anything, "away_elo", cur).Return(uniform(200, 1550, 1750), nil)
	features.On("GetSamples", mock.Anything, "head_to_head_rate", ref).Return([]float64{0.4, 0.6}, nil)
	features.On("GetSamples", mock.Anything, "head_to_head_rate", cur).Return([]float64{}, nil)
	reports.On("InsertBatch", mock.Anything, mock.AnythingOfType("[]*models.DriftReport")).Return(nil)

	got, err := svc.RunCheck(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "away_elo", got[0].FeatureName)
	assert.True(t, got[0].IsDrifted)
	assert.Equal(t, models.DriftSignificant, got[0].Severity)
	assert.Equal(t, "home_elo", got[1].FeatureName)
	assert.InDelta(t, 0, got[1].PSI, 1e-12)
	assert.False(t, got[1].IsDrifted)

	features.AssertExpectations(t)
	reports.AssertExpectations(t)
}

func TestDriftServiceListsFeaturesWhenUnconfigured(t *testing.T) {
	features := &MockFeatureRepository{}
	reports := &MockDriftReportRepository{}
	svc := newTestDriftService(t, features, reports, nil)

	features.On("ListFeatures", mock.Anything).Return([]string{"home_elo"}, nil)
	features.On("GetSamples", mock.Anything, "home_elo", mock.Anything).Return([]float64{}, nil)

	_, err := svc.RunCheck(context.Background())
	assert.ErrorIs(t, err, ErrNoFeatures)
	reports.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}
