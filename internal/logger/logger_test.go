package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("debug", "production", buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	_, isJSON := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	fallback := NewLoggerWithOutput("shouting", "development", buf)
	assert.Equal(t, logrus.InfoLevel, fallback.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestAuditLoggerDriftCheck(t *testing.T) {
	log, buf := setupTestLogger()
	audit := NewAuditLogger(log)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	audit.LogDriftCheck(&models.DriftReport{
		ID:          uuid.New(),
		FeatureName: "home_elo",
		PSI:         0.31,
		Threshold:   0.2,
		IsDrifted:   true,
		Severity:    models.DriftSignificant,
		CheckedAt:   now,
	})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, "home_elo", entry["feature"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "significant", entry["severity"])
}

func TestAuditLoggerCalibrationRun(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogCalibrationRun(&models.CalibrationReport{
		ModelVersion: "ensemble-v1",
		SampleSize:   200,
		BrierScore:   0.21,
		ECE:          0.04,
	})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "ensemble-v1", entry["model_version"])
	assert.Equal(t, float64(200), entry["sample_size"])
}

func TestAuditLoggerPlattRefitWithoutPrevious(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogPlattRefit(nil, &models.PlattParams{ModelVersion: "ensemble-v1", A: 1.2, B: -0.1})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, 1.2, entry["new_a"])
	assert.NotContains(t, entry, "old_a")
}

func TestAuditLoggerArbitrage(t *testing.T) {
	log, buf := setupTestLogger()
	NewAuditLogger(log).LogArbitrage(&models.Arbitrage{
		GameID:        "game-1",
		Market:        models.MarketMoneyline,
		ImpliedSum:    0.97,
		ProfitPercent: 3.09,
		Legs:          []models.Leg{{Book: "A"}, {Book: "B"}},
	})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "game-1", entry["game_id"])
	assert.Equal(t, []interface{}{"A", "B"}, entry["books"])
}

func TestModelLoggerPrediction(t *testing.T) {
	log, buf := setupTestLogger()
	NewModelLogger(log).LogPrediction("game-1", "ensemble-v1", 0.82, 0.78, true)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "model", entry["component"])
	assert.Equal(t, true, entry["cache_hit"])
}
