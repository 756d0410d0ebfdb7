package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	reg := InitRegistry()
	assert.NotNil(t, reg)
	assert.IsType(t, &prometheus.Registry{}, reg)
	assert.Same(t, reg, GetRegistry())
}

func TestRecordDrift(t *testing.T) {
	InitRegistry()

	RecordDrift("home_elo", 0.27, true, "significant")
	assert.InDelta(t, 0.27, testutil.ToFloat64(DriftPSI.WithLabelValues("home_elo")), 1e-12)
	assert.Equal(t, 1.0, testutil.ToFloat64(DriftDetected.WithLabelValues("home_elo")))

	RecordDrift("home_elo", 0.05, false, "stable")
	assert.Equal(t, 0.0, testutil.ToFloat64(DriftDetected.WithLabelValues("home_elo")))
}

func TestRecordCalibrationAndPlatt(t *testing.T) {
	InitRegistry()

	RecordCalibration("ensemble-v1", 0.21, 0.61, 0.04)
	RecordPlattParams("ensemble-v1", 1.3, -0.2)

	assert.InDelta(t, 0.21, testutil.ToFloat64(CalibrationBrier.WithLabelValues("ensemble-v1")), 1e-12)
	assert.InDelta(t, 0.04, testutil.ToFloat64(CalibrationECE.WithLabelValues("ensemble-v1")), 1e-12)
	assert.InDelta(t, -0.2, testutil.ToFloat64(PlattParameter.WithLabelValues("ensemble-v1", "b")), 1e-12)
}

func TestRecordOpportunities(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(OpportunitiesTotal.WithLabelValues("arbitrage", "moneyline"))
	RecordArbitrage("moneyline", 3.0)
	RecordMiddle("spread")
	assert.Equal(t, before+1, testutil.ToFloat64(OpportunitiesTotal.WithLabelValues("arbitrage", "moneyline")))

	assert.NotPanics(t, func() {
		RecordEdgeScore("moneyline", 72)
		RecordPrediction("cache")
		RecordExplanation("local", "success")
		RecordBatchPrediction(0.02)
		RecordJobRun("drift", "success")
	})
}

func TestUpdateCacheStats(t *testing.T) {
	InitRegistry()
	UpdateCacheStats(0.75, 12)
	assert.Equal(t, 0.75, testutil.ToFloat64(CacheHitRatio))
	assert.Equal(t, 12.0, testutil.ToFloat64(CacheEntries))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordDrift("away_elo", 0.12, false, "moderate")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `clever_edge_drift_psi{feature="away_elo"} 0.12`)
}
