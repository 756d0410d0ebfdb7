// Package metrics provides the centralized Prometheus registry for the edge engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clever_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of ensemble predictions by source",
	}, []string{"source"})
	OpportunitiesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "opportunities_total",
		Help:      "Total number of detected opportunities by kind and market",
	}, []string{"kind", "market"})
	ExplanationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "explanations_total",
		Help:      "Total number of explanations by provider and status",
	}, []string{"provider", "status"})
)

// Gauge metrics
var (
	CacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "prediction_cache_hit_ratio",
		Help:      "Hit ratio of the prediction cache since start",
	})
	CacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "prediction_cache_entries",
		Help:      "Number of entries held by the prediction cache",
	})
)

// Histogram metrics
var (
	EdgeScore = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "edge_score",
		Help:      "Distribution of composite edge scores by market",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	}, []string{"market"})
	ArbitrageProfitPercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "arbitrage_profit_percent",
		Help:      "Guaranteed profit percent of detected arbitrages",
		Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 10},
	})
	BatchPredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_prediction_duration_seconds",
		Help:      "Duration of batch predictions in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(OpportunitiesTotal)
		registry.MustRegister(ExplanationsTotal)

		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(CacheEntries)

		registry.MustRegister(EdgeScore)
		registry.MustRegister(ArbitrageProfitPercent)
		registry.MustRegister(BatchPredictionDuration)

		registry.MustRegister(DriftPSI)
		registry.MustRegister(DriftDetected)
		registry.MustRegister(DriftChecksTotal)
		registry.MustRegister(CalibrationBrier)
		registry.MustRegister(CalibrationLogLoss)
		registry.MustRegister(CalibrationECE)
		registry.MustRegister(PlattParameter)
		registry.MustRegister(JobRunsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction counts a prediction; source is "cache" or "model".
func RecordPrediction(source string) {
	PredictionsTotal.WithLabelValues(source).Inc()
}

// RecordArbitrage records a detected arbitrage.
func RecordArbitrage(market string, profitPercent float64) {
	OpportunitiesTotal.WithLabelValues("arbitrage", market).Inc()
	ArbitrageProfitPercent.Observe(profitPercent)
}

// RecordMiddle records a detected middle.
func RecordMiddle(market string) {
	OpportunitiesTotal.WithLabelValues("middle", market).Inc()
}

// RecordExplanation records an explanation attempt.
func RecordExplanation(provider, status string) {
	ExplanationsTotal.WithLabelValues(provider, status).Inc()
}

// RecordEdgeScore observes a composite edge score.
func RecordEdgeScore(market string, score int) {
	EdgeScore.WithLabelValues(market).Observe(float64(score))
}

// RecordBatchPrediction records the duration of a batch prediction.
func RecordBatchPrediction(durationSeconds float64) {
	BatchPredictionDuration.Observe(durationSeconds)
}

// UpdateCacheStats sets the cache gauges.
func UpdateCacheStats(hitRatio float64, entries int) {
	CacheHitRatio.Set(hitRatio)
	CacheEntries.Set(float64(entries))
}
