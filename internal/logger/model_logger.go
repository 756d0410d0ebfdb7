package logger

import (
	"github.com/sirupsen/logrus"
)

// ModelLogger logs prediction and explanation activity.
type ModelLogger struct {
	*logrus.Entry
}

// NewModelLogger creates a new model logger.
func NewModelLogger(baseLogger *logrus.Logger) *ModelLogger {
	return &ModelLogger{
		Entry: baseLogger.WithField("component", "model"),
	}
}

// LogPrediction logs a single prediction request.
func (ml *ModelLogger) LogPrediction(gameID, modelVersion string, completeness, confidence float64, cacheHit bool) {
	ml.WithFields(logrus.Fields{
		"game_id":       gameID,
		"model_version": modelVersion,
		"completeness":  completeness,
		"confidence":    confidence,
		"cache_hit":     cacheHit,
	}).Debug("Prediction served")
}

// LogBatchPrediction logs a completed batch.
func (ml *ModelLogger) LogBatchPrediction(modelVersion string, size int, latencyMs float64) {
	ml.WithFields(logrus.Fields{
		"model_version": modelVersion,
		"batch_size":    size,
		"latency_ms":    latencyMs,
	}).Info("Batch prediction completed")
}

// LogEdgeRanking logs the head of a ranked bet list.
func (ml *ModelLogger) LogEdgeRanking(gameID string, candidates int, topScore int, topBook string) {
	ml.WithFields(logrus.Fields{
		"game_id":    gameID,
		"candidates": candidates,
		"top_score":  topScore,
		"top_book":   topBook,
	}).Info("Edge ranking computed")
}

// LogLowConfidence notes a prediction below the actionable confidence.
func (ml *ModelLogger) LogLowConfidence(gameID string, confidence, minimum float64) {
	ml.WithFields(logrus.Fields{
		"game_id":    gameID,
		"confidence": confidence,
		"minimum":    minimum,
	}).Info("Prediction below minimum confidence")
}
