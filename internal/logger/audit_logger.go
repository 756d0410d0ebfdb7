// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/models"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogDriftCheck logs the outcome of a feature drift check. Drifted features
// are logged at warn.
func (al *AuditLogger) LogDriftCheck(report *models.DriftReport) {
	entry := al.WithFields(logrus.Fields{
		"feature":    report.FeatureName,
		"psi":        report.PSI,
		"threshold":  report.Threshold,
		"severity":   string(report.Severity),
		"ref_size":   len(report.Reference),
		"cur_size":   len(report.Current),
		"checked_at": report.CheckedAt.Unix(),
	})
	if report.IsDrifted {
		entry.Warn("Feature drift detected")
		return
	}
	entry.Info("Feature drift check passed")
}

// LogCalibrationRun logs a calibration evaluation.
func (al *AuditLogger) LogCalibrationRun(report *models.CalibrationReport) {
	al.WithFields(logrus.Fields{
		"model_version": report.ModelVersion,
		"sample_size":   report.SampleSize,
		"brier_score":   report.BrierScore,
		"log_loss":      report.LogLoss,
		"ece":           report.ECE,
		"bins":          len(report.Bins),
	}).Info("Calibration evaluated")
}

// LogPlattRefit logs a change of Platt scaling parameters.
func (al *AuditLogger) LogPlattRefit(previous, current *models.PlattParams) {
	fields := logrus.Fields{
		"model_version": current.ModelVersion,
		"new_a":         current.A,
		"new_b":         current.B,
		"sample_size":   current.SampleSize,
		"log_loss":      current.LogLoss,
	}
	if previous != nil {
		fields["old_a"] = previous.A
		fields["old_b"] = previous.B
	}
	al.WithFields(fields).Info("Platt parameters refitted")
}

// LogArbitrage logs a detected arbitrage.
func (al *AuditLogger) LogArbitrage(arb *models.Arbitrage) {
	books := make([]string, len(arb.Legs))
	for i, leg := range arb.Legs {
		books[i] = leg.Book
	}
	al.WithFields(logrus.Fields{
		"game_id":        arb.GameID,
		"market":         string(arb.Market),
		"line":           arb.Line,
		"implied_sum":    arb.ImpliedSum,
		"profit_percent": arb.ProfitPercent,
		"books":          books,
	}).Info("Arbitrage opportunity detected")
}

// LogMiddle logs a detected middle.
func (al *AuditLogger) LogMiddle(middle *models.Middle) {
	al.WithFields(logrus.Fields{
		"game_id": middle.GameID,
		"market":  string(middle.Market),
		"gap":     middle.Gap,
		"lower":   middle.Lower,
		"upper":   middle.Upper,
	}).Info("Middle opportunity detected")
}
