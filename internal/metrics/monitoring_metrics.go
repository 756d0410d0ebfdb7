// Package metrics defines drift and calibration metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Drift metrics
var (
	DriftPSI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "drift_psi",
		Help:      "Latest population stability index per feature",
	}, []string{"feature"})
	DriftDetected = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "drift_detected",
		Help:      "1 when the latest check flagged the feature as drifted",
	}, []string{"feature"})
	DriftChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drift_checks_total",
		Help:      "Total number of drift checks by severity",
	}, []string{"severity"})
)

// Calibration metrics
var (
	CalibrationBrier = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "calibration_brier_score",
		Help:      "Latest Brier score per model version",
	}, []string{"model_version"})
	CalibrationLogLoss = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "calibration_log_loss",
		Help:      "Latest log-loss per model version",
	}, []string{"model_version"})
	CalibrationECE = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "calibration_ece",
		Help:      "Latest expected calibration error per model version",
	}, []string{"model_version"})
	PlattParameter = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "platt_parameter",
		Help:      "Fitted Platt scaling parameters per model version",
	}, []string{"model_version", "param"})
)

// JobRunsTotal counts scheduled job runs.
// job is "drift" or "calibration"; status is "success" or "failure".
var JobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "job_runs_total",
	Help:      "Total number of scheduled job runs by job and status",
}, []string{"job", "status"})

// RecordDrift publishes the result of a drift check.
func RecordDrift(feature string, psi float64, drifted bool, severity string) {
	DriftPSI.WithLabelValues(feature).Set(psi)
	flag := 0.0
	if drifted {
		flag = 1
	}
	DriftDetected.WithLabelValues(feature).Set(flag)
	DriftChecksTotal.WithLabelValues(severity).Inc()
}

// RecordCalibration publishes calibration metrics.
func RecordCalibration(modelVersion string, brier, logLoss, ece float64) {
	CalibrationBrier.WithLabelValues(modelVersion).Set(brier)
	CalibrationLogLoss.WithLabelValues(modelVersion).Set(logLoss)
	CalibrationECE.WithLabelValues(modelVersion).Set(ece)
}

// RecordPlattParams publishes fitted Platt parameters.
func RecordPlattParams(modelVersion string, a, b float64) {
	PlattParameter.WithLabelValues(modelVersion, "a").Set(a)
	PlattParameter.WithLabelValues(modelVersion, "b").Set(b)
}

// RecordJobRun counts a scheduled job run.
func RecordJobRun(job, status string) {
	JobRunsTotal.WithLabelValues(job, status).Inc()
}
