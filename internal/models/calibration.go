package models

import "time"

// CalibrationBin is one bucket of a reliability diagram covering
// [BinStart, BinEnd).
type CalibrationBin struct {
	BinStart      float64 `json:"bin_start"`
	BinEnd        float64 `json:"bin_end"`
	PredictedProb float64 `json:"predicted_prob"`
	ActualProb    float64 `json:"actual_prob"`
	Count         int     `json:"count"`
}

// CalibrationReport bundles the calibration metrics for one sample.
type CalibrationReport struct {
	ModelVersion string           `json:"model_version,omitempty"`
	SampleSize   int              `json:"sample_size"`
	BrierScore   float64          `json:"brier_score"`
	LogLoss      float64          `json:"log_loss"`
	ECE          float64          `json:"ece"`
	Bins         []CalibrationBin `json:"bins"`
	EvaluatedAt  time.Time        `json:"evaluated_at"`
}

// PlattParams are the fitted coefficients of sigma(A*p + B).
type PlattParams struct {
	ModelVersion string    `db:"model_version" json:"model_version"`
	A            float64   `db:"a" json:"a"`
	B            float64   `db:"b" json:"b"`
	SampleSize   int       `db:"sample_size" json:"sample_size"`
	LogLoss      float64   `db:"log_loss" json:"log_loss"`
	FittedAt     time.Time `db:"fitted_at" json:"fitted_at"`
}
