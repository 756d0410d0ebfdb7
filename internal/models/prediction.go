package models

import (
	"time"
)

// PredictionResult is the output of a single ensemble prediction. It is built
// once and never mutated.
type PredictionResult struct {
	GameID          string    `json:"game_id,omitempty"`
	WinProbHome     float64   `json:"win_prob_home"`
	WinProbAway     float64   `json:"win_prob_away"`
	Confidence      float64   `json:"confidence"`
	PredictedSpread float64   `json:"predicted_spread"`
	PredictedTotal  float64   `json:"predicted_total"`
	ModelVersion    string    `json:"model_version"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// MeetsThreshold checks if the confidence meets the given threshold
func (p *PredictionResult) MeetsThreshold(threshold float64) bool {
	return p.Confidence >= threshold
}

// PredictionOutcome pairs a stored probability with the realised binary result.
type PredictionOutcome struct {
	GameID       string    `db:"game_id" json:"game_id"`
	ModelVersion string    `db:"model_version" json:"model_version"`
	Predicted    float64   `db:"predicted_prob" json:"predicted"`
	Outcome      bool      `db:"outcome" json:"outcome"`
	RecordedAt   time.Time `db:"recorded_at" json:"recorded_at"`
}

// SplitOutcomes returns parallel prediction and outcome slices.
func SplitOutcomes(rows []*PredictionOutcome) ([]float64, []bool) {
	preds := make([]float64, len(rows))
	outcomes := make([]bool, len(rows))
	for i, r := range rows {
		preds[i] = r.Predicted
		outcomes[i] = r.Outcome
	}
	return preds, outcomes
}
