package models

import (
	"time"

	"github.com/google/uuid"
)

// DriftSeverity buckets a PSI value.
type DriftSeverity string

const (
	DriftStable      DriftSeverity = "stable"
	DriftModerate    DriftSeverity = "moderate"
	DriftSignificant DriftSeverity = "significant"
)

// DriftReport is the result of comparing one feature's reference and current
// distributions. Inputs are kept for auditability.
type DriftReport struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	FeatureName string        `db:"feature_name" json:"feature_name"`
	PSI         float64       `db:"psi" json:"psi"`
	Threshold   float64       `db:"threshold" json:"threshold"`
	IsDrifted   bool          `db:"is_drifted" json:"is_drifted"`
	Severity    DriftSeverity `db:"severity" json:"severity"`
	Reference   []float64     `db:"reference" json:"reference"`
	Current     []float64     `db:"current" json:"current"`
	CheckedAt   time.Time     `db:"checked_at" json:"checked_at"`
}

// TimeWindow is a half-open [Start, End) time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
