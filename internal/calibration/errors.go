// Package calibration measures and corrects how well predicted probabilities
// match observed outcomes.
package calibration

import "errors"

var (
	// ErrEmptySample indicates no predictions were supplied
	ErrEmptySample = errors.New("predictions must not be empty")

	// ErrLengthMismatch indicates predictions and outcomes of different lengths
	ErrLengthMismatch = errors.New("predictions and outcomes differ in length")

	// ErrInvalidProbability indicates a prediction outside [0,1]
	ErrInvalidProbability = errors.New("prediction must be within [0,1]")

	// ErrInvalidBins indicates a bin count below one
	ErrInvalidBins = errors.New("bin count must be at least 1")

	// ErrInvalidConfig indicates a non-positive learning rate or iteration count
	ErrInvalidConfig = errors.New("invalid platt scaling config")
)
