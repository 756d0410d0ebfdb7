// Package service wires the edge engine to its persistence, metrics and audit
// collaborators.
package service

import "errors"

var (
	// ErrInsufficientSamples indicates too few outcomes to calibrate
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrNoFeatures indicates no feature had samples in both windows
	ErrNoFeatures = errors.New("no features to check")

	// ErrMissingGameID indicates a feature vector without a game id where one is needed
	ErrMissingGameID = errors.New("game id is required")
)
