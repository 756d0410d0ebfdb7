// Package drift measures feature distribution shift with the Population
// Stability Index.
package drift

import "errors"

var (
	// ErrEmptySample indicates a reference or current sample with no values
	ErrEmptySample = errors.New("sample must not be empty")

	// ErrInvalidSample indicates a sample containing NaN or infinite values
	ErrInvalidSample = errors.New("sample contains non-finite values")

	// ErrInvalidBins indicates a bin count below one
	ErrInvalidBins = errors.New("bin count must be at least 1")

	// ErrInvalidThreshold indicates a negative or NaN drift threshold
	ErrInvalidThreshold = errors.New("drift threshold must be non-negative")
)
