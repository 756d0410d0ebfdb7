// Package value computes expected value and fractional-Kelly stake sizes from
// a true probability and a market price.
package value

import "errors"

var (
	// ErrInvalidProbability indicates a true probability outside [0,1]
	ErrInvalidProbability = errors.New("true probability must be within [0,1]")

	// ErrInvalidDecimalOdds indicates decimal odds that are not greater than 1
	ErrInvalidDecimalOdds = errors.New("decimal odds must be greater than 1")

	// ErrInvalidFraction indicates a Kelly fraction outside (0,1]
	ErrInvalidFraction = errors.New("kelly fraction must be within (0,1]")
)
