// Package odds converts between American, decimal, fractional and implied
// probability representations of a price and removes bookmaker vig.
package odds

import "errors"

var (
	// ErrInvalidAmericanOdds indicates an American price inside (-100, 100)
	ErrInvalidAmericanOdds = errors.New("american odds must be >= 100 or <= -100")

	// ErrInvalidDecimalOdds indicates a non-positive or non-finite decimal price
	ErrInvalidDecimalOdds = errors.New("invalid decimal odds")

	// ErrInvalidProbability indicates a probability outside the open interval (0,1)
	ErrInvalidProbability = errors.New("invalid probability")

	// ErrEmptyInput indicates an empty list of prices
	ErrEmptyInput = errors.New("empty odds list")
)
