// Package opportunity detects arbitrage and middles across sportsbook lines.
// Every function works on already-fetched snapshots and holds no state.
package opportunity

import "errors"

var (
	// ErrInvalidMarket indicates a market the detector cannot evaluate
	ErrInvalidMarket = errors.New("invalid market for detector")

	// ErrInvalidSpreadRange indicates a negative middle threshold
	ErrInvalidSpreadRange = errors.New("spread range must not be negative")

	// ErrMixedGames indicates lines from more than one game were supplied
	ErrMixedGames = errors.New("book lines belong to different games")
)
