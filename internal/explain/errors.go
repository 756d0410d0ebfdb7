package explain

import "errors"

var (
	// ErrUnknownProvider indicates a provider tag outside the supported set
	ErrUnknownProvider = errors.New("unknown explanation provider")

	// ErrProviderUnavailable indicates the remote provider could not be reached
	ErrProviderUnavailable = errors.New("explanation provider unavailable")

	// ErrCircuitOpen indicates the remote provider failed too often in a row
	ErrCircuitOpen = errors.New("explanation circuit breaker open")

	// ErrInvalidResponse indicates the provider answered with an unusable body
	ErrInvalidResponse = errors.New("invalid explanation response")

	// ErrNilBet indicates no scored bet was supplied
	ErrNilBet = errors.New("scored bet is required")
)
