// Package ensemble implements the closed-form win probability, spread and
// total model. It is deterministic unless a noise source is supplied.
package ensemble

import "errors"

var (
	// ErrInvalidFeature indicates a feature value outside its documented domain
	ErrInvalidFeature = errors.New("invalid feature value")

	// ErrNilFeatures indicates a nil feature vector
	ErrNilFeatures = errors.New("feature vector is nil")
)
