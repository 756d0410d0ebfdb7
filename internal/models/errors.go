package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidMarket   = errors.New("invalid market")
	ErrMissingQuote    = errors.New("book line has no quote for market")
	ErrInvalidFeatures = errors.New("invalid feature vector")
)
