package calibration

import (
	"fmt"
	"math"
)

// Default gradient descent settings for Platt scaling.
const (
	DefaultLearningRate = 0.01
	DefaultIterations   = 1000
)

// PlattConfig controls the Platt scaling fit.
type PlattConfig struct {
	LearningRate float64
	Iterations   int
}

// DefaultPlattConfig returns the default fit settings.
func DefaultPlattConfig() PlattConfig {
	return PlattConfig{
		LearningRate: DefaultLearningRate,
		Iterations:   DefaultIterations,
	}
}

// PlattScaler maps a raw probability p to sigma(A*p + B).
type PlattScaler struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// FitPlatt fits A and B by batch gradient descent on mean log-loss, starting
// from A=1, B=0.
func FitPlatt(preds []float64, outcomes []bool, cfg PlattConfig) (*PlattScaler, error) {
	if math.IsNaN(cfg.LearningRate) || cfg.LearningRate <= 0 || cfg.Iterations <= 0 {
		return nil, fmt.Errorf("%w: learning rate %v, iterations %d", ErrInvalidConfig, cfg.LearningRate, cfg.Iterations)
	}
	if err := validate(preds, outcomes); err != nil {
		return nil, err
	}

	a, b := 1.0, 0.0
	n := float64(len(preds))
	for iter := 0; iter < cfg.Iterations; iter++ {
		gradA, gradB := 0.0, 0.0
		for i, p := range preds {
			residual := sigmoid(a*p+b) - indicator(outcomes[i])
			gradA += residual * p
			gradB += residual
		}
		a -= cfg.LearningRate * gradA / n
		b -= cfg.LearningRate * gradB / n
	}
	return &PlattScaler{A: a, B: b}, nil
}

// Apply recalibrates one probability.
func (s *PlattScaler) Apply(p float64) float64 {
	return sigmoid(s.A*p + s.B)
}

// ApplyAll recalibrates every probability, returning a new slice.
func (s *PlattScaler) ApplyAll(preds []float64) []float64 {
	out := make([]float64, len(preds))
	for i, p := range preds {
		out[i] = s.Apply(p)
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
