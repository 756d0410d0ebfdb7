package drift

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-edge/internal/models"
)

const (
	// DefaultBins is the number of equal-width buckets used by PSI.
	DefaultBins = 10

	// DefaultThreshold is the conventional "moderate shift" PSI boundary.
	DefaultThreshold = 0.2

	// StableThreshold separates stable from moderate drift.
	StableThreshold = 0.1

	// Epsilon is added to every bucket proportion to avoid log(0).
	Epsilon = 0.0001
)

// PSI computes the Population Stability Index between reference and current
// over bins equal-width buckets spanning both samples. When every value is
// identical there is no variance and PSI is 0.
func PSI(reference, current []float64, bins int) (float64, error) {
	if bins < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}
	if len(reference) == 0 {
		return 0, fmt.Errorf("%w: reference", ErrEmptySample)
	}
	if len(current) == 0 {
		return 0, fmt.Errorf("%w: current", ErrEmptySample)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, sample := range [][]float64{reference, current} {
		for _, v := range sample {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, ErrInvalidSample
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo == hi {
		return 0, nil
	}

	width := (hi - lo) / float64(bins)
	refProps := proportions(reference, lo, width, bins)
	curProps := proportions(current, lo, width, bins)

	psi := 0.0
	for i := 0; i < bins; i++ {
		psi += (curProps[i] - refProps[i]) * math.Log(curProps[i]/refProps[i])
	}
	return psi, nil
}

func proportions(sample []float64, lo, width float64, bins int) []float64 {
	counts := make([]int, bins)
	for _, v := range sample {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	props := make([]float64, bins)
	n := float64(len(sample))
	for i, c := range counts {
		props[i] = float64(c)/n + Epsilon
	}
	return props
}

// IsDrifted reports whether psi exceeds threshold.
func IsDrifted(psi, threshold float64) bool {
	return psi > threshold
}

// Severity buckets a PSI value.
func Severity(psi, threshold float64) models.DriftSeverity {
	switch {
	case psi > threshold:
		return models.DriftSignificant
	case psi >= StableThreshold:
		return models.DriftModerate
	default:
		return models.DriftStable
	}
}
