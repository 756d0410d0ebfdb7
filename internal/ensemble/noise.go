package ensemble

import (
	"math/rand"
	"sync"
)

// NoiseSource supplies the optional jitter added to predicted totals. It is an
// explicit opt-in: a Predictor without one is fully deterministic.
type NoiseSource interface {
	Sample() float64
}

// SeededNoise draws uniform jitter in [-Amplitude, Amplitude] from a seeded
// generator so simulations are reproducible. Safe for concurrent use.
type SeededNoise struct {
	mu        sync.Mutex
	rng       *rand.Rand
	amplitude float64
}

// NewSeededNoise creates a reproducible noise source.
func NewSeededNoise(seed int64, amplitude float64) *SeededNoise {
	return &SeededNoise{
		rng:       rand.New(rand.NewSource(seed)),
		amplitude: amplitude,
	}
}

// Sample returns the next jitter value.
func (n *SeededNoise) Sample() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return (n.rng.Float64()*2 - 1) * n.amplitude
}
