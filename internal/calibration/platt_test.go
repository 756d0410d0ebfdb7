package calibration

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overconfidentSample(n int) ([]float64, []bool) {
	rng := rand.New(rand.NewSource(11))
	preds := make([]float64, n)
	outcomes := make([]bool, n)
	for i := range preds {
		truth := 0.3 + 0.4*rng.Float64()
		// Push predictions away from 0.5.
		preds[i] = 0.5 + (truth-0.5)*2
		outcomes[i] = rng.Float64() < truth
	}
	return preds, outcomes
}

func TestFitPlattReducesLogLoss(t *testing.T) {
	preds, outcomes := overconfidentSample(2000)

	initial := &PlattScaler{A: 1, B: 0}
	before, err := LogLoss(initial.ApplyAll(preds), outcomes)
	require.NoError(t, err)

	scaler, err := FitPlatt(preds, outcomes, DefaultPlattConfig())
	require.NoError(t, err)
	after, err := LogLoss(scaler.ApplyAll(preds), outcomes)
	require.NoError(t, err)

	assert.Less(t, after, before)
}

func TestFitPlattMoreIterationsHelp(t *testing.T) {
	preds, outcomes := overconfidentSample(1000)

	short, err := FitPlatt(preds, outcomes, PlattConfig{LearningRate: 0.5, Iterations: 10})
	require.NoError(t, err)
	long, err := FitPlatt(preds, outcomes, PlattConfig{LearningRate: 0.5, Iterations: 2000})
	require.NoError(t, err)

	shortLoss, err := LogLoss(short.ApplyAll(preds), outcomes)
	require.NoError(t, err)
	longLoss, err := LogLoss(long.ApplyAll(preds), outcomes)
	require.NoError(t, err)
	assert.LessOrEqual(t, longLoss, shortLoss)
}

func TestFitPlattConfigValidation(t *testing.T) {
	preds, outcomes := []float64{0.4, 0.6}, []bool{false, true}

	_, err := FitPlatt(preds, outcomes, PlattConfig{LearningRate: 0, Iterations: 10})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FitPlatt(preds, outcomes, PlattConfig{LearningRate: 0.01, Iterations: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FitPlatt(preds, []bool{true}, DefaultPlattConfig())
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestPlattApplyRange(t *testing.T) {
	s := &PlattScaler{A: 3, B: -1.5}
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		v := s.Apply(p)
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.InDelta(t, 0.5, s.Apply(0.5), 1e-12)
}
