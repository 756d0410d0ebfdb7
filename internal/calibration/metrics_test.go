package calibration

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBins(t *testing.T) {
	preds := []float64{0.05, 0.15, 0.15, 0.95, 1.0}
	outcomes := []bool{false, true, false, true, true}

	bins, err := Bins(preds, outcomes, 10)
	require.NoError(t, err)
	require.Len(t, bins, 3)

	assert.InDelta(t, 0.0, bins[0].BinStart, 1e-12)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 0.0, bins[0].ActualProb)

	assert.InDelta(t, 0.1, bins[1].BinStart, 1e-12)
	assert.InDelta(t, 0.2, bins[1].BinEnd, 1e-12)
	assert.Equal(t, 2, bins[1].Count)
	assert.InDelta(t, 0.15, bins[1].PredictedProb, 1e-12)
	assert.InDelta(t, 0.5, bins[1].ActualProb, 1e-12)

	assert.InDelta(t, 0.9, bins[2].BinStart, 1e-12)
	assert.Equal(t, 2, bins[2].Count)
	assert.InDelta(t, 0.975, bins[2].PredictedProb, 1e-12)
	assert.Equal(t, 1.0, bins[2].ActualProb)

	ece, err := ExpectedCalibrationError(bins)
	require.NoError(t, err)
	assert.InDelta(t, 0.16, ece, 1e-12)
}

func TestBrierScore(t *testing.T) {
	perfect, err := BrierScore([]float64{1, 0, 1}, []bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, 0.0, perfect)

	worst, err := BrierScore([]float64{0, 1}, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, 1.0, worst)

	rng := rand.New(rand.NewSource(7))
	preds := make([]float64, 200)
	outcomes := make([]bool, 200)
	for i := range preds {
		preds[i] = rng.Float64()
		outcomes[i] = rng.Intn(2) == 1
	}
	score, err := BrierScore(preds, outcomes)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestLogLoss(t *testing.T) {
	loss, err := LogLoss([]float64{0.5, 0.5}, []bool{true, false})
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, loss, 1e-12)

	loss, err = LogLoss([]float64{0}, []bool{true})
	require.NoError(t, err)
	assert.False(t, math.IsInf(loss, 0))
	assert.InDelta(t, -math.Log(LogLossEpsilon), loss, 1e-6)
}

func TestInputValidation(t *testing.T) {
	_, err := BrierScore([]float64{0.5}, []bool{true, false})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = LogLoss(nil, nil)
	assert.ErrorIs(t, err, ErrEmptySample)

	_, err = Bins([]float64{1.2}, []bool{true}, 10)
	assert.ErrorIs(t, err, ErrInvalidProbability)

	_, err = Bins([]float64{0.2}, []bool{true}, 0)
	assert.ErrorIs(t, err, ErrInvalidBins)

	_, err = ExpectedCalibrationError(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestEvaluate(t *testing.T) {
	report, err := Evaluate([]float64{0.2, 0.8, 0.6, 0.3}, []bool{false, true, true, false}, DefaultBins)
	require.NoError(t, err)
	assert.Equal(t, 4, report.SampleSize)
	assert.Len(t, report.Bins, 4)
	assert.InDelta(t, (0.04+0.04+0.16+0.09)/4, report.BrierScore, 1e-12)
}
