package calibration

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-edge/internal/models"
)

const (
	// DefaultBins is the reliability diagram resolution.
	DefaultBins = 10

	// LogLossEpsilon bounds probabilities away from 0 and 1 inside LogLoss.
	LogLossEpsilon = 1e-15
)

// Bins partitions [0,1) into numBins equal-width buckets by prediction and
// reports the mean prediction and empirical positive rate of every non-empty
// bucket. A prediction of exactly 1 falls in the last bucket.
func Bins(preds []float64, outcomes []bool, numBins int) ([]models.CalibrationBin, error) {
	if numBins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, numBins)
	}
	if err := validate(preds, outcomes); err != nil {
		return nil, err
	}

	sums := make([]float64, numBins)
	positives := make([]int, numBins)
	counts := make([]int, numBins)
	for i, p := range preds {
		idx := int(p * float64(numBins))
		if idx >= numBins {
			idx = numBins - 1
		}
		sums[idx] += p
		counts[idx]++
		if outcomes[i] {
			positives[idx]++
		}
	}

	width := 1.0 / float64(numBins)
	bins := make([]models.CalibrationBin, 0, numBins)
	for i := 0; i < numBins; i++ {
		if counts[i] == 0 {
			continue
		}
		n := float64(counts[i])
		bins = append(bins, models.CalibrationBin{
			BinStart:      float64(i) * width,
			BinEnd:        float64(i+1) * width,
			PredictedProb: sums[i] / n,
			ActualProb:    float64(positives[i]) / n,
			Count:         counts[i],
		})
	}
	return bins, nil
}

// ExpectedCalibrationError is the count-weighted mean absolute gap between
// predicted and actual probability across bins.
func ExpectedCalibrationError(bins []models.CalibrationBin) (float64, error) {
	total := 0
	weighted := 0.0
	for _, b := range bins {
		total += b.Count
		weighted += float64(b.Count) * math.Abs(b.PredictedProb-b.ActualProb)
	}
	if total == 0 {
		return 0, ErrEmptySample
	}
	return weighted / float64(total), nil
}

// BrierScore is the mean squared error between prediction and outcome.
func BrierScore(preds []float64, outcomes []bool) (float64, error) {
	if err := validate(preds, outcomes); err != nil {
		return 0, err
	}
	sum := 0.0
	for i, p := range preds {
		d := p - indicator(outcomes[i])
		sum += d * d
	}
	return sum / float64(len(preds)), nil
}

// LogLoss is the mean negative log-likelihood with probabilities clamped to
// [LogLossEpsilon, 1-LogLossEpsilon].
func LogLoss(preds []float64, outcomes []bool) (float64, error) {
	if err := validate(preds, outcomes); err != nil {
		return 0, err
	}
	sum := 0.0
	for i, p := range preds {
		sum += pointLoss(p, outcomes[i])
	}
	return sum / float64(len(preds)), nil
}

// Evaluate computes every calibration metric for one sample. EvaluatedAt is
// left for the caller to stamp.
func Evaluate(preds []float64, outcomes []bool, numBins int) (*models.CalibrationReport, error) {
	bins, err := Bins(preds, outcomes, numBins)
	if err != nil {
		return nil, err
	}
	ece, err := ExpectedCalibrationError(bins)
	if err != nil {
		return nil, err
	}
	brier, err := BrierScore(preds, outcomes)
	if err != nil {
		return nil, err
	}
	logLoss, err := LogLoss(preds, outcomes)
	if err != nil {
		return nil, err
	}
	return &models.CalibrationReport{
		SampleSize: len(preds),
		BrierScore: brier,
		LogLoss:    logLoss,
		ECE:        ece,
		Bins:       bins,
	}, nil
}

func pointLoss(p float64, outcome bool) float64 {
	p = math.Max(LogLossEpsilon, math.Min(1-LogLossEpsilon, p))
	if outcome {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func validate(preds []float64, outcomes []bool) error {
	if len(preds) != len(outcomes) {
		return fmt.Errorf("%w: %d predictions, %d outcomes", ErrLengthMismatch, len(preds), len(outcomes))
	}
	if len(preds) == 0 {
		return ErrEmptySample
	}
	for i, p := range preds {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: index %d value %v", ErrInvalidProbability, i, p)
		}
	}
	return nil
}
