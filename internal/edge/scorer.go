// Package edge turns EV, Kelly and confidence inputs into a composite 0-100
// opportunity score with advisory flags.
package edge

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/clever-edge/internal/models"
)

// ErrInvalidInput indicates a score input outside [0,1] or NaN
var ErrInvalidInput = errors.New("invalid edge score input")

// ScoreVersion identifies the weight set below. Changing any weight or
// threshold is a model-behaviour change and must bump it.
const ScoreVersion = "edge-score-v1"

// DefaultLineCertainty is used when the caller has no better estimate of how
// settled the market line is.
const DefaultLineCertainty = 0.8

const (
	weightEV            = 0.4
	weightKelly         = 0.25
	weightConfidence    = 0.2
	weightLineCertainty = 0.15

	negativeEVThreshold    = -0.05
	lowKellyThreshold      = 0.01
	lowConfidenceThreshold = 0.5
	uncertainLineThreshold = 0.7
)

// Score builds an EdgeScore. kelly, modelConfidence and lineCertainty must lie
// in [0,1]; ev may be any finite value and is clamped into the score.
func Score(ev, kelly, modelConfidence, lineCertainty float64) (models.EdgeScore, error) {
	if math.IsNaN(ev) || math.IsInf(ev, 0) {
		return models.EdgeScore{}, fmt.Errorf("%w: ev %v", ErrInvalidInput, ev)
	}
	if err := unit("kelly", kelly); err != nil {
		return models.EdgeScore{}, err
	}
	if err := unit("model confidence", modelConfidence); err != nil {
		return models.EdgeScore{}, err
	}
	if err := unit("line certainty", lineCertainty); err != nil {
		return models.EdgeScore{}, err
	}

	flags := make([]models.EdgeFlag, 0, 4)
	if ev < negativeEVThreshold {
		flags = append(flags, models.FlagNegativeEV)
	}
	if kelly < lowKellyThreshold {
		flags = append(flags, models.FlagLowKelly)
	}
	if modelConfidence < lowConfidenceThreshold {
		flags = append(flags, models.FlagLowConfidence)
	}
	if lineCertainty < uncertainLineThreshold {
		flags = append(flags, models.FlagUncertainLine)
	}

	composite := weightEV*clamp(ev*100, 0, 100) +
		weightKelly*(kelly*100) +
		weightConfidence*(modelConfidence*100) +
		weightLineCertainty*(lineCertainty*100)

	return models.EdgeScore{
		EV:            ev,
		Kelly:         kelly,
		Confidence:    modelConfidence,
		LineCertainty: lineCertainty,
		OverallScore:  int(math.Round(composite)),
		Flags:         flags,
	}, nil
}

// Rank orders scored bets by overall score, then EV, highest first. The input
// slice is sorted in place and returned.
func Rank(bets []*models.ScoredBet) []*models.ScoredBet {
	sort.SliceStable(bets, func(i, j int) bool {
		a, b := bets[i].Score, bets[j].Score
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		return a.EV > b.EV
	})
	return bets
}

func unit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s %v", ErrInvalidInput, name, v)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
