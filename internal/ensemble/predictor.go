package ensemble

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/clever-edge/internal/models"
)

// ModelVersion tags every prediction produced with the constants below.
const ModelVersion = "ensemble-v1"

const (
	// HomeFieldAdvantage is expressed in ELO points.
	HomeFieldAdvantage = 65.0

	// RestPointsPerDay converts the rest-day differential into ELO points;
	// the differential is capped at MaxRestDiff days.
	RestPointsPerDay = 10.0
	MaxRestDiff      = 3.0

	// EfficiencyScale converts a relative efficiency gap (1.0 = league
	// average) into ELO points.
	EfficiencyScale = 200.0

	// InjuryScale is the ELO cost of a fully depleted roster.
	InjuryScale = 150.0

	// FormScale converts the recent win rate gap into ELO points.
	FormScale = 50.0

	// HeadToHeadScale converts head-to-head dominance into ELO points.
	HeadToHeadScale = 40.0

	// EloScale is the logistic scale of the ELO curve.
	EloScale = 400.0

	// SpreadDivisor converts ELO difference into points of spread.
	SpreadDivisor = 25.0

	// BaselineTotal is the league-average combined score.
	BaselineTotal = 45.0

	// MaxConfidence caps reported confidence.
	MaxConfidence = 0.95
)

// Predictor produces PredictionResults from feature vectors.
type Predictor struct {
	noise   NoiseSource
	now     func() time.Time
	version string
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithNoise enables jitter on predicted totals.
func WithNoise(n NoiseSource) Option {
	return func(p *Predictor) { p.noise = n }
}

// WithClock overrides the clock used to stamp predictions.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) { p.now = now }
}

// WithModelVersion overrides the version tag.
func WithModelVersion(v string) Option {
	return func(p *Predictor) { p.version = v }
}

// NewPredictor creates a deterministic predictor unless WithNoise is given.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		now:     time.Now,
		version: ModelVersion,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Version returns the model version tag stamped on predictions.
func (p *Predictor) Version() string {
	return p.version
}

// Predict runs the ensemble for one game.
func (p *Predictor) Predict(f *models.FeatureVector) (*models.PredictionResult, error) {
	if f == nil {
		return nil, ErrNilFeatures
	}
	if err := Validate(f); err != nil {
		return nil, err
	}

	diff := AdjustedDiff(f)
	home := WinProbability(diff)
	away := 1 - home
	mustSumToOne(home, away)

	strength := math.Abs(home-0.5) * 2
	confidence := math.Min(strength*f.Completeness(), MaxConfidence)

	total := PredictedTotal(f)
	if p.noise != nil {
		total += p.noise.Sample()
	}

	return &models.PredictionResult{
		GameID:          f.GameID,
		WinProbHome:     home,
		WinProbAway:     away,
		Confidence:      confidence,
		PredictedSpread: -diff / SpreadDivisor,
		PredictedTotal:  total,
		ModelVersion:    p.version,
		GeneratedAt:     p.now().UTC(),
	}, nil
}

// AdjustedDiff combines every available signal into an ELO-equivalent home
// advantage. Missing optional signals contribute nothing; their absence is
// reflected by FeatureVector.Completeness.
func AdjustedDiff(f *models.FeatureVector) float64 {
	diff := f.HomeElo - f.AwayElo + HomeFieldAdvantage

	if f.HomeRestDays != nil && f.AwayRestDays != nil {
		rest := math.Max(-MaxRestDiff, math.Min(MaxRestDiff, *f.HomeRestDays-*f.AwayRestDays))
		diff += rest * RestPointsPerDay
	}

	if f.HomeOffensiveEfficiency != nil && f.AwayOffensiveEfficiency != nil {
		diff += (*f.HomeOffensiveEfficiency - *f.AwayOffensiveEfficiency) * EfficiencyScale
	}
	if f.HomeDefensiveEfficiency != nil && f.AwayDefensiveEfficiency != nil {
		diff += (*f.AwayDefensiveEfficiency - *f.HomeDefensiveEfficiency) * EfficiencyScale
	}

	if f.HomeInjuryImpact != nil {
		diff -= *f.HomeInjuryImpact * InjuryScale
	}
	if f.AwayInjuryImpact != nil {
		diff += *f.AwayInjuryImpact * InjuryScale
	}

	if f.HomeRecentWinRate != nil && f.AwayRecentWinRate != nil {
		diff += (*f.HomeRecentWinRate - *f.AwayRecentWinRate) * FormScale
	}

	if f.HeadToHeadRate != nil {
		diff += (*f.HeadToHeadRate - 0.5) * HeadToHeadScale
	}

	return diff
}

// WinProbability maps an ELO difference onto the standard logistic curve.
func WinProbability(adjustedDiff float64) float64 {
	return 1 / (1 + math.Pow(10, -adjustedDiff/EloScale))
}

// PredictedTotal scales the baseline total by the mean offensive and defensive
// efficiencies of both sides.
func PredictedTotal(f *models.FeatureVector) float64 {
	offense := meanOrOne(f.HomeOffensiveEfficiency, f.AwayOffensiveEfficiency)
	defense := meanOrOne(f.HomeDefensiveEfficiency, f.AwayDefensiveEfficiency)
	return BaselineTotal * offense * defense
}

// Validate checks every present feature against its domain.
func Validate(f *models.FeatureVector) error {
	if !finite(f.HomeElo) || f.HomeElo <= 0 {
		return fmt.Errorf("%w: home elo %v", ErrInvalidFeature, f.HomeElo)
	}
	if !finite(f.AwayElo) || f.AwayElo <= 0 {
		return fmt.Errorf("%w: away elo %v", ErrInvalidFeature, f.AwayElo)
	}

	checks := []struct {
		name string
		v    *float64
		ok   func(float64) bool
	}{
		{"home rest days", f.HomeRestDays, nonNegative},
		{"away rest days", f.AwayRestDays, nonNegative},
		{"home injury impact", f.HomeInjuryImpact, unitInterval},
		{"away injury impact", f.AwayInjuryImpact, unitInterval},
		{"home offensive efficiency", f.HomeOffensiveEfficiency, positive},
		{"home defensive efficiency", f.HomeDefensiveEfficiency, positive},
		{"away offensive efficiency", f.AwayOffensiveEfficiency, positive},
		{"away defensive efficiency", f.AwayDefensiveEfficiency, positive},
		{"home recent win rate", f.HomeRecentWinRate, unitInterval},
		{"away recent win rate", f.AwayRecentWinRate, unitInterval},
		{"head to head rate", f.HeadToHeadRate, unitInterval},
	}
	for _, c := range checks {
		if c.v == nil {
			continue
		}
		if !finite(*c.v) || !c.ok(*c.v) {
			return fmt.Errorf("%w: %s %v", ErrInvalidFeature, c.name, *c.v)
		}
	}
	return nil
}

func mustSumToOne(home, away float64) {
	if math.Abs(home+away-1) > 1e-9 {
		panic(fmt.Sprintf("ensemble: win probabilities sum to %v", home+away))
	}
}

func meanOrOne(a, b *float64) float64 {
	switch {
	case a != nil && b != nil:
		return (*a + *b) / 2
	case a != nil:
		return *a
	case b != nil:
		return *b
	default:
		return 1
	}
}

func finite(v float64) bool       { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func nonNegative(v float64) bool  { return v >= 0 }
func positive(v float64) bool     { return v > 0 }
func unitInterval(v float64) bool { return v >= 0 && v <= 1 }
