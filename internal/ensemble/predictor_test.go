package ensemble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/models"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func neutralFull() *models.FeatureVector {
	return &models.FeatureVector{
		GameID:                  "g1",
		HomeElo:                 1500,
		AwayElo:                 1500,
		HomeRestDays:            models.Float(1),
		AwayRestDays:            models.Float(1),
		HomeInjuryImpact:        models.Float(0),
		AwayInjuryImpact:        models.Float(0),
		HomeOffensiveEfficiency: models.Float(1),
		HomeDefensiveEfficiency: models.Float(1),
		AwayOffensiveEfficiency: models.Float(1),
		AwayDefensiveEfficiency: models.Float(1),
		HomeRecentWinRate:       models.Float(0.5),
		AwayRecentWinRate:       models.Float(0.5),
		HeadToHeadRate:          models.Float(0.5),
	}
}

func TestPredictEqualTeams(t *testing.T) {
	p := NewPredictor(WithClock(fixedClock))
	res, err := p.Predict(&models.FeatureVector{HomeElo: 1500, AwayElo: 1500})
	require.NoError(t, err)

	assert.InDelta(t, 0.59251, res.WinProbHome, 1e-5)
	assert.InDelta(t, 1.0, res.WinProbHome+res.WinProbAway, 1e-12)
	assert.InDelta(t, -2.6, res.PredictedSpread, 1e-12)
	assert.Equal(t, BaselineTotal, res.PredictedTotal)
	assert.InDelta(t, (res.WinProbHome-0.5)*2*models.MinCompleteness, res.Confidence, 1e-12)
	assert.Equal(t, ModelVersion, res.ModelVersion)
	assert.Equal(t, fixedNow, res.GeneratedAt)
}

func TestCompletenessRaisesConfidence(t *testing.T) {
	p := NewPredictor(WithClock(fixedClock))

	sparse, err := p.Predict(&models.FeatureVector{HomeElo: 1500, AwayElo: 1500})
	require.NoError(t, err)
	full, err := p.Predict(neutralFull())
	require.NoError(t, err)

	// Neutral optional values leave the probability unchanged.
	assert.InDelta(t, sparse.WinProbHome, full.WinProbHome, 1e-12)
	assert.Greater(t, full.Confidence, sparse.Confidence)
	assert.InDelta(t, full.Confidence/sparse.Confidence, 1.0/0.7, 1e-9)
}

func TestCompletenessRange(t *testing.T) {
	empty := &models.FeatureVector{HomeElo: 1500, AwayElo: 1500}
	assert.InDelta(t, 0.7, empty.Completeness(), 1e-12)
	assert.InDelta(t, 1.0, neutralFull().Completeness(), 1e-12)
}

func TestConfidenceIsCapped(t *testing.T) {
	p := NewPredictor()
	res, err := p.Predict(&models.FeatureVector{HomeElo: 3500, AwayElo: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxConfidence, res.Confidence)
}

func TestAdjustmentsMoveProbability(t *testing.T) {
	base := neutralFull()
	baseDiff := AdjustedDiff(base)

	injured := neutralFull()
	injured.HomeInjuryImpact = models.Float(0.5)
	assert.Less(t, AdjustedDiff(injured), baseDiff)

	rested := neutralFull()
	rested.HomeRestDays = models.Float(10)
	assert.InDelta(t, baseDiff+MaxRestDiff*RestPointsPerDay, AdjustedDiff(rested), 1e-9)

	stronger := neutralFull()
	stronger.HomeOffensiveEfficiency = models.Float(1.1)
	assert.Greater(t, AdjustedDiff(stronger), baseDiff)
}

func TestPredictedTotalUsesEfficiency(t *testing.T) {
	f := neutralFull()
	f.HomeOffensiveEfficiency = models.Float(1.2)
	f.AwayOffensiveEfficiency = models.Float(1.0)
	assert.InDelta(t, 45*1.1, PredictedTotal(f), 1e-9)
}

func TestPredictIsDeterministicByDefault(t *testing.T) {
	p := NewPredictor(WithClock(fixedClock))
	a, err := p.Predict(neutralFull())
	require.NoError(t, err)
	b, err := p.Predict(neutralFull())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSeededNoiseIsReproducible(t *testing.T) {
	a := NewPredictor(WithClock(fixedClock), WithNoise(NewSeededNoise(42, 3)))
	b := NewPredictor(WithClock(fixedClock), WithNoise(NewSeededNoise(42, 3)))

	for i := 0; i < 5; i++ {
		ra, err := a.Predict(neutralFull())
		require.NoError(t, err)
		rb, err := b.Predict(neutralFull())
		require.NoError(t, err)
		assert.Equal(t, ra.PredictedTotal, rb.PredictedTotal)
		assert.InDelta(t, BaselineTotal, ra.PredictedTotal, 3)
	}
}

func TestPredictRejectsInvalidFeatures(t *testing.T) {
	p := NewPredictor()

	_, err := p.Predict(nil)
	assert.ErrorIs(t, err, ErrNilFeatures)

	_, err = p.Predict(&models.FeatureVector{HomeElo: 0, AwayElo: 1500})
	assert.ErrorIs(t, err, ErrInvalidFeature)

	bad := neutralFull()
	bad.AwayInjuryImpact = models.Float(1.5)
	_, err = p.Predict(bad)
	assert.ErrorIs(t, err, ErrInvalidFeature)

	bad = neutralFull()
	bad.HomeRestDays = models.Float(-1)
	_, err = p.Predict(bad)
	assert.ErrorIs(t, err, ErrInvalidFeature)
}

func TestPredictBatch(t *testing.T) {
	p := NewPredictor(WithClock(fixedClock))
	features := make([]*models.FeatureVector, 50)
	for i := range features {
		features[i] = &models.FeatureVector{HomeElo: 1400 + float64(i)*5, AwayElo: 1500}
	}

	results, err := p.PredictBatch(features)
	require.NoError(t, err)
	require.Len(t, results, len(features))
	for i := 1; i < len(results); i++ {
		assert.Greater(t, results[i].WinProbHome, results[i-1].WinProbHome)
	}

	features[7] = &models.FeatureVector{HomeElo: -1, AwayElo: 1500}
	_, err = p.PredictBatch(features)
	assert.ErrorIs(t, err, ErrInvalidFeature)
}
