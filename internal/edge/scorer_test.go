package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/clever-edge/internal/models"
)

func TestScoreScenario(t *testing.T) {
	score, err := Score(0.03, 0.05, 0.8, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 32, score.OverallScore)
	assert.Empty(t, score.Flags)
	assert.NotNil(t, score.Flags)
}

func TestScoreFlags(t *testing.T) {
	tests := []struct {
		name          string
		ev            float64
		kelly         float64
		confidence    float64
		lineCertainty float64
		expected      []models.EdgeFlag
	}{
		{"negative ev", -0.06, 0.05, 0.8, 0.9, []models.EdgeFlag{models.FlagNegativeEV}},
		{"ev at threshold", -0.05, 0.05, 0.8, 0.9, []models.EdgeFlag{}},
		{"low kelly", 0.02, 0.0, 0.8, 0.9, []models.EdgeFlag{models.FlagLowKelly}},
		{"low confidence", 0.02, 0.05, 0.49, 0.9, []models.EdgeFlag{models.FlagLowConfidence}},
		{"uncertain line", 0.02, 0.05, 0.8, 0.6, []models.EdgeFlag{models.FlagUncertainLine}},
		{
			"everything wrong", -0.2, 0, 0.1, 0.1,
			[]models.EdgeFlag{models.FlagNegativeEV, models.FlagLowKelly, models.FlagLowConfidence, models.FlagUncertainLine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Score(tt.ev, tt.kelly, tt.confidence, tt.lineCertainty)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score.Flags)
		})
	}
}

func TestScoreClampsEV(t *testing.T) {
	high, err := Score(5.0, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, high.OverallScore)

	low, err := Score(-5.0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, low.OverallScore)
}

func TestScoreRejectsOutOfRange(t *testing.T) {
	_, err := Score(0.1, 1.2, 0.5, 0.5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Score(0.1, 0.1, -0.5, 0.5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Score(0.1, 0.1, 0.5, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRank(t *testing.T) {
	bets := []*models.ScoredBet{
		{Book: "low", Score: models.EdgeScore{OverallScore: 20, EV: 0.1}},
		{Book: "high", Score: models.EdgeScore{OverallScore: 60, EV: 0.01}},
		{Book: "tie-better-ev", Score: models.EdgeScore{OverallScore: 20, EV: 0.2}},
	}
	ranked := Rank(bets)
	assert.Equal(t, "high", ranked[0].Book)
	assert.Equal(t, "tie-better-ev", ranked[1].Book)
	assert.Equal(t, "low", ranked[2].Book)
}
