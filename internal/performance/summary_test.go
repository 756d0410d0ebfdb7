package performance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/clever-edge/internal/models"
)

func bet(stake, pl string) *models.SettledBet {
	return &models.SettledBet{
		ID:         uuid.New(),
		Stake:      decimal.RequireFromString(stake),
		ProfitLoss: decimal.RequireFromString(pl),
	}
}

func TestSummarize(t *testing.T) {
	bets := []*models.SettledBet{
		bet("100", "90.91"),
		bet("100", "-100"),
		bet("50", "60"),
		bet("100", "-100"),
		bet("100", "0"),
	}

	s := Summarize(bets)
	assert.Equal(t, 5, s.TotalBets)
	assert.Equal(t, 2, s.WinningBets)
	assert.Equal(t, 2, s.LosingBets)
	assert.Equal(t, 1, s.PushedBets)
	assert.InDelta(t, 0.4, s.WinRate, 1e-12)
	assert.True(t, s.TotalStaked.Equal(decimal.NewFromInt(450)))
	assert.True(t, s.NetProfit.Equal(decimal.RequireFromString("-49.09")))
	assert.InDelta(t, -49.09/450, s.ROI, 1e-9)
	assert.InDelta(t, 150.91/200, s.ProfitFactor, 1e-9)
	assert.True(t, s.LargestWin.Equal(decimal.RequireFromString("90.91")))
	assert.True(t, s.LargestLoss.Equal(decimal.NewFromInt(-100)))
	// Peak 90.91 after bet one, trough -49.09 after bet four.
	assert.True(t, s.MaxDrawdown.Equal(decimal.NewFromInt(140)), "got %s", s.MaxDrawdown)
}

func TestSummarizeDegenerateLedgers(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalBets)
	assert.Equal(t, 0.0, empty.ProfitFactor)

	allWins := Summarize([]*models.SettledBet{bet("10", "9"), bet("10", "12")})
	assert.Equal(t, ProfitFactorCap, allWins.ProfitFactor)

	pushes := Summarize([]*models.SettledBet{bet("10", "0")})
	assert.Equal(t, 0.0, pushes.ProfitFactor)
}
