// Package performance summarises a ledger of settled bets.
package performance

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/clever-edge/internal/models"
)

// ProfitFactorCap is reported when a ledger has profit but no losses.
const ProfitFactorCap = 999.0

// Summarize aggregates settled bets. An empty ledger yields a zero summary.
func Summarize(bets []*models.SettledBet) models.PerformanceSummary {
	summary := models.PerformanceSummary{
		TotalStaked: decimal.Zero,
		NetProfit:   decimal.Zero,
		Expectancy:  decimal.Zero,
		LargestWin:  decimal.Zero,
		LargestLoss: decimal.Zero,
		MaxDrawdown: decimal.Zero,
	}

	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	for _, bet := range bets {
		if bet == nil {
			continue
		}
		summary.TotalBets++
		summary.TotalStaked = summary.TotalStaked.Add(bet.Stake)
		summary.NetProfit = summary.NetProfit.Add(bet.ProfitLoss)

		switch bet.ProfitLoss.Sign() {
		case 1:
			summary.WinningBets++
			grossProfit = grossProfit.Add(bet.ProfitLoss)
			if bet.ProfitLoss.GreaterThan(summary.LargestWin) {
				summary.LargestWin = bet.ProfitLoss
			}
		case -1:
			summary.LosingBets++
			grossLoss = grossLoss.Add(bet.ProfitLoss.Abs())
			if bet.ProfitLoss.LessThan(summary.LargestLoss) {
				summary.LargestLoss = bet.ProfitLoss
			}
		default:
			summary.PushedBets++
		}
	}

	if summary.TotalBets == 0 {
		return summary
	}

	summary.WinRate = float64(summary.WinningBets) / float64(summary.TotalBets)
	if summary.TotalStaked.IsPositive() {
		summary.ROI = summary.NetProfit.Div(summary.TotalStaked).InexactFloat64()
	}
	summary.ProfitFactor = profitFactor(grossProfit, grossLoss)
	summary.Expectancy = summary.NetProfit.Div(decimal.NewFromInt(int64(summary.TotalBets))).Round(2)
	summary.MaxDrawdown = maxDrawdown(bets)
	return summary
}

// profitFactor is gross profit over gross loss; 0 when there is neither and
// ProfitFactorCap when there is profit without loss.
func profitFactor(grossProfit, grossLoss decimal.Decimal) float64 {
	if grossLoss.IsZero() {
		if grossProfit.IsPositive() {
			return ProfitFactorCap
		}
		return 0
	}
	return grossProfit.Div(grossLoss).InexactFloat64()
}

// maxDrawdown is the largest peak-to-trough fall of cumulative P&L, in the
// order the bets are given.
func maxDrawdown(bets []*models.SettledBet) decimal.Decimal {
	running := decimal.Zero
	peak := decimal.Zero
	worst := decimal.Zero
	for _, bet := range bets {
		if bet == nil {
			continue
		}
		running = running.Add(bet.ProfitLoss)
		if running.GreaterThan(peak) {
			peak = running
		}
		if dd := peak.Sub(running); dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return worst
}
