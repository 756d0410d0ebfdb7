package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettledBet is a graded bet used for performance summaries.
type SettledBet struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Book         string          `db:"book" json:"book"`
	Market       Market          `db:"market" json:"market"`
	AmericanOdds int             `db:"american_odds" json:"american_odds"`
	Stake        decimal.Decimal `db:"stake" json:"stake"`
	ProfitLoss   decimal.Decimal `db:"profit_loss" json:"profit_loss"`
	SettledAt    time.Time       `db:"settled_at" json:"settled_at"`
}

// PerformanceSummary aggregates a settled-bet ledger.
type PerformanceSummary struct {
	TotalBets    int             `json:"total_bets"`
	WinningBets  int             `json:"winning_bets"`
	LosingBets   int             `json:"losing_bets"`
	PushedBets   int             `json:"pushed_bets"`
	WinRate      float64         `json:"win_rate"`
	TotalStaked  decimal.Decimal `json:"total_staked"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ROI          float64         `json:"roi"`
	ProfitFactor float64         `json:"profit_factor"`
	Expectancy   decimal.Decimal `json:"expectancy"`
	LargestWin   decimal.Decimal `json:"largest_win"`
	LargestLoss  decimal.Decimal `json:"largest_loss"`
	MaxDrawdown  decimal.Decimal `json:"max_drawdown"`
}
