package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Market identifies one of the independently priced markets on a game.
type Market string

const (
	MarketMoneyline Market = "moneyline"
	MarketSpread    Market = "spread"
	MarketTotal     Market = "total"
)

// Markets lists every supported market in evaluation order.
var Markets = []Market{MarketMoneyline, MarketSpread, MarketTotal}

// Valid reports whether m is a known market.
func (m Market) Valid() bool {
	switch m {
	case MarketMoneyline, MarketSpread, MarketTotal:
		return true
	default:
		return false
	}
}

// ParseMarket converts a string to a Market
func ParseMarket(s string) (Market, error) {
	m := Market(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMarket, s)
	}
	return m, nil
}

// Moneyline holds American prices for a straight win market. Draw is set for
// three-way markets only.
type Moneyline struct {
	Home int  `db:"home" json:"home"`
	Away int  `db:"away" json:"away"`
	Draw *int `db:"draw" json:"draw,omitempty"`
}

// Spread holds a point spread quoted from the home side's perspective
// (negative Value means the home side is giving points).
type Spread struct {
	Value    float64 `db:"value" json:"value"`
	HomeOdds int     `db:"home_odds" json:"home_odds"`
	AwayOdds int     `db:"away_odds" json:"away_odds"`
}

// Total holds a game total with over and under prices.
type Total struct {
	Value     float64 `db:"value" json:"value"`
	OverOdds  int     `db:"over_odds" json:"over_odds"`
	UnderOdds int     `db:"under_odds" json:"under_odds"`
}

// BookLine is one sportsbook's quote for a game at a point in time. Lines are
// immutable snapshots.
type BookLine struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	GameID    string     `db:"game_id" json:"game_id"`
	Book      string     `db:"book" json:"book"`
	Timestamp time.Time  `db:"timestamp" json:"timestamp"`
	Moneyline *Moneyline `db:"moneyline" json:"moneyline,omitempty"`
	Spread    *Spread    `db:"spread" json:"spread,omitempty"`
	Total     *Total     `db:"total" json:"total,omitempty"`
}

// Quotes reports whether the line carries a price for market m.
func (b *BookLine) Quotes(m Market) bool {
	switch m {
	case MarketMoneyline:
		return b.Moneyline != nil
	case MarketSpread:
		return b.Spread != nil
	case MarketTotal:
		return b.Total != nil
	default:
		return false
	}
}

// Key returns the identity of the snapshot: book, market and timestamp.
func (b *BookLine) Key(m Market) string {
	return fmt.Sprintf("%s:%s:%d", b.Book, m, b.Timestamp.UnixNano())
}
