package opportunity

import (
	"fmt"
	"math"

	"github.com/yourusername/clever-edge/internal/models"
)

// DefaultSpreadRange is the minimum gap, in points, for a middle.
const DefaultSpreadRange = 1.0

// FindMiddle pairs the most favourable line on each side of a spread or total
// market, taking the two sides from different books. A middle exists when the
// gap between them exceeds spreadRange. Among pairs with the widest gap the
// better combined price wins. The returned Gap is a heuristic magnitude of the
// winning window, not a profit guarantee. It returns nil when there is no
// middle.
func FindMiddle(lines []*models.BookLine, market models.Market, spreadRange float64) (*models.Middle, error) {
	if market != models.MarketSpread && market != models.MarketTotal {
		return nil, fmt.Errorf("%w: middles need a two-sided line market, got %q", ErrInvalidMarket, market)
	}
	if math.IsNaN(spreadRange) || spreadRange < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadRange, spreadRange)
	}
	game, err := gameID(lines)
	if err != nil {
		return nil, err
	}

	// The high side sits on the larger line value, the low side on the smaller.
	// For spreads the home bettor wants the largest value and the away bettor
	// the smallest; for totals the under wants the largest and the over the
	// smallest.
	var highs, lows []quote
	for _, line := range lines {
		if line == nil {
			continue
		}
		_, _, quotes, ok, err := marketQuotes(line, market)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		var highSide, lowSide quote
		var value float64
		if market == models.MarketSpread {
			highSide, lowSide, value = quotes[0], quotes[1], line.Spread.Value
		} else {
			highSide, lowSide, value = quotes[1], quotes[0], line.Total.Value
		}
		highSide.line = value
		lowSide.line = value
		highs = append(highs, highSide)
		lows = append(lows, lowSide)
	}

	var high, low *quote
	for i := range highs {
		for j := range lows {
			h, l := &highs[i], &lows[j]
			if h.book == l.book {
				continue
			}
			if high == nil || betterPair(h, l, high, low) {
				high, low = h, l
			}
		}
	}

	if high == nil {
		return nil, nil
	}
	gap := high.line - low.line
	if gap <= spreadRange {
		return nil, nil
	}

	mid := &models.Middle{GameID: game, Market: market, Gap: gap}
	if market == models.MarketSpread {
		// Home at high wins when margin > -high; away at low wins when margin < -low.
		mid.Lower, mid.Upper = -high.line, -low.line
		homeLeg := high.leg()
		awayLeg := low.leg()
		awayLeg.Line = -low.line
		mid.Legs = []models.Leg{homeLeg, awayLeg}
	} else {
		mid.Lower, mid.Upper = low.line, high.line
		mid.Legs = []models.Leg{low.leg(), high.leg()}
	}
	return mid, nil
}

// ScanMiddles runs FindMiddle over the spread and total markets.
func ScanMiddles(lines []*models.BookLine, spreadRange float64) ([]*models.Middle, error) {
	found := make([]*models.Middle, 0)
	for _, m := range []models.Market{models.MarketSpread, models.MarketTotal} {
		mid, err := FindMiddle(lines, m, spreadRange)
		if err != nil {
			return nil, err
		}
		if mid != nil {
			found = append(found, mid)
		}
	}
	return found, nil
}

// betterPair reports whether h/l opens a wider window than the current best,
// or the same window at a better combined price.
func betterPair(h, l, bestHigh, bestLow *quote) bool {
	gap, bestGap := h.line-l.line, bestHigh.line-bestLow.line
	if gap != bestGap {
		return gap > bestGap
	}
	return h.decimal+l.decimal > bestHigh.decimal+bestLow.decimal
}
