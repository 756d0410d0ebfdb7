package opportunity

import (
	"sort"

	"github.com/yourusername/clever-edge/internal/models"
)

// outcomeOrder fixes the leg order in results.
var outcomeOrder = map[models.Outcome]int{
	models.OutcomeHome:  0,
	models.OutcomeDraw:  1,
	models.OutcomeAway:  2,
	models.OutcomeOver:  3,
	models.OutcomeUnder: 4,
}

type arbGroup struct {
	value float64
	best  map[models.Outcome]quote
}

// FindArbitrage looks for a riskless combination within a single market. The
// best price for every mutually exclusive outcome is taken across books; if
// their implied probabilities sum to less than one the profit is
// (1 - sum) * 100 percent. Spreads and totals are only combined with lines at
// the same point value. It returns nil when no arbitrage exists, including
// when lines is empty.
func FindArbitrage(lines []*models.BookLine, market models.Market) (*models.Arbitrage, error) {
	if !market.Valid() {
		return nil, ErrInvalidMarket
	}
	game, err := gameID(lines)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*arbGroup)
	keys := make([]string, 0)
	for _, line := range lines {
		if line == nil {
			continue
		}
		key, value, quotes, ok, err := marketQuotes(line, market)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		g, exists := groups[key]
		if !exists {
			g = &arbGroup{value: value, best: make(map[models.Outcome]quote)}
			groups[key] = g
			keys = append(keys, key)
		}
		for _, q := range quotes {
			if cur, seen := g.best[q.outcome]; !seen || q.decimal > cur.decimal {
				g.best[q.outcome] = q
			}
		}
	}
	sort.Strings(keys)

	var best *models.Arbitrage
	for _, key := range keys {
		arb := evaluateGroup(groups[key], market)
		if arb == nil {
			continue
		}
		if best == nil || arb.ProfitPercent > best.ProfitPercent {
			best = arb
		}
	}
	if best != nil {
		best.GameID = game
	}
	return best, nil
}

func evaluateGroup(g *arbGroup, market models.Market) *models.Arbitrage {
	sum := 0.0
	for _, q := range g.best {
		sum += q.implied
	}
	if sum >= 1 {
		return nil
	}

	legs := make([]models.Leg, 0, len(g.best))
	for _, q := range g.best {
		leg := q.leg()
		// Stakes proportional to implied probability equalise the payout.
		leg.StakeShare = q.implied / sum
		legs = append(legs, leg)
	}
	sort.Slice(legs, func(i, j int) bool {
		return outcomeOrder[legs[i].Outcome] < outcomeOrder[legs[j].Outcome]
	})

	return &models.Arbitrage{
		Market:        market,
		Line:          g.value,
		ImpliedSum:    sum,
		ProfitPercent: (1 - sum) * 100,
		Legs:          legs,
	}
}

// ScanArbitrage evaluates every market independently and returns the
// arbitrage found in each. Implied probabilities are never summed across
// markets.
func ScanArbitrage(lines []*models.BookLine) ([]*models.Arbitrage, error) {
	found := make([]*models.Arbitrage, 0)
	for _, m := range models.Markets {
		arb, err := FindArbitrage(lines, m)
		if err != nil {
			return nil, err
		}
		if arb != nil {
			found = append(found, arb)
		}
	}
	return found, nil
}
