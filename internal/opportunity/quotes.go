package opportunity

import (
	"fmt"

	"github.com/yourusername/clever-edge/internal/models"
	"github.com/yourusername/clever-edge/internal/odds"
)

// quote is one priced side of a market from one book.
type quote struct {
	book     string
	outcome  models.Outcome
	american int
	line     float64
	decimal  float64
	implied  float64
}

func (q quote) leg() models.Leg {
	return models.Leg{
		Book:               q.book,
		Outcome:            q.outcome,
		AmericanOdds:       q.american,
		DecimalOdds:        q.decimal,
		ImpliedProbability: q.implied,
		Line:               q.line,
	}
}

func newQuote(book string, outcome models.Outcome, american int, line float64) (quote, error) {
	dec, err := odds.AmericanToDecimal(american)
	if err != nil {
		return quote{}, fmt.Errorf("%s %s: %w", book, outcome, err)
	}
	return quote{
		book:     book,
		outcome:  outcome,
		american: american,
		line:     line,
		decimal:  dec,
		implied:  1.0 / dec,
	}, nil
}

// marketQuotes returns the group key, line value and priced sides a book line
// offers for market m. ok is false when the line does not quote m.
func marketQuotes(line *models.BookLine, m models.Market) (key string, value float64, quotes []quote, ok bool, err error) {
	type side struct {
		outcome  models.Outcome
		american int
		line     float64
	}
	var sides []side

	switch m {
	case models.MarketMoneyline:
		if line.Moneyline == nil {
			return "", 0, nil, false, nil
		}
		ml := line.Moneyline
		key = "two-way"
		sides = []side{{models.OutcomeHome, ml.Home, 0}, {models.OutcomeAway, ml.Away, 0}}
		if ml.Draw != nil {
			key = "three-way"
			sides = append(sides, side{models.OutcomeDraw, *ml.Draw, 0})
		}
	case models.MarketSpread:
		if line.Spread == nil {
			return "", 0, nil, false, nil
		}
		sp := line.Spread
		value = sp.Value
		key = fmt.Sprintf("%.2f", sp.Value)
		sides = []side{{models.OutcomeHome, sp.HomeOdds, sp.Value}, {models.OutcomeAway, sp.AwayOdds, -sp.Value}}
	case models.MarketTotal:
		if line.Total == nil {
			return "", 0, nil, false, nil
		}
		tot := line.Total
		value = tot.Value
		key = fmt.Sprintf("%.2f", tot.Value)
		sides = []side{{models.OutcomeOver, tot.OverOdds, tot.Value}, {models.OutcomeUnder, tot.UnderOdds, tot.Value}}
	default:
		return "", 0, nil, false, fmt.Errorf("%w: %q", ErrInvalidMarket, m)
	}

	quotes = make([]quote, 0, len(sides))
	for _, s := range sides {
		q, err := newQuote(line.Book, s.outcome, s.american, s.line)
		if err != nil {
			return "", 0, nil, false, err
		}
		quotes = append(quotes, q)
	}
	return key, value, quotes, true, nil
}

// gameID returns the shared game id of lines, or ErrMixedGames.
func gameID(lines []*models.BookLine) (string, error) {
	id := ""
	for _, l := range lines {
		if l == nil || l.GameID == "" {
			continue
		}
		if id == "" {
			id = l.GameID
			continue
		}
		if l.GameID != id {
			return "", fmt.Errorf("%w: %s and %s", ErrMixedGames, id, l.GameID)
		}
	}
	return id, nil
}
