package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/clever-edge/internal/models"
)

// LocalProvider renders explanations from a fixed template.
type LocalProvider struct{}

// NewLocalProvider creates a LocalProvider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Name implements Provider.
func (p *LocalProvider) Name() string {
	return string(TagLocal)
}

// Explain implements Provider. The output depends only on bet.
func (p *LocalProvider) Explain(_ context.Context, bet *models.ScoredBet) (string, error) {
	if bet == nil {
		return "", ErrNilBet
	}

	score := bet.Score
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s at %s (%+d): model probability %.1f%%, EV %+.2f%%, Kelly %.2f%%, score %d/100.",
		bet.Market, bet.Outcome, bet.Book, bet.AmericanOdds,
		bet.TrueProb*100, score.EV*100, score.Kelly*100, score.OverallScore)

	switch {
	case score.HasFlag(models.FlagNegativeEV):
		b.WriteString(" The price is worse than the model's fair value; pass.")
	case score.OverallScore >= 70:
		b.WriteString(" Strong edge.")
	case score.OverallScore >= 40:
		b.WriteString(" Moderate edge.")
	default:
		b.WriteString(" Marginal edge.")
	}

	if len(score.Flags) > 0 {
		flags := make([]string, len(score.Flags))
		for i, f := range score.Flags {
			flags[i] = string(f)
		}
		fmt.Fprintf(&b, " Flags: %s.", strings.Join(flags, ", "))
	}
	return b.String(), nil
}
