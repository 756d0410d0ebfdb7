package models

// EdgeFlag is an advisory marker attached to an EdgeScore.
type EdgeFlag string

const (
	FlagNegativeEV    EdgeFlag = "negative_ev"
	FlagLowKelly      EdgeFlag = "low_kelly"
	FlagLowConfidence EdgeFlag = "low_confidence"
	FlagUncertainLine EdgeFlag = "uncertain_line"
)

// EdgeScore summarises how attractive a bet is. It is derived on demand and
// never persisted by the engine.
type EdgeScore struct {
	EV            float64    `json:"ev"`
	Kelly         float64    `json:"kelly"`
	Confidence    float64    `json:"confidence"`
	LineCertainty float64    `json:"line_certainty"`
	OverallScore  int        `json:"overall_score"`
	Flags         []EdgeFlag `json:"flags"`
}

// HasFlag reports whether the score carries flag f.
func (e *EdgeScore) HasFlag(f EdgeFlag) bool {
	for _, flag := range e.Flags {
		if flag == f {
			return true
		}
	}
	return false
}

// ScoredBet ties an EdgeScore to the book and side it was computed for.
type ScoredBet struct {
	GameID       string    `json:"game_id,omitempty"`
	Book         string    `json:"book"`
	Market       Market    `json:"market"`
	Outcome      Outcome   `json:"outcome"`
	AmericanOdds int       `json:"american_odds"`
	TrueProb     float64   `json:"true_prob"`
	Score        EdgeScore `json:"score"`
}
