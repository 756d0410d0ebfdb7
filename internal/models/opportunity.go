package models

// Outcome names one side of a market.
type Outcome string

const (
	OutcomeHome  Outcome = "home"
	OutcomeAway  Outcome = "away"
	OutcomeDraw  Outcome = "draw"
	OutcomeOver  Outcome = "over"
	OutcomeUnder Outcome = "under"
)

// Leg is a single bet within a multi-book opportunity.
type Leg struct {
	Book               string  `json:"book"`
	Outcome            Outcome `json:"outcome"`
	AmericanOdds       int     `json:"american_odds"`
	DecimalOdds        float64 `json:"decimal_odds"`
	ImpliedProbability float64 `json:"implied_probability"`
	Line               float64 `json:"line,omitempty"`
	StakeShare         float64 `json:"stake_share,omitempty"`
}

// Arbitrage is a set of legs across books whose implied probabilities sum to
// less than one.
type Arbitrage struct {
	GameID        string  `json:"game_id,omitempty"`
	Market        Market  `json:"market"`
	Line          float64 `json:"line,omitempty"`
	ImpliedSum    float64 `json:"implied_sum"`
	ProfitPercent float64 `json:"profit_percent"`
	Legs          []Leg   `json:"legs"`
}

// Middle pairs the most favourable lines on opposite sides of a two-sided
// market. Gap is a heuristic magnitude in points: it sizes the window in which
// both legs win and is not a dollar guarantee.
type Middle struct {
	GameID string  `json:"game_id,omitempty"`
	Market Market  `json:"market"`
	Gap    float64 `json:"gap"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Legs   []Leg   `json:"legs"`
}
