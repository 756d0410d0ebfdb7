package models

// FeatureVector carries the team, situational and environmental signals for a
// single game. ELO ratings are required; every other signal is optional and
// its absence lowers Completeness instead of being replaced by a neutral value.
type FeatureVector struct {
	GameID  string  `json:"game_id,omitempty"`
	HomeElo float64 `json:"home_elo"`
	AwayElo float64 `json:"away_elo"`

	HomeRestDays *float64 `json:"home_rest_days,omitempty"`
	AwayRestDays *float64 `json:"away_rest_days,omitempty"`

	// Injury impact in [0,1]: share of team strength unavailable.
	HomeInjuryImpact *float64 `json:"home_injury_impact,omitempty"`
	AwayInjuryImpact *float64 `json:"away_injury_impact,omitempty"`

	// Efficiencies are relative to league average (1.0). Lower defensive
	// efficiency is better.
	HomeOffensiveEfficiency *float64 `json:"home_offensive_efficiency,omitempty"`
	HomeDefensiveEfficiency *float64 `json:"home_defensive_efficiency,omitempty"`
	AwayOffensiveEfficiency *float64 `json:"away_offensive_efficiency,omitempty"`
	AwayDefensiveEfficiency *float64 `json:"away_defensive_efficiency,omitempty"`

	HomeRecentWinRate *float64 `json:"home_recent_win_rate,omitempty"`
	AwayRecentWinRate *float64 `json:"away_recent_win_rate,omitempty"`

	// Share of recent head-to-head meetings won by the home side.
	HeadToHeadRate *float64 `json:"head_to_head_rate,omitempty"`
}

const (
	// MinCompleteness is the completeness of a vector with no optional fields.
	MinCompleteness = 0.7
	// MaxCompleteness is the completeness of a fully populated vector.
	MaxCompleteness = 1.0
)

// optionalFields returns the optional signals in a fixed order.
func (f *FeatureVector) optionalFields() []*float64 {
	return []*float64{
		f.HomeRestDays, f.AwayRestDays,
		f.HomeInjuryImpact, f.AwayInjuryImpact,
		f.HomeOffensiveEfficiency, f.HomeDefensiveEfficiency,
		f.AwayOffensiveEfficiency, f.AwayDefensiveEfficiency,
		f.HomeRecentWinRate, f.AwayRecentWinRate,
		f.HeadToHeadRate,
	}
}

// PresentCount returns how many optional signals are set, and how many exist.
func (f *FeatureVector) PresentCount() (present, total int) {
	fields := f.optionalFields()
	for _, v := range fields {
		if v != nil {
			present++
		}
	}
	return present, len(fields)
}

// Completeness scales linearly from MinCompleteness (no optional signals) to
// MaxCompleteness (all present).
func (f *FeatureVector) Completeness() float64 {
	present, total := f.PresentCount()
	return MinCompleteness + (MaxCompleteness-MinCompleteness)*float64(present)/float64(total)
}

// Float returns a pointer to v, for building feature vectors literally.
func Float(v float64) *float64 {
	return &v
}
