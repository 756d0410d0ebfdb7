package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-edge/internal/edge"
	"github.com/yourusername/clever-edge/internal/odds"
	"github.com/yourusername/clever-edge/internal/value"
)

type oddsOutput struct {
	American           int             `json:"american"`
	Decimal            float64         `json:"decimal"`
	ImpliedProbability float64         `json:"implied_probability"`
	Fractional         string          `json:"fractional"`
	Payout             decimal.Decimal `json:"payout"`
}

func (a *app) oddsCmd() *cobra.Command {
	var (
		american int
		stake    string
	)

	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Convert American odds to decimal, implied probability and fractional form",
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := odds.AmericanToDecimal(american)
			if err != nil {
				return err
			}
			implied, err := odds.ImpliedProbability(dec)
			if err != nil {
				return err
			}
			num, den, err := odds.Fractional(american)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(stake)
			if err != nil {
				return err
			}
			payout, err := odds.Payout(amount, american)
			if err != nil {
				return err
			}

			return a.write(cmd, oddsOutput{
				American:           american,
				Decimal:            dec,
				ImpliedProbability: implied,
				Fractional:         fmt.Sprintf("%d/%d", num, den),
				Payout:             payout,
			})
		},
	}

	cmd.Flags().IntVar(&american, "american", 0, "American odds, e.g. -135 or +120")
	cmd.Flags().StringVar(&stake, "stake", "100", "Stake used for the payout figure")
	_ = cmd.MarkFlagRequired("american")
	return cmd
}

type vigOutput struct {
	FairProbabilities []float64 `json:"fair_probabilities"`
	Overround         float64   `json:"overround"`
}

func (a *app) vigCmd() *cobra.Command {
	var prices []int

	cmd := &cobra.Command{
		Use:   "vig",
		Short: "Remove the bookmaker margin from a market",
		RunE: func(cmd *cobra.Command, args []string) error {
			fair, err := odds.RemoveVig(prices)
			if err != nil {
				return err
			}
			over, err := odds.Overround(prices)
			if err != nil {
				return err
			}
			return a.write(cmd, vigOutput{FairProbabilities: fair, Overround: over})
		},
	}

	cmd.Flags().IntSliceVar(&prices, "odds", nil, "American odds of every outcome, comma separated")
	_ = cmd.MarkFlagRequired("odds")
	return cmd
}

type evOutput struct {
	DecimalOdds   float64 `json:"decimal_odds"`
	ExpectedValue float64 `json:"expected_value"`
	EdgePercent   float64 `json:"edge_percent"`
}

func (a *app) evCmd() *cobra.Command {
	var (
		prob     float64
		american int
	)

	cmd := &cobra.Command{
		Use:   "ev",
		Short: "Expected value of a unit stake",
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := odds.AmericanToDecimal(american)
			if err != nil {
				return err
			}
			ev, err := value.ExpectedValue(prob, dec)
			if err != nil {
				return err
			}
			edgePct, err := value.EdgePercent(prob, dec)
			if err != nil {
				return err
			}
			return a.write(cmd, evOutput{DecimalOdds: dec, ExpectedValue: ev, EdgePercent: edgePct})
		},
	}

	cmd.Flags().Float64Var(&prob, "prob", 0, "True win probability")
	cmd.Flags().IntVar(&american, "american", 0, "American odds")
	_ = cmd.MarkFlagRequired("prob")
	_ = cmd.MarkFlagRequired("american")
	return cmd
}

type kellyOutput struct {
	RawKelly float64         `json:"raw_kelly"`
	Kelly    float64         `json:"kelly"`
	Stake    decimal.Decimal `json:"stake"`
}

func (a *app) kellyCmd() *cobra.Command {
	var (
		prob     float64
		american int
		fraction float64
		bankroll string
	)

	cmd := &cobra.Command{
		Use:   "kelly",
		Short: "Fractional Kelly stake",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fraction") {
				fraction = a.cfg.Engine.KellyFraction
			}
			dec, err := odds.AmericanToDecimal(american)
			if err != nil {
				return err
			}
			raw, err := value.RawKelly(prob, dec)
			if err != nil {
				return err
			}
			k, err := value.Kelly(prob, dec, fraction)
			if err != nil {
				return err
			}
			bank, err := decimal.NewFromString(bankroll)
			if err != nil {
				return err
			}
			stake, err := value.KellyStake(bank, k)
			if err != nil {
				return err
			}
			return a.write(cmd, kellyOutput{RawKelly: raw, Kelly: k, Stake: stake})
		},
	}

	cmd.Flags().Float64Var(&prob, "prob", 0, "True win probability")
	cmd.Flags().IntVar(&american, "american", 0, "American odds")
	cmd.Flags().Float64Var(&fraction, "fraction", 0, "Maximum bankroll fraction (defaults to engine.kelly_fraction)")
	cmd.Flags().StringVar(&bankroll, "bankroll", "1000", "Bankroll used for the stake figure")
	_ = cmd.MarkFlagRequired("prob")
	_ = cmd.MarkFlagRequired("american")
	return cmd
}

func (a *app) scoreCmd() *cobra.Command {
	var ev, kelly, confidence, certainty float64

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Composite 0-100 edge score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("certainty") {
				certainty = a.cfg.Engine.LineCertainty
			}
			score, err := edge.Score(ev, kelly, confidence, certainty)
			if err != nil {
				return err
			}
			return a.write(cmd, score)
		},
	}

	cmd.Flags().Float64Var(&ev, "ev", 0, "Expected value per unit stake")
	cmd.Flags().Float64Var(&kelly, "kelly", 0, "Kelly fraction")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "Model confidence")
	cmd.Flags().Float64Var(&certainty, "certainty", 0, "Line certainty (defaults to engine.line_certainty)")
	return cmd
}
