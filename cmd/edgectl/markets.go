package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-edge/internal/models"
	"github.com/yourusername/clever-edge/internal/opportunity"
	"github.com/yourusername/clever-edge/internal/performance"
	"github.com/yourusername/clever-edge/internal/service"
)

func (a *app) arbCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "arb",
		Short: "Scan book lines for arbitrage",
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines []*models.BookLine
			if err := readInput(cmd, input, &lines); err != nil {
				return err
			}
			arbs, err := opportunity.ScanArbitrage(lines)
			if err != nil {
				return err
			}
			if arbs == nil {
				arbs = []*models.Arbitrage{}
			}
			return a.write(cmd, arbs)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Book lines JSON file")
	return cmd
}

func (a *app) middleCmd() *cobra.Command {
	var (
		input       string
		spreadRange float64
	)

	cmd := &cobra.Command{
		Use:   "middle",
		Short: "Scan spread and total lines for middles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("range") {
				spreadRange = a.cfg.Engine.SpreadRange
			}
			var lines []*models.BookLine
			if err := readInput(cmd, input, &lines); err != nil {
				return err
			}
			middles, err := opportunity.ScanMiddles(lines, spreadRange)
			if err != nil {
				return err
			}
			if middles == nil {
				middles = []*models.Middle{}
			}
			return a.write(cmd, middles)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Book lines JSON file")
	cmd.Flags().Float64Var(&spreadRange, "range", 0, "Minimum line gap (defaults to engine.spread_range)")
	return cmd
}

func (a *app) performanceCmd() *cobra.Command {
	var (
		input string
		from  string
		to    string
	)

	cmd := &cobra.Command{
		Use:   "performance",
		Short: "Summarize a settled-bet ledger",
		Long: `Summarizes the settled bets in an input file, or the bets settled in the
database between --from and --to (RFC 3339; --to defaults to now).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input != "" {
				var bets []*models.SettledBet
				if err := readInput(cmd, input, &bets); err != nil {
					return err
				}
				return a.write(cmd, performance.Summarize(bets))
			}
			if from == "" {
				return fmt.Errorf("either --input or --from is required")
			}

			window, err := parseWindow(from, to, time.Now())
			if err != nil {
				return err
			}

			repos, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			svc, err := a.newEdgeService(service.WithRepositories(repos.BookLine, repos.SettledBet))
			if err != nil {
				return err
			}
			summary, err := svc.Performance(cmd.Context(), window)
			if err != nil {
				return err
			}
			return a.write(cmd, summary)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Settled bets JSON file")
	cmd.Flags().StringVar(&from, "from", "", "Start of the settlement window (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "End of the settlement window (RFC 3339, defaults to now)")
	cmd.MarkFlagsMutuallyExclusive("input", "from")
	return cmd
}

// parseWindow parses RFC 3339 bounds; an empty end means now.
func parseWindow(from, to string, now time.Time) (models.TimeWindow, error) {
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("invalid --from: %w", err)
	}
	end := now
	if to != "" {
		if end, err = time.Parse(time.RFC3339, to); err != nil {
			return models.TimeWindow{}, fmt.Errorf("invalid --to: %w", err)
		}
	}
	if !end.After(start) {
		return models.TimeWindow{}, fmt.Errorf("--to must be after --from")
	}
	return models.TimeWindow{Start: start, End: end}, nil
}
