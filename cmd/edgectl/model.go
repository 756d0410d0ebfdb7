package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-edge/internal/calibration"
	"github.com/yourusername/clever-edge/internal/drift"
	"github.com/yourusername/clever-edge/internal/ensemble"
	"github.com/yourusername/clever-edge/internal/explain"
	"github.com/yourusername/clever-edge/internal/models"
	"github.com/yourusername/clever-edge/internal/service"
)

// newEdgeService wires the predictor, cache and explanation provider from
// configuration.
func (a *app) newEdgeService(opts ...service.EdgeOption) (*service.EdgeService, error) {
	predictorOpts := []ensemble.Option{}
	if a.cfg.Engine.JitterEnabled {
		predictorOpts = append(predictorOpts, ensemble.WithNoise(ensemble.NewSeededNoise(a.cfg.Engine.JitterSeed, a.cfg.Engine.JitterAmplitude)))
	}
	predictor := ensemble.NewPredictor(predictorOpts...)

	explainer, err := explain.NewProvider(a.cfg.Explain, a.logger)
	if err != nil {
		return nil, err
	}

	cache := service.NewPredictionCache(a.cfg.Cache.TTL, a.cfg.Cache.MaxSize)
	return service.NewEdgeService(predictor, cache, explainer, a.cfg.Engine, a.logger, opts...), nil
}

func (a *app) predictCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a batch of games from a JSON array of feature vectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			var features []*models.FeatureVector
			if err := readInput(cmd, input, &features); err != nil {
				return err
			}
			svc, err := a.newEdgeService()
			if err != nil {
				return err
			}
			results, err := svc.PredictBatch(features)
			if err != nil {
				return err
			}
			return a.write(cmd, results)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Feature vectors JSON file")
	return cmd
}

type evaluateInput struct {
	Features *models.FeatureVector `json:"features"`
	Lines    []*models.BookLine    `json:"lines"`
}

type explanation struct {
	Book    string         `json:"book"`
	Outcome models.Outcome `json:"outcome"`
	Text    string         `json:"text"`
}

type evaluateOutput struct {
	*service.EdgeReport
	Explanations []explanation `json:"explanations,omitempty"`
}

func (a *app) evaluateCmd() *cobra.Command {
	var (
		input      string
		explainN   int
		game       string
		calibrated bool
		plattA     float64
		plattB     float64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score every two-way moneyline quote for one game and scan for arbitrage and middles",
		Long: `Evaluates one game. Lines come from the input file, or from the database
with --game. Probabilities can be recalibrated with the latest stored Platt
fit (--calibrated) or with explicit --platt-a/--platt-b parameters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var in evaluateInput
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			if in.Features == nil {
				return models.ErrInvalidFeatures
			}

			var opts []service.EdgeOption
			if game != "" || calibrated {
				repos, closeStore, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer closeStore()

				opts = append(opts, service.WithRepositories(repos.BookLine, repos.SettledBet))
				if calibrated {
					scaler, err := a.storedScaler(ctx, repos)
					if err != nil {
						return err
					}
					if scaler != nil {
						opts = append(opts, service.WithScaler(scaler))
					}
				}
			}
			if cmd.Flags().Changed("platt-a") {
				opts = append(opts, service.WithScaler(&calibration.PlattScaler{A: plattA, B: plattB}))
			}

			svc, err := a.newEdgeService(opts...)
			if err != nil {
				return err
			}

			var report *service.EdgeReport
			if game != "" {
				if len(in.Lines) > 0 {
					a.logger.WithField("game_id", game).Warn("Ignoring input lines; loading lines from the database")
				}
				in.Features.GameID = game
				report, err = svc.EvaluateGame(ctx, in.Features)
			} else {
				report, err = svc.Evaluate(in.Features, in.Lines)
			}
			if err != nil {
				return err
			}

			out := evaluateOutput{EdgeReport: report}
			for i := 0; i < explainN && i < len(report.Bets); i++ {
				bet := report.Bets[i]
				text, err := svc.Explain(ctx, bet)
				if err != nil {
					return err
				}
				out.Explanations = append(out.Explanations, explanation{Book: bet.Book, Outcome: bet.Outcome, Text: text})
			}
			return a.write(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", `JSON file with "features" and "lines"`)
	cmd.Flags().IntVar(&explainN, "explain", 0, "Explain the top N ranked bets")
	cmd.Flags().StringVar(&game, "game", "", "Load the latest lines for this game id from the database")
	cmd.Flags().BoolVar(&calibrated, "calibrated", false, "Apply the latest stored Platt fit")
	cmd.Flags().Float64Var(&plattA, "platt-a", 1, "Platt slope applied to the home probability")
	cmd.Flags().Float64Var(&plattB, "platt-b", 0, "Platt intercept applied to the home probability")
	cmd.MarkFlagsRequiredTogether("platt-a", "platt-b")
	cmd.MarkFlagsMutuallyExclusive("calibrated", "platt-a")
	return cmd
}

type driftSamples struct {
	Reference []float64 `json:"reference"`
	Current   []float64 `json:"current"`
}

func (a *app) driftCmd() *cobra.Command {
	var (
		input     string
		bins      int
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Population stability index per feature",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("bins") {
				bins = a.cfg.Engine.DriftBins
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Engine.DriftThreshold
			}

			var in map[string]driftSamples
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			monitor, err := drift.NewMonitor(bins, threshold)
			if err != nil {
				return err
			}

			samples := make(map[string]drift.Samples, len(in))
			for name, s := range in {
				samples[name] = drift.Samples{Reference: s.Reference, Current: s.Current}
			}
			reports, err := monitor.CheckAll(samples)
			if err != nil {
				return err
			}
			return a.write(cmd, reports)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", `JSON object of feature name to {"reference": [...], "current": [...]}`)
	cmd.Flags().IntVar(&bins, "bins", 0, "Histogram bins (defaults to engine.drift_bins)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "PSI alert threshold (defaults to engine.drift_threshold)")
	return cmd
}

type calibrateOutput struct {
	Report        *models.CalibrationReport `json:"report"`
	Platt         *calibration.PlattScaler  `json:"platt,omitempty"`
	FittedLogLoss *float64                  `json:"fitted_log_loss,omitempty"`
}

func (a *app) calibrateCmd() *cobra.Command {
	var (
		input string
		noFit bool
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Calibration report and Platt fit from recorded prediction outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []*models.PredictionOutcome
			if err := readInput(cmd, input, &rows); err != nil {
				return err
			}
			preds, outcomes := models.SplitOutcomes(rows)

			report, err := calibration.Evaluate(preds, outcomes, a.cfg.Engine.CalibrationBins)
			if err != nil {
				return err
			}
			out := calibrateOutput{Report: report}
			if noFit {
				return a.write(cmd, out)
			}

			scaler, err := calibration.FitPlatt(preds, outcomes, calibration.PlattConfig{
				LearningRate: a.cfg.Engine.PlattLearningRate,
				Iterations:   a.cfg.Engine.PlattIterations,
			})
			if err != nil {
				return err
			}
			fitted, err := calibration.LogLoss(scaler.ApplyAll(preds), outcomes)
			if err != nil {
				return err
			}
			out.Platt = scaler
			out.FittedLogLoss = &fitted
			return a.write(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Prediction outcomes JSON file")
	cmd.Flags().BoolVar(&noFit, "no-fit", false, "Skip the Platt refit")
	return cmd
}
