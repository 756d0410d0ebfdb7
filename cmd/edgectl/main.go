// Package main provides edgectl, a command line front end to the edge engine.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// app carries state shared by every subcommand.
type app struct {
	configFile string
	pretty     bool

	cfg       *config.Config
	logger    *logrus.Logger
	openStore storeOpener
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newApp() *app {
	a := &app{}
	a.openStore = a.openDatabase
	return a
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:          "edgectl",
		Short:        "Price lines, score bets and monitor the edge model",
		Long:         `Command line access to odds conversion, value metrics, ensemble predictions, market scans, drift and calibration checks. Inputs are JSON files ("-" reads stdin); results are written to stdout as JSON.`,
		Version:      fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults(a.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg
			a.logger = logger.NewLoggerWithOutput(cfg.App.LogLevel, cfg.App.Environment, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Indent JSON output")

	root.AddCommand(
		a.oddsCmd(),
		a.vigCmd(),
		a.evCmd(),
		a.kellyCmd(),
		a.scoreCmd(),
		a.predictCmd(),
		a.evaluateCmd(),
		a.arbCmd(),
		a.middleCmd(),
		a.driftCmd(),
		a.calibrateCmd(),
		a.performanceCmd(),
	)

	return root
}

// readInput decodes the JSON document at path into v. "-" reads stdin.
func readInput(cmd *cobra.Command, path string, v interface{}) error {
	if path == "" {
		return fmt.Errorf("an --input file is required")
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (a *app) write(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
