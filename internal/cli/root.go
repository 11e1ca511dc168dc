// Package cli implements the perfstats command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCmd builds the perfstats command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "perfstats",
		Short:   "Rolling performance counters for frame timings and custom metrics",
		Version: version,
		Long: `perfstats tracks rolling performance counters: a bounded history of
samples per named counter with mean, deviation, and all-time min and max.

Summarize a sample stream:
  perfstats summarize samples.txt

Draw the retained window of one counter:
  perfstats plot --counter ms samples.txt

Run a synthetic frame loop with a live report:
  perfstats frames --fps 60 --duration 5s`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Configuration file (YAML or JSON)")
	flags.StringP("format", "f", "", "Report format (text, json, yaml, csv)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Int("capacity", 0, "Samples retained per counter (0 = unbounded)")
	flags.Int("precision", 3, "Decimals in reports (0 = whole numbers)")
	flags.Bool("percentiles", false, "Report all-time p50/p90/p95/p99")
	flags.String("clock", "", "Clock source (monotonic, posix, wall)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("metrics-file", "", "Also write the report as a Prometheus textfile")

	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newPlotCmd())
	cmd.AddCommand(newFramesCmd())

	return cmd
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
