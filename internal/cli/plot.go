package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/perfstats/internal/plot"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Draw the retained samples of one counter",
		Long: `Read samples like summarize, then draw a line chart of the most recent
samples of one counter. Samples above --threshold are highlighted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlot,
	}

	addIngestFlags(cmd)
	cmd.Flags().String("counter", "", "Counter to draw (default from config, else ms)")
	cmd.Flags().Int("limit", 0, "Number of most recent samples drawn")
	cmd.Flags().Int("width", 0, "Chart width in columns")
	cmd.Flags().Int("height", 0, "Chart height in rows")
	cmd.Flags().Float64("threshold", 0, "Highlight samples above this value")
	cmd.Flags().Bool("show-threshold", false, "Draw a line at the threshold")
	cmd.Flags().Bool("mean", false, "Draw a line at the window mean")
	cmd.Flags().Bool("axis", true, "Label the window max and min")
	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	p := &s.cfg.Plot
	if flags.Changed("counter") {
		p.Counter, _ = flags.GetString("counter")
	}
	if flags.Changed("limit") {
		p.Limit, _ = flags.GetInt("limit")
	}
	if flags.Changed("width") {
		p.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		p.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("threshold") {
		v, _ := flags.GetFloat64("threshold")
		p.HighlightThreshold = plot.Threshold(v)
	}
	if flags.Changed("show-threshold") {
		p.Threshold, _ = flags.GetBool("show-threshold")
	}
	if flags.Changed("mean") {
		p.Mean, _ = flags.GetBool("mean")
	}
	axis, _ := flags.GetBool("axis")

	reg, err := ingestInput(cmd, args, s)
	if err != nil {
		return err
	}

	counter, ok := reg.Lookup(p.Counter)
	if !ok {
		return fmt.Errorf("counter %q not found (available: %s)", p.Counter, strings.Join(reg.Names(), ", "))
	}

	frame := plot.New(s.cfg.PlotOptions()).Layout(counter.Samples())
	chart := plot.Render(frame, plot.RenderOptions{
		Title:   counter.Name(),
		NoColor: s.noColor,
		Axis:    axis,
	})

	_, err = fmt.Fprintln(cmd.OutOrStdout(), chart)
	return err
}
