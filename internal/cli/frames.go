package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/perfstats/internal/config"
	"github.com/wesleyorama2/perfstats/internal/output"
	"github.com/wesleyorama2/perfstats/internal/pacer"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

func newFramesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Run a synthetic frame loop with a live report",
		Long: `Drive FrameStart/FrameEnd at a fixed rate and refresh a live report once
per frame window. The loop ends after --duration or on interrupt, then
the final report is printed.`,
		Args: cobra.NoArgs,
		RunE: runFrames,
	}

	cmd.Flags().Duration("duration", 5*time.Second, "How long to run (0 = until interrupted)")
	cmd.Flags().Float64("fps", 60, "Target frames per second")
	cmd.Flags().Duration("window", 0, "FPS sampling window (default from config, else 1s)")
	cmd.Flags().BoolP("quiet", "q", false, "Disable the live report, show only the final report")
	return cmd
}

func runFrames(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	duration, _ := flags.GetDuration("duration")
	fps, _ := flags.GetFloat64("fps")
	if fps <= 0 {
		return fmt.Errorf("--fps must be positive")
	}
	if flags.Changed("window") {
		window, _ := flags.GetDuration("window")
		s.cfg.FrameWindow = config.Duration(window)
	}
	if flags.Changed("quiet") {
		s.cfg.Output.Quiet, _ = flags.GetBool("quiet")
	}

	renderer, err := s.renderer()
	if err != nil {
		return err
	}

	console := output.NewConsole(output.ConsoleConfig{
		Writer:      cmd.OutOrStdout(),
		Quiet:       s.cfg.Output.Quiet,
		NoColor:     s.noColor,
		ForceColors: !s.noColor && s.cfg.Output.Color == config.ColorAlways,
	})

	// Refreshes also rewrite the metrics file so scrapers see the live window
	sink := stats.SinkFunc(func(snap stats.Snapshot) {
		console.Refresh(snap)
		if err := s.writeMetrics(snap); err != nil {
			s.logger.Warn("metrics refresh failed", "error", err)
		}
	})

	reg, err := s.registry(sink)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	p := pacer.New(fps)
	p.Next()

	frames := 0
	reg.FrameStart()
	for p.Wait(ctx) == nil {
		reg.FrameEnd()
		frames++
		reg.FrameStart()
	}

	s.logger.Info("frame loop finished", "frames", frames, "late", p.Stats().Late, "refreshes", console.Refreshes())
	console.Finish()

	snap := reg.Snapshot()
	if err := renderer.Render(cmd.OutOrStdout(), snap); err != nil {
		return err
	}
	return s.writeMetrics(snap)
}
