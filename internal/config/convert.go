package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/wesleyorama2/perfstats/internal/logging"
	"github.com/wesleyorama2/perfstats/internal/plot"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// StatsConfig converts the configuration to a registry configuration.
// Sink is left unset for the caller.
func (c *Config) StatsConfig(logger *slog.Logger) (stats.Config, error) {
	clock, err := stats.ClockByName(c.Clock)
	if err != nil {
		return stats.Config{}, err
	}

	var capacities map[string]int
	if len(c.Counters) > 0 {
		capacities = make(map[string]int, len(c.Counters))
		for name, counter := range c.Counters {
			capacities[name] = counter.Capacity
		}
	}

	return stats.Config{
		Capacity:       c.Capacity,
		Capacities:     capacities,
		RoundPrecision: c.statsPrecision(),
		Percentiles:    c.Percentiles,
		FrameWindow:    c.FrameWindow.GetDuration(time.Second),
		Clock:          clock,
		Logger:         logger,
	}, nil
}

// statsPrecision maps RoundPrecision onto stats.Config, where 0 means the
// default.
func (c *Config) statsPrecision() int {
	if c.RoundPrecision == nil {
		return stats.DefaultRoundPrecision
	}
	if *c.RoundPrecision == 0 {
		return stats.WholeNumbers
	}
	return *c.RoundPrecision
}

// PlotOptions converts the plot section to chart options.
func (c *Config) PlotOptions() plot.Options {
	return plot.Options{
		Limit:              c.Plot.Limit,
		Width:              float64(c.Plot.Width),
		Height:             float64(c.Plot.Height),
		HighlightThreshold: c.Plot.HighlightThreshold,
		ShowThreshold:      c.Plot.Threshold,
		ShowMean:           c.Plot.Mean,
	}
}

// NoColor reports whether colors are disabled for a writer with the given
// terminal state.
func (c *Config) NoColor(isTTY bool) bool {
	switch c.Output.Color {
	case ColorAlways:
		return false
	case ColorNever:
		return true
	default:
		return !isTTY
	}
}

// Logger builds the configured logger writing to w (nil = stderr).
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.Logging.Level),
		Format: logging.ParseFormat(c.Logging.Format),
		Output: w,
	})
}
