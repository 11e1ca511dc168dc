package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/perfstats/internal/config"
	"github.com/wesleyorama2/perfstats/internal/output"
	"github.com/wesleyorama2/perfstats/internal/prometheus"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// settings is the configuration of one command invocation: the config
// file, if any, overridden by explicitly set flags.
type settings struct {
	cfg         *config.Config
	logger      *slog.Logger
	noColor     bool
	metricsFile string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("capacity") {
		cfg.Capacity, _ = flags.GetInt("capacity")
	}
	if flags.Changed("precision") {
		precision, _ := flags.GetInt("precision")
		cfg.RoundPrecision = &precision
	}
	if flags.Changed("percentiles") {
		cfg.Percentiles, _ = flags.GetBool("percentiles")
	}
	if flags.Changed("clock") {
		cfg.Clock, _ = flags.GetString("clock")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		cfg.Output.Color = config.ColorNever
	}

	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Output.Color == config.ColorAlways {
		color.NoColor = false
	}

	logger := cfg.Logger(cmd.ErrOrStderr())

	metricsFile, _ := flags.GetString("metrics-file")

	return &settings{
		cfg:         cfg,
		logger:      logger,
		noColor:     cfg.NoColor(output.IsTerminal(cmd.OutOrStdout())),
		metricsFile: metricsFile,
	}, nil
}

// writeMetrics writes snap to the metrics file, if one is configured.
func (s *settings) writeMetrics(snap stats.Snapshot) error {
	if s.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteTextfile(s.metricsFile, "", snap); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// registry creates a registry for the settings with the given sink.
func (s *settings) registry(sink stats.Sink) (*stats.Registry, error) {
	sc, err := s.cfg.StatsConfig(s.logger)
	if err != nil {
		return nil, err
	}
	sc.Sink = sink
	return stats.NewWithConfig(sc), nil
}

// renderer returns the report renderer for the configured format.
func (s *settings) renderer() (output.Renderer, error) {
	format, err := output.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.GetRenderer(format, s.noColor), nil
}

// openInput returns the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// parseFields parses repeated name=path flags.
func parseFields(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	fields := make(map[string]string, len(values))
	for _, v := range values {
		name, path, ok := strings.Cut(v, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --json-field %q (expected name=path)", v)
		}
		fields[name] = path
	}
	return fields, nil
}
