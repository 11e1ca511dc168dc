package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/perfstats/internal/plot"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// LoadConfig loads a configuration file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// The document is checked against the embedded JSON Schema before it is
// decoded, then defaults are applied and the result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ValidateSchema(data, path); err != nil {
		return nil, err
	}

	config, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseConfig parses configuration data.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension.
func ParseConfig(data []byte, path string) (*Config, error) {
	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
		}
	}

	return &config, nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	config := &Config{}
	ApplyDefaults(config)
	return config
}

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(config *Config) {
	if config.RoundPrecision == nil {
		precision := stats.DefaultRoundPrecision
		config.RoundPrecision = &precision
	}
	if config.FrameWindow == 0 {
		config.FrameWindow = Duration(time.Second)
	}

	if config.Output.Format == "" {
		config.Output.Format = "text"
	}
	if config.Output.Color == "" {
		config.Output.Color = ColorAuto
	}

	if config.Plot.Counter == "" {
		config.Plot.Counter = stats.MsCounter
	}
	if config.Plot.Limit == 0 {
		config.Plot.Limit = plot.DefaultLimit
	}
	if config.Plot.Width == 0 {
		config.Plot.Width = plot.DefaultWidth
	}
	if config.Plot.Height == 0 {
		config.Plot.Height = plot.DefaultHeight
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "text"
	}
}
