// Package config loads perfstats configuration files.
package config

import (
	"time"
)

// Config is the root configuration.
//
// Example YAML:
//
//	capacity: 600
//	roundPrecision: 3
//	percentiles: true
//	frameWindow: 1s
//	counters:
//	  ms:
//	    capacity: 120
//	output:
//	  format: text
//	plot:
//	  counter: ms
//	  highlightThreshold: 16.7
//	  mean: true
type Config struct {
	// Capacity is the default retained window of every counter (0 = unbounded)
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`

	// RoundPrecision is the number of decimals in snapshots (nil = 3, 0 = whole numbers)
	RoundPrecision *int `json:"roundPrecision,omitempty" yaml:"roundPrecision,omitempty"`

	// Percentiles enables all-time p50/p90/p95/p99 per counter
	Percentiles bool `json:"percentiles,omitempty" yaml:"percentiles,omitempty"`

	// FrameWindow is the FPS sampling interval
	FrameWindow Duration `json:"frameWindow,omitempty" yaml:"frameWindow,omitempty"`

	// Clock selects the time source (monotonic, posix, wall; empty = best available)
	Clock string `json:"clock,omitempty" yaml:"clock,omitempty"`

	// Counters holds per-counter overrides
	Counters map[string]CounterConfig `json:"counters,omitempty" yaml:"counters,omitempty"`

	// Output controls report rendering
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`

	// Plot controls the line chart
	Plot PlotConfig `json:"plot,omitempty" yaml:"plot,omitempty"`

	// Logging controls diagnostic logs
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// CounterConfig overrides settings of one named counter.
type CounterConfig struct {
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// Color modes for OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is text, json, yaml or csv
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Color is auto, always or never
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// Quiet suppresses the live console
	Quiet bool `json:"quiet,omitempty" yaml:"quiet,omitempty"`
}

// PlotConfig controls the line chart.
type PlotConfig struct {
	// Counter is the counter to draw
	Counter string `json:"counter,omitempty" yaml:"counter,omitempty"`

	// Limit is the number of most recent samples shown
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`

	// Width and Height are the chart size in terminal cells
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`

	// HighlightThreshold marks samples above this value
	HighlightThreshold *float64 `json:"highlightThreshold,omitempty" yaml:"highlightThreshold,omitempty"`

	// Threshold draws a line at HighlightThreshold
	Threshold bool `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	// Mean draws a line at the window mean
	Mean bool `json:"mean,omitempty" yaml:"mean,omitempty"`
}

// LoggingConfig controls diagnostic logs.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
