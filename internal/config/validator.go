package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/perfstats/internal/output"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate validates the configuration.
//
// Returns nil if valid, or a *ValidationErrors containing every problem.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Capacity < 0 {
		errs.Add("capacity", "must be >= 0")
	}
	if p := c.RoundPrecision; p != nil && (*p < 0 || *p > 15) {
		errs.Add("roundPrecision", "must be between 0 and 15")
	}
	if c.FrameWindow < 0 {
		errs.Add("frameWindow", "must not be negative")
	}
	if c.Clock != "" {
		if _, err := stats.ClockByName(c.Clock); err != nil {
			errs.Add("clock", err.Error())
		}
	}

	for name, counter := range c.Counters {
		prefix := fmt.Sprintf("counters.%s", name)
		if strings.TrimSpace(name) == "" {
			errs.Add("counters", "counter name must not be empty")
		}
		if counter.Capacity < 0 {
			errs.Add(prefix+".capacity", "must be >= 0")
		}
	}

	validateOutput(&c.Output, errs)
	validatePlot(&c.Plot, errs)
	validateLogging(&c.Logging, errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateOutput(o *OutputConfig, errs *ValidationErrors) {
	if o.Format != "" {
		if _, err := output.ParseFormat(o.Format); err != nil {
			errs.Add("output.format", err.Error())
		}
	}
	switch o.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Add("output.color", fmt.Sprintf("unknown color mode '%s' (expected auto, always or never)", o.Color))
	}
}

func validatePlot(p *PlotConfig, errs *ValidationErrors) {
	if p.Limit < 0 {
		errs.Add("plot.limit", "must be >= 0")
	}
	if p.Width < 0 {
		errs.Add("plot.width", "must be >= 0")
	}
	if p.Height < 0 {
		errs.Add("plot.height", "must be >= 0")
	}
	if p.Threshold && p.HighlightThreshold == nil {
		errs.Add("plot.threshold", "requires highlightThreshold")
	}
}

func validateLogging(l *LoggingConfig, errs *ValidationErrors) {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs.Add("logging.level", fmt.Sprintf("unknown level '%s'", l.Level))
	}
	switch strings.ToLower(l.Format) {
	case "", "text", "json":
	default:
		errs.Add("logging.format", fmt.Sprintf("unknown format '%s'", l.Format))
	}
}
