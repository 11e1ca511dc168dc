// Package output renders registry snapshots as text, JSON, YAML or CSV
// and provides a live console sink for frame loops.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
	// FormatCSV outputs one row per counter
	FormatCSV OutputFormat = "csv"
)

// Formats lists every supported output format.
var Formats = []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatCSV}

// Renderer writes a registry snapshot in one output format.
type Renderer interface {
	Render(w io.Writer, s stats.Snapshot) error
}

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected one of text, json, yaml, csv)", s)
}

// GetRenderer returns the renderer for the specified format.
// Unknown formats fall back to text.
func GetRenderer(format OutputFormat, noColor bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{Pretty: true}
	case FormatYAML:
		return &YAMLRenderer{}
	case FormatCSV:
		return &CSVRenderer{}
	default:
		return NewTextFormatter(noColor)
	}
}

// JSONRenderer writes snapshots as JSON. Undefined statistics become null.
type JSONRenderer struct {
	Pretty bool
}

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, s stats.Snapshot) error {
	if s.Counters == nil {
		s.Counters = []stats.CounterSnapshot{}
	}

	var data []byte
	var err error
	if r.Pretty {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = w.Write(append(data, '\n'))
	return err
}

// YAMLRenderer writes snapshots as YAML. Undefined statistics become .nan.
type YAMLRenderer struct{}

// Render implements Renderer.
func (r *YAMLRenderer) Render(w io.Writer, s stats.Snapshot) error {
	if s.Counters == nil {
		s.Counters = []stats.CounterSnapshot{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return enc.Close()
}
