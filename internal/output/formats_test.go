package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/perfstats/pkg/stats"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		wantErr  bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"csv", FormatCSV, false},
		{"junit", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetRenderer(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		expected string
	}{
		{FormatText, "*output.TextFormatter"},
		{FormatJSON, "*output.JSONRenderer"},
		{FormatYAML, "*output.YAMLRenderer"},
		{FormatCSV, "*output.CSVRenderer"},
		{"unknown", "*output.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r := GetRenderer(tt.format, true)
			assert.Equal(t, tt.expected, fmt.Sprintf("%T", r))
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONRenderer{Pretty: true}).Render(&buf, sampleSnapshot()))

	var decoded struct {
		ElapsedTime float64          `json:"elapsedTime"`
		Counters    []map[string]any `json:"counters"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 2600.0, decoded.ElapsedTime)
	require.Len(t, decoded.Counters, 2)
	assert.Equal(t, "a", decoded.Counters[0]["name"])
	assert.Equal(t, 1.633, decoded.Counters[0]["deviation"])
	assert.Nil(t, decoded.Counters[1]["mean"])
}

func TestJSONRenderer_EmptyCountersIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONRenderer{}).Render(&buf, stats.Snapshot{}))
	assert.Equal(t, `{"elapsedTime":0,"counters":[]}`+"\n", buf.String())
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLRenderer{}).Render(&buf, sampleSnapshot()))

	var decoded stats.Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Counters, 2)
	assert.Equal(t, "a", decoded.Counters[0].Name)
	assert.Equal(t, 3.0, decoded.Counters[0].Mean)
	assert.Contains(t, buf.String(), ".nan")
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVRenderer{}).Render(&buf, sampleSnapshot()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "elapsed_ms,name,length,last,mean,min,max,deviation,p50,p90,p95,p99", lines[0])
	assert.Equal(t, "2600,a,3,5,3,1,5,1.633,,,,", lines[1])
	assert.Equal(t, "2600,idle,0,,,,,,,,,", lines[2])

	var rows []CounterRow
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &rows))
	assert.Equal(t, ToCSV(sampleSnapshot()), rows)
}

func TestCSVRenderer_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVRenderer{NoHeader: true}).Render(&buf, sampleSnapshot()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2600,a,"))
}

func TestToCSV_Percentiles(t *testing.T) {
	snap := stats.Snapshot{Counters: []stats.CounterSnapshot{{
		Name:        "ms",
		Percentiles: &stats.PercentileSnapshot{P50: 1, P90: 2, P95: 3, P99: 4.5},
	}}}

	rows := ToCSV(snap)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].P50)
	assert.Equal(t, "4.5", rows[0].P99)
}
