package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonReport struct {
	ElapsedTime float64 `json:"elapsedTime"`
	Counters    []struct {
		Name        string             `json:"name"`
		Length      int                `json:"length"`
		Last        *float64           `json:"last"`
		Mean        *float64           `json:"mean"`
		Min         *float64           `json:"min"`
		Max         *float64           `json:"max"`
		Deviation   *float64           `json:"deviation"`
		Percentiles map[string]float64 `json:"percentiles"`
	} `json:"counters"`
}

func parseReport(t *testing.T, out string) jsonReport {
	t.Helper()
	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	return report
}

func TestSummarize_Text(t *testing.T) {
	out, _, err := execute(t, "ms 1\nms 3\nms 5\n", "summarize", "--no-color")
	require.NoError(t, err)

	assert.Equal(t, "Elapsed time: 0s\nCounters:\n"+
		"\tms:\n"+
		"\t\tlength: 3\n"+
		"\t\tlast: 5\n"+
		"\t\tmean: 3\n"+
		"\t\tmin: 1\n"+
		"\t\tmax: 5\n"+
		"\t\tdeviation: 1.633\n", out)
}

func TestSummarize_JSONWithCapacity(t *testing.T) {
	out, _, err := execute(t, "1\n1\n1\n1\n5\n", "summarize", "--format", "json", "--capacity", "4", "--name", "ms")
	require.NoError(t, err)

	report := parseReport(t, out)
	require.Len(t, report.Counters, 1)

	c := report.Counters[0]
	assert.Equal(t, "ms", c.Name)
	assert.Equal(t, 4, c.Length)
	assert.Equal(t, 5.0, *c.Last)
	assert.Equal(t, 2.0, *c.Mean)
	assert.Equal(t, 1.0, *c.Min)
	assert.Equal(t, 5.0, *c.Max)
	assert.Equal(t, 1.732, *c.Deviation)
	assert.Nil(t, c.Percentiles)
}

func TestSummarize_WholeNumberPrecision(t *testing.T) {
	out, _, err := execute(t, "1\n1\n1\n1\n5\n", "summarize", "--format", "json", "--capacity", "4", "--precision", "0")
	require.NoError(t, err)

	report := parseReport(t, out)
	require.Len(t, report.Counters, 1)
	assert.Equal(t, 2.0, *report.Counters[0].Mean)
	assert.Equal(t, 2.0, *report.Counters[0].Deviation)
}

func TestSummarize_Percentiles(t *testing.T) {
	out, _, err := execute(t, "ms 10\nms 20\n", "summarize", "-f", "json", "--percentiles")
	require.NoError(t, err)

	report := parseReport(t, out)
	require.Len(t, report.Counters, 1)
	assert.Contains(t, report.Counters[0].Percentiles, "p99")
}

func TestSummarize_JSONFields(t *testing.T) {
	input := `{"frame": {"ms": 16, "fps": 60}}
{"frame": {"ms": 18, "fps": 58}}
`
	out, _, err := execute(t, input, "summarize", "-f", "json",
		"--json-field", "ms=$.frame.ms",
		"--json-field", "fps=frame.fps")
	require.NoError(t, err)

	report := parseReport(t, out)
	require.Len(t, report.Counters, 2)
	assert.Equal(t, "fps", report.Counters[0].Name)
	assert.Equal(t, 59.0, *report.Counters[0].Mean)
	assert.Equal(t, "ms", report.Counters[1].Name)
	assert.Equal(t, 17.0, *report.Counters[1].Mean)
}

func TestSummarize_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	require.NoError(t, os.WriteFile(path, []byte("a 2\nb 4\n"), 0o644))

	out, _, err := execute(t, "", "summarize", "-f", "csv", path)
	require.NoError(t, err)

	assert.Contains(t, out, "elapsed_ms,name,length,last,mean,min,max,deviation,p50,p90,p95,p99")
	assert.Contains(t, out, ",a,1,2,2,2,2,0,,,,")
	assert.Contains(t, out, ",b,1,4,4,4,4,0,,,,")
}

func TestSummarize_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", "summarize", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestSummarize_SkipsMalformedLines(t *testing.T) {
	out, stderr, err := execute(t, "a 1\nnot a number here\na 3\n", "summarize", "-f", "json", "--log-level", "warn")
	require.NoError(t, err)

	report := parseReport(t, out)
	require.Len(t, report.Counters, 1)
	assert.Equal(t, 2, report.Counters[0].Length)
	assert.Contains(t, stderr, "skipping malformed line")
}

func TestSummarize_Strict(t *testing.T) {
	_, _, err := execute(t, "a 1\na nope\n", "summarize", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSummarize_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "format", args: []string{"summarize", "--format", "xml"}, want: "output.format"},
		{name: "capacity", args: []string{"summarize", "--capacity", "-1"}, want: "capacity"},
		{name: "precision", args: []string{"summarize", "--precision", "-1"}, want: "roundPrecision"},
		{name: "clock", args: []string{"summarize", "--clock", "sundial"}, want: "clock"},
		{name: "json field", args: []string{"summarize", "--json-field", "ms"}, want: "expected name=path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "1\n", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSummarize_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
capacity: 2
roundPrecision: 1
output:
  format: yaml
`), 0o644))

	out, _, err := execute(t, "ms 1\nms 2.25\nms 2.5\n", "summarize", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "counters:")
	assert.Contains(t, out, "length: 2")
	assert.Contains(t, out, "mean: 2.4")
	assert.Contains(t, out, "min: 1")
}

func TestSummarize_FlagOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfstats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output": {"format": "yaml"}}`), 0o644))

	out, _, err := execute(t, "1\n", "summarize", "--config", path, "--format", "json")
	require.NoError(t, err)

	report := parseReport(t, out)
	assert.Len(t, report.Counters, 1)
}

func TestSummarize_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: many\n"), 0o644))

	_, _, err := execute(t, "1\n", "summarize", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}

func TestSummarize_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfstats.prom")

	_, _, err := execute(t, "ms 2\nms 4\n", "summarize", "--no-color", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `perfstats_counter_mean{counter="ms"} 3`)
	assert.Contains(t, string(data), `perfstats_counter_length{counter="ms"} 2`)
}
