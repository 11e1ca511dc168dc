package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "perfstats.yaml", `
capacity: 600
roundPrecision: 2
percentiles: true
frameWindow: 500ms
clock: wall
counters:
  ms:
    capacity: 120
output:
  format: json
  color: never
plot:
  counter: fps
  highlightThreshold: 16.7
  threshold: true
  mean: true
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.Capacity)
	require.NotNil(t, cfg.RoundPrecision)
	assert.Equal(t, 2, *cfg.RoundPrecision)
	assert.True(t, cfg.Percentiles)
	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.FrameWindow))
	assert.Equal(t, "wall", cfg.Clock)
	assert.Equal(t, 120, cfg.Counters["ms"].Capacity)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, "fps", cfg.Plot.Counter)
	require.NotNil(t, cfg.Plot.HighlightThreshold)
	assert.Equal(t, 16.7, *cfg.Plot.HighlightThreshold)
	assert.True(t, cfg.Plot.Threshold)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Defaults fill what the file left out
	assert.Equal(t, 200, cfg.Plot.Limit)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "perfstats.json", `{
  "capacity": 10,
  "frameWindow": "2s",
  "output": {"format": "csv"}
}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.FrameWindow))
	assert.Equal(t, "csv", cfg.Output.Format)
	require.NotNil(t, cfg.RoundPrecision)
	assert.Equal(t, 3, *cfg.RoundPrecision)
}

func TestLoadConfig_Empty(t *testing.T) {
	path := writeConfig(t, "empty.yaml", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	path := writeConfig(t, "bad.yaml", `
capacity: -1
unknownKey: true
`)

	_, err := LoadConfig(path)
	require.Error(t, err)

	var schemaErrs SchemaErrors
	require.ErrorAs(t, err, &schemaErrs)
	assert.GreaterOrEqual(t, len(schemaErrs), 2)
	assert.Contains(t, err.Error(), "/capacity")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "broken.yaml", "capacity: [1, 2")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestParseConfig_UnknownExtensionIsYAML(t *testing.T) {
	cfg, err := ParseConfig([]byte("capacity: 7\n"), "perfstats.conf")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capacity)
}

func TestParseConfig_BadDuration(t *testing.T) {
	_, err := ParseConfig([]byte("frameWindow: soon\n"), "x.yaml")
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0, cfg.Capacity)
	require.NotNil(t, cfg.RoundPrecision)
	assert.Equal(t, 3, *cfg.RoundPrecision)
	assert.Equal(t, time.Second, time.Duration(cfg.FrameWindow))
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, "ms", cfg.Plot.Counter)
	assert.Equal(t, 80, cfg.Plot.Width)
	assert.Equal(t, 12, cfg.Plot.Height)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestDuration_RoundTrip(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"250ms"`)))
	assert.Equal(t, 250*time.Millisecond, time.Duration(d))

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"250ms"`, string(data))

	assert.Equal(t, time.Minute, Duration(0).GetDuration(time.Minute))
	assert.Equal(t, 250*time.Millisecond, d.GetDuration(time.Minute))
}
