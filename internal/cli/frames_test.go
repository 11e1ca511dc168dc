package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrames_FinalReport(t *testing.T) {
	out, _, err := execute(t, "", "frames",
		"--duration", "150ms", "--fps", "100", "--quiet", "--format", "json", "--clock", "wall")
	require.NoError(t, err)

	report := parseReport(t, out)
	require.NotEmpty(t, report.Counters)

	ms := report.Counters[0]
	assert.Equal(t, "ms", ms.Name)
	assert.Greater(t, ms.Length, 0)
	require.NotNil(t, ms.Mean)
	assert.Greater(t, *ms.Mean, 0.0)
}

func TestFrames_LiveReport(t *testing.T) {
	out, _, err := execute(t, "", "frames",
		"--duration", "150ms", "--fps", "200", "--window", "20ms", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "\tfps:")
	assert.Contains(t, out, "\tms:")
	assert.Contains(t, out, "Elapsed time:")
}

func TestFrames_InvalidFPS(t *testing.T) {
	_, _, err := execute(t, "", "frames", "--fps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--fps must be positive")
}

func TestFrames_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.prom")

	_, _, err := execute(t, "", "frames",
		"--duration", "100ms", "--fps", "100", "--quiet", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `perfstats_counter_length{counter="ms"}`)
}
