package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/recap/internal/config"
)

func TestStatus_EmptyArchive(t *testing.T) {
	cmd := &StatusCommand{
		globals: &GlobalFlags{},
		cfg:     config.DefaultConfig(),
		store:   newTestStore(t),
	}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Contains(t, output, "Runs:          0")
	assert.Contains(t, output, "Default tier:   classified")
	assert.Contains(t, output, "Retention:      90 days")
	assert.Contains(t, output, "LLM refinement: disabled")
}

func TestStatus_WithRuns(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	seedRun(t, store, now.Add(-48*time.Hour))
	seedRun(t, store, now)

	cmd := &StatusCommand{
		globals: &GlobalFlags{},
		cfg:     config.DefaultConfig(),
		store:   store,
	}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Contains(t, output, "Runs:          2")
	assert.Contains(t, output, "Oldest run:")
	assert.Contains(t, output, "Newest run:")
}

func TestStatus_JSONOutput(t *testing.T) {
	store := newTestStore(t)
	seedRun(t, store, time.Now())

	cmd := &StatusCommand{
		globals: &GlobalFlags{JSON: true},
		cfg:     config.DefaultConfig(),
		store:   store,
	}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &result))
	assert.Equal(t, float64(1), result["total_runs"])

	cfgOut, ok := result["config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "classified", cfgOut["default_tier"])
	assert.Equal(t, float64(90), cfgOut["retention_days"])
}

func TestStatusFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "1.5 MiB", formatBytes(1536*1024))
}

func TestStatusFormatNumber(t *testing.T) {
	assert.Equal(t, "7", formatNumber(7))
	assert.Equal(t, "1,234", formatNumber(1234))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
