package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/devstatd/internal/config"
	"codeberg.org/mutker/devstatd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetArgs strips test binary flags so they do not leak into Load
func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"devstatd"}, args...)
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devstatd.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	resetArgs(t)
	configPath := writeConfigFile(t, `
interval = 3600
startup_delay = 5
log_level = "debug"
telemetry = true
database = "/path/to/readings.db"

[paths]
cycle_count_bins = "/sys/test/cycle_counts_bins"
slowio_read = "/sys/test/slowio_read_cnt"
`)
	t.Setenv("DEVSTATD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3600, cfg.Interval, "Expected Interval 3600")
	assert.Equal(t, 5, cfg.StartupDelay, "Expected StartupDelay 5")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.Telemetry, "Expected Telemetry true")
	assert.Equal(t, "/path/to/readings.db", cfg.Database, "Expected Database /path/to/readings.db")
	assert.Equal(t, "/sys/test/cycle_counts_bins", cfg.Paths.CycleCountBins)
	assert.Equal(t, "/sys/test/slowio_read_cnt", cfg.Paths.SlowioRead)
	// Unset paths keep their defaults
	assert.Equal(t, config.DefaultPaths().CodecState, cfg.Paths.CodecState)
}

func TestLoadDefaults(t *testing.T) {
	resetArgs(t)
	// Point at a nonexistent file so a host config cannot leak in
	t.Setenv("DEVSTATD_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, 86400, cfg.Interval, "Expected default Interval 86400")
	assert.Equal(t, 30, cfg.StartupDelay, "Expected default StartupDelay 30")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel info")
	assert.True(t, cfg.Telemetry, "Expected default Telemetry true")
	assert.Equal(t, config.DefaultPaths(), cfg.Paths)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetArgs(t, "--interval", "7200", "--log-level", "warn")
	configPath := writeConfigFile(t, `
interval = 3600
log_level = "debug"
`)
	t.Setenv("DEVSTATD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7200, cfg.Interval, "Expected flag to override file Interval")
	assert.Equal(t, "warn", cfg.LogLevel, "Expected flag to override file LogLevel")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	resetArgs(t)
	configPath := writeConfigFile(t, `
This is not a valid TOML file
`)
	t.Setenv("DEVSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrReadConfig, errors.CodeOf(err))
}

func TestInvalidLogLevel(t *testing.T) {
	resetArgs(t)
	configPath := writeConfigFile(t, `
log_level = "noisy"
`)
	t.Setenv("DEVSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidLogLevel, errors.CodeOf(err))
}

func TestInvalidInterval(t *testing.T) {
	resetArgs(t)
	configPath := writeConfigFile(t, `
interval = -1
`)
	t.Setenv("DEVSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidInterval, errors.CodeOf(err))
}

func TestTelemetryRequiresDatabase(t *testing.T) {
	resetArgs(t)
	configPath := writeConfigFile(t, `
telemetry = true
database = ""
`)
	t.Setenv("DEVSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidConfig, errors.CodeOf(err))
}
