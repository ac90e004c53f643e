package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// chdirTemp changes into a fresh temporary directory for the duration of the
// test, restoring the original working directory on cleanup.
func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}

// The loader works on the global viper instance so that cobra flag bindings
// take effect; tests must reset it between runs.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoader_LoadDefaults(t *testing.T) {
	resetViper(t)
	chdirTemp(t) // no config file in scope

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_LoadWithFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "salient.yaml")
	data := []byte(`log_level: debug
detector:
  epsilon: 0.5
  policy: disjunctive
  workers: 2
output:
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.5, cfg.Detector.Epsilon)
	assert.Equal(t, "disjunctive", cfg.Detector.Policy)
	assert.Equal(t, 2, cfg.Detector.Workers)
	assert.Equal(t, "json", cfg.Output.Format)
	// Unset keys keep their defaults.
	assert.Equal(t, 1.0, cfg.Detector.Scaling)
	assert.Equal(t, path, loader.GetConfigFileUsed())
}

func TestLoader_YAMLRoundTrip(t *testing.T) {
	resetViper(t)

	want := DefaultConfig()
	want.LogLevel = "error"
	want.Detector.Epsilon = 2.0
	want.Detector.Side = 32
	want.Output.Mask = "mask.png"

	data, err := yaml.Marshal(want)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "salient.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_LoadWithMissingFile(t *testing.T) {
	resetViper(t)

	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoader_LoadWithInvalidValues(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "salient.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detector:\n  policy: both\n"), 0o600))

	_, err := NewLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	resetViper(t)
	chdirTemp(t)
	t.Setenv("SALIENT_DETECTOR_EPSILON", "2.5")
	t.Setenv("SALIENT_LOG_LEVEL", "warn")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Detector.Epsilon)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/salient")
}
