package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	viper.Reset()
	return NewLoader()
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	loader := newTestLoader()

	cfg, err := loader.Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaults.OCR.Resolution, cfg.OCR.Resolution)
	assert.Equal(t, defaults.Layout.Caption.Offset, cfg.Layout.Caption.Offset)
	assert.Empty(t, loader.GetConfigFileUsed())
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "visex.yaml")
	content := `
log_level: debug
layout:
  caption:
    offset:
      distance: 8
      unit: mm
    direction: up
ocr:
  resolution: 300
output:
  format: csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := newTestLoader()
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8.0, cfg.Layout.Caption.Offset.Distance)
	assert.Equal(t, "up", cfg.Layout.Caption.Direction)
	assert.Equal(t, 300, cfg.OCR.Resolution)
	assert.Equal(t, "csv", cfg.Output.Format)
	// Values the file omits keep their defaults.
	assert.Equal(t, DefaultConfig().OCR.Resize, cfg.OCR.Resize)
}

func TestLoadWithFileRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "visex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ocr:\n  resize: 50000\n"), 0o600))

	loader := newTestLoader()
	_, err := loader.LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr.resize")
}

func TestLoadWithMissingFile(t *testing.T) {
	loader := newTestLoader()
	_, err := loader.LoadWithFile("/nonexistent/visex.yaml")
	require.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VISEX_LOG_LEVEL", "warn")

	loader := newTestLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	viper.Reset()

	require.NoError(t, GenerateDefaultConfigFile("generated.yaml"))

	loader := newTestLoader()
	cfg, err := loader.LoadWithFile("generated.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().OCR.Resolution, cfg.OCR.Resolution)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/visex")
}
