package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/visarch/visex/internal/config"
)

func TestConfigDump(t *testing.T) {
	output, err := executeCommand(t, "config", "dump")
	require.NoError(t, err)

	assert.Contains(t, output, "log_level:")
	assert.Contains(t, output, "layout:")
	assert.Contains(t, output, "ocr:")

	// The dump must be parseable YAML.
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(output), &cfg))
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visex.yaml")

	output, err := executeCommand(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, output, path)

	data, err := os.ReadFile(path) //nolint:gosec // G304: test temp path
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "layout")
	assert.Contains(t, raw, "server")
}

func TestConfigPaths(t *testing.T) {
	output, err := executeCommand(t, "config", "paths")
	require.NoError(t, err)
	assert.Contains(t, output, ".")
	assert.Contains(t, output, "/etc/visex")
}
