package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
root: /tmp/vis-plug-test
parallel_limit: 4
operation_timeout: 90s
clone_depth: 1
logging:
  level: debug
  format: json
plugins:
  - source: erf/vis-highlight
  - source: https://github.com/erf/vis-cursors.git
    branch: dev
    alias: cursors
  - source: samuelljc/vis-default-16
    theme: true
`)

	loader := NewLoader(NewValidator())
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/vis-plug-test", cfg.Root)
	assert.Equal(t, 4, cfg.ParallelLimit)
	assert.Equal(t, 90*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 1, cfg.CloneDepth)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	require.Len(t, cfg.Plugins, 3)
	assert.Equal(t, "erf/vis-highlight", cfg.Plugins[0].Source)
	assert.Equal(t, "dev", cfg.Plugins[1].Branch)
	assert.Equal(t, "cursors", cfg.Plugins[1].Alias)
	assert.True(t, cfg.Plugins[2].Theme)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
plugins:
  - source: erf/vis-highlight
`)

	loader := NewLoader(NewValidator())
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Root)
	assert.Equal(t, plugin.DefaultParallelLimit, cfg.ParallelLimit)
	assert.Equal(t, plugin.DefaultOperationTimeout, cfg.OperationTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(NewValidator())
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "plugins: [unclosed")

	loader := NewLoader(NewValidator())
	_, err := loader.Load(path)
	require.Error(t, err)
}

func TestLoadValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "plugin without source",
			content: `
plugins:
  - alias: cursors
`,
		},
		{
			name: "parallel limit out of range",
			content: `
parallel_limit: 1024
plugins:
  - source: erf/vis-highlight
`,
		},
		{
			name: "unknown log level",
			content: `
logging:
  level: loud
plugins:
  - source: erf/vis-highlight
`,
		},
	}

	loader := NewLoader(NewValidator())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := loader.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation")
		})
	}
}

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	loader := NewLoader(NewValidator())
	cfg, err := loader.LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Plugins)
	assert.Equal(t, plugin.DefaultParallelLimit, cfg.ParallelLimit)
}

func TestLoadWithDefaultsExistingInvalidFile(t *testing.T) {
	path := writeConfig(t, "plugins: [unclosed")

	loader := NewLoader(NewValidator())
	_, err := loader.LoadWithDefaults(path)
	require.Error(t, err)
}

func TestDefaultRoot(t *testing.T) {
	t.Setenv(EnvRoot, "/opt/vis-plug")
	assert.Equal(t, "/opt/vis-plug", DefaultRoot())

	t.Setenv(EnvRoot, "")
	t.Setenv(EnvCacheHome, "/var/cache")
	assert.Equal(t, filepath.Join("/var/cache", "vis-plug"), DefaultRoot())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(EnvConfigHome, "/etc/xdg")
	assert.Equal(t, filepath.Join("/etc/xdg", "vis-plug", "config.yaml"), DefaultConfigPath())
}
