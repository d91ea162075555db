package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
format: json-pretty
delimiter: ";"
trim_header: true

log:
  level: debug
  format: json

sql:
  schema: staging
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "json-pretty", cfg.Format)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.True(t, cfg.TrimHeader)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "staging", cfg.SQL.Schema)
	assert.Empty(t, cfg.Compression)
}

func TestLoadDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("compression: gzip\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "gzip", cfg.Compression)
	assert.Equal(t, "default", cfg.Format)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "public", cfg.SQL.Schema)

	empty, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), empty)
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	bad := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("delimiter: \"||\"\nlog:\n  level: loud\n"), 0644))

	_, err := Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimiter")
	assert.Contains(t, err.Error(), "unknown log level")

	broken := filepath.Join(tmpDir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("format: [\n"), 0644))

	_, err = Load(broken)
	assert.Error(t, err)

	_, err = Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}
