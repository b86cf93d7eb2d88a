package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Storage.Type)
	assert.True(t, cfg.SeedDemo)

	base, err := cfg.API.ResolvedBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", base)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`api:
  base_url: https://learn.example.com/api/
  timeout: 3s
storage:
  type: memory
log:
  mode: debug
seed_demo: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "debug", cfg.Log.Mode)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.SeedDemo)

	base, err := cfg.API.ResolvedBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://learn.example.com/api", base)
}

func TestLoadConfigRejectsUnknownStorage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  type: floppy\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
