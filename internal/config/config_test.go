package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsBlueprintYML(t *testing.T) {
	dir := t.TempDir()
	body := []byte("provider: offline\nmodel: gemini-2.0-flash\ntimeoutSeconds: 45\nmaxParallel: 2\ndataDir: /tmp/bp\nverbose: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprint.yml"), body, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "offline", cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 45, cfg.TimeoutSeconds)
	assert.Equal(t, 2, cfg.MaxParallel)
	assert.Equal(t, "/tmp/bp", cfg.DataDir)
	assert.True(t, cfg.Verbose)
}

func TestLoadPrefersYMLOverYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprint.yml"), []byte("provider: offline\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprint.yaml"), []byte("provider: gemini\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "offline", cfg.Provider)
}

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blueprint.yml"), []byte("provider: [broken\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
