package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultFileOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plc-dashboard.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Normalize.SynthesizedBitCount)
	assert.Contains(t, cfg.Normalize.ChannelSuffixes, "_BC")
	assert.FileExists(t, path)

	// Loading the generated file round-trips the defaults
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, again.Server)
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plc-dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9999\nsimulator:\n  enabled: false\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.False(t, cfg.Simulator.Enabled)
	// Unset sections keep their defaults
	assert.Equal(t, "./data", cfg.Storage.DataDirectory)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plc-dashboard.yaml")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_FILE", "/tmp/override.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Storage.DatabaseFile)
}

func TestGetServerAddr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "0.0.0.0:8090", cfg.GetServerAddr())
}
