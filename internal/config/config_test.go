package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")
	want := &Config{DatabasePath: "/tmp/m.db", School: "Blue School", ClassGroup: "6B"}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_RejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("school: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("MATEMAGICA_CONFIG", "/custom/config.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config.yaml", p)
}
