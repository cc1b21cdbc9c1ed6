package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Namespace, cfg.Namespace)
	assert.Equal(t, Default().Variant, cfg.Variant)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lakeup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: dremio\nnamespace: analytics\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VariantDremio, cfg.Variant)
	assert.Equal(t, "analytics", cfg.Namespace)
	// Fields the file omits keep their defaults.
	assert.Equal(t, Default().Buckets, cfg.Buckets)
	assert.Equal(t, Default().ComputeUser, cfg.ComputeUser)
	assert.NotNil(t, cfg.Timeouts)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lakeup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: full\nnamespaec: typo\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lakeup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: nonsense\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lakeup.yaml")
	cfg := Default()
	cfg.Variant = VariantFull
	cfg.Buckets = []string{"bronze", "silver", "gold"}

	require.NoError(t, Write(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VariantFull, loaded.Variant)
	assert.Equal(t, []string{"bronze", "silver", "gold"}, loaded.Buckets)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("LAKEUP_READY_INTERVAL", "250ms")
	t.Setenv("LAKEUP_RELEASE_INSTALL_TIMEOUT", "garbage")

	timeouts := LoadTimeouts()
	assert.Equal(t, "250ms", timeouts.ReadyInterval.String())
	// Invalid values fall back to the default.
	assert.Equal(t, "10m0s", timeouts.ReleaseInstall.String())
}
