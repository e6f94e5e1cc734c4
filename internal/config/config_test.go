package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neonland.toml")
	body := `
[simulation]
timestep = 0.02
workers = 2

[enemies]
count = 16

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.02, cfg.Simulation.Timestep)
	require.Equal(t, 2, cfg.Simulation.Workers)
	require.Equal(t, 16, cfg.Enemies.Count)
	require.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	require.Equal(t, float32(20), cfg.Arena.Width)
	require.Equal(t, 20_000, cfg.Simulation.MaxInstanceCount)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[simulation]\ntimestep = 0\n"), 0o644))
	_, err := Load(path)
	require.ErrorContains(t, err, "timestep")

	require.NoError(t, os.WriteFile(path, []byte("[simulation]\nparallel_min_chunk = -1\n"), 0o644))
	_, err = Load(path)
	require.ErrorContains(t, err, "parallel_min_chunk")

	require.NoError(t, os.WriteFile(path, []byte("[simulation\n"), 0o644))
	_, err = Load(path)
	require.ErrorContains(t, err, "parse config")
}
