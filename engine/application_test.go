package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
name = "demo"
log_level = "debug"
tick_interval_ms = 20
radius_min = 0.1
radius_max = 1.5

[snapshot]
enabled = true
dir = "out"
every = 5
`)
	config, err := ParseApplicationConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "demo", config.Name)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 20*time.Millisecond, config.TickInterval())
	assert.Equal(t, resources.RadiusBounds{Min: 0.1, Max: 1.5}, config.RadiusBounds())
	// Untouched keys keep their defaults.
	assert.Equal(t, uint32(100), config.Resolution)
	assert.Equal(t, 2.0, config.CylinderHeight)
	assert.True(t, config.Snapshot.Enabled)
	assert.Equal(t, "out", config.Snapshot.Dir)
	assert.Equal(t, 512, config.Snapshot.Width)
	assert.Equal(t, uint64(5), config.SnapshotBackendConfig().Every)
}

func TestParseApplicationConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", `colour = "red"`},
		{"bad syntax", `radius_min = `},
		{"inverted bounds", "radius_min = 10\nradius_max = 1"},
		{"zero interval", `tick_interval_ms = 0`},
		{"tiny resolution", `resolution = 1`},
		{"flat cylinder", `cylinder_height = 0.0`},
		{"snapshot without dir", "[snapshot]\nenabled = true\ndir = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseApplicationConfig([]byte(tt.data))
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gyre.toml")
	require.NoError(t, os.WriteFile(path, []byte("resolution = 20\n"), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), config.GeometrySystemConfig().Resolution)

	_, err = LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultApplicationConfigIsValid(t *testing.T) {
	config := DefaultApplicationConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 50*time.Millisecond, config.TickInterval())
	assert.Equal(t, resources.RadiusBounds{Min: 2, Max: 50}, config.RadiusBounds())
}
