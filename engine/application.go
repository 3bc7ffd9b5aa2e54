package engine

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/renderer/snapshot"
	"github.com/spaghettifunk/gyre/engine/resources"
	"github.com/spaghettifunk/gyre/engine/systems"
)

type SnapshotConfig struct {
	Enabled bool    `toml:"enabled"`
	Dir     string  `toml:"dir"`
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	Extent  float64 `toml:"extent"`
	Every   uint64  `toml:"every"`
}

type ApplicationConfig struct {
	// The application name used in logs and frame headers.
	Name string `toml:"name"`
	// One of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// Delay between the end of a tick and the start of the next one.
	TickIntervalMS int64 `toml:"tick_interval_ms"`
	// Samples per parametric direction of a generated solid.
	Resolution uint32 `toml:"resolution"`
	// Closed interval accepted for radii.
	RadiusMin float64 `toml:"radius_min"`
	RadiusMax float64 `toml:"radius_max"`
	// Height of every cylinder.
	CylinderHeight float64 `toml:"cylinder_height"`

	Snapshot SnapshotConfig `toml:"snapshot"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:           "gyre",
		LogLevel:       "info",
		TickIntervalMS: 50,
		Resolution:     systems.DefaultResolution,
		RadiusMin:      2,
		RadiusMax:      50,
		CylinderHeight: systems.DefaultCylinderHeight,
		Snapshot: SnapshotConfig{
			Dir:    "frames",
			Width:  512,
			Height: 512,
			Extent: 50,
			Every:  20,
		},
	}
}

// LoadApplicationConfig decodes the TOML file at path over the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseApplicationConfig(data)
}

// ParseApplicationConfig decodes TOML data over the defaults and validates
// the result. Unknown keys are rejected.
func ParseApplicationConfig(data []byte) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.TickIntervalMS <= 0 {
		return fmt.Errorf("%w: tick_interval_ms must be > 0, got %d", core.ErrInvalidConfig, c.TickIntervalMS)
	}
	if c.Resolution < 2 {
		return fmt.Errorf("%w: resolution must be >= 2, got %d", core.ErrInvalidConfig, c.Resolution)
	}
	if c.RadiusMin > c.RadiusMax {
		return fmt.Errorf("%w: radius_min %g > radius_max %g", core.ErrInvalidConfig, c.RadiusMin, c.RadiusMax)
	}
	if c.CylinderHeight <= 0 {
		return fmt.Errorf("%w: cylinder_height must be > 0, got %g", core.ErrInvalidConfig, c.CylinderHeight)
	}
	if c.Snapshot.Enabled && c.Snapshot.Dir == "" {
		return fmt.Errorf("%w: snapshot.dir is required when snapshots are enabled", core.ErrInvalidConfig)
	}
	return nil
}

func (c *ApplicationConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

func (c *ApplicationConfig) RadiusBounds() resources.RadiusBounds {
	return resources.RadiusBounds{Min: c.RadiusMin, Max: c.RadiusMax}
}

func (c *ApplicationConfig) GeometrySystemConfig() systems.GeometrySystemConfig {
	return systems.GeometrySystemConfig{
		Resolution: c.Resolution,
		Bounds:     c.RadiusBounds(),
	}
}

func (c *ApplicationConfig) SnapshotBackendConfig() snapshot.Config {
	return snapshot.Config{
		Dir:    c.Snapshot.Dir,
		Width:  c.Snapshot.Width,
		Height: c.Snapshot.Height,
		Extent: c.Snapshot.Extent,
		Every:  c.Snapshot.Every,
	}
}
