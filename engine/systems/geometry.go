package systems

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/resources"
)

const (
	DefaultResolution     uint32  = 100
	DefaultCylinderHeight float64 = 2.0
)

type GeometrySystemConfig struct {
	// Samples per parametric direction; a cloud has Resolution² points.
	Resolution uint32
	// Closed interval accepted for radii.
	Bounds resources.RadiusBounds
}

// GeometrySystem samples vertex clouds for the supported solids. It holds
// configuration only; Generate has no side effects.
type GeometrySystem struct {
	config GeometrySystemConfig
}

func NewGeometrySystem(config GeometrySystemConfig) (*GeometrySystem, error) {
	if config.Resolution < 2 {
		err := fmt.Errorf("func NewGeometrySystem - config.Resolution must be >= 2: %w", core.ErrInvalidConfig)
		core.LogWarn(err.Error())
		return nil, err
	}
	if config.Bounds.Min > config.Bounds.Max {
		err := fmt.Errorf("func NewGeometrySystem - radius bounds [%g, %g] are inverted: %w", config.Bounds.Min, config.Bounds.Max, core.ErrInvalidConfig)
		core.LogWarn(err.Error())
		return nil, err
	}
	return &GeometrySystem{config: config}, nil
}

func (gs *GeometrySystem) Resolution() uint32 {
	return gs.config.Resolution
}

func (gs *GeometrySystem) Bounds() resources.RadiusBounds {
	return gs.config.Bounds
}

// SetBounds replaces the accepted radius interval.
func (gs *GeometrySystem) SetBounds(bounds resources.RadiusBounds) {
	gs.config.Bounds = bounds
}

/**
 * @brief Generates the vertex cloud of solid on a Resolution x Resolution grid.
 *
 * @param solid The solid to sample. Its radius must lie within the configured bounds.
 * @return The sampled cloud, or an error if the radius or kind is invalid.
 */
func (gs *GeometrySystem) Generate(solid resources.Solid) (math.VertexCloud, error) {
	if err := gs.config.Bounds.Validate(solid.Radius); err != nil {
		return nil, err
	}
	switch solid.Kind {
	case resources.SolidKindSphere:
		return gs.generateSphere(solid.Radius), nil
	case resources.SolidKindCylinder:
		return gs.generateCylinder(solid.Radius, solid.Height), nil
	}
	return nil, fmt.Errorf("generate: %w: %s", core.ErrUnknownSolid, solid.Kind)
}

// (u, v) in [0, 2π] x [0, π]; point index i*n + j for u_i, v_j.
func (gs *GeometrySystem) generateSphere(radius float64) math.VertexCloud {
	n := int(gs.config.Resolution)
	us := math.Linspace(0, math.K_PI_2, n)
	vs := math.Linspace(0, math.K_PI, n)

	cloud := make(math.VertexCloud, 0, n*n)
	for _, u := range us {
		sinU, cosU := m.Sincos(u)
		for _, v := range vs {
			sinV, cosV := m.Sincos(v)
			cloud = append(cloud, math.NewVec3(
				radius*cosU*sinV,
				radius*sinU*sinV,
				radius*cosV,
			))
		}
	}
	return cloud
}

// (θ, z) in [0, 2π] x [-h/2, h/2]; point index i*n + j for z_i, θ_j.
func (gs *GeometrySystem) generateCylinder(radius, height float64) math.VertexCloud {
	if height == 0 {
		height = DefaultCylinderHeight
	}
	n := int(gs.config.Resolution)
	thetas := math.Linspace(0, math.K_PI_2, n)
	zs := math.Linspace(-height/2, height/2, n)

	cloud := make(math.VertexCloud, 0, n*n)
	for _, z := range zs {
		for _, theta := range thetas {
			sinT, cosT := m.Sincos(theta)
			cloud = append(cloud, math.NewVec3(radius*cosT, radius*sinT, z))
		}
	}
	return cloud
}
