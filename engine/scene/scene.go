// Package scene holds the single mutable source of truth of the process:
// the selected solid, the transformation applied after the rotation and
// the animation state. A Scene is not safe for concurrent use; it is only
// touched from the engine's event loop.
package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/renderer/metadata"
	"github.com/spaghettifunk/gyre/engine/resources"
)

// Generator produces the base vertex cloud of a solid.
type Generator interface {
	Generate(solid resources.Solid) (math.VertexCloud, error)
}

// AnimationState is the rotation accumulator. Angle is in degrees and is
// never wrapped.
type AnimationState struct {
	Angle   int64
	Running bool
}

type Scene struct {
	id             uuid.UUID
	bounds         resources.RadiusBounds
	cylinderHeight float64

	solid     resources.Solid
	hasSolid  bool
	choice    resources.TransformationChoice
	animation AnimationState
}

func New(bounds resources.RadiusBounds, cylinderHeight float64) *Scene {
	return &Scene{
		id:             uuid.New(),
		bounds:         bounds,
		cylinderHeight: cylinderHeight,
		choice:         resources.NoTransformation(),
	}
}

func (s *Scene) ID() uuid.UUID {
	return s.id
}

func (s *Scene) Bounds() resources.RadiusBounds {
	return s.bounds
}

// SetBounds replaces the radius interval used by later selections. The
// current solid is kept even if it now falls outside.
func (s *Scene) SetBounds(bounds resources.RadiusBounds) {
	s.bounds = bounds
}

func (s *Scene) SetCylinderHeight(height float64) {
	s.cylinderHeight = height
}

// Solid returns the current solid and whether one is selected.
func (s *Scene) Solid() (resources.Solid, bool) {
	return s.solid, s.hasSolid
}

func (s *Scene) Choice() resources.TransformationChoice {
	return s.choice
}

func (s *Scene) Animation() AnimationState {
	return s.animation
}

func (s *Scene) Angle() int64 {
	return s.animation.Angle
}

func (s *Scene) Running() bool {
	return s.animation.Running
}

func (s *Scene) SetRunning(running bool) {
	s.animation.Running = running
}

// Advance adds step degrees to the angle and returns the new value.
func (s *Scene) Advance(step int64) int64 {
	s.animation.Angle += step
	return s.animation.Angle
}

/**
 * @brief Selects a new solid. The radius is validated before anything is
 * touched; on success the angle resets to 0 and the transformation to None.
 */
func (s *Scene) SelectSolid(kind resources.SolidKind, radius float64) error {
	if err := s.bounds.Validate(radius); err != nil {
		return err
	}
	if kind != resources.SolidKindSphere && kind != resources.SolidKindCylinder {
		return fmt.Errorf("select solid: %w: %s", core.ErrUnknownSolid, kind)
	}

	solid := resources.Solid{Kind: kind, Radius: radius}
	if kind == resources.SolidKindCylinder {
		solid.Height = s.cylinderHeight
	}
	s.solid = solid
	s.hasSolid = true
	s.animation.Angle = 0
	s.choice = resources.NoTransformation()
	return nil
}

// SelectTransformation sets the choice. Angle and running are untouched.
func (s *Scene) SelectTransformation(choice resources.TransformationChoice) error {
	if err := choice.Validate(); err != nil {
		return err
	}
	s.choice = choice
	return nil
}

// ValidateSolid re-checks the current solid against the current bounds.
// With no solid selected there is nothing to check.
func (s *Scene) ValidateSolid() error {
	if !s.hasSolid {
		return nil
	}
	return s.bounds.Validate(s.solid.Radius)
}

// Clear unsets the solid and resets the transformation and animation.
func (s *Scene) Clear() {
	s.solid = resources.Solid{}
	s.hasSolid = false
	s.choice = resources.NoTransformation()
	s.animation = AnimationState{}
}

/**
 * @brief Computes the frame for the current state:
 * the base cloud is generated, rotated by the angle, then reflected or
 * decomposed into projection and complement. Nothing is cached.
 *
 * @return ErrNoSolidSelected when there is nothing to draw.
 */
func (s *Scene) Compose(generator Generator) (*metadata.RenderPacket, error) {
	if !s.hasSolid {
		return nil, core.ErrNoSolidSelected
	}

	base, err := generator.Generate(s.solid)
	if err != nil {
		return nil, err
	}
	rotated := math.RotateY(base, float64(s.animation.Angle))

	layers, err := ApplyTransformation(rotated, s.choice)
	if err != nil {
		return nil, err
	}

	return &metadata.RenderPacket{
		FrameID:        uuid.New(),
		SceneID:        s.id,
		Angle:          s.animation.Angle,
		Solid:          s.solid,
		Transformation: s.choice,
		Layers:         layers,
	}, nil
}

// EmptyPacket is the frame for a scene with nothing selected.
func (s *Scene) EmptyPacket() *metadata.RenderPacket {
	return &metadata.RenderPacket{
		FrameID:        uuid.New(),
		SceneID:        s.id,
		Angle:          s.animation.Angle,
		Transformation: s.choice,
	}
}

// ApplyTransformation maps an already rotated cloud through choice and
// returns the layers to draw.
func ApplyTransformation(rotated math.VertexCloud, choice resources.TransformationChoice) ([]metadata.Layer, error) {
	switch choice.Kind {
	case resources.TransformationNone:
		return []metadata.Layer{{Role: metadata.LayerRolePrimary, Cloud: rotated}}, nil

	case resources.TransformationReflect:
		reflected, err := math.Reflect(rotated, choice.Axis)
		if err != nil {
			return nil, err
		}
		return []metadata.Layer{{Role: metadata.LayerRolePrimary, Cloud: reflected}}, nil

	case resources.TransformationProject:
		projected, complement, err := math.Decompose(rotated, choice.Axis)
		if err != nil {
			return nil, err
		}
		return []metadata.Layer{
			{Role: metadata.LayerRolePrimary, Cloud: rotated},
			{Role: metadata.LayerRoleProjected, Cloud: projected},
			{Role: metadata.LayerRoleComplement, Cloud: complement},
		}, nil
	}
	return nil, fmt.Errorf("%w: %d", core.ErrUnknownTransformation, choice.Kind)
}
