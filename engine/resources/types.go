package resources

import (
	"fmt"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
)

type SolidKind uint8

/** @brief Supported solids. */
const (
	/** @brief No solid selected. */
	SolidKindNone SolidKind = iota
	/** @brief Sphere centred at the origin. */
	SolidKindSphere
	/** @brief Cylinder around the Z axis, centred at the origin. */
	SolidKindCylinder
)

func (k SolidKind) String() string {
	switch k {
	case SolidKindNone:
		return "none"
	case SolidKindSphere:
		return "sphere"
	case SolidKindCylinder:
		return "cylinder"
	}
	return fmt.Sprintf("solid(%d)", uint8(k))
}

// ParseSolidKind maps "sphere" or "cylinder" to a SolidKind.
func ParseSolidKind(s string) (SolidKind, error) {
	switch s {
	case "sphere":
		return SolidKindSphere, nil
	case "cylinder":
		return SolidKindCylinder, nil
	}
	return SolidKindNone, fmt.Errorf("%w: %q", core.ErrUnknownSolid, s)
}

/**
 * @brief A solid and its size. Height is only meaningful for cylinders.
 */
type Solid struct {
	/** @brief The kind of solid. */
	Kind SolidKind
	/** @brief The radius of the sphere or cylinder. */
	Radius float64
	/** @brief The cylinder height, centred on z=0. */
	Height float64
}

func (s Solid) String() string {
	if s.Kind == SolidKindCylinder {
		return fmt.Sprintf("%s(r=%g, h=%g)", s.Kind, s.Radius, s.Height)
	}
	return fmt.Sprintf("%s(r=%g)", s.Kind, s.Radius)
}

/**
 * @brief The closed interval a radius must fall in.
 */
type RadiusBounds struct {
	Min float64
	Max float64
}

// Validate returns an *core.InvalidRadiusError when radius lies outside
// [Min, Max]. NaN is always rejected.
func (b RadiusBounds) Validate(radius float64) error {
	if !(radius >= b.Min && radius <= b.Max) {
		return &core.InvalidRadiusError{Radius: radius, Min: b.Min, Max: b.Max}
	}
	return nil
}

type TransformationKind uint8

const (
	TransformationNone TransformationKind = iota
	TransformationReflect
	TransformationProject
)

func (k TransformationKind) String() string {
	switch k {
	case TransformationNone:
		return "none"
	case TransformationReflect:
		return "reflect"
	case TransformationProject:
		return "project"
	}
	return fmt.Sprintf("transformation(%d)", uint8(k))
}

// ParseTransformationKind maps "none", "reflect" or "project" to a kind.
func ParseTransformationKind(s string) (TransformationKind, error) {
	switch s {
	case "none":
		return TransformationNone, nil
	case "reflect":
		return TransformationReflect, nil
	case "project":
		return TransformationProject, nil
	}
	return TransformationNone, fmt.Errorf("%w: %q", core.ErrUnknownTransformation, s)
}

/**
 * @brief The linear map applied after the rotation. Axis is ignored for
 * TransformationNone.
 */
type TransformationChoice struct {
	Kind TransformationKind
	Axis math.Axis
}

func NoTransformation() TransformationChoice {
	return TransformationChoice{Kind: TransformationNone}
}

func Reflection(axis math.Axis) TransformationChoice {
	return TransformationChoice{Kind: TransformationReflect, Axis: axis}
}

func Projection(axis math.Axis) TransformationChoice {
	return TransformationChoice{Kind: TransformationProject, Axis: axis}
}

// Validate checks the kind and, for reflect and project, the axis.
func (c TransformationChoice) Validate() error {
	switch c.Kind {
	case TransformationNone:
		return nil
	case TransformationReflect, TransformationProject:
		if !c.Axis.Valid() {
			return fmt.Errorf("%s: %w: %d", c.Kind, core.ErrInvalidAxis, c.Axis)
		}
		return nil
	}
	return fmt.Errorf("%w: %d", core.ErrUnknownTransformation, c.Kind)
}

func (c TransformationChoice) String() string {
	if c.Kind == TransformationNone {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Axis)
}
