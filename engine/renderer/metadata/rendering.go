package metadata

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/resources"
)

/** @brief The role a cloud plays in a frame; adapters pick colours by role. */
type LayerRole uint8

const (
	/** @brief The rotated (and possibly reflected) solid. */
	LayerRolePrimary LayerRole = iota
	/** @brief The projection of the rotated solid onto an axis. */
	LayerRoleProjected
	/** @brief The orthogonal complement of the projection. */
	LayerRoleComplement
)

func (r LayerRole) String() string {
	switch r {
	case LayerRolePrimary:
		return "primary"
	case LayerRoleProjected:
		return "projected"
	case LayerRoleComplement:
		return "complement"
	}
	return "unknown"
}

// DefaultColour is the colour adapters use for a role when they have no
// palette of their own.
func (r LayerRole) DefaultColour() color.RGBA {
	switch r {
	case LayerRoleProjected:
		return color.RGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
	case LayerRoleComplement:
		return color.RGBA{R: 0x2E, G: 0xCC, B: 0x71, A: 0xFF}
	default:
		return color.RGBA{R: 0x4A, G: 0x90, B: 0xD9, A: 0xFF}
	}
}

/**
 * @brief A single cloud to draw.
 */
type Layer struct {
	Role  LayerRole
	Cloud math.VertexCloud
}

/**
 * @brief Everything an adapter needs to draw one frame. An empty Layers
 * slice means the scene has nothing to show and the view should be cleared.
 */
type RenderPacket struct {
	/** @brief Unique identifier of this frame. */
	FrameID uuid.UUID
	/** @brief The scene session that produced the frame. */
	SceneID uuid.UUID
	/** @brief Rotation angle in degrees at the time of the frame. */
	Angle int64
	/** @brief The solid drawn; zero value when nothing is selected. */
	Solid resources.Solid
	/** @brief The transformation applied after the rotation. */
	Transformation resources.TransformationChoice
	/** @brief The clouds to draw, primary first. */
	Layers []Layer
}

// Layer returns the first layer with the given role.
func (p *RenderPacket) Layer(role LayerRole) (Layer, bool) {
	for _, l := range p.Layers {
		if l.Role == role {
			return l, true
		}
	}
	return Layer{}, false
}

func (p *RenderPacket) IsEmpty() bool {
	return len(p.Layers) == 0
}
