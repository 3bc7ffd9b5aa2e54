package math

import (
	"fmt"

	"github.com/spaghettifunk/gyre/engine/core"
)

// Apply multiplies every point of cloud by mat and returns the new cloud.
func Apply(cloud VertexCloud, mat Mat3) VertexCloud {
	out := make(VertexCloud, len(cloud))
	for i, p := range cloud {
		out[i] = p.MulMat3(mat)
	}
	return out
}

// RotateY rotates cloud about the Y axis by angleDegrees.
func RotateY(cloud VertexCloud, angleDegrees float64) VertexCloud {
	return Apply(cloud, NewMat3RotationY(angleDegrees))
}

// Reflect mirrors cloud across the plane orthogonal to axis.
func Reflect(cloud VertexCloud, axis Axis) (VertexCloud, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("reflect: %w: %d", core.ErrInvalidAxis, axis)
	}
	return Apply(cloud, NewMat3Reflection(axis)), nil
}

// Project keeps only the axis coordinate of every point.
func Project(cloud VertexCloud, axis Axis) (VertexCloud, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("project: %w: %d", core.ErrInvalidAxis, axis)
	}
	return Apply(cloud, NewMat3Projection(axis)), nil
}

// Complement returns cloud - projected pointwise, so that
// projected + complement reproduces cloud exactly.
func Complement(cloud, projected VertexCloud) (VertexCloud, error) {
	if len(cloud) != len(projected) {
		return nil, fmt.Errorf("complement: %w: %d != %d", core.ErrCloudSizeMismatch, len(cloud), len(projected))
	}
	out := make(VertexCloud, len(cloud))
	for i := range cloud {
		out[i] = cloud[i].Sub(projected[i])
	}
	return out, nil
}

// Decompose projects cloud onto axis and returns the projection together
// with its orthogonal complement.
func Decompose(cloud VertexCloud, axis Axis) (VertexCloud, VertexCloud, error) {
	projected, err := Project(cloud, axis)
	if err != nil {
		return nil, nil, err
	}
	complement, err := Complement(cloud, projected)
	if err != nil {
		return nil, nil, err
	}
	return projected, complement, nil
}
