package math

// Vec3 represents a 3D point or vector.
type Vec3 struct {
	X, Y, Z float64
}

/**
 * @brief A 3x3 matrix stored row-major, used for the linear maps applied to
 * vertex clouds. Points are row vectors and are multiplied from the left.
 */
type Mat3 struct {
	/** @brief The matrix elements */
	Data [9]float64
}

/**
 * @brief An ordered sequence of points sampled from a surface. Clouds are
 * never mutated in place; every transform returns a new cloud.
 */
type VertexCloud []Vec3

// Axis selects one of the three coordinate axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}
