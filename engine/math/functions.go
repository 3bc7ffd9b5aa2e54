package math

import (
	m "math"
	"strings"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float64 = m.Pi
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float64 = 2.0 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / K_PI
	/** @brief Default tolerance for comparing points produced by trigonometric maps. */
	K_FLOAT_EPSILON float64 = 1e-9
)

func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// ------------------------------------------
// Axis
// ------------------------------------------

func (a Axis) Valid() bool {
	return a <= AxisZ
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// ParseAxis maps "x", "y" or "z" to an Axis, ignoring case.
func ParseAxis(s string) (Axis, bool) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	case "z":
		return AxisZ, true
	}
	return 0, false
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

/**
 * Subtracts other from v and returns a copy of the result.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) MulScalar(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

// Component returns the coordinate on axis.
func (v Vec3) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

/**
 * @brief Compares all elements of v and other and ensures the difference is
 * less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	if m.Abs(v.X-other.X) > tolerance {
		return false
	}
	if m.Abs(v.Y-other.Y) > tolerance {
		return false
	}
	if m.Abs(v.Z-other.Z) > tolerance {
		return false
	}
	return true
}

// MulMat3 returns the row vector v multiplied by mat (v · mat).
func (v Vec3) MulMat3(mat Mat3) Vec3 {
	d := mat.Data
	return Vec3{
		X: v.X*d[0] + v.Y*d[3] + v.Z*d[6],
		Y: v.X*d[1] + v.Y*d[4] + v.Z*d[7],
		Z: v.X*d[2] + v.Y*d[5] + v.Z*d[8],
	}
}

// ------------------------------------------
// Matrix 3
// ------------------------------------------

func NewMat3Identity() Mat3 {
	return NewMat3Diagonal(1, 1, 1)
}

func NewMat3Diagonal(x, y, z float64) Mat3 {
	return Mat3{Data: [9]float64{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}}
}

/**
 * @brief Creates a rotation about the Y axis for the row-vector convention:
 *
 *	[ cosθ  0  sinθ ]
 *	[  0    1   0   ]
 *	[ -sinθ 0  cosθ ]
 *
 * @param angleDegrees The rotation angle in degrees.
 */
func NewMat3RotationY(angleDegrees float64) Mat3 {
	s, c := m.Sincos(DegToRad(angleDegrees))
	return Mat3{Data: [9]float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}}
}

// NewMat3Reflection negates the coordinate on axis.
func NewMat3Reflection(axis Axis) Mat3 {
	switch axis {
	case AxisX:
		return NewMat3Diagonal(-1, 1, 1)
	case AxisY:
		return NewMat3Diagonal(1, -1, 1)
	default:
		return NewMat3Diagonal(1, 1, -1)
	}
}

// NewMat3Projection keeps the coordinate on axis and zeroes the other two.
func NewMat3Projection(axis Axis) Mat3 {
	switch axis {
	case AxisX:
		return NewMat3Diagonal(1, 0, 0)
	case AxisY:
		return NewMat3Diagonal(0, 1, 0)
	default:
		return NewMat3Diagonal(0, 0, 1)
	}
}

// Mul returns mat · other.
func (mat Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += mat.Data[row*3+k] * other.Data[k*3+col]
			}
			out.Data[row*3+col] = sum
		}
	}
	return out
}

func (mat Mat3) Compare(other Mat3, tolerance float64) bool {
	for i := range mat.Data {
		if m.Abs(mat.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}
