package math

import m "math"

// CloudEqual reports whether a and b have the same length and every pair of
// points differs by at most tolerance on each coordinate.
func CloudEqual(a, b VertexCloud, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Compare(b[i], tolerance) {
			return false
		}
	}
	return true
}

// CloudAdd sums two clouds pointwise. Clouds of different sizes are summed
// up to the shorter length.
func CloudAdd(a, b VertexCloud) VertexCloud {
	n := min(len(a), len(b))
	out := make(VertexCloud, n)
	for i := 0; i < n; i++ {
		out[i] = a[i].Add(b[i])
	}
	return out
}

// CloudExtents returns the axis-aligned bounding box of cloud. An empty
// cloud yields zero extents.
func CloudExtents(cloud VertexCloud) Extents3D {
	if len(cloud) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{
		Min: Vec3{m.Inf(1), m.Inf(1), m.Inf(1)},
		Max: Vec3{m.Inf(-1), m.Inf(-1), m.Inf(-1)},
	}
	for _, p := range cloud {
		ext.Min.X = m.Min(ext.Min.X, p.X)
		ext.Min.Y = m.Min(ext.Min.Y, p.Y)
		ext.Min.Z = m.Min(ext.Min.Z, p.Z)
		ext.Max.X = m.Max(ext.Max.X, p.X)
		ext.Max.Y = m.Max(ext.Max.Y, p.Y)
		ext.Max.Z = m.Max(ext.Max.Z, p.Z)
	}
	return ext
}
