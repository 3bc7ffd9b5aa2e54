package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Linspace returns n evenly spaced samples over [start, stop], both
// endpoints included. n == 1 yields {start}.
func Linspace[T constraints.Float](start, stop T, n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / T(n-1)
	for i := 0; i < n; i++ {
		out[i] = start + T(i)*step
	}
	// Avoid accumulated rounding on the last sample.
	out[n-1] = stop
	return out
}
