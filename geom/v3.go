// Package geom provides the geometric primitives used throughout the
// instrument model: three-vectors, unit quaternions, and rigid-body affine
// transforms.
package geom

import "math"

// V3 is a three-component double-precision vector.
type V3 struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = V3{}

// Add returns v+other.
func (v V3) Add(other V3) V3 {
	return V3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v-other.
func (v V3) Sub(other V3) V3 {
	return V3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v V3) Scale(s float64) V3 {
	return V3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and other.
func (v V3) Dot(other V3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v V3) Cross(other V3) V3 {
	return V3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length of v.
func (v V3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. Returns the zero vector if v
// is itself the zero vector.
func (v V3) Normalize() V3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b V3) float64 {
	return a.Sub(b).Norm()
}

// Mean returns the component-wise mean of vs. Returns the zero vector for
// an empty input.
func Mean(vs []V3) V3 {
	if len(vs) == 0 {
		return V3{}
	}
	var sum V3
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(vs)))
}

// ApproxEqual reports whether a and b are within tol of each other in each
// component.
func ApproxEqual(a, b V3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}
