// Package math provides the small vector toolkit used for spherical mesh geometry.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Zero is the origin.
var Zero = Vec3{}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / scalar.
func (v Vec3) Div(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude.
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSquared())))
}

// Normalize returns a unit vector. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Div(l)
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return other.Sub(v).Length()
}

// Array returns the components as a fixed array, the layout used by vertex buffers.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Lerp linearly interpolates between v0 (t=0) and v1 (t=1).
func Lerp(v0, v1 Vec3, t float32) Vec3 {
	return v0.Scale(1 - t).Add(v1.Scale(t))
}

// Slerp interpolates along the great circle between v0 and v1.
// Both vectors are expected to have the same length; the result keeps it.
func Slerp(v0, v1 Vec3, t float32) Vec3 {
	l0, l1 := v0.Length(), v1.Length()
	if l0 == 0 || l1 == 0 {
		return Lerp(v0, v1, t)
	}
	cos := float64(v0.Dot(v1) / (l0 * l1))
	cos = math.Max(-1, math.Min(1, cos))
	omega := math.Acos(cos)
	sin := math.Sin(omega)
	if sin < 1e-6 {
		return Lerp(v0, v1, t)
	}
	a := float32(math.Sin((1-float64(t))*omega) / sin)
	b := float32(math.Sin(float64(t)*omega) / sin)
	return v0.Scale(a).Add(v1.Scale(b))
}

// SortedPair returns (a, b) ordered so the first value is the smaller one.
func SortedPair(a, b uint32) (uint32, uint32) {
	if a <= b {
		return a, b
	}
	return b, a
}
