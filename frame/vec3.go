package frame

import (
	"math"
)

// Vec3 is a float64 3D vector used for surface normals
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) MagSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec3) Normalize() Vec3 {
	mag := v.Mag()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// IsZero reports the absent-normal sentinel
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Finite reports whether no component is NaN or infinite
func (v Vec3) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Angle returns the angle between two vectors in radians, 0 if either is zero
func Angle(a, b Vec3) float64 {
	a, b = a.Normalize(), b.Normalize()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	d := a.Dot(b)
	d = max(-1, min(d, 1))
	return math.Acos(d)
}
