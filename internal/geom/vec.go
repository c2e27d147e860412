package geom

import "math"

// Vec is a 2D vector in path coordinates.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec        { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec        { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec  { return Vec{v.X * f, v.Y * f} }
func (v Vec) Norm() float64        { return math.Hypot(v.X, v.Y) }

// Unit returns the unit vector. A zero vector stays zero, so callers never
// divide by a zero magnitude.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return Vec{}
	}
	return Vec{v.X / n, v.Y / n}
}

// Perp returns v rotated a quarter turn counterclockwise, the local path
// normal for a tangent vector.
func (v Vec) Perp() Vec { return Vec{-v.Y, v.X} }

// Angle is the direction of v in radians from the positive x axis.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Lerp interpolates linearly between a and b.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
