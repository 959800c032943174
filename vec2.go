package geom

import (
	"fmt"
	"math"
)

// Vec2 is a displacement. Unlike [Point] it is unaffected by the translation
// part of a transform; see [AffineTransform.DeltaTransform].
type Vec2 struct {
	X float64
	Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Hypot returns the length of v.
func (v Vec2) Hypot() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the angle in radians from the positive x axis to v.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Mul(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }
