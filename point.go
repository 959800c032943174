package geom

import (
	"fmt"
	"math"
)

// Point is a location in user space. Transforms move points by their
// translation; they do not move a [Vec2].
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(v Vec2) Point {
	return Point{X: pt.X + v.X, Y: pt.Y + v.Y}
}

// Sub returns the displacement from o to pt.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{X: pt.X - o.X, Y: pt.Y - o.Y}
}

// Reflect mirrors pt through c. SVG's smooth curve commands derive their
// first control point this way.
func (pt Point) Reflect(c Point) Point {
	return Point{X: 2*c.X - pt.X, Y: 2*c.Y - pt.Y}
}

func (pt Point) Distance(o Point) float64 {
	return pt.Sub(o).Hypot()
}

// Transform returns pt mapped by t. A nil transform is the identity.
func (pt Point) Transform(t *AffineTransform) Point {
	if t == nil {
		return pt
	}
	return t.TransformPoint(pt)
}

// IsFinite reports whether both coordinates are neither infinite nor NaN.
func (pt Point) IsFinite() bool {
	return !math.IsInf(pt.X, 0) && !math.IsInf(pt.Y, 0) &&
		!math.IsNaN(pt.X) && !math.IsNaN(pt.Y)
}
