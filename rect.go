package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned box from (X0, Y0) to (X1, Y1). Methods that treat
// it as a region expect X0 <= X1 and Y0 <= Y1; [Rect.Abs] restores that
// ordering.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect returns the box with corner (x, y), width w and height h, in the
// x, y, w, h form that [Path2D.ContainsRect] and [Path2D.Intersects] use.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// NewRectFromPoints returns the smallest box with p0 and p1 as corners.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs swaps corner coordinates as needed so that width and height are not
// negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1), Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1), Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Width is X1 − X0, which is negative for an unordered box.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height is Y1 − Y0, which is negative for an unordered box.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

func (r Rect) Center() Point {
	return Point{X: 0.5 * (r.X0 + r.X1), Y: 0.5 * (r.Y0 + r.Y1)}
}

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// IsFinite reports whether every coordinate of r is a finite number.
func (r Rect) IsFinite() bool {
	for _, v := range [...]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Contains reports whether pt lies in r. Points on the low edges are
// inside, points on the high edges are not.
func (r Rect) Contains(pt Point) bool {
	return r.X0 <= pt.X && pt.X < r.X1 && r.Y0 <= pt.Y && pt.Y < r.Y1
}

// ContainsRect reports whether the non-empty box o lies within r.
func (r Rect) ContainsRect(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X0 <= o.X0 && r.Y0 <= o.Y0 && o.X1 <= r.X1 && o.Y1 <= r.Y1
}

// Intersects reports whether r and o overlap in a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X0 < o.X1 && r.Y0 < o.Y1 && o.X0 < r.X1 && o.Y0 < r.Y1
}

// touches is Intersects with closed edges, and it accepts degenerate boxes.
// The crossing routines prune with it and decide edge cases themselves.
func (r Rect) touches(o Rect) bool {
	return r.X0 <= o.X1 && r.Y0 <= o.Y1 && o.X0 <= r.X1 && o.Y0 <= r.Y1
}

// Union returns the smallest box enclosing both ordered boxes r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0), Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1), Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint grows r to include pt. Starting from a zero-size box at the
// first point, repeated calls give the bounds of a point set.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X), Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X), Y1: max(r.Y1, pt.Y),
	}
}

// Intersect returns the overlap of r and o. Disjoint boxes yield a
// zero-size box, never an unordered one.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X0, o.X0), max(r.Y0, o.Y0)
	x1, y1 := min(r.X1, o.X1), min(r.Y1, o.Y1)
	return Rect{X0: x0, Y0: y0, X1: max(x0, x1), Y1: max(y0, y1)}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect[%g, %g, %g, %g]", r.X0, r.Y0, r.X1, r.Y1)
}

// AppendTo appends r as a closed subpath to p, running X0,Y0 → X1,Y0 →
// X1,Y1 → X0,Y1.
func (r Rect) AppendTo(p *Path2D) {
	p.MoveTo(r.X0, r.Y0)
	// The path is non-empty after MoveTo, so none of these can fail.
	_ = p.LineTo(r.X1, r.Y0)
	_ = p.LineTo(r.X1, r.Y1)
	_ = p.LineTo(r.X0, r.Y1)
	_ = p.ClosePath()
}
