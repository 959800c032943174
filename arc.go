package geom

import (
	"fmt"
	"math"
)

// Tolerance is the maximum distance between an elliptical arc and the cubic
// Béziers approximating it, used by [Path2D.ArcTo] and [Path2D.Ellipse].
var Tolerance = 0.01

// Arc is an elliptical arc given in center parameterization.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Start returns the first point of the arc.
func (a Arc) Start() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle))
}

// End returns the last point of the arc.
func (a Arc) End() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle+a.SweepAngle))
}

// AppendTo approximates the arc with cubic Béziers and appends them to p. An
// empty path is started with a MoveTo to the arc's start; otherwise a line
// joins the current point and the start, unless they coincide. A
// non-positive tolerance selects [Tolerance].
func (a Arc) AppendTo(p *Path2D, tolerance float64) error {
	start := a.Start()
	if cur, ok := p.CurrentPoint(); !ok || p.IsClosed() {
		p.MoveTo(start.X, start.Y)
	} else if cur != start {
		if err := p.LineTo(start.X, start.Y); err != nil {
			return err
		}
	}
	return a.appendCurves(p, tolerance)
}

// appendCurves appends the cubic segments of a, assuming the pen already
// rests at the arc's start.
func (a Arc) appendCurves(p *Path2D, tolerance float64) error {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	scaledError := max(math.Abs(a.Radii.X), math.Abs(a.Radii.Y)) / tolerance
	// Number of subdivisions per ellipse based on error tolerance.
	// Note: this may slightly underestimate the error for quadrants.
	nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
	n := math.Ceil(nError * math.Abs(a.SweepAngle) * (1.0 / (2.0 * math.Pi)))
	angleStep := a.SweepAngle / n
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.SweepAngle)
	angle0 := a.StartAngle
	p0 := sampleEllipse(a.Radii, a.XRotation, angle0)

	for range int(n) {
		angle1 := angle0 + angleStep
		p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
		p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
		p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

		angle0 = angle1
		p0 = p3

		c1 := a.Center.Translate(p1)
		c2 := a.Center.Translate(p2)
		end := a.Center.Translate(p3)
		if err := p.CurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y); err != nil {
			return err
		}
	}
	return nil
}

// Take the ellipse radii, how the radii are rotated, and the sweep angle, and return a
// point on the ellipse.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// Rotate pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

// ArcFromEndpoints converts an SVG-style endpoint arc from p0 to p1 into
// center parameterization. xRotation is in radians. Radii that are too small
// to span the endpoints are scaled up. ok is false if the arc degenerates to
// a line (a zero radius) or to nothing (coinciding endpoints).
func ArcFromEndpoints(p0, p1 Point, radii Vec2, xRotation float64, largeArc, sweep bool) (a Arc, ok bool) {
	if p0 == p1 {
		return Arc{}, false
	}
	rx, ry := math.Abs(radii.X), math.Abs(radii.Y)
	if rx == 0 || ry == 0 {
		return Arc{}, false
	}

	sin, cos := math.Sincos(xRotation)
	dx := (p0.X - p1.X) / 2
	dy := (p0.Y - p1.Y) / 2
	x1p := cos*dx + sin*dy
	y1p := -sin*dx + cos*dy

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	den := rx2*y1p*y1p + ry2*x1p*x1p
	num := max(rx2*ry2-den, 0)
	sq := math.Sqrt(num / den)
	if largeArc == sweep {
		sq = -sq
	}
	cxp := sq * rx * y1p / ry
	cyp := -sq * ry * x1p / rx

	center := Point{
		X: cos*cxp - sin*cyp + (p0.X+p1.X)/2,
		Y: sin*cxp + cos*cyp + (p0.Y+p1.Y)/2,
	}

	u := Vec((x1p-cxp)/rx, (y1p-cyp)/ry)
	v := Vec((-x1p-cxp)/rx, (-y1p-cyp)/ry)
	theta := u.Angle()
	delta := math.Atan2(u.Cross(v), u.Dot(v))
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return Arc{
		Center:     center,
		Radii:      Vec(rx, ry),
		StartAngle: theta,
		SweepAngle: delta,
		XRotation:  xRotation,
	}, true
}

// ArcTo draws an elliptical arc from the current point to (x, y) in the
// manner of the SVG "A" command. xRotation is in radians. A zero radius
// draws a straight line; an arc ending at the current point draws nothing.
func (p *Path2D) ArcTo(rx, ry, xRotation float64, largeArc, sweep bool, x, y float64) error {
	cur, ok := p.CurrentPoint()
	if !ok {
		return fmt.Errorf("%w: arc needs a current point", ErrPathState)
	}
	end := Pt(x, y)
	a, ok := ArcFromEndpoints(cur, end, Vec(rx, ry), xRotation, largeArc, sweep)
	if !ok {
		if cur == end {
			return nil
		}
		return p.LineTo(x, y)
	}
	if p.IsClosed() {
		p.MoveTo(cur.X, cur.Y)
	}
	// a starts at cur up to rounding, so no joining line is needed.
	if err := a.appendCurves(p, Tolerance); err != nil {
		return err
	}
	// Land exactly on the requested end point.
	p.points[len(p.points)-2] = x
	p.points[len(p.points)-1] = y
	return nil
}

// Ellipse appends a closed ellipse centered at (cx, cy) as a new subpath.
func (p *Path2D) Ellipse(cx, cy, rx, ry float64) {
	a := Arc{
		Center:     Pt(cx, cy),
		Radii:      Vec(rx, ry),
		SweepAngle: 2 * math.Pi,
	}
	start := a.Start()
	p.MoveTo(start.X, start.Y)
	// The path now starts with a MoveTo, so appending cannot fail.
	_ = a.appendCurves(p, Tolerance)
	_ = p.ClosePath()
}
