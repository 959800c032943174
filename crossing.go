package geom

import "math"

// Crossing numbers are computed by casting a ray from the query point
// towards positive y and summing the signed crossings of every segment: +1
// for segments running towards positive x, -1 for the opposite direction.
// Segment end points are counted half-open so that a ray passing through a
// vertex shared by two segments is counted once.

// CrossingBoundary is returned by the rectangle intersection functions when
// the path's boundary passes through the rectangle. It is never a valid
// crossing count.
const CrossingBoundary = 255

// crossingUnknown is returned by crossBound when the bounds alone don't
// decide the result.
const crossingUnknown = 254

const (
	// crossDelta is the tolerance for curve parameters and derivatives.
	crossDelta = 1e-5
	// rootDelta is the tolerance for cubic discriminants.
	rootDelta = 1e-10
)

func isZero(v float64) bool {
	return -crossDelta < v && v < crossDelta
}

// SolveQuad finds the real roots of c0 + c1·x + c2·x² = 0.
//
// Roots closer together than 1e-5 are reported once. If all coefficients
// vanish, so that every x is a root, n is -1.
func SolveQuad(c0, c1, c2 float64) (roots [3]float64, n int) {
	if c2 == 0 {
		if c1 == 0 {
			return roots, -1
		}
		roots[0] = -c0 / c1
		return roots, 1
	}
	d := c1*c1 - 4*c2*c0
	if d < 0 {
		return roots, 0
	}
	d = math.Sqrt(d)
	roots[n] = (-c1 + d) / (2 * c2)
	n++
	if d != 0 {
		roots[n] = (-c1 - d) / (2 * c2)
		n++
	}
	return roots, fixRoots(roots[:n])
}

// SolveCubic finds the real roots of c0 + c1·x + c2·x² + c3·x³ = 0. It
// falls back to [SolveQuad] when c3 is zero.
func SolveCubic(c0, c1, c2, c3 float64) (roots [3]float64, n int) {
	if c3 == 0 {
		return SolveQuad(c0, c1, c2)
	}
	a := c2 / c3
	b := c1 / c3
	c := c0 / c3

	q := (a*a - 3*b) / 9
	r := (2*a*a*a - 9*a*b + 27*c) / 54
	q3 := q * q * q
	r2 := r * r
	shift := -a / 3

	if r2 < q3 {
		th := math.Acos(r/math.Sqrt(q3)) / 3
		const p = 2 * math.Pi / 3
		m := -2 * math.Sqrt(q)
		roots[0] = m*math.Cos(th) + shift
		roots[1] = m*math.Cos(th+p) + shift
		roots[2] = m*math.Cos(th-p) + shift
		n = 3
	} else {
		A := math.Cbrt(math.Abs(r) + math.Sqrt(r2-q3))
		if r > 0 {
			A = -A
		}
		if -rootDelta < A && A < rootDelta {
			roots[0] = shift
			n = 1
		} else {
			B := q / A
			roots[0] = A + B + shift
			n = 1
			if delta := r2 - q3; -rootDelta < delta && delta < rootDelta {
				roots[1] = -(A+B)/2 + shift
				n = 2
			}
		}
	}
	return roots, fixRoots(roots[:n])
}

// fixRoots removes near-duplicate roots in place and returns the new count.
func fixRoots(res []float64) int {
	n := 0
outer:
	for i := range res {
		for j := i + 1; j < len(res); j++ {
			if isZero(res[i] - res[j]) {
				continue outer
			}
		}
		res[n] = res[i]
		n++
	}
	return n
}

// quadCurve is a quadratic Bézier translated so that its start point is the
// origin, in power basis: P(t) = A·t² + B·t.
type quadCurve struct {
	ax, ay, bx, by float64
	Ax, Ay, Bx, By float64
}

func newQuadCurve(x1, y1, cx, cy, x2, y2 float64) quadCurve {
	c := quadCurve{
		ax: x2 - x1,
		ay: y2 - y1,
		bx: cx - x1,
		by: cy - y1,
	}
	c.Bx = c.bx + c.bx
	c.Ax = c.ax - c.Bx
	c.By = c.by + c.by
	c.Ay = c.ay - c.By
	return c
}

// cross counts the crossings at the curve parameters in res of a ray cast
// from the query point, given relative to the curve start. py1 bounds curve
// start and end, py2 bounds the interior.
func (c quadCurve) cross(res []float64, py1, py2 float64) int {
	cross := 0
	for _, t := range res {
		if t < -crossDelta || t > 1+crossDelta {
			continue
		}
		if t < crossDelta {
			dir := c.bx
			if dir == 0 {
				dir = c.ax - c.bx
			}
			if py1 < 0 && dir < 0 {
				cross--
			}
			continue
		}
		if t > 1-crossDelta {
			dir := c.bx
			if c.ax != c.bx {
				dir = c.ax - c.bx
			}
			if py1 < c.ay && dir > 0 {
				cross++
			}
			continue
		}
		ry := t * (t*c.Ay + c.By)
		if ry > py2 {
			rxt := t*c.Ax + c.bx
			if rxt > -crossDelta && rxt < crossDelta {
				continue
			}
			if rxt > 0 {
				cross++
			} else {
				cross--
			}
		}
	}
	return cross
}

func (c quadCurve) solvePoint(px float64) ([3]float64, int) {
	return SolveQuad(-px, c.Bx, c.Ax)
}

func (c quadCurve) solveExtrem() ([3]float64, int) {
	var res [3]float64
	n := 0
	if c.Ax != 0 {
		res[n] = -c.Bx / (c.Ax + c.Ax)
		n++
	}
	if c.Ay != 0 {
		res[n] = -c.By / (c.Ay + c.Ay)
		n++
	}
	return res, n
}

// addBound appends (t, x, y, id) for every parameter in res that lies on the
// curve and whose x falls within [minX, maxX].
func (c quadCurve) addBound(bound []float64, res []float64, minX, maxX float64, changeID bool, id int) []float64 {
	for _, t := range res {
		if t > -crossDelta && t < 1+crossDelta {
			rx := t * (t*c.Ax + c.Bx)
			if minX <= rx && rx <= maxX {
				bound = append(bound, t, rx, t*(t*c.Ay+c.By), float64(id))
				if changeID {
					id++
				}
			}
		}
	}
	return bound
}

// cubicCurve is a cubic Bézier translated so that its start point is the
// origin, in power basis: P(t) = A·t³ + B·t² + C·t.
type cubicCurve struct {
	ax, ay, bx, by, cx, cy float64
	Ax, Ay, Bx, By, Cx, Cy float64
	Ax3, Bx2               float64
}

func newCubicCurve(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64) cubicCurve {
	c := cubicCurve{
		ax: x2 - x1,
		ay: y2 - y1,
		bx: cx1 - x1,
		by: cy1 - y1,
		cx: cx2 - x1,
		cy: cy2 - y1,
	}
	c.Cx = c.bx + c.bx + c.bx
	c.Bx = c.cx + c.cx + c.cx - c.Cx - c.Cx
	c.Ax = c.ax - c.Bx - c.Cx
	c.Cy = c.by + c.by + c.by
	c.By = c.cy + c.cy + c.cy - c.Cy - c.Cy
	c.Ay = c.ay - c.By - c.Cy
	c.Ax3 = c.Ax + c.Ax + c.Ax
	c.Bx2 = c.Bx + c.Bx
	return c
}

func (c cubicCurve) cross(res []float64, py1, py2 float64) int {
	cross := 0
	for _, t := range res {
		if t < -crossDelta || t > 1+crossDelta {
			continue
		}
		if t < crossDelta {
			dir := c.bx
			if dir == 0 {
				if c.cx != c.bx {
					dir = c.cx - c.bx
				} else {
					dir = c.ax - c.cx
				}
			}
			if py1 < 0 && dir < 0 {
				cross--
			}
			continue
		}
		if t > 1-crossDelta {
			var dir float64
			switch {
			case c.ax != c.cx:
				dir = c.ax - c.cx
			case c.cx != c.bx:
				dir = c.cx - c.bx
			default:
				dir = c.bx
			}
			if py1 < c.ay && dir > 0 {
				cross++
			}
			continue
		}
		ry := t * (t*(t*c.Ay+c.By) + c.Cy)
		if ry > py2 {
			rxt := t*(t*c.Ax3+c.Bx2) + c.Cx
			if rxt > -crossDelta && rxt < crossDelta {
				rxt = t*(c.Ax3+c.Ax3) + c.Bx2
				if rxt < -crossDelta || rxt > crossDelta {
					// Inflection point
					continue
				}
				rxt = c.ax
			}
			if rxt > 0 {
				cross++
			} else {
				cross--
			}
		}
	}
	return cross
}

func (c cubicCurve) solvePoint(px float64) ([3]float64, int) {
	return SolveCubic(-px, c.Cx, c.Bx, c.Ax)
}

func (c cubicCurve) solveExtremX() ([3]float64, int) {
	return SolveQuad(c.Cx, c.Bx2, c.Ax3)
}

func (c cubicCurve) solveExtremY() ([3]float64, int) {
	return SolveQuad(c.Cy, c.By+c.By, c.Ay+c.Ay+c.Ay)
}

func (c cubicCurve) addBound(bound []float64, res []float64, minX, maxX float64, changeID bool, id int) []float64 {
	for _, t := range res {
		if t > -crossDelta && t < 1+crossDelta {
			rx := t * (t*(t*c.Ax+c.Bx) + c.Cx)
			if minX <= rx && rx <= maxX {
				bound = append(bound, t, rx, t*(t*(t*c.Ay+c.By)+c.Cy), float64(id))
				if changeID {
					id++
				}
			}
		}
	}
	return bound
}

// validRoots returns the valid prefix of a solver result. A count of -1 (every
// value is a root) yields no roots.
func validRoots(res [3]float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	return res[:n]
}

// CrossLine returns the crossing count of the line (x1, y1)–(x2, y2) for a
// ray cast from (x, y).
func CrossLine(x1, y1, x2, y2, x, y float64) int {
	// Left, right, above, or vertical.
	if (x < x1 && x < x2) ||
		(x > x1 && x > x2) ||
		(y > y1 && y > y2) ||
		x1 == x2 {
		return 0
	}

	// Unless the line is entirely below the point, check which side of it
	// the point lies on.
	if !(y < y1 && y < y2) {
		if (y2-y1)*(x-x1)/(x2-x1) <= y-y1 {
			return 0
		}
	}

	if x == x1 {
		if x1 < x2 {
			return 0
		}
		return -1
	}
	if x == x2 {
		if x1 < x2 {
			return 1
		}
		return 0
	}
	if x1 < x2 {
		return 1
	}
	return -1
}

// CrossQuad returns the crossing count of a quadratic Bézier for a ray cast
// from (x, y).
func CrossQuad(x1, y1, cx, cy, x2, y2, x, y float64) int {
	if (x < x1 && x < cx && x < x2) ||
		(x > x1 && x > cx && x > x2) ||
		(y > y1 && y > cy && y > y2) ||
		(x1 == cx && cx == x2) {
		return 0
	}

	if y < y1 && y < cy && y < y2 && x != x1 && x != x2 {
		return crossBelow(x1, x2, x)
	}

	c := newQuadCurve(x1, y1, cx, cy, x2, y2)
	px := x - x1
	py := y - y1
	res, n := c.solvePoint(px)
	return c.cross(validRoots(res, n), py, py)
}

// CrossCubic returns the crossing count of a cubic Bézier for a ray cast
// from (x, y).
func CrossCubic(x1, y1, cx1, cy1, cx2, cy2, x2, y2, x, y float64) int {
	if (x < x1 && x < cx1 && x < cx2 && x < x2) ||
		(x > x1 && x > cx1 && x > cx2 && x > x2) ||
		(y > y1 && y > cy1 && y > cy2 && y > y2) ||
		(x1 == cx1 && cx1 == cx2 && cx2 == x2) {
		return 0
	}

	if y < y1 && y < cy1 && y < cy2 && y < y2 && x != x1 && x != x2 {
		return crossBelow(x1, x2, x)
	}

	c := newCubicCurve(x1, y1, cx1, cy1, cx2, cy2, x2, y2)
	px := x - x1
	py := y - y1
	res, n := c.solvePoint(px)
	return c.cross(validRoots(res, n), py, py)
}

// crossBelow handles a curve lying entirely on the ray's side of the point,
// where only the end points' x coordinates matter.
func crossBelow(x1, x2, x float64) int {
	if x1 < x2 {
		if x1 < x && x < x2 {
			return 1
		}
		return 0
	}
	if x2 < x && x < x1 {
		return -1
	}
	return 0
}

// CrossPath returns the crossing count of all segments produced by it for a
// ray cast from (x, y). Open subpaths are implicitly closed. If (x, y) is a
// vertex of the path, the count is 0.
func CrossPath(it PathIterator, x, y float64) int {
	var cross int
	var mx, my, cx, cy float64
	var coords [6]float64
	for ; !it.IsDone(); it.Next() {
		typ, err := it.CurrentSegment(coords[:])
		if err != nil {
			break
		}
		switch typ {
		case SegMoveTo:
			if cx != mx || cy != my {
				cross += CrossLine(cx, cy, mx, my, x, y)
			}
			mx, my = coords[0], coords[1]
			cx, cy = mx, my
		case SegLineTo:
			cross += CrossLine(cx, cy, coords[0], coords[1], x, y)
			cx, cy = coords[0], coords[1]
		case SegQuadTo:
			cross += CrossQuad(cx, cy, coords[0], coords[1], coords[2], coords[3], x, y)
			cx, cy = coords[2], coords[3]
		case SegCubicTo:
			cross += CrossCubic(cx, cy, coords[0], coords[1], coords[2], coords[3], coords[4], coords[5], x, y)
			cx, cy = coords[4], coords[5]
		case SegClose:
			if cy != my || cx != mx {
				cross += CrossLine(cx, cy, mx, my, x, y)
			}
			cx, cy = mx, my
		}

		if x == cx && y == cy {
			return 0
		}
	}
	if cy != my {
		cross += CrossLine(cx, cy, mx, my, x, y)
	}
	return cross
}

// CrossShape is like CrossPath for a whole path, skipping the walk when
// (x, y) is outside the path's bounds.
func CrossShape(p *Path2D, x, y float64) int {
	if !p.Bounds2D().touches(Rect{x, y, x, y}) {
		return 0
	}
	return CrossPath(p.Iterator(nil), x, y)
}

// IsInsideNonZero reports whether a crossing count means inside under the
// NonZero rule.
func IsInsideNonZero(cross int) bool { return cross != 0 }

// IsInsideEvenOdd reports whether a crossing count means inside under the
// EvenOdd rule.
func IsInsideEvenOdd(cross int) bool { return cross&1 != 0 }

// sortBound sorts the (t, x, y, id) tuples of bound by t.
func sortBound(bound []float64) {
	for i := 0; i < len(bound)-4; i += 4 {
		k := i
		for j := i + 4; j < len(bound); j += 4 {
			if bound[k] > bound[j] {
				k = j
			}
		}
		if k != i {
			for o := range 4 {
				bound[i+o], bound[k+o] = bound[k+o], bound[i+o]
			}
		}
	}
}

// crossBound decides from the curve points in bound whether the curve
// passes through the band [py1, py2]. It returns 0, CrossingBoundary or
// crossingUnknown.
func crossBound(bound []float64, py1, py2 float64) int {
	if len(bound) == 0 {
		return 0
	}

	up, down := 0, 0
	for i := 2; i < len(bound); i += 4 {
		if bound[i] < py1 {
			up++
			continue
		}
		if bound[i] > py2 {
			down++
			continue
		}
		return CrossingBoundary
	}

	if down == 0 {
		return 0
	}

	if up != 0 {
		sortBound(bound)
		sign := bound[2] > py2
		for i := 6; i < len(bound); i += 4 {
			sign2 := bound[i] > py2
			if sign != sign2 && bound[i+1] != bound[i-3] {
				return CrossingBoundary
			}
			sign = sign2
		}
	}
	return crossingUnknown
}

// IntersectLine returns the crossing count of the line (x1, y1)–(x2, y2)
// for the rectangle [rx1, rx2]×[ry1, ry2], or CrossingBoundary if the line
// passes through the rectangle.
func IntersectLine(x1, y1, x2, y2, rx1, ry1, rx2, ry2 float64) int {
	if (rx2 < x1 && rx2 < x2) ||
		(rx1 > x1 && rx1 > x2) ||
		(ry1 > y1 && ry1 > y2) {
		return 0
	}

	if !(ry2 < y1 && ry2 < y2) {
		if x1 == x2 {
			return CrossingBoundary
		}

		// Clip the line to the rectangle's x range.
		var bx1, bx2 float64
		if x1 < x2 {
			bx1 = max(x1, rx1)
			bx2 = min(x2, rx2)
		} else {
			bx1 = max(x2, rx1)
			bx2 = min(x1, rx2)
		}
		k := (y2 - y1) / (x2 - x1)
		by1 := k*(bx1-x1) + y1
		by2 := k*(bx2-x1) + y1

		if by1 < ry1 && by2 < ry1 {
			return 0
		}
		if !(by1 > ry2 && by2 > ry2) {
			return CrossingBoundary
		}
	}

	if x1 == x2 {
		return 0
	}
	if rx1 == x1 {
		if x1 < x2 {
			return 0
		}
		return -1
	}
	if rx1 == x2 {
		if x1 < x2 {
			return 1
		}
		return 0
	}
	if x1 < x2 {
		if x1 < rx1 && rx1 < x2 {
			return 1
		}
		return 0
	}
	if x2 < rx1 && rx1 < x1 {
		return -1
	}
	return 0
}

// IntersectQuad is like IntersectLine for a quadratic Bézier.
func IntersectQuad(x1, y1, cx, cy, x2, y2, rx1, ry1, rx2, ry2 float64) int {
	if (rx2 < x1 && rx2 < cx && rx2 < x2) ||
		(rx1 > x1 && rx1 > cx && rx1 > x2) ||
		(ry1 > y1 && ry1 > cy && ry1 > y2) {
		return 0
	}

	if ry2 < y1 && ry2 < cy && ry2 < y2 && rx1 != x1 && rx1 != x2 {
		return crossBelow(x1, x2, rx1)
	}

	c := newQuadCurve(x1, y1, cx, cy, x2, y2)
	px1 := rx1 - x1
	py1 := ry1 - y1
	px2 := rx2 - x1
	py2 := ry2 - y1

	res1, rc1 := c.solvePoint(px1)
	res2, rc2 := c.solvePoint(px2)
	if rc1 == 0 && rc2 == 0 {
		return 0
	}

	minX := px1 - crossDelta
	maxX := px2 + crossDelta
	bound := make([]float64, 0, 28)
	bound = c.addBound(bound, validRoots(res1, rc1), minX, maxX, false, 0)
	bound = c.addBound(bound, validRoots(res2, rc2), minX, maxX, false, 1)
	ext, rc := c.solveExtrem()
	bound = c.addBound(bound, ext[:rc], minX, maxX, true, 2)
	if rx1 < x1 && x1 < rx2 {
		bound = append(bound, 0, 0, 0, 4)
	}
	if rx1 < x2 && x2 < rx2 {
		bound = append(bound, 1, c.ax, c.ay, 5)
	}

	if cross := crossBound(bound, py1, py2); cross != crossingUnknown {
		return cross
	}
	return c.cross(validRoots(res1, rc1), py1, py2)
}

// IntersectCubic is like IntersectLine for a cubic Bézier.
func IntersectCubic(x1, y1, cx1, cy1, cx2, cy2, x2, y2, rx1, ry1, rx2, ry2 float64) int {
	if (rx2 < x1 && rx2 < cx1 && rx2 < cx2 && rx2 < x2) ||
		(rx1 > x1 && rx1 > cx1 && rx1 > cx2 && rx1 > x2) ||
		(ry1 > y1 && ry1 > cy1 && ry1 > cy2 && ry1 > y2) {
		return 0
	}

	if ry2 < y1 && ry2 < cy1 && ry2 < cy2 && ry2 < y2 && rx1 != x1 && rx1 != x2 {
		return crossBelow(x1, x2, rx1)
	}

	c := newCubicCurve(x1, y1, cx1, cy1, cx2, cy2, x2, y2)
	px1 := rx1 - x1
	py1 := ry1 - y1
	px2 := rx2 - x1
	py2 := ry2 - y1

	res1, rc1 := c.solvePoint(px1)
	res2, rc2 := c.solvePoint(px2)
	if rc1 == 0 && rc2 == 0 {
		return 0
	}

	minX := px1 - crossDelta
	maxX := px2 + crossDelta
	bound := make([]float64, 0, 40)
	bound = c.addBound(bound, validRoots(res1, rc1), minX, maxX, false, 0)
	bound = c.addBound(bound, validRoots(res2, rc2), minX, maxX, false, 1)
	ext, rc := c.solveExtremX()
	bound = c.addBound(bound, validRoots(ext, rc), minX, maxX, true, 2)
	ext, rc = c.solveExtremY()
	bound = c.addBound(bound, validRoots(ext, rc), minX, maxX, true, 4)
	if rx1 < x1 && x1 < rx2 {
		bound = append(bound, 0, 0, 0, 6)
	}
	if rx1 < x2 && x2 < rx2 {
		bound = append(bound, 1, c.ax, c.ay, 7)
	}

	if cross := crossBound(bound, py1, py2); cross != crossingUnknown {
		return cross
	}
	return c.cross(validRoots(res1, rc1), py1, py2)
}

// IntersectPath returns the crossing count of all segments produced by it
// for the rectangle with origin (x, y) and size (w, h), or CrossingBoundary
// as soon as any segment passes through the rectangle.
func IntersectPath(it PathIterator, x, y, w, h float64) int {
	var cross int
	var mx, my, cx, cy float64
	var coords [6]float64
	rx1, ry1 := x, y
	rx2, ry2 := x+w, y+h

	for ; !it.IsDone(); it.Next() {
		typ, err := it.CurrentSegment(coords[:])
		if err != nil {
			break
		}
		count := 0
		switch typ {
		case SegMoveTo:
			if cx != mx || cy != my {
				count = IntersectLine(cx, cy, mx, my, rx1, ry1, rx2, ry2)
			}
			mx, my = coords[0], coords[1]
			cx, cy = mx, my
		case SegLineTo:
			count = IntersectLine(cx, cy, coords[0], coords[1], rx1, ry1, rx2, ry2)
			cx, cy = coords[0], coords[1]
		case SegQuadTo:
			count = IntersectQuad(cx, cy, coords[0], coords[1], coords[2], coords[3], rx1, ry1, rx2, ry2)
			cx, cy = coords[2], coords[3]
		case SegCubicTo:
			count = IntersectCubic(cx, cy, coords[0], coords[1], coords[2], coords[3], coords[4], coords[5], rx1, ry1, rx2, ry2)
			cx, cy = coords[4], coords[5]
		case SegClose:
			if cy != my || cx != mx {
				count = IntersectLine(cx, cy, mx, my, rx1, ry1, rx2, ry2)
			}
			cx, cy = mx, my
		}
		if count == CrossingBoundary {
			return CrossingBoundary
		}
		cross += count
	}

	if cy != my {
		count := IntersectLine(cx, cy, mx, my, rx1, ry1, rx2, ry2)
		if count == CrossingBoundary {
			return CrossingBoundary
		}
		cross += count
	}
	return cross
}

// IntersectShape is like IntersectPath for a whole path, skipping the walk
// when the rectangle misses the path's bounds.
func IntersectShape(p *Path2D, x, y, w, h float64) int {
	if !p.Bounds2D().touches(Rect{x, y, x + w, y + h}) {
		return 0
	}
	return IntersectPath(p.Iterator(nil), x, y, w, h)
}
