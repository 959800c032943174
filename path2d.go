package geom

import (
	"fmt"
	"slices"
)

// SegmentType identifies the kind of a path segment. The numeric values are
// stable and shared with other path APIs.
type SegmentType uint8

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	SegMoveTo SegmentType = 0
	// Draw a line from the current location to the point.
	SegLineTo SegmentType = 1
	// Draw a quadratic Bézier using the current location and the two points.
	SegQuadTo SegmentType = 2
	// Draw a cubic Bézier using the current location and the three points.
	SegCubicTo SegmentType = 3
	// Close off the subpath.
	SegClose SegmentType = 4
)

// pointShift is the number of coordinate values stored per segment type.
var pointShift = [...]int{2, 2, 4, 6, 0}

// Coords returns the number of coordinate values (not points) that a segment
// of this type carries: 2, 2, 4, 6 and 0 for MoveTo, LineTo, QuadTo, CubicTo
// and Close respectively.
func (typ SegmentType) Coords() int {
	if int(typ) >= len(pointShift) {
		return 0
	}
	return pointShift[typ]
}

// Valid reports whether typ is one of the five known segment types.
func (typ SegmentType) Valid() bool {
	return typ <= SegClose
}

func (typ SegmentType) String() string {
	switch typ {
	case SegMoveTo:
		return "MoveTo"
	case SegLineTo:
		return "LineTo"
	case SegQuadTo:
		return "QuadTo"
	case SegCubicTo:
		return "CubicTo"
	case SegClose:
		return "Close"
	default:
		return fmt.Sprintf("SegmentType(%d)", uint8(typ))
	}
}

// WindingRule decides which points enclosed by a path's edges count as
// inside.
type WindingRule int

const (
	// EvenOdd treats a point as inside if a ray from it crosses the path an
	// odd number of times.
	EvenOdd WindingRule = 0
	// NonZero treats a point as inside if the signed number of crossings is
	// not zero.
	NonZero WindingRule = 1
)

func (rule WindingRule) Valid() bool {
	return rule == EvenOdd || rule == NonZero
}

func (rule WindingRule) String() string {
	switch rule {
	case EvenOdd:
		return "EvenOdd"
	case NonZero:
		return "NonZero"
	default:
		return fmt.Sprintf("WindingRule(%d)", int(rule))
	}
}

// Path2D is a sequence of path segments together with a winding rule.
//
// Segment types and their coordinates are stored in two parallel buffers.
// Every path that has segments begins with a MoveTo, and a MoveTo directly
// following another MoveTo replaces it.
//
// The zero value is an empty path using the [EvenOdd] rule.
//
// Path2D is not safe for concurrent use. Callers that share a path between
// goroutines must guard both mutation and queries with their own lock.
type Path2D struct {
	rule   WindingRule
	types  []SegmentType
	points []float64
}

// NewPath2D returns an empty path using rule.
func NewPath2D(rule WindingRule) (*Path2D, error) {
	return NewPath2DCapacity(rule, 0)
}

// NewPath2DCapacity returns an empty path using rule with room for the given
// number of segments.
func NewPath2DCapacity(rule WindingRule, segments int) (*Path2D, error) {
	p := &Path2D{}
	if err := p.SetWindingRule(rule); err != nil {
		return nil, err
	}
	if segments > 0 {
		p.types = make([]SegmentType, 0, segments)
		p.points = make([]float64, 0, 2*segments)
	}
	return p, nil
}

// NewPath2DFrom returns a path holding the segments produced by it, using
// its winding rule.
func NewPath2DFrom(it PathIterator) (*Path2D, error) {
	p, err := NewPath2D(it.WindingRule())
	if err != nil {
		return nil, err
	}
	if err := p.Append(it, false); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Path2D) WindingRule() WindingRule { return p.rule }

// SetWindingRule changes the rule used by containment queries.
func (p *Path2D) SetWindingRule(rule WindingRule) error {
	if !rule.Valid() {
		return fmt.Errorf("%w: %d", ErrWindingRule, int(rule))
	}
	p.rule = rule
	return nil
}

// checkBuf reserves room for a segment with n coordinate values that
// continues the current subpath, so the path must not be empty.
func (p *Path2D) checkBuf(n int) error {
	if len(p.types) == 0 {
		return fmt.Errorf("%w: first segment must be a MoveTo", ErrPathState)
	}
	p.types = slices.Grow(p.types, 1)
	p.points = slices.Grow(p.points, n)
	return nil
}

// MoveTo starts a new subpath at (x, y). If the last segment is a MoveTo, it
// is replaced instead.
func (p *Path2D) MoveTo(x, y float64) {
	if n := len(p.types); n > 0 && p.types[n-1] == SegMoveTo {
		p.points[len(p.points)-2] = x
		p.points[len(p.points)-1] = y
		return
	}
	p.types = slices.Grow(p.types, 1)
	p.points = slices.Grow(p.points, 2)
	p.types = append(p.types, SegMoveTo)
	p.points = append(p.points, x, y)
}

// LineTo draws a line from the current point to (x, y).
func (p *Path2D) LineTo(x, y float64) error {
	if err := p.checkBuf(2); err != nil {
		return err
	}
	p.types = append(p.types, SegLineTo)
	p.points = append(p.points, x, y)
	return nil
}

// QuadTo draws a quadratic Bézier with control point (cx, cy) ending at
// (x, y).
func (p *Path2D) QuadTo(cx, cy, x, y float64) error {
	if err := p.checkBuf(4); err != nil {
		return err
	}
	p.types = append(p.types, SegQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	return nil
}

// CurveTo draws a cubic Bézier with control points (cx1, cy1) and (cx2, cy2)
// ending at (x, y).
func (p *Path2D) CurveTo(cx1, cy1, cx2, cy2, x, y float64) error {
	if err := p.checkBuf(6); err != nil {
		return err
	}
	p.types = append(p.types, SegCubicTo)
	p.points = append(p.points, cx1, cy1, cx2, cy2, x, y)
	return nil
}

// ClosePath closes the current subpath. Closing an already closed path does
// nothing.
func (p *Path2D) ClosePath() error {
	if n := len(p.types); n > 0 && p.types[n-1] == SegClose {
		return nil
	}
	if err := p.checkBuf(0); err != nil {
		return err
	}
	p.types = append(p.types, SegClose)
	return nil
}

// Append adds the segments produced by it to p.
//
// If connect is true and the first segment is a MoveTo, it is turned into a
// LineTo joining the two paths, unless p is empty or closed. A joining
// segment that would have zero length is dropped.
//
// An iterator obtained from p.Iterator is read from a snapshot of p, so a
// path can be appended to itself. Other PathIterator implementations must
// not be backed by p.
func (p *Path2D) Append(it PathIterator, connect bool) error {
	if pi, ok := it.(*pathIterator); ok && pi.p == p {
		snap := *pi
		snap.p = p.Clone()
		it = &snap
	}
	var coords [6]float64
	for ; !it.IsDone(); it.Next() {
		typ, err := it.CurrentSegment(coords[:])
		if err != nil {
			return err
		}
		switch typ {
		case SegMoveTo:
			n := len(p.types)
			if !connect || n == 0 || p.types[n-1] == SegClose {
				p.MoveTo(coords[0], coords[1])
				break
			}
			m := len(p.points)
			if p.points[m-2] == coords[0] && p.points[m-1] == coords[1] {
				break
			}
			err = p.LineTo(coords[0], coords[1])
		case SegLineTo:
			err = p.LineTo(coords[0], coords[1])
		case SegQuadTo:
			err = p.QuadTo(coords[0], coords[1], coords[2], coords[3])
		case SegCubicTo:
			err = p.CurveTo(coords[0], coords[1], coords[2], coords[3], coords[4], coords[5])
		case SegClose:
			err = p.ClosePath()
		default:
			err = fmt.Errorf("%w: unknown segment type %d", ErrPathState, uint8(typ))
		}
		if err != nil {
			return err
		}
		connect = false
	}
	return nil
}

// AppendPath appends the segments of q. See [Path2D.Append].
func (p *Path2D) AppendPath(q *Path2D, connect bool) error {
	return p.Append(q.Iterator(nil), connect)
}

// Reset removes all segments, keeping the allocated buffers and the winding
// rule.
func (p *Path2D) Reset() {
	p.types = p.types[:0]
	p.points = p.points[:0]
}

// Len returns the number of segments.
func (p *Path2D) Len() int { return len(p.types) }

// PointSize returns the number of coordinate values stored, which is the sum
// of [SegmentType.Coords] over all segments.
func (p *Path2D) PointSize() int { return len(p.points) }

// TypeAt returns the type of the i'th segment.
func (p *Path2D) TypeAt(i int) SegmentType { return p.types[i] }

// Coords returns a copy of the flat coordinate buffer.
func (p *Path2D) Coords() []float64 { return slices.Clone(p.points) }

func (p *Path2D) IsEmpty() bool { return len(p.types) == 0 }

// IsClosed reports whether the last segment is a Close.
func (p *Path2D) IsClosed() bool {
	n := len(p.types)
	return n > 0 && p.types[n-1] == SegClose
}

// CurrentPoint returns the point the pen rests at after the last segment.
// After a Close, that is the start of the closed subpath. ok is false for an
// empty path.
func (p *Path2D) CurrentPoint() (pt Point, ok bool) {
	n := len(p.types)
	if n == 0 {
		return Point{}, false
	}
	j := len(p.points)
	if p.types[n-1] != SegClose {
		return Pt(p.points[j-2], p.points[j-1]), true
	}
	for i := n - 1; i >= 0; i-- {
		typ := p.types[i]
		j -= typ.Coords()
		if typ == SegMoveTo {
			return Pt(p.points[j], p.points[j+1]), true
		}
	}
	// Unreachable for paths built through the public API, which always
	// start with a MoveTo.
	return Point{}, false
}

// Transform maps every coordinate of p by t in place. A nil transform does
// nothing.
func (p *Path2D) Transform(t *AffineTransform) {
	if t == nil {
		return
	}
	// The buffer only ever holds whole pairs.
	_ = t.TransformCoords(p.points, p.points)
}

// CreateTransformedShape returns a copy of p mapped by t. A nil transform
// yields an untransformed copy.
func (p *Path2D) CreateTransformedShape(t *AffineTransform) *Path2D {
	c := p.Clone()
	c.Transform(t)
	return c
}

// Bounds2D returns the smallest rectangle containing every coordinate of p,
// including control points. An empty path has a zero rectangle.
func (p *Path2D) Bounds2D() Rect {
	if len(p.points) < 2 {
		return Rect{}
	}
	r := Rect{X0: p.points[0], Y0: p.points[1], X1: p.points[0], Y1: p.points[1]}
	for i := 2; i+1 < len(p.points); i += 2 {
		r = r.UnionPoint(Pt(p.points[i], p.points[i+1]))
	}
	return r
}

func (p *Path2D) isInside(cross int) bool {
	if p.rule == NonZero {
		return IsInsideNonZero(cross)
	}
	return IsInsideEvenOdd(cross)
}

// Contains reports whether (x, y) lies inside p according to its winding
// rule. Vertices of the path are reported as outside.
func (p *Path2D) Contains(x, y float64) bool {
	return p.isInside(CrossShape(p, x, y))
}

// ContainsPoint is like Contains.
func (p *Path2D) ContainsPoint(pt Point) bool {
	return p.Contains(pt.X, pt.Y)
}

// ContainsRect reports whether r lies entirely inside p. It is false
// whenever the path's boundary passes through r.
func (p *Path2D) ContainsRect(r Rect) bool {
	cross := IntersectShape(p, r.X0, r.Y0, r.Width(), r.Height())
	return cross != CrossingBoundary && p.isInside(cross)
}

// Intersects reports whether r and the interior or boundary of p overlap.
func (p *Path2D) Intersects(r Rect) bool {
	cross := IntersectShape(p, r.X0, r.Y0, r.Width(), r.Height())
	return cross == CrossingBoundary || p.isInside(cross)
}

// Clone returns a deep copy of p.
func (p *Path2D) Clone() *Path2D {
	return &Path2D{
		rule:   p.rule,
		types:  slices.Clone(p.types),
		points: slices.Clone(p.points),
	}
}

// String returns the path in SVG path data notation.
func (p *Path2D) String() string {
	return p.SVG(SVGOptions{})
}
