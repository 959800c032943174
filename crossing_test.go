package geom

import (
	"math"
	"slices"
	"testing"
)

func square(t *testing.T, rule WindingRule) *Path2D {
	t.Helper()
	p, err := NewPath2D(rule)
	if err != nil {
		t.Fatal(err)
	}
	Rect{0, 0, 10, 10}.AppendTo(p)
	return p
}

// pentagram returns a five-pointed star drawn in a single stroke. Its center
// has a winding number of magnitude two and its points of one.
func pentagram(t *testing.T, rule WindingRule) *Path2D {
	t.Helper()
	p, err := NewPath2D(rule)
	if err != nil {
		t.Fatal(err)
	}
	p.MoveTo(0, 10)
	for _, pt := range []Point{
		{-5.8779, -8.0902},
		{9.5106, 3.0902},
		{-9.5106, 3.0902},
		{5.8779, -8.0902},
	} {
		if err := p.LineTo(pt.X, pt.Y); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.ClosePath(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCrossLine(t *testing.T) {
	tests := []struct {
		name                 string
		x1, y1, x2, y2, x, y float64
		want                 int
	}{
		{"rightwards, beyond the point", 0, 10, 10, 10, 5, 5, 1},
		{"leftwards, beyond the point", 10, 10, 0, 10, 5, 5, -1},
		{"behind the point", 0, 10, 10, 10, 5, 15, 0},
		{"diagonal, beyond the point", 0, 0, 10, 10, 2, 1, 1},
		{"diagonal, behind the point", 0, 0, 10, 10, 2, 3, 0},
		{"left of the line", 0, 10, 10, 10, -1, 5, 0},
		{"vertical", 5, 0, 5, 10, 5, -1, 0},
		{"start point excluded", 0, 10, 10, 10, 0, 5, 0},
		{"end point included", 0, 10, 10, 10, 10, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CrossLine(tt.x1, tt.y1, tt.x2, tt.y2, tt.x, tt.y); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCrossLineSharedVertex(t *testing.T) {
	// Two segments meeting at x = 5 must be counted once between them.
	a := CrossLine(0, 10, 5, 10, 5, 0)
	b := CrossLine(5, 10, 10, 10, 5, 0)
	if a+b != 1 {
		t.Errorf("got %d + %d, want a total of 1", a, b)
	}
}

func TestCrossQuad(t *testing.T) {
	// A dome from (0, 0) to (10, 0) peaking at y = 5.
	tests := []struct {
		x, y float64
		want int
	}{
		{5, 2, 1},
		{5, 6, 0},
		{1, 0.5, 1},
		{5, -1, 1},
		{11, 2, 0},
	}
	for _, tt := range tests {
		if got := CrossQuad(0, 0, 5, 10, 10, 0, tt.x, tt.y); got != tt.want {
			t.Errorf("(%v, %v): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCrossCubic(t *testing.T) {
	// An arch from (0, 0) to (10, 0) peaking at y = 7.5.
	tests := []struct {
		x, y float64
		want int
	}{
		{5, 2, 1},
		{5, 8, 0},
		{5, -1, 1},
		{-1, 2, 0},
	}
	for _, tt := range tests {
		if got := CrossCubic(0, 0, 0, 10, 10, 10, 10, 0, tt.x, tt.y); got != tt.want {
			t.Errorf("(%v, %v): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestContainsSquare(t *testing.T) {
	for _, rule := range []WindingRule{EvenOdd, NonZero} {
		t.Run(rule.String(), func(t *testing.T) {
			p := square(t, rule)
			if !p.Contains(5, 5) {
				t.Error("center reported outside")
			}
			if p.Contains(15, 15) {
				t.Error("(15, 15) reported inside")
			}
			if p.Contains(10, 10) {
				t.Error("vertex reported inside")
			}
			if !p.ContainsPoint(Pt(0.5, 9.5)) {
				t.Error("(0.5, 9.5) reported outside")
			}
		})
	}
	if c := CrossShape(square(t, NonZero), 5, 5); c != -1 {
		t.Errorf("got crossing count %d, want -1", c)
	}
}

func TestWindingRules(t *testing.T) {
	tests := []struct {
		name    string
		p       func(*testing.T, WindingRule) *Path2D
		x, y    float64
		cross   int
		nonZero bool
		evenOdd bool
	}{
		{"pentagram center", pentagram, 0, 0, -2, true, false},
		{"pentagram point", pentagram, 0, 6, -1, true, true},
		{"pentagram outside", pentagram, 20, 0, 0, false, false},
		{"double square", func(t *testing.T, rule WindingRule) *Path2D {
			p := square(t, rule)
			Rect{0, 0, 10, 10}.AppendTo(p)
			return p
		}, 5, 5, -2, true, false},
		{"nested squares, same direction", func(t *testing.T, rule WindingRule) *Path2D {
			p := square(t, rule)
			Rect{2, 2, 8, 8}.AppendTo(p)
			return p
		}, 5, 5, -2, true, false},
		{"nested squares, opposite direction", func(t *testing.T, rule WindingRule) *Path2D {
			p := square(t, rule)
			p.MoveTo(2, 2)
			for _, pt := range []Point{{2, 8}, {8, 8}, {8, 2}} {
				if err := p.LineTo(pt.X, pt.Y); err != nil {
					t.Fatal(err)
				}
			}
			if err := p.ClosePath(); err != nil {
				t.Fatal(err)
			}
			return p
		}, 5, 5, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nz := tt.p(t, NonZero)
			eo := tt.p(t, EvenOdd)
			if got := CrossShape(nz, tt.x, tt.y); got != tt.cross {
				t.Errorf("got crossing count %d, want %d", got, tt.cross)
			}
			if got := nz.Contains(tt.x, tt.y); got != tt.nonZero {
				t.Errorf("NonZero: got %t, want %t", got, tt.nonZero)
			}
			if got := eo.Contains(tt.x, tt.y); got != tt.evenOdd {
				t.Errorf("EvenOdd: got %t, want %t", got, tt.evenOdd)
			}
		})
	}
}

func TestCrossPathImplicitClose(t *testing.T) {
	open, err := NewPath2D(NonZero)
	if err != nil {
		t.Fatal(err)
	}
	open.MoveTo(0, 0)
	for _, pt := range []Point{{10, 0}, {10, 10}, {0, 10}} {
		if err := open.LineTo(pt.X, pt.Y); err != nil {
			t.Fatal(err)
		}
	}
	closed := square(t, NonZero)
	if a, b := CrossShape(open, 5, 5), CrossShape(closed, 5, 5); a != b {
		t.Errorf("open path: got %d, closed path: got %d", a, b)
	}
	if !open.Contains(5, 5) {
		t.Error("open path does not contain its center")
	}
}

func TestCrossPathTransformed(t *testing.T) {
	p := square(t, NonZero)
	tr := NewTranslation(100, 100)
	if c := CrossPath(p.Iterator(tr), 105, 105); c != -1 {
		t.Errorf("got %d, want -1", c)
	}
	if c := CrossPath(p.Iterator(tr), 5, 5); c != 0 {
		t.Errorf("got %d, want 0", c)
	}
}

func TestCrossShapeCurves(t *testing.T) {
	p := MustParseSVG("M0,0 Q5,10 10,0 Z")
	if !p.Contains(5, 2) {
		t.Error("quadratic dome: (5, 2) reported outside")
	}
	if p.Contains(5, 6) {
		t.Error("quadratic dome: (5, 6) reported inside")
	}

	p = MustParseSVG("M0,0 C0,10 10,10 10,0 Z")
	if !p.Contains(5, 7) {
		t.Error("cubic arch: (5, 7) reported outside")
	}
	if p.Contains(5, 8) {
		t.Error("cubic arch: (5, 8) reported inside")
	}
}

func TestContainsEllipse(t *testing.T) {
	var p Path2D
	p.Ellipse(0, 0, 10, 5)
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(9, 0.5), true},
		{Pt(0, 4.9), true},
		{Pt(0, 5.1), false},
		{Pt(8, 4), false},
		{Pt(-9.9, 0.1), true},
	}
	for _, tt := range tests {
		if got := p.ContainsPoint(tt.pt); got != tt.want {
			t.Errorf("%s: got %t, want %t", tt.pt, got, tt.want)
		}
	}
}

func TestIntersectRect(t *testing.T) {
	p := square(t, NonZero)
	tests := []struct {
		name       string
		r          Rect
		cross      int
		contains   bool
		intersects bool
	}{
		{"inside", NewRect(2, 2, 3, 3), -1, true, true},
		{"straddling", NewRect(8, 8, 5, 5), CrossingBoundary, false, true},
		{"outside", NewRect(20, 20, 1, 1), 0, false, false},
		{"enclosing", NewRect(-5, -5, 20, 20), CrossingBoundary, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntersectShape(p, tt.r.X0, tt.r.Y0, tt.r.Width(), tt.r.Height()); got != tt.cross {
				t.Errorf("crossing: got %d, want %d", got, tt.cross)
			}
			if got := p.ContainsRect(tt.r); got != tt.contains {
				t.Errorf("ContainsRect: got %t, want %t", got, tt.contains)
			}
			if got := p.Intersects(tt.r); got != tt.intersects {
				t.Errorf("Intersects: got %t, want %t", got, tt.intersects)
			}
		})
	}
}

func TestIntersectRectCurves(t *testing.T) {
	p := MustParseSVG("M0,0 Q5,10 10,0 Z")
	if got := IntersectShape(p, 4, 4, 2, 2); got != CrossingBoundary {
		t.Errorf("rectangle around the peak: got %d, want CrossingBoundary", got)
	}
	if !p.ContainsRect(NewRect(4, 1, 2, 2)) {
		t.Error("rectangle below the peak not contained")
	}
	if p.Intersects(NewRect(0.5, 4, 1, 1)) {
		t.Error("rectangle outside the curve reported intersecting")
	}
}

func TestIsInside(t *testing.T) {
	for _, tt := range []struct {
		cross            int
		nonZero, evenOdd bool
	}{
		{0, false, false},
		{1, true, true},
		{-1, true, true},
		{2, true, false},
		{-2, true, false},
		{3, true, true},
	} {
		if got := IsInsideNonZero(tt.cross); got != tt.nonZero {
			t.Errorf("IsInsideNonZero(%d): got %t, want %t", tt.cross, got, tt.nonZero)
		}
		if got := IsInsideEvenOdd(tt.cross); got != tt.evenOdd {
			t.Errorf("IsInsideEvenOdd(%d): got %t, want %t", tt.cross, got, tt.evenOdd)
		}
	}
}

func TestSolveQuad(t *testing.T) {
	tests := []struct {
		name       string
		c0, c1, c2 float64
		want       []float64
		n          int
	}{
		{"two roots", -4, 0, 1, []float64{-2, 2}, 2},
		{"double root", 1, 2, 1, []float64{-1}, 1},
		{"no roots", 1, 0, 1, nil, 0},
		{"linear", 2, -1, 0, []float64{2}, 1},
		{"degenerate", 0, 0, 0, nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, n := SolveQuad(tt.c0, tt.c1, tt.c2)
			if n != tt.n {
				t.Fatalf("got %d roots, want %d", n, tt.n)
			}
			got := slices.Clone(validRoots(roots, n))
			slices.Sort(got)
			diff(t, tt.want, got, approx)
		})
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name           string
		c0, c1, c2, c3 float64
		want           []float64
	}{
		// (x-1)(x-2)(x-3)
		{"three roots", -6, 11, -6, 1, []float64{1, 2, 3}},
		// x³ - 8
		{"one root", -8, 0, 0, 1, []float64{2}},
		// (x-1)²(x+2)
		{"double root", 2, -3, 0, 1, []float64{-2, 1}},
		// -20x³ + 30x² - 5
		{"arch", -5, 0, 30, -20, []float64{(1 - math.Sqrt(3)) / 2, 0.5, (1 + math.Sqrt(3)) / 2}},
		{"quadratic", -4, 0, 1, 0, []float64{-2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, n := SolveCubic(tt.c0, tt.c1, tt.c2, tt.c3)
			got := slices.Clone(validRoots(roots, n))
			slices.Sort(got)
			diff(t, tt.want, got, approx)
		})
	}
}

func TestFixRoots(t *testing.T) {
	res := []float64{1, 1 + 1e-7, 2}
	n := fixRoots(res)
	diff(t, []float64{1 + 1e-7, 2}, res[:n])
}
