package geom

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestParseSVG(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "  \n", ""},
		{"absolute", "M10,10 L15,10 H20 V15 Z", "M10,10 L15,10 L20,10 L20,15 Z"},
		{"relative", "m10,10 l5,0 h5 v5 z", "M10,10 L15,10 L20,10 L20,15 Z"},
		{"implicit lines", "M0 0 10 0 10 10", "M0,0 L10,0 L10,10"},
		{"implicit relative lines", "m1,1 2,2", "M1,1 L3,3"},
		{"repeated commands", "M0,0 L1,1 2,2", "M0,0 L1,1 L2,2"},
		{"relative after close", "M10,10 l5,0 z m1,1 l1,0", "M10,10 L15,10 Z M11,11 L12,11"},
		{"compact numbers", "M.5-.5L1e1,2", "M0.5,-0.5 L10,2"},
		{"quadratic", "M0,0 Q5,10 10,0", "M0,0 Q5,10 10,0"},
		{"smooth quadratic", "M0,0 Q5,10 10,0 T20,0", "M0,0 Q5,10 10,0 Q15,-10 20,0"},
		{"smooth quadratic alone", "M0,0 T10,0", "M0,0 Q0,0 10,0"},
		{"cubic", "M0,0 c0,10 10,10 10,0", "M0,0 C0,10 10,10 10,0"},
		{"smooth cubic", "M0,0 C0,10 10,10 10,0 S20,-10 20,0", "M0,0 C0,10 10,10 10,0 C10,-10 20,-10 20,0"},
		{"smooth cubic alone", "M0,0 S10,10 10,0", "M0,0 C0,0 10,10 10,0"},
		{"flat arc", "M0,0 A0,5 0 0 1 10,0", "M0,0 L10,0"},
		{"empty arc", "M0,0 A5,5 0 0 1 0,0", "M0,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSVG(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, p.String())
			diff(t, NonZero, p.WindingRule())
		})
	}
}

func TestParseSVGErrors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"10,10", "should start with command"},
		{"M0,0 X1,1", "unknown command"},
		{"M0,0 L1", "sets of 2 numbers"},
		{"M0,0 H", "number should follow"},
		{"M0 0 A1 1 0 2 1 1 1", "flags should be 0 or 1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseSVG(tt.in)
			if err == nil {
				t.Fatal("got no error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("got error %q, want it to mention %q", err, tt.msg)
			}
		})
	}

	if _, err := ParseSVG("L10,10"); !errors.Is(err, ErrPathState) {
		t.Errorf("got %v, want ErrPathState", err)
	}
}

func TestParseSVGArc(t *testing.T) {
	p := MustParseSVG("M0,0 A5,5 0 0 1 10,0")
	types, coords := collect(p, nil)
	diff(t, []SegmentType{SegMoveTo, SegCubicTo, SegCubicTo}, types)
	// The first half ends at the bottom of the circle centered at (5, 0).
	assertNear(t, Pt(coords[6], coords[7]), Pt(5, -5), 1e-9)
	diff(t, Pt(10, 0), Pt(coords[12], coords[13]))

	// Radii too small to span the end points are scaled up.
	q := MustParseSVG("M0,0 A1,1 0 0 1 10,0")
	_, qc := collect(q, nil)
	diff(t, coords, qc, approx)

	// Relative arcs with compact flags.
	r := MustParseSVG("M0,0 a5,5 0 0110,0")
	_, rc := collect(r, nil)
	diff(t, coords, rc, approx)

	// The other sweep direction passes through the top.
	s := MustParseSVG("M0,0 A5,5 0 0 0 10,0")
	_, sc := collect(s, nil)
	assertNear(t, Pt(sc[6], sc[7]), Pt(5, 5), 1e-9)
}

func TestWriteSVGPrecision(t *testing.T) {
	var p Path2D
	p.MoveTo(0.123456, 1)
	if err := p.LineTo(2.5, -0.0001); err != nil {
		t.Fatal(err)
	}
	diff(t, "M0.123,1 L2.5,0", p.SVG(SVGOptions{MaxPrecision: 3}))
	diff(t, "M0.123456,1 L2.5,-0.0001", p.SVG(SVGOptions{}))
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteSVGError(t *testing.T) {
	p := MustParseSVG("M0,0 L1,1 Z")
	if err := p.WriteSVG(failingWriter{}, SVGOptions{}); !errors.Is(err, errWrite) {
		t.Errorf("got %v, want %v", err, errWrite)
	}
}

func TestSVGRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for range 50 {
		p := randomPath(r, 1+r.IntN(20))
		q, err := ParseSVG(p.String())
		if err != nil {
			t.Fatalf("parsing %q: %s", p, err)
		}
		pt, pc := collect(p, nil)
		qt, qc := collect(q, nil)
		diff(t, pt, qt)
		diff(t, pc, qc, approx)
	}
}
