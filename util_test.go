package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

// approx compares floats, including those nested in structs and slices,
// to within 1e-9.
var approx = cmpopts.EquateApprox(0, 1e-9)

// collect returns the segments of p as types and a flat coordinate slice.
func collect(p *Path2D, tr *AffineTransform) ([]SegmentType, []float64) {
	var types []SegmentType
	var coords []float64
	for typ, c := range p.Elements(tr) {
		types = append(types, typ)
		coords = append(coords, c...)
	}
	return types, coords
}
