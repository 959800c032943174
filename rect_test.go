package geom

import (
	"math"
	"testing"
)

func TestRectBasics(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	diff(t, Rect{1, 2, 4, 6}, r)
	diff(t, 3.0, r.Width())
	diff(t, 4.0, r.Height())
	diff(t, Pt(2.5, 4), r.Center())
	diff(t, 1.0, Rect{4, 6, 1, 2}.MinX())
	diff(t, 6.0, Rect{4, 6, 1, 2}.MaxY())
	diff(t, r, Rect{4, 6, 1, 2}.Abs())
	diff(t, Rect{0, 0, 2, 3}, NewRectFromPoints(Pt(2, 0), Pt(0, 3)))
	diff(t, "Rect[1, 2, 4, 6]", r.String())
}

func TestRectContains(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(5, 5), true},
		{Pt(0, 0), true},
		{Pt(10, 5), false},
		{Pt(5, 10), false},
		{Pt(-1, 5), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.pt); got != tt.want {
			t.Errorf("%s: got %t, want %t", tt.pt, got, tt.want)
		}
	}

	if !r.ContainsRect(Rect{2, 2, 10, 10}) {
		t.Error("ContainsRect: inner rectangle not contained")
	}
	if r.ContainsRect(Rect{2, 2, 11, 10}) {
		t.Error("ContainsRect: overhanging rectangle contained")
	}
	if r.ContainsRect(Rect{2, 2, 2, 2}) {
		t.Error("ContainsRect: empty rectangle contained")
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.Intersects(Rect{5, 5, 15, 15}) {
		t.Error("overlapping rectangles don't intersect")
	}
	if r.Intersects(Rect{10, 0, 20, 10}) {
		t.Error("rectangles sharing an edge intersect")
	}
	if !r.touches(Rect{10, 0, 20, 10}) {
		t.Error("rectangles sharing an edge don't touch")
	}
	if !r.touches(Rect{5, 5, 5, 5}) {
		t.Error("degenerate rectangle inside doesn't touch")
	}
	diff(t, Rect{5, 5, 10, 10}, r.Intersect(Rect{5, 5, 15, 15}))
	diff(t, Rect{20, 20, 20, 20}, r.Intersect(Rect{20, 20, 30, 30}))
	diff(t, Rect{0, 0, 15, 15}, r.Union(Rect{5, 5, 15, 15}))
}

func TestRectUnionPoint(t *testing.T) {
	r := Rect{1, 1, 1, 1}
	for _, pt := range []Point{{3, -1}, {-2, 4}, {0, 0}} {
		r = r.UnionPoint(pt)
	}
	diff(t, Rect{-2, -1, 3, 4}, r)
}

func TestRectEmpty(t *testing.T) {
	for _, tt := range []struct {
		r    Rect
		want bool
	}{
		{Rect{0, 0, 1, 1}, false},
		{Rect{0, 0, 0, 1}, true},
		{Rect{0, 0, -1, 1}, true},
	} {
		if got := tt.r.IsEmpty(); got != tt.want {
			t.Errorf("%s: got %t, want %t", tt.r, got, tt.want)
		}
	}
	if (Rect{0, 0, math.Inf(1), 1}).IsFinite() {
		t.Error("infinite rectangle reported as finite")
	}
	if (Rect{0, math.NaN(), 1, 1}).IsFinite() {
		t.Error("NaN rectangle reported as finite")
	}
	if !(Rect{0, 0, 1, 1}).IsFinite() {
		t.Error("unit rectangle reported as not finite")
	}
}

func TestRectAppendTo(t *testing.T) {
	var p Path2D
	Rect{0, 0, 10, 5}.AppendTo(&p)
	diff(t, "M0,0 L10,0 L10,5 L0,5 Z", p.String())
	diff(t, Rect{0, 0, 10, 5}, p.Bounds2D())

	var q Path2D
	q.MoveTo(-1, -1)
	Rect{0, 0, 1, 1}.AppendTo(&q)
	diff(t, "M0,0 L1,0 L1,1 L0,1 Z", q.String())
}
