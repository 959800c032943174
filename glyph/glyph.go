// Package glyph converts font outlines into [geom.Path2D] shapes so that
// text can be hit-tested like any other path.
//
// Coordinates follow golang.org/x/image/font/sfnt: one unit per pixel at the
// requested ppem, origin on the baseline, Y increasing down.
package glyph

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jogamp/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrMissingGlyph is returned when a font has no glyph for a rune.
var ErrMissingGlyph = errors.New("glyph: font has no glyph for rune")

func unfix(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Outline loads the outline of r from f, scaled to ppem pixels per em.
func Outline(f *sfnt.Font, r rune, ppem fixed.Int26_6) (*geom.Path2D, error) {
	var buf sfnt.Buffer
	gi, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("glyph: rune %q: %w", r, err)
	}
	if gi == 0 {
		Logger().Debug("glyph: missing glyph", slog.String("rune", string(r)))
		return nil, fmt.Errorf("%w %q", ErrMissingGlyph, r)
	}
	Logger().Debug("glyph: mapped rune", slog.String("rune", string(r)), slog.Int("index", int(gi)))
	p, err := geom.NewPath2D(geom.NonZero)
	if err != nil {
		return nil, err
	}
	if err := appendGlyph(p, f, &buf, gi, ppem, geom.Vec2{}); err != nil {
		return nil, err
	}
	return p, nil
}

// OutlineIndex is like [Outline] but takes a glyph index instead of a rune.
func OutlineIndex(f *sfnt.Font, gi sfnt.GlyphIndex, ppem fixed.Int26_6) (*geom.Path2D, error) {
	var buf sfnt.Buffer
	p, err := geom.NewPath2D(geom.NonZero)
	if err != nil {
		return nil, err
	}
	if err := appendGlyph(p, f, &buf, gi, ppem, geom.Vec2{}); err != nil {
		return nil, err
	}
	return p, nil
}

// Text lays out s on a single line starting at the origin and returns the
// union of its glyph outlines. Pen advances use the font's horizontal
// metrics and kerning. Runes without a glyph are drawn with glyph 0, the
// font's .notdef glyph.
func Text(f *sfnt.Font, s string, ppem fixed.Int26_6) (*geom.Path2D, error) {
	var buf sfnt.Buffer
	p, err := geom.NewPath2D(geom.NonZero)
	if err != nil {
		return nil, err
	}
	var pen fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for i, r := range []rune(s) {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph: rune %q: %w", r, err)
		}
		if gi == 0 {
			Logger().Debug("glyph: missing glyph", slog.String("rune", string(r)))
		}
		if i > 0 {
			k, err := f.Kern(&buf, prev, gi, ppem, font.HintingNone)
			switch {
			case err == nil:
				pen += k
			case !errors.Is(err, sfnt.ErrNotFound):
				return nil, fmt.Errorf("glyph: kern %d/%d: %w", prev, gi, err)
			}
		}
		if err := appendGlyph(p, f, &buf, gi, ppem, geom.Vec2{X: unfix(pen)}); err != nil {
			return nil, err
		}
		adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("glyph: advance of %d: %w", gi, err)
		}
		pen += adv
		prev = gi
	}
	return p, nil
}

// appendGlyph adds the contours of glyph gi to p, each one closed, offset by
// off.
func appendGlyph(p *geom.Path2D, f *sfnt.Font, buf *sfnt.Buffer, gi sfnt.GlyphIndex, ppem fixed.Int26_6, off geom.Vec2) error {
	segs, err := f.LoadGlyph(buf, gi, ppem, nil)
	if err != nil {
		return fmt.Errorf("glyph: load %d: %w", gi, err)
	}
	Logger().Debug("glyph: loaded", slog.Int("index", int(gi)), slog.Int("segments", len(segs)))

	pt := func(a fixed.Point26_6) (float64, float64) {
		return unfix(a.X) + off.X, unfix(a.Y) + off.Y
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				if err := p.ClosePath(); err != nil {
					return err
				}
			}
			x, y := pt(seg.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			err = p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			err = p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			cx1, cy1 := pt(seg.Args[0])
			cx2, cy2 := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			err = p.CurveTo(cx1, cy1, cx2, cy2, x, y)
		default:
			err = fmt.Errorf("glyph: unknown segment op %d", seg.Op)
		}
		if err != nil {
			return fmt.Errorf("glyph: outline of %d: %w", gi, err)
		}
	}
	if open {
		return p.ClosePath()
	}
	return nil
}
