package geom

import (
	"fmt"
	"iter"
)

// PathIterator is a forward-only cursor over the segments of a path. It
// cannot be restarted; obtain a new iterator to traverse a path again.
//
// A typical loop looks like this:
//
//	var coords [6]float64
//	for it := p.Iterator(nil); !it.IsDone(); it.Next() {
//		typ, err := it.CurrentSegment(coords[:])
//		...
//	}
type PathIterator interface {
	// WindingRule returns the winding rule of the underlying path.
	WindingRule() WindingRule
	// Index returns the offset of the current segment's first coordinate
	// in Points. Only Next moves it: after CurrentSegment, Index still
	// refers to the segment just read, not to the one after it.
	Index() int
	// Points returns the untransformed coordinate buffer of the underlying
	// path. It must not be modified.
	Points() []float64
	// Type returns the type of the current segment. It must not be called
	// once IsDone reports true.
	Type() SegmentType
	IsDone() bool
	// Next advances to the following segment.
	Next()
	// CurrentSegment copies the current segment's coordinates, mapped by
	// the iterator's transform, into coords and returns the segment type.
	// coords must have room for [SegmentType.Coords] values. It returns an
	// error wrapping [ErrIteratorDone] when the iterator is exhausted.
	CurrentSegment(coords []float64) (SegmentType, error)
}

// pathIterator walks a Path2D's buffers. Both cursors only ever increase.
type pathIterator struct {
	p         *Path2D
	t         *AffineTransform
	typeIndex int
	pointIdx  int
}

var _ PathIterator = (*pathIterator)(nil)

// Iterator returns an iterator over the segments of p whose coordinates are
// mapped by t as they are read. t may be nil. Neither p nor t may be
// modified while the iterator is in use.
func (p *Path2D) Iterator(t *AffineTransform) PathIterator {
	return &pathIterator{p: p, t: t}
}

func (it *pathIterator) WindingRule() WindingRule { return it.p.rule }
func (it *pathIterator) Index() int               { return it.pointIdx }
func (it *pathIterator) Points() []float64        { return it.p.points }
func (it *pathIterator) Type() SegmentType        { return it.p.types[it.typeIndex] }
func (it *pathIterator) IsDone() bool             { return it.typeIndex >= len(it.p.types) }

func (it *pathIterator) Next() {
	if it.IsDone() {
		return
	}
	it.pointIdx += it.p.types[it.typeIndex].Coords()
	it.typeIndex++
}

func (it *pathIterator) CurrentSegment(coords []float64) (SegmentType, error) {
	if it.IsDone() {
		return 0, fmt.Errorf("%w: segment %d of %d", ErrIteratorDone, it.typeIndex, len(it.p.types))
	}
	typ := it.p.types[it.typeIndex]
	n := typ.Coords()
	if len(coords) < n {
		return 0, fmt.Errorf("%w: %s needs %d coordinates, got %d", ErrBufferSize, typ, n, len(coords))
	}
	copy(coords[:n], it.p.points[it.pointIdx:it.pointIdx+n])
	if it.t != nil {
		_ = it.t.TransformCoords(coords[:n], coords[:n])
	}
	return typ, nil
}

// Elements returns a sequence of the segments of p, mapped by t (which may
// be nil). The coordinate slice is reused between iterations and is only
// valid until the next one.
func (p *Path2D) Elements(t *AffineTransform) iter.Seq2[SegmentType, []float64] {
	return Elements(p.Iterator(t))
}

// Elements adapts a PathIterator to a sequence. Iteration stops early if the
// iterator reports an error.
func Elements(it PathIterator) iter.Seq2[SegmentType, []float64] {
	return func(yield func(SegmentType, []float64) bool) {
		var coords [6]float64
		for ; !it.IsDone(); it.Next() {
			typ, err := it.CurrentSegment(coords[:])
			if err != nil {
				return
			}
			if !yield(typ, coords[:typ.Coords()]) {
				return
			}
		}
	}
}
