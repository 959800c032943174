package geom

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by this package. Use [errors.Is] to test for them;
// most are wrapped with additional context.
var (
	// ErrNoninvertible is returned when inverting a transform whose
	// determinant is effectively zero.
	ErrNoninvertible = errors.New("geom: non-invertible transform")

	// ErrPathState is returned when a segment is appended to a path that has
	// no initial MoveTo, or when appending an unknown segment type.
	ErrPathState = errors.New("geom: invalid path state")

	// ErrWindingRule is returned for winding rule values other than EvenOdd
	// and NonZero.
	ErrWindingRule = errors.New("geom: invalid winding rule")

	// ErrIteratorDone is returned by CurrentSegment once the iterator is
	// exhausted.
	ErrIteratorDone = errors.New("geom: iterator out of bounds")

	// ErrBufferSize is returned when a destination buffer is too small.
	ErrBufferSize = errors.New("geom: buffer too small")
)

// NoninvertibleError reports the determinant of a transform that could not
// be inverted.
type NoninvertibleError struct {
	Det float64
}

func (e *NoninvertibleError) Error() string {
	return fmt.Sprintf("geom: non-invertible transform (determinant %g)", e.Det)
}

func (e *NoninvertibleError) Unwrap() error { return ErrNoninvertible }
