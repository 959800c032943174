package geom

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/image/math/f64"
)

// Epsilon is the tolerance used to decide whether a determinant, a basis dot
// product or a trigonometric result is effectively zero.
const Epsilon = 1e-10

// TransformType classifies an [AffineTransform]. Values other than
// [TypeUnknown] are bit sets.
type TransformType int

const (
	TypeUnknown TransformType = -1

	TypeIdentity         TransformType = 0
	TypeTranslation      TransformType = 1
	TypeUniformScale     TransformType = 2
	TypeGeneralScale     TransformType = 4
	TypeQuadrantRotation TransformType = 8
	TypeGeneralRotation  TransformType = 16
	TypeGeneralTransform TransformType = 32
	TypeFlip             TransformType = 64

	TypeMaskScale    = TypeUniformScale | TypeGeneralScale
	TypeMaskRotation = TypeQuadrantRotation | TypeGeneralRotation
)

func (typ TransformType) String() string {
	if typ == TypeUnknown {
		return "Unknown"
	}
	if typ == TypeIdentity {
		return "Identity"
	}
	names := [...]string{
		"Translation",
		"UniformScale",
		"GeneralScale",
		"QuadrantRotation",
		"GeneralRotation",
		"GeneralTransform",
		"Flip",
	}
	s := ""
	for i, name := range names {
		if typ&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	return s
}

// AffineTransform describes an affine transform via six coefficients,
// representing the map
//
//	x' = m00·x + m01·y + m02
//	y' = m10·x + m11·y + m12
//
// AffineTransform is mutable. Every mutator invalidates the cached
// classification returned by [AffineTransform.Type]. Transforms shared
// between goroutines must not be mutated; Clone them first.
//
// Use [NewAffineTransform] to obtain the identity; the zero value has all
// coefficients set to zero. Transforms are compared with
// [AffineTransform.Equal]. The type is deliberately not comparable with ==
// and cannot be used as a map key, as no hash consistent with Equal is
// defined.
type AffineTransform struct {
	_ [0]func()

	m00, m10, m01, m11 float64
	m02, m12           float64

	// typ caches the classification offset by one, so that zero (including
	// the zero value) reads as TypeUnknown.
	typ TransformType
}

func (t *AffineTransform) cache(typ TransformType) { t.typ = typ + 1 }

// NewAffineTransform returns the identity transform.
func NewAffineTransform() *AffineTransform {
	return &AffineTransform{m00: 1, m11: 1, typ: TypeIdentity + 1}
}

// NewAffineTransformFrom returns the transform with the given coefficients.
func NewAffineTransformFrom(m00, m10, m01, m11, m02, m12 float64) *AffineTransform {
	return &AffineTransform{
		m00: m00, m10: m10, m01: m01, m11: m11,
		m02: m02, m12: m12,
	}
}

// NewAffineTransformMatrix returns a transform from a flat coefficient slice
// in the order m00, m10, m01, m11[, m02, m12]. A slice of length 4 leaves the
// translation at zero; any length other than 4 or 6 is an [ErrBufferSize].
func NewAffineTransformMatrix(matrix []float64) (*AffineTransform, error) {
	if len(matrix) != 4 && len(matrix) != 6 {
		return nil, fmt.Errorf("%w: matrix has %d coefficients, need 4 or 6", ErrBufferSize, len(matrix))
	}
	t := &AffineTransform{
		m00: matrix[0], m10: matrix[1], m01: matrix[2], m11: matrix[3],
	}
	if len(matrix) == 6 {
		t.m02 = matrix[4]
		t.m12 = matrix[5]
	}
	return t, nil
}

// NewAffineTransformFromAff3 converts an [f64.Aff3], as used by
// golang.org/x/image/draw, into an AffineTransform.
func NewAffineTransformFromAff3(m f64.Aff3) *AffineTransform {
	return NewAffineTransformFrom(m[0], m[3], m[1], m[4], m[2], m[5])
}

// NewTranslation returns a transform translating by (tx, ty).
func NewTranslation(tx, ty float64) *AffineTransform {
	return new(AffineTransform).SetToTranslation(tx, ty)
}

// NewScale returns a transform scaling by (sx, sy).
func NewScale(sx, sy float64) *AffineTransform {
	return new(AffineTransform).SetToScale(sx, sy)
}

// NewShear returns a transform shearing by (shx, shy).
func NewShear(shx, shy float64) *AffineTransform {
	return new(AffineTransform).SetToShear(shx, shy)
}

// NewRotation returns a transform rotating by angle radians about the origin.
func NewRotation(angle float64) *AffineTransform {
	return new(AffineTransform).SetToRotation(angle)
}

// NewRotationAbout returns a transform rotating by angle radians about (px, py).
func NewRotationAbout(angle, px, py float64) *AffineTransform {
	return new(AffineTransform).SetToRotationAbout(angle, px, py)
}

// Aff3 returns the transform in the layout used by golang.org/x/image/draw.
func (t *AffineTransform) Aff3() f64.Aff3 {
	return f64.Aff3{
		t.m00, t.m01, t.m02,
		t.m10, t.m11, t.m12,
	}
}

// Clone returns an independent copy of t, including its cached type.
func (t *AffineTransform) Clone() *AffineTransform {
	c := *t
	return &c
}

// Type returns the classification of t, computing and caching it if
// necessary.
//
// A transform whose basis vectors are not orthogonal is reported as
// [TypeGeneralTransform] and nothing else.
func (t *AffineTransform) Type() TransformType {
	if t.typ == 0 {
		t.cache(t.classify())
	}
	return t.typ - 1
}

func (t *AffineTransform) classify() TransformType {
	if math.Abs(t.m00*t.m01+t.m10*t.m11) >= Epsilon {
		return TypeGeneralTransform
	}

	typ := TypeIdentity
	if t.m02 != 0 || t.m12 != 0 {
		typ |= TypeTranslation
	} else if t.m00 == 1 && t.m11 == 1 && t.m01 == 0 && t.m10 == 0 {
		return TypeIdentity
	}

	if t.m00*t.m11-t.m01*t.m10 < 0 {
		typ |= TypeFlip
	}

	dx := t.m00*t.m00 + t.m10*t.m10
	dy := t.m01*t.m01 + t.m11*t.m11
	if dx != dy {
		typ |= TypeGeneralScale
	} else if dx != 1 {
		typ |= TypeUniformScale
	}

	if (t.m00 == 0 && t.m11 == 0) || (t.m10 == 0 && t.m01 == 0 && (t.m00 < 0 || t.m11 < 0)) {
		typ |= TypeQuadrantRotation
	} else if t.m01 != 0 || t.m10 != 0 {
		typ |= TypeGeneralRotation
	}
	return typ
}

// IsIdentity reports whether t is the identity transform.
func (t *AffineTransform) IsIdentity() bool { return t.Type() == TypeIdentity }

func (t *AffineTransform) ScaleX() float64     { return t.m00 }
func (t *AffineTransform) ScaleY() float64     { return t.m11 }
func (t *AffineTransform) ShearX() float64     { return t.m01 }
func (t *AffineTransform) ShearY() float64     { return t.m10 }
func (t *AffineTransform) TranslateX() float64 { return t.m02 }
func (t *AffineTransform) TranslateY() float64 { return t.m12 }

// Coefficients returns the coefficients in the order m00, m10, m01, m11, m02,
// m12.
func (t *AffineTransform) Coefficients() [6]float64 {
	return [6]float64{t.m00, t.m10, t.m01, t.m11, t.m02, t.m12}
}

// Matrix copies the coefficients into dst in the order of [AffineTransform.Coefficients]. It
// writes four coefficients if dst has room for fewer than six.
func (t *AffineTransform) Matrix(dst []float64) error {
	if len(dst) < 4 {
		return fmt.Errorf("%w: matrix destination has length %d", ErrBufferSize, len(dst))
	}
	dst[0], dst[1], dst[2], dst[3] = t.m00, t.m10, t.m01, t.m11
	if len(dst) >= 6 {
		dst[4], dst[5] = t.m02, t.m12
	}
	return nil
}

// Determinant computes the determinant of the linear part.
func (t *AffineTransform) Determinant() float64 {
	return t.m00*t.m11 - t.m01*t.m10
}

// SetTransform overwrites all six coefficients.
func (t *AffineTransform) SetTransform(m00, m10, m01, m11, m02, m12 float64) *AffineTransform {
	t.m00, t.m10, t.m01, t.m11 = m00, m10, m01, m11
	t.m02, t.m12 = m02, m12
	t.cache(TypeUnknown)
	return t
}

// SetFrom makes t a copy of o.
func (t *AffineTransform) SetFrom(o *AffineTransform) *AffineTransform {
	t.SetTransform(o.m00, o.m10, o.m01, o.m11, o.m02, o.m12)
	t.typ = o.typ
	return t
}

func (t *AffineTransform) SetToIdentity() *AffineTransform {
	t.m00, t.m11 = 1, 1
	t.m10, t.m01, t.m02, t.m12 = 0, 0, 0, 0
	t.cache(TypeIdentity)
	return t
}

func (t *AffineTransform) SetToTranslation(tx, ty float64) *AffineTransform {
	t.m00, t.m11 = 1, 1
	t.m01, t.m10 = 0, 0
	t.m02, t.m12 = tx, ty
	if tx == 0 && ty == 0 {
		t.cache(TypeIdentity)
	} else {
		t.cache(TypeUnknown)
	}
	return t
}

func (t *AffineTransform) SetToScale(sx, sy float64) *AffineTransform {
	t.m00, t.m11 = sx, sy
	t.m10, t.m01, t.m02, t.m12 = 0, 0, 0, 0
	if sx != 1 || sy != 1 {
		t.cache(TypeUnknown)
	} else {
		t.cache(TypeIdentity)
	}
	return t
}

func (t *AffineTransform) SetToShear(shx, shy float64) *AffineTransform {
	t.m00, t.m11 = 1, 1
	t.m02, t.m12 = 0, 0
	t.m01, t.m10 = shx, shy
	if shx != 0 || shy != 0 {
		t.cache(TypeUnknown)
	} else {
		t.cache(TypeIdentity)
	}
	return t
}

// SetToRotation makes t a rotation by angle radians about the origin. A
// positive angle rotates the positive x axis towards the positive y axis.
//
// Sine and cosine within [Epsilon] of 0 or ±1 are snapped, so that rotations
// by multiples of π/2 are exact.
func (t *AffineTransform) SetToRotation(angle float64) *AffineTransform {
	sin, cos := math.Sincos(angle)
	if math.Abs(cos) < Epsilon {
		cos = 0
		if sin > 0 {
			sin = 1
		} else {
			sin = -1
		}
	} else if math.Abs(sin) < Epsilon {
		sin = 0
		if cos > 0 {
			cos = 1
		} else {
			cos = -1
		}
	}
	t.m00, t.m11 = cos, cos
	t.m01, t.m10 = -sin, sin
	t.m02, t.m12 = 0, 0
	t.cache(TypeUnknown)
	return t
}

// SetToRotationAbout makes t a rotation by angle radians about (px, py).
func (t *AffineTransform) SetToRotationAbout(angle, px, py float64) *AffineTransform {
	t.SetToRotation(angle)
	t.m02 = px*(1-t.m00) + py*t.m10
	t.m12 = py*(1-t.m00) - px*t.m10
	t.cache(TypeUnknown)
	return t
}

// scratch returns tmp, or a new transform if tmp is nil.
func scratch(tmp *AffineTransform) *AffineTransform {
	if tmp == nil {
		return new(AffineTransform)
	}
	return tmp
}

// Translate concatenates t with a translation by (tx, ty). tmp is used as
// scratch space and may be nil.
func (t *AffineTransform) Translate(tx, ty float64, tmp *AffineTransform) *AffineTransform {
	return t.Concatenate(scratch(tmp).SetToTranslation(tx, ty))
}

// Scale concatenates t with a scale by (sx, sy). tmp is used as scratch
// space and may be nil.
func (t *AffineTransform) Scale(sx, sy float64, tmp *AffineTransform) *AffineTransform {
	return t.Concatenate(scratch(tmp).SetToScale(sx, sy))
}

// Shear concatenates t with a shear by (shx, shy). tmp is used as scratch
// space and may be nil.
func (t *AffineTransform) Shear(shx, shy float64, tmp *AffineTransform) *AffineTransform {
	return t.Concatenate(scratch(tmp).SetToShear(shx, shy))
}

// Rotate concatenates t with a rotation by angle radians. tmp is used as
// scratch space and may be nil.
func (t *AffineTransform) Rotate(angle float64, tmp *AffineTransform) *AffineTransform {
	return t.Concatenate(scratch(tmp).SetToRotation(angle))
}

// RotateAbout concatenates t with a rotation by angle radians about (px,
// py). tmp is used as scratch space and may be nil.
func (t *AffineTransform) RotateAbout(angle, px, py float64, tmp *AffineTransform) *AffineTransform {
	return t.Concatenate(scratch(tmp).SetToRotationAbout(angle, px, py))
}

// Multiply returns l∘r, the transform that applies r first and then l.
// Neither argument is modified.
func Multiply(l, r *AffineTransform) *AffineTransform {
	return new(AffineTransform).setProduct(l, r)
}

// Concatenate sets t to t∘r: points are mapped by r first, then by the
// previous t.
func (t *AffineTransform) Concatenate(r *AffineTransform) *AffineTransform {
	return t.setProduct(t, r)
}

// PreConcatenate sets t to l∘t: points are mapped by the previous t first,
// then by l.
func (t *AffineTransform) PreConcatenate(l *AffineTransform) *AffineTransform {
	return t.setProduct(l, t)
}

// setProduct stores l∘r in t. t may alias l or r.
func (t *AffineTransform) setProduct(l, r *AffineTransform) *AffineTransform {
	l00, l10, l01, l11, l02, l12 := l.m00, l.m10, l.m01, l.m11, l.m02, l.m12
	r00, r10, r01, r11, r02, r12 := r.m00, r.m10, r.m01, r.m11, r.m02, r.m12
	t.m00 = l00*r00 + l01*r10
	t.m10 = l10*r00 + l11*r10
	t.m01 = l00*r01 + l01*r11
	t.m11 = l10*r01 + l11*r11
	t.m02 = l00*r02 + l01*r12 + l02
	t.m12 = l10*r02 + l11*r12 + l12
	t.cache(TypeUnknown)
	return t
}

func (t *AffineTransform) invertibleDet() (float64, error) {
	det := t.Determinant()
	if math.Abs(det) < Epsilon {
		return det, &NoninvertibleError{Det: det}
	}
	return det, nil
}

// CreateInverse returns the inverse of t. It returns an error wrapping
// [ErrNoninvertible] if the determinant is smaller than [Epsilon] in
// magnitude.
func (t *AffineTransform) CreateInverse() (*AffineTransform, error) {
	det, err := t.invertibleDet()
	if err != nil {
		return nil, err
	}
	return NewAffineTransformFrom(
		t.m11/det,
		-t.m10/det,
		-t.m01/det,
		t.m00/det,
		(t.m01*t.m12-t.m11*t.m02)/det,
		(t.m10*t.m02-t.m00*t.m12)/det,
	), nil
}

// Invert replaces t with its inverse. t is left unchanged on error.
func (t *AffineTransform) Invert() error {
	inv, err := t.CreateInverse()
	if err != nil {
		return err
	}
	t.SetFrom(inv)
	return nil
}

// TransformPoint maps pt by t.
func (t *AffineTransform) TransformPoint(pt Point) Point {
	return Point{
		X: pt.X*t.m00 + pt.Y*t.m01 + t.m02,
		Y: pt.X*t.m10 + pt.Y*t.m11 + t.m12,
	}
}

// DeltaTransform maps v by the linear part of t, ignoring translation.
func (t *AffineTransform) DeltaTransform(v Vec2) Vec2 {
	return Vec2{
		X: v.X*t.m00 + v.Y*t.m01,
		Y: v.X*t.m10 + v.Y*t.m11,
	}
}

// InverseTransformPoint maps pt by the inverse of t without constructing it.
func (t *AffineTransform) InverseTransformPoint(pt Point) (Point, error) {
	det, err := t.invertibleDet()
	if err != nil {
		return Point{}, err
	}
	x := pt.X - t.m02
	y := pt.Y - t.m12
	return Point{
		X: (x*t.m11 - y*t.m01) / det,
		Y: (y*t.m00 - x*t.m10) / det,
	}, nil
}

// TransformCoords maps the interleaved x, y pairs of src into dst. dst must
// have room for len(src) values and src must hold whole pairs. dst and src
// may overlap in any way.
func (t *AffineTransform) TransformCoords(dst, src []float64) error {
	if err := checkCoords(dst, src); err != nil {
		return err
	}
	m00, m10, m01, m11, m02, m12 := t.m00, t.m10, t.m01, t.m11, t.m02, t.m12
	eachPair(dst, src, func(x, y float64) (float64, float64) {
		return x*m00 + y*m01 + m02, x*m10 + y*m11 + m12
	})
	return nil
}

// DeltaTransformCoords is like TransformCoords but ignores translation.
func (t *AffineTransform) DeltaTransformCoords(dst, src []float64) error {
	if err := checkCoords(dst, src); err != nil {
		return err
	}
	m00, m10, m01, m11 := t.m00, t.m10, t.m01, t.m11
	eachPair(dst, src, func(x, y float64) (float64, float64) {
		return x*m00 + y*m01, x*m10 + y*m11
	})
	return nil
}

// InverseTransformCoords is like TransformCoords but maps by the inverse of
// t. Nothing is written if t is not invertible.
func (t *AffineTransform) InverseTransformCoords(dst, src []float64) error {
	if err := checkCoords(dst, src); err != nil {
		return err
	}
	det, err := t.invertibleDet()
	if err != nil {
		return err
	}
	m00, m10, m01, m11, m02, m12 := t.m00, t.m10, t.m01, t.m11, t.m02, t.m12
	eachPair(dst, src, func(x, y float64) (float64, float64) {
		x -= m02
		y -= m12
		return (x*m11 - y*m01) / det, (y*m00 - x*m10) / det
	})
	return nil
}

// TransformPoints maps src into dst, which must be at least as long as src.
// dst and src may overlap in any way.
func (t *AffineTransform) TransformPoints(dst, src []Point) error {
	if len(dst) < len(src) {
		return fmt.Errorf("%w: %d destination points for %d source points", ErrBufferSize, len(dst), len(src))
	}
	if overlapsAfter(dst[:len(src)], src) {
		for i := len(src) - 1; i >= 0; i-- {
			dst[i] = t.TransformPoint(src[i])
		}
		return nil
	}
	for i, pt := range src {
		dst[i] = t.TransformPoint(pt)
	}
	return nil
}

// TransformRect maps the low and high corners of r.
//
// The result is only the true image of r when t is a combination of scales
// and translations. Under rotation or shear the corners no longer bound the
// transformed rectangle; use [AffineTransform.TransformBoundingBox] instead.
func (t *AffineTransform) TransformRect(r Rect) Rect {
	lo := t.TransformPoint(Pt(r.X0, r.Y0))
	hi := t.TransformPoint(Pt(r.X1, r.Y1))
	return Rect{X0: lo.X, Y0: lo.Y, X1: hi.X, Y1: hi.Y}
}

// TransformBoundingBox computes the bounding box of a transformed rectangle.
//
// Returns the minimal [Rect] that encloses all four transformed corners of r.
// If the transform is axis-aligned, then this bounding box is "tight", in
// other words the returned rectangle is the transformed rectangle.
func (t *AffineTransform) TransformBoundingBox(r Rect) Rect {
	p00 := t.TransformPoint(Pt(r.X0, r.Y0))
	p01 := t.TransformPoint(Pt(r.X0, r.Y1))
	p10 := t.TransformPoint(Pt(r.X1, r.Y0))
	p11 := t.TransformPoint(Pt(r.X1, r.Y1))
	return NewRectFromPoints(p00, p01).Union(NewRectFromPoints(p10, p11))
}

// Equal reports whether t and o have bit-identical coefficients.
func (t *AffineTransform) Equal(o *AffineTransform) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.m00 == o.m00 && t.m01 == o.m01 && t.m02 == o.m02 &&
		t.m10 == o.m10 && t.m11 == o.m11 && t.m12 == o.m12
}

func (t *AffineTransform) String() string {
	return fmt.Sprintf("AffineTransform[[%g, %g, %g], [%g, %g, %g]]",
		t.m00, t.m01, t.m02, t.m10, t.m11, t.m12)
}

func checkCoords(dst, src []float64) error {
	if len(src)%2 != 0 {
		return fmt.Errorf("%w: source holds %d values, not whole pairs", ErrBufferSize, len(src))
	}
	if len(dst) < len(src) {
		return fmt.Errorf("%w: %d destination values for %d source values", ErrBufferSize, len(dst), len(src))
	}
	return nil
}

// eachPair applies f to every pair of src and stores the result in dst,
// walking backwards when a forward pass would clobber unread input.
func eachPair(dst, src []float64, f func(x, y float64) (float64, float64)) {
	n := len(src)
	if overlapsAfter(dst[:n], src) {
		for i := n - 2; i >= 0; i -= 2 {
			dst[i], dst[i+1] = f(src[i], src[i+1])
		}
		return
	}
	for i := 0; i < n; i += 2 {
		dst[i], dst[i+1] = f(src[i], src[i+1])
	}
}

// overlapsAfter reports whether dst begins strictly inside src's memory.
func overlapsAfter[T any](dst, src []T) bool {
	if len(dst) == 0 || len(src) == 0 {
		return false
	}
	var zero T
	s := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	d := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	return s < d && d < s+uintptr(len(src))*unsafe.Sizeof(zero)
}
