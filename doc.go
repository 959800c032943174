// Package geom provides a 2D affine transform, a general path of lines and
// Bézier curves, and the crossing-number machinery that decides whether points
// and rectangles lie inside such paths.
//
// # Affine transforms
//
// [AffineTransform] is a 2×3 matrix mapping (x, y) to
//
//	x' = m00·x + m01·y + m02
//	y' = m10·x + m11·y + m12
//
// Transforms are mutable and are usually handled by pointer. Their shape is
// classified lazily into a [TransformType] bit set and cached until the next
// mutation. Compositions follow the usual convention: [AffineTransform.Concatenate]
// applies the argument first, [AffineTransform.PreConcatenate] applies it last.
//
// Batch operations such as [AffineTransform.TransformCoords] accept
// overlapping source and destination slices; every source pair is read before
// it is overwritten.
//
// # Paths
//
// [Path2D] stores segment types and their coordinates in two flat buffers,
// together with a [WindingRule]. Paths are built with [Path2D.MoveTo],
// [Path2D.LineTo], [Path2D.QuadTo], [Path2D.CurveTo] and [Path2D.ClosePath],
// or parsed from SVG path data with [ParseSVG]. Every segment after the first
// requires a preceding MoveTo, and consecutive MoveTos coalesce.
//
// A [PathIterator] walks a path segment by segment, optionally mapping
// coordinates through a transform. [Path2D.Elements] offers the same as a
// range-over-func sequence.
//
// # Containment
//
// Containment is decided by casting a ray from the query point towards +y and
// summing signed crossings with every segment ([CrossShape]). Curve crossings
// are found by solving the segment's polynomials ([SolveQuad], [SolveCubic]).
// Rectangles are tested with [IntersectShape], which reports
// [CrossingBoundary] as soon as the path's boundary enters the rectangle.
//
// Points that coincide with a vertex of the path are reported as outside.
// Other points on the boundary may be reported either way.
package geom
