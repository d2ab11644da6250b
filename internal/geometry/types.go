// Package geometry holds the stateless kernel shared by every layout stage:
// axis-aligned rectangles and orthogonal polygons, boundary-inclusive
// containment, shared-boundary segments, adjacency lengths, and the grid
// sampling used to validate floor partitions.
package geometry

import "math"

const eps = 1e-9

// Point is a position on the lot plane. X runs across the lot width, Z runs
// from the street toward the rear.
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Rect is an axis-aligned rectangle stored as its two extreme corners.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ float64
}

func NewRect(x0, z0, x1, z1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if z1 < z0 {
		z0, z1 = z1, z0
	}
	return Rect{MinX: x0, MinZ: z0, MaxX: x1, MaxZ: z1}
}

func (r Rect) Width() float64   { return r.MaxX - r.MinX }
func (r Rect) Depth() float64   { return r.MaxZ - r.MinZ }
func (r Rect) Area() float64    { return r.Width() * r.Depth() }
func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }
func (r Rect) CenterZ() float64 { return (r.MinZ + r.MaxZ) / 2 }

// MinDimension is the shorter side.
func (r Rect) MinDimension() float64 {
	return math.Min(r.Width(), r.Depth())
}

// ContainsPoint is boundary inclusive.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX-eps && p.X <= r.MaxX+eps &&
		p.Z >= r.MinZ-eps && p.Z <= r.MaxZ+eps
}

// Outline returns the rectangle's corners as a polygon, counter-clockwise
// from the front-left corner.
func (r Rect) Outline() Polygon {
	return Polygon{
		{X: r.MinX, Z: r.MinZ},
		{X: r.MaxX, Z: r.MinZ},
		{X: r.MaxX, Z: r.MaxZ},
		{X: r.MinX, Z: r.MaxZ},
	}
}

// Segment is an axis-aligned line segment.
type Segment struct {
	A, B Point
}

func (s Segment) Length() float64 {
	return math.Abs(s.B.X-s.A.X) + math.Abs(s.B.Z-s.A.Z)
}

func (s Segment) Horizontal() bool { return math.Abs(s.A.Z-s.B.Z) <= eps }
func (s Segment) Vertical() bool   { return math.Abs(s.A.X-s.B.X) <= eps }

// Mid returns the segment midpoint.
func (s Segment) Mid() Point {
	return Point{X: (s.A.X + s.B.X) / 2, Z: (s.A.Z + s.B.Z) / 2}
}

// Overlap1D returns the length of the overlap of [a0,a1] and [b0,b1].
// Arguments may be given in either order.
func Overlap1D(a0, a1, b0, b1 float64) float64 {
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	if b1 < b0 {
		b0, b1 = b1, b0
	}
	lo := math.Max(a0, b0)
	hi := math.Min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
