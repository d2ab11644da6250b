package geometry

import "math"

// Polygon is an ordered, implicitly closed vertex list. Every edge must be
// axis-aligned.
type Polygon []Point

// Edges returns the closed edge list, including the edge from the last vertex
// back to the first.
func (pg Polygon) Edges() []Segment {
	out := make([]Segment, 0, len(pg))
	for i := range pg {
		out = append(out, Segment{A: pg[i], B: pg[(i+1)%len(pg)]})
	}
	return out
}

// Area is the shoelace area, independent of winding.
func (pg Polygon) Area() float64 {
	sum := 0.0
	for i := range pg {
		a := pg[i]
		b := pg[(i+1)%len(pg)]
		sum += a.X*b.Z - b.X*a.Z
	}
	return math.Abs(sum) / 2
}

// Bounds returns the bounding rectangle.
func (pg Polygon) Bounds() Rect {
	r := Rect{MinX: math.Inf(1), MinZ: math.Inf(1), MaxX: math.Inf(-1), MaxZ: math.Inf(-1)}
	for _, p := range pg {
		r.MinX = math.Min(r.MinX, p.X)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MinZ = math.Min(r.MinZ, p.Z)
		r.MaxZ = math.Max(r.MaxZ, p.Z)
	}
	return r
}

// Simplify removes duplicate and collinear vertices so that shape inference
// downstream sees a minimal vertex set.
func Simplify(pg Polygon) Polygon {
	if len(pg) < 3 {
		return pg
	}
	// Drop consecutive duplicates first.
	dedup := make(Polygon, 0, len(pg))
	for _, p := range pg {
		if len(dedup) > 0 {
			last := dedup[len(dedup)-1]
			if math.Abs(last.X-p.X) <= eps && math.Abs(last.Z-p.Z) <= eps {
				continue
			}
		}
		dedup = append(dedup, p)
	}
	if len(dedup) > 1 {
		first, last := dedup[0], dedup[len(dedup)-1]
		if math.Abs(first.X-last.X) <= eps && math.Abs(first.Z-last.Z) <= eps {
			dedup = dedup[:len(dedup)-1]
		}
	}
	// Drop vertices collinear with both neighbors.
	out := make(Polygon, 0, len(dedup))
	n := len(dedup)
	for i := 0; i < n; i++ {
		prev := dedup[(i+n-1)%n]
		cur := dedup[i]
		next := dedup[(i+1)%n]
		sameX := math.Abs(prev.X-cur.X) <= eps && math.Abs(cur.X-next.X) <= eps
		sameZ := math.Abs(prev.Z-cur.Z) <= eps && math.Abs(cur.Z-next.Z) <= eps
		if sameX || sameZ {
			continue
		}
		out = append(out, cur)
	}
	return out
}

// OnBoundary reports whether p lies on one of the polygon's axis-aligned
// edges.
func (pg Polygon) OnBoundary(p Point) bool {
	for _, e := range pg.Edges() {
		if e.Vertical() {
			lo, hi := math.Min(e.A.Z, e.B.Z), math.Max(e.A.Z, e.B.Z)
			if math.Abs(p.X-e.A.X) <= eps && p.Z >= lo-eps && p.Z <= hi+eps {
				return true
			}
		} else {
			lo, hi := math.Min(e.A.X, e.B.X), math.Max(e.A.X, e.B.X)
			if math.Abs(p.Z-e.A.Z) <= eps && p.X >= lo-eps && p.X <= hi+eps {
				return true
			}
		}
	}
	return false
}

// ContainsPoint is the boundary-inclusive even-odd test. Boundary points are
// matched exactly against the axis-aligned edges before ray casting so that
// lot and room borders never fall through a tolerance gap.
func (pg Polygon) ContainsPoint(p Point) bool {
	if pg.OnBoundary(p) {
		return true
	}
	return pg.interior(p)
}

// interior is the even-odd ray cast along +X, exclusive of the boundary.
func (pg Polygon) interior(p Point) bool {
	inside := false
	n := len(pg)
	for i := 0; i < n; i++ {
		a := pg[i]
		b := pg[(i+1)%n]
		if math.Abs(a.X-b.X) > eps {
			continue // horizontal edge never crosses a horizontal ray
		}
		if (a.Z > p.Z) != (b.Z > p.Z) && a.X > p.X {
			inside = !inside
		}
	}
	return inside
}

// ContainsRect reports whether every corner of r lies inside or on pg.
func (pg Polygon) ContainsRect(r Rect) bool {
	for _, p := range r.Outline() {
		if !pg.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// ContainsPolygon reports whether every vertex of inner lies inside or on pg.
func (pg Polygon) ContainsPolygon(inner Polygon) bool {
	for _, p := range inner {
		if !pg.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// DistinctZ returns the polygon's distinct Z coordinates in ascending order.
// The footprint shape family (rectangle, rear extension, rear notch) is
// inferred from the size of this set.
func (pg Polygon) DistinctZ() []float64 {
	return distinctCoords(pg, func(p Point) float64 { return p.Z })
}

// DistinctX returns the polygon's distinct X coordinates in ascending order.
func (pg Polygon) DistinctX() []float64 {
	return distinctCoords(pg, func(p Point) float64 { return p.X })
}

func distinctCoords(pg Polygon, get func(Point) float64) []float64 {
	var out []float64
	for _, p := range pg {
		v := get(p)
		found := false
		for _, o := range out {
			if math.Abs(o-v) <= eps {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
