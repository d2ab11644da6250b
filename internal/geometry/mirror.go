package geometry

// Mirroring about the lot's vertical center line. Houses are generated with
// the driveway on the low-X side and flipped afterwards when the plot chose
// the other side, so the generators themselves stay single-cased.

// MirrorPoint reflects p across x = width/2.
func MirrorPoint(p Point, width float64) Point {
	return Point{X: width - p.X, Z: p.Z}
}

// MirrorRect reflects r across x = width/2.
func MirrorRect(r Rect, width float64) Rect {
	return NewRect(width-r.MaxX, r.MinZ, width-r.MinX, r.MaxZ)
}

// MirrorPolygon reflects pg across x = width/2, reversing the vertex order so
// the winding direction is preserved.
func MirrorPolygon(pg Polygon, width float64) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[len(pg)-1-i] = MirrorPoint(p, width)
	}
	return out
}

// MirrorSegment reflects s across x = width/2.
func MirrorSegment(s Segment, width float64) Segment {
	return Segment{A: MirrorPoint(s.A, width), B: MirrorPoint(s.B, width)}
}
