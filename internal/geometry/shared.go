package geometry

import (
	"math"
	"sort"
)

// SharedBoundary returns the maximal collinear overlaps between the edges of
// two outlines, merged so that an overlap split across several edges comes
// back as one segment. Segments are ordered deterministically.
func SharedBoundary(a, b Polygon) []Segment {
	type line struct {
		vertical bool
		coord    float64
	}
	intervals := map[line][][2]float64{}

	add := func(vertical bool, coord, lo, hi float64) {
		if hi-lo <= eps {
			return
		}
		k := line{vertical: vertical, coord: quantize(coord)}
		intervals[k] = append(intervals[k], [2]float64{lo, hi})
	}

	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			switch {
			case ea.Vertical() && eb.Vertical() && math.Abs(ea.A.X-eb.A.X) <= eps:
				lo := math.Max(math.Min(ea.A.Z, ea.B.Z), math.Min(eb.A.Z, eb.B.Z))
				hi := math.Min(math.Max(ea.A.Z, ea.B.Z), math.Max(eb.A.Z, eb.B.Z))
				add(true, ea.A.X, lo, hi)
			case ea.Horizontal() && eb.Horizontal() && math.Abs(ea.A.Z-eb.A.Z) <= eps:
				lo := math.Max(math.Min(ea.A.X, ea.B.X), math.Min(eb.A.X, eb.B.X))
				hi := math.Min(math.Max(ea.A.X, ea.B.X), math.Max(eb.A.X, eb.B.X))
				add(false, ea.A.Z, lo, hi)
			}
		}
	}

	var out []Segment
	for k, ivs := range intervals {
		for _, iv := range mergeIntervals(ivs) {
			if k.vertical {
				out = append(out, Segment{A: Point{X: k.coord, Z: iv[0]}, B: Point{X: k.coord, Z: iv[1]}})
			} else {
				out = append(out, Segment{A: Point{X: iv[0], Z: k.coord}, B: Point{X: iv[1], Z: k.coord}})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A.X != out[j].A.X {
			return out[i].A.X < out[j].A.X
		}
		if out[i].A.Z != out[j].A.Z {
			return out[i].A.Z < out[j].A.Z
		}
		return out[i].Length() > out[j].Length()
	})
	return out
}

// BestSharedSegment returns the longest shared boundary segment between two
// outlines; ties resolve to the lowest coordinates so the choice is stable
// across runs. ok is false when the outlines share no boundary.
func BestSharedSegment(a, b Polygon) (Segment, bool) {
	best := Segment{}
	found := false
	for _, s := range SharedBoundary(a, b) {
		if !found || s.Length() > best.Length()+eps {
			best = s
			found = true
		}
	}
	return best, found
}

func mergeIntervals(ivs [][2]float64) [][2]float64 {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i][0] < ivs[j][0] })
	var out [][2]float64
	for _, iv := range ivs {
		if n := len(out); n > 0 && iv[0] <= out[n-1][1]+eps {
			if iv[1] > out[n-1][1] {
				out[n-1][1] = iv[1]
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// AdjacencyLengths computes the shared-boundary length between every pair of
// outlines. Every edge is split into atomic pieces at all distinct X/Z cut
// lines contributed by every outline, and pieces are grouped by identity, so
// three or more regions meeting along one line are attributed correctly.
func AdjacencyLengths(outlines []Polygon) map[[2]int]float64 {
	var cutsX, cutsZ []float64
	for _, pg := range outlines {
		for _, p := range pg {
			cutsX = appendCut(cutsX, p.X)
			cutsZ = appendCut(cutsZ, p.Z)
		}
	}
	sort.Float64s(cutsX)
	sort.Float64s(cutsZ)

	type atomKey struct {
		vertical     bool
		coord, start int64
	}
	atoms := map[atomKey][]int{}

	for idx, pg := range outlines {
		for _, e := range pg.Edges() {
			if e.Length() <= eps {
				continue
			}
			if e.Vertical() {
				lo, hi := math.Min(e.A.Z, e.B.Z), math.Max(e.A.Z, e.B.Z)
				for _, piece := range splitAt(lo, hi, cutsZ) {
					k := atomKey{vertical: true, coord: qkey(e.A.X), start: qkey(piece[0])}
					atoms[k] = appendRegion(atoms[k], idx)
				}
			} else {
				lo, hi := math.Min(e.A.X, e.B.X), math.Max(e.A.X, e.B.X)
				for _, piece := range splitAt(lo, hi, cutsX) {
					k := atomKey{vertical: false, coord: qkey(e.A.Z), start: qkey(piece[0])}
					atoms[k] = appendRegion(atoms[k], idx)
				}
			}
		}
	}

	lengths := map[[2]int]float64{}
	for k, regions := range atoms {
		if len(regions) < 2 {
			continue
		}
		// Atomic pieces on one cut line all have the same extent; recover the
		// piece length from the key's start and the next cut.
		var ln float64
		if k.vertical {
			ln = nextCut(cutsZ, unq(k.start)) - unq(k.start)
		} else {
			ln = nextCut(cutsX, unq(k.start)) - unq(k.start)
		}
		for i := 0; i < len(regions); i++ {
			for j := i + 1; j < len(regions); j++ {
				lengths[pairKey(regions[i], regions[j])] += ln
			}
		}
	}
	return lengths
}

// PairKey orders a region index pair for adjacency lookups.
func PairKey(a, b int) [2]int { return pairKey(a, b) }

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func appendCut(cuts []float64, v float64) []float64 {
	for _, c := range cuts {
		if math.Abs(c-v) <= eps {
			return cuts
		}
	}
	return append(cuts, v)
}

func appendRegion(regions []int, idx int) []int {
	for _, r := range regions {
		if r == idx {
			return regions
		}
	}
	return append(regions, idx)
}

// splitAt cuts [lo,hi] at every cut strictly inside it.
func splitAt(lo, hi float64, cuts []float64) [][2]float64 {
	var out [][2]float64
	start := lo
	for _, c := range cuts {
		if c > start+eps && c < hi-eps {
			out = append(out, [2]float64{start, c})
			start = c
		}
	}
	out = append(out, [2]float64{start, hi})
	return out
}

func nextCut(cuts []float64, after float64) float64 {
	for _, c := range cuts {
		if c > after+eps {
			return c
		}
	}
	return after
}

func quantize(v float64) float64 { return math.Round(v*1e6) / 1e6 }
func qkey(v float64) int64       { return int64(math.Round(v * 1e6)) }
func unq(k int64) float64        { return float64(k) / 1e6 }
