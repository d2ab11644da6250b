package geometry

const (
	// SampleStep is the spacing of the interior validation grid.
	SampleStep = 0.5
	// SampleInset offsets the grid from the bounding box so samples stay off
	// quantized region boundaries.
	SampleInset = 0.25

	maxReportedFaults = 8
)

// PartitionFaults samples the interior of outer on a dense grid and checks
// that every sample is covered by exactly one part. It returns the first few
// uncovered points (gaps) and multiply-covered points (overlaps). Sampling is
// deliberate here: the splits that produce parts are quantized, so exact
// polygon boolean arithmetic buys nothing, and gaps and overlaps are the only
// failure modes that matter.
func PartitionFaults(outer Polygon, parts []Polygon) (gaps, overlaps []Point) {
	b := outer.Bounds()
	for x := b.MinX + SampleInset; x < b.MaxX; x += SampleStep {
		for z := b.MinZ + SampleInset; z < b.MaxZ; z += SampleStep {
			p := Point{X: x, Z: z}
			if !outer.interior(p) {
				continue
			}
			hits := 0
			for _, part := range parts {
				if part.ContainsPoint(p) {
					hits++
					if hits > 1 {
						break
					}
				}
			}
			switch {
			case hits == 0 && len(gaps) < maxReportedFaults:
				gaps = append(gaps, p)
			case hits > 1 && len(overlaps) < maxReportedFaults:
				overlaps = append(overlaps, p)
			}
		}
	}
	return gaps, overlaps
}
