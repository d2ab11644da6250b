package layout

import (
	"math"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
	"github.com/suburbsim/street-layout-engine/internal/rng"
)

// Fixed street-front depths and clearances.
const (
	curbDepth        = 0.4
	sidewalkRear     = 1.6
	rearClearance    = 6.0  // footprint rear edge stays this far from the lot rear
	minExteriorEdge  = 1.25 // no exterior edge segment shorter than this
	minWideBandDepth = 9.4  // keeps the floor generators' spine feasible
	rearModChance    = 0.55
)

// generatePlot partitions the lot into the fixed plot region set and builds
// the footprint polygon. Every choice is re-derived through closed-form
// clamping rather than retried; the stage raises a descriptive error only
// when a derived configuration still cannot satisfy its constraints, which
// the input ranges are designed to rule out.
//
// Generation is canonical: the driveway is always on the low-X side here.
// The returned flag asks the pipeline to mirror the finished house when the
// stream chose the other side.
func generatePlot(ctx *Context) (FloorModel, bool, error) {
	s := ctx.Stream("plot")
	const stage = "plot"

	mirrored := s.Bool(0.5)
	hw := ctx.BuildableWidth()
	lotW := ctx.LotWidth

	wDrive := quant(s.Float(2.5, 3.5))
	wWalk := quant(s.Float(1.0, 1.5))
	zFront := quant(s.Float(2.4, ctx.MaxFrontSetback()))

	// The walkway must end up under the spine band, whose position the first
	// floor clamps around it; this range keeps that clamp feasible for every
	// buildable width.
	wx0 := quant(s.Float(4.2, math.Min(5.6, hw-4.4)))
	wx1 := wx0 + wWalk

	maxRear := ctx.LotDepth - rearClearance
	minArea := ctx.MinFootprintArea()
	minDepth := math.Max(minArea/hw, minWideBandDepth)
	maxDepth := maxRear - zFront
	if minDepth > maxDepth {
		return FloorModel{}, false, stageErrf(stage, ctx.House,
			"lot cannot hold a %v-area footprint behind setback %v", minArea, zFront)
	}
	depth := clampf(quant(s.Float(minDepth, math.Min(maxDepth, minDepth+5))), quant(minDepth+0.05), maxDepth)
	zRear := quant(zFront + depth)
	depth = zRear - zFront

	footprint := geometry.Rect{MinX: 0, MinZ: zFront, MaxX: hw, MaxZ: zRear}.Outline()

	// With ~55% probability apply exactly one rear modification: either a
	// notch removed from the rear or a rectangular bump behind it. Sizing is
	// clamped so exterior edges stay >= minExteriorEdge, the footprint area
	// stays above its bedroom-derived minimum, and the rear clearance holds.
	if s.Bool(rearModChance) {
		if s.Bool(0.5) {
			footprint = applyNotch(s, footprint, hw, zFront, zRear, minArea)
		} else {
			footprint = applyExtension(s, footprint, hw, zRear, maxRear)
		}
	}
	footprint = geometry.Simplify(footprint)
	if _, ok := InferShape(footprint); !ok {
		return FloorModel{}, false, stageErrf(stage, ctx.House, "footprint fell outside the shape family: %v", footprint)
	}
	if a := footprint.Area(); a < minArea-1e-6 {
		return FloorModel{}, false, stageErrf(stage, ctx.House, "footprint area %.2f below minimum %.0f", a, minArea)
	}

	fpBounds := footprint.Bounds()
	zRearMost := fpBounds.MaxZ

	regions := []Region{
		PolyRegion(RegionHouse, SurfaceConcrete, footprint),
		RectRegion(RegionCurb, SurfaceConcrete, geometry.NewRect(0, 0, lotW, curbDepth)),
		RectRegion(RegionSidewalk, SurfaceConcrete, geometry.NewRect(wDrive, curbDepth, lotW, sidewalkRear)),
		RectRegion(RegionDrivewayNear, SurfaceAsphalt, geometry.NewRect(0, curbDepth, wDrive, sidewalkRear)),
		RectRegion(RegionDrivewayFar, SurfaceAsphalt, geometry.NewRect(0, sidewalkRear, wDrive, zFront)),
		RectRegion(RegionLawnNear, SurfaceGrass, geometry.NewRect(wDrive, sidewalkRear, wx0, zFront)),
		RectRegion(RegionWalkway, SurfaceConcrete, geometry.NewRect(wx0, sidewalkRear, wx1, zFront)),
		RectRegion(RegionLawnFar, SurfaceGrass, geometry.NewRect(wx1, sidewalkRear, hw, zFront)),
		backyardRegion(footprint, hw, zRearMost, ctx.LotDepth),
	}

	if lotW > hw {
		// Sideyard padding between the buildable width and the lot edge,
		// split at the front setback and the footprint rear.
		for _, band := range [][2]float64{{sidewalkRear, zFront}, {zFront, zRearMost}, {zRearMost, ctx.LotDepth}} {
			regions = append(regions, RectRegion(RegionSideyard, SurfaceGrass,
				geometry.NewRect(hw, band[0], lotW, band[1])))
		}
	}

	floor := FloorModel{Regions: regions}
	lot := geometry.Rect{MinX: 0, MinZ: 0, MaxX: lotW, MaxZ: ctx.LotDepth}
	gaps, overlaps := geometry.PartitionFaults(lot.Outline(), floor.Outlines())
	if len(gaps) > 0 || len(overlaps) > 0 {
		return FloorModel{}, false, stageErrf(stage, ctx.House,
			"lot partition faulted: %d gaps %d overlaps (first gap %v)", len(gaps), len(overlaps), firstPoint(gaps))
	}
	return floor, mirrored, nil
}

// applyNotch removes a rectangle from the footprint rear. When no sizing
// satisfies every constraint it returns the footprint unmodified; the plot
// re-derives rather than retries.
func applyNotch(s *rng.Stream, fp geometry.Polygon, hw, zFront, zRear, minArea float64) geometry.Polygon {
	depth := zRear - zFront
	// Work on the 0.1 grid with 1.3 as the working minimum so quantization
	// can never push an exterior edge under minExteriorEdge.
	const minEdgeQ = 1.3
	nwMax := gridFloor(hw - 2*minEdgeQ)
	if nwMax < 2.5 {
		return fp
	}
	nw := clampf(quant(s.Float(2.5, nwMax)), 2.5, nwMax)
	ndMax := math.Min(3.5, depth-minWideBandDepth)
	ndMax = gridFloor(math.Min(ndMax, (hw*depth-minArea)/nw))
	if ndMax < minEdgeQ {
		return fp
	}
	nd := clampf(quant(s.Float(minEdgeQ, ndMax)), minEdgeQ, ndMax)
	nx0 := clampf(quant(s.Float(minEdgeQ, hw-minEdgeQ-nw)), minEdgeQ, gridFloor(hw-minEdgeQ-nw))
	nx1 := nx0 + nw
	zInner := quant(zRear - nd)
	return geometry.Polygon{
		{X: 0, Z: zFront}, {X: hw, Z: zFront},
		{X: hw, Z: zRear}, {X: nx1, Z: zRear},
		{X: nx1, Z: zInner}, {X: nx0, Z: zInner},
		{X: nx0, Z: zRear}, {X: 0, Z: zRear},
	}
}

// applyExtension bumps a rectangle out behind the rear edge, flush with one
// side so only one new exterior corner appears.
func applyExtension(s *rng.Stream, fp geometry.Polygon, hw, zRear, maxRear float64) geometry.Polygon {
	edMax := gridFloor(math.Min(3.0, maxRear-zRear))
	if edMax < 2.5 {
		return fp
	}
	ed := clampf(quant(s.Float(2.5, edMax)), 2.5, edMax)
	ewMax := gridFloor(hw - 1.3)
	ew := clampf(quant(s.Float(2.5, ewMax)), 2.5, ewMax)
	zExt := quant(zRear + ed)
	zFront := fp.Bounds().MinZ
	if s.Bool(0.5) {
		// flush with the driveway side
		return geometry.Polygon{
			{X: 0, Z: zFront}, {X: hw, Z: zFront},
			{X: hw, Z: zRear}, {X: ew, Z: zRear},
			{X: ew, Z: zExt}, {X: 0, Z: zExt},
		}
	}
	return geometry.Polygon{
		{X: 0, Z: zFront}, {X: hw, Z: zFront},
		{X: hw, Z: zExt}, {X: hw - ew, Z: zExt},
		{X: hw - ew, Z: zRear}, {X: 0, Z: zRear},
	}
}

// backyardRegion is the remaining lot area behind the footprint: a rectangle
// for a plain rectangular footprint, otherwise a single polygon tracing the
// footprint's rear boundary (two wing traversals in the notch case).
func backyardRegion(fp geometry.Polygon, hw, zRearMost, lotDepth float64) Region {
	shape, _ := InferShape(fp)
	if shape == ShapeRectangle {
		return RectRegion(RegionBackyard, SurfaceGrass, geometry.NewRect(0, zRearMost, hw, lotDepth))
	}
	trace := rearBoundaryTrace(fp)
	poly := make(geometry.Polygon, 0, len(trace)+2)
	poly = append(poly, trace...)
	poly = append(poly, geometry.Point{X: hw, Z: lotDepth}, geometry.Point{X: 0, Z: lotDepth})
	return PolyRegion(RegionBackyard, SurfaceGrass, poly)
}

// rearBoundaryTrace walks the footprint's rear boundary from x=0 to x=width,
// returning the vertex sequence the backyard polygon follows.
func rearBoundaryTrace(fp geometry.Polygon) []geometry.Point {
	b := fp.Bounds()
	// Collect the rear z at every vertical edge interval by scanning the
	// horizontal edges that face the rear (the ones not on the front line).
	type span struct {
		x0, x1, z float64
	}
	var spans []span
	for _, e := range fp.Edges() {
		if !e.Horizontal() || math.Abs(e.A.Z-b.MinZ) <= 1e-9 {
			continue
		}
		x0, x1 := math.Min(e.A.X, e.B.X), math.Max(e.A.X, e.B.X)
		spans = append(spans, span{x0: x0, x1: x1, z: e.A.Z})
	}
	// Order spans left to right and emit the staircase.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].x0 < spans[j-1].x0; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
	var out []geometry.Point
	for _, sp := range spans {
		out = append(out, geometry.Point{X: sp.x0, Z: sp.z}, geometry.Point{X: sp.x1, Z: sp.z})
	}
	return out
}

// gridFloor snaps v down to the 0.1 grid.
func gridFloor(v float64) float64 {
	return math.Floor(v*10+1e-9) / 10
}

func firstPoint(ps []geometry.Point) geometry.Point {
	if len(ps) == 0 {
		return geometry.Point{}
	}
	return ps[0]
}
