package layout

import (
	"math"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
)

// firstFloorAttempts bounds the retry loop; optional features switch off on
// later attempts to raise the odds of a valid partition.
const firstFloorAttempts = 12

type firstFloorOptions struct {
	dining  bool
	office  bool
	mudroom bool
}

// generateFirstFloorAttempt partitions the footprint into the first-floor
// room set for one attempt. The wide band is split into three X-bands: a
// garage band flush with the driveway, a spine band (foyer strip in front,
// hallway+stairs+bathroom behind), and a living band (living room, optional
// dining room and corner office, kitchen at the rear). Rear wings left by a
// notch become pantry/storage; a rear extension becomes the family room.
func generateFirstFloorAttempt(ctx *Context, plot *FloorModel, attempt int) (FloorModel, error) {
	const stage = "firstFloor"
	s := ctx.AttemptStream(stage, attempt)

	house := plot.Region(RegionHouse)
	walkway := plot.Region(RegionWalkway)
	driveway := plot.Region(RegionDrivewayFar)
	if house == nil || walkway == nil || driveway == nil {
		return FloorModel{}, stageErrf(stage, ctx.House, "plot is missing houseregion/walkway/driveway")
	}
	fp := house.Outline()
	shape, ok := InferShape(fp)
	if !ok {
		return FloorModel{}, stageErrf(stage, ctx.House, "footprint outside the shape family")
	}
	band := WideBand(fp)
	z0, z1 := band.MinZ, band.MaxZ
	hw := band.Width()
	bandDepth := z1 - z0

	diningRoll := s.Bool(0.6)
	officeRoll := s.Bool(0.35)
	mudroomRoll := s.Bool(0.8)
	opts := firstFloorOptions{
		dining:  diningRoll && attempt < 6,
		office:  officeRoll && attempt < 4,
		mudroom: mudroomRoll && attempt < 8,
	}

	// X-band positions. The spine is clamped to cover at least one unit of
	// the walkway so the foyer's exterior interface holds by construction.
	wx0 := walkway.Rect.MinX
	gwMax := math.Min(4.2, math.Min(wx0-0.4, hw-6.2))
	if gwMax < 3.0 {
		return FloorModel{}, stageErrf(stage, ctx.House, "no room for a garage band (max width %.1f)", gwMax)
	}
	gw := clampf(quant(s.Float(3.0, gwMax)), 3.0, gwMax)
	swMin := math.Max(2.8, wx0+1.0-gw)
	swMax := math.Min(3.6, hw-gw-3.4)
	if swMin > swMax {
		return FloorModel{}, stageErrf(stage, ctx.House, "spine band infeasible: min %.1f max %.1f", swMin, swMax)
	}
	sw := clampf(quant(s.Float(swMin, swMax)), swMin, swMax)
	spine0, spine1 := gw, quant(gw+sw)
	lw := hw - spine1

	var regions []Region

	// Garage band.
	garMin := gridCeil(math.Max(5.5, 18/gw))
	garMax := gridFloor(math.Min(7.0, bandDepth))
	garDepth := clampf(quant(s.Float(garMin, garMax)), garMin, garMax)
	zg := quant(z0 + garDepth)
	if opts.mudroom && z1-zg >= 1.6 {
		regions = append(regions,
			RectRegion(RoomGarage, surfaceFor(RoomGarage), geometry.NewRect(0, z0, gw, zg)),
			RectRegion(RoomMudroom, surfaceFor(RoomMudroom), geometry.NewRect(0, zg, gw, z1)))
	} else {
		regions = append(regions,
			RectRegion(RoomGarage, surfaceFor(RoomGarage), geometry.NewRect(0, z0, gw, z1)))
	}

	// Spine band: foyer strip in front, hallway behind it, stairs and small
	// bathroom side by side at the rear. Stairs sit flush with the garage
	// side; the second floor hangs its hallway off their far edge.
	foyerDepth := quant(s.Float(2.2, 3.2))
	stairsDepth := quant(s.Float(2.8, 3.4))
	hallMin := gridCeil(math.Max(1.0, 5.0/sw))
	if z0+foyerDepth+hallMin > z1-stairsDepth {
		foyerDepth = gridFloor(z1 - stairsDepth - hallMin - z0)
		if foyerDepth < 2.2 {
			return FloorModel{}, stageErrf(stage, ctx.House, "spine too shallow for foyer+hallway+stairs")
		}
	}
	zF := quant(z0 + foyerDepth)
	zS := quant(z1 - stairsDepth)
	stairsW := clampf(quant(s.Float(1.0, 1.4)), 1.0, sw-1.4)
	regions = append(regions,
		RectRegion(RoomFoyer, surfaceFor(RoomFoyer), geometry.NewRect(spine0, z0, spine1, zF)),
		RectRegion(RoomHallway, surfaceFor(RoomHallway), geometry.NewRect(spine0, zF, spine1, zS)),
		RectRegion(RoomStairs, surfaceFor(RoomStairs), geometry.NewRect(spine0, zS, quant(spine0+stairsW), z1)),
		RectRegion(RoomBathroomSmall, surfaceFor(RoomBathroomSmall), geometry.NewRect(quant(spine0+stairsW), zS, spine1, z1)))

	// Living band, front to rear: living room, optional dining room, kitchen.
	ldMin := gridCeil(math.Max(3.2, 16/lw))
	kdMin := gridCeil(math.Max(2.5, 9/lw))
	ddMin := gridCeil(math.Max(2.4, 7/lw))
	dining := opts.dining && bandDepth >= kdMin+ddMin+ldMin
	reserve := ldMin
	if dining {
		reserve += ddMin
	}
	kd := clampf(quant(s.Float(kdMin, kdMin+1.5)), kdMin, gridFloor(bandDepth-reserve))
	dd := 0.0
	if dining {
		dd = clampf(quant(s.Float(ddMin, ddMin+1.0)), ddMin, gridFloor(bandDepth-kd-ldMin))
	}
	zLiv := quant(z1 - kd - dd)
	zKitchen := quant(z1 - kd)
	ld := zLiv - z0

	living := RectRegion(RoomLivingRoom, surfaceFor(RoomLivingRoom), geometry.NewRect(spine1, z0, hw, zLiv))
	if opts.office && lw >= 4.1 && ld >= 4.1 {
		ow := clampf(quant(s.Float(2.5, lw-1.6)), 2.5, gridFloor(lw-1.6))
		od := clampf(quant(s.Float(2.5, ld-1.6)), 2.5, gridFloor(ld-1.6))
		// Never carve the living room below its area minimum.
		if spare := lw*ld - 16; ow*od > spare {
			od = gridFloor(spare / ow)
		}
		if od >= 2.5 {
			ox := quant(hw - ow)
			oz := quant(z0 + od)
			regions = append(regions,
				RectRegion(RoomOffice, surfaceFor(RoomOffice), geometry.NewRect(ox, z0, hw, oz)))
			living = PolyRegion(RoomLivingRoom, surfaceFor(RoomLivingRoom), geometry.Polygon{
				{X: spine1, Z: z0}, {X: ox, Z: z0}, {X: ox, Z: oz},
				{X: hw, Z: oz}, {X: hw, Z: zLiv}, {X: spine1, Z: zLiv},
			})
		}
	}
	regions = append(regions, living)
	if dining {
		regions = append(regions,
			RectRegion(RoomDiningRoom, surfaceFor(RoomDiningRoom), geometry.NewRect(spine1, zLiv, hw, zKitchen)))
	}
	regions = append(regions,
		RectRegion(RoomKitchen, surfaceFor(RoomKitchen), geometry.NewRect(spine1, zKitchen, hw, z1)))

	// Rear area beyond the wide band.
	switch shape {
	case ShapeRearExtension:
		ext, ok := rearBlock(fp, fp.Bounds().MaxZ)
		if !ok {
			return FloorModel{}, stageErrf(stage, ctx.House, "extension block not found on footprint")
		}
		regions = append(regions, RectRegion(RoomFamilyRoom, surfaceFor(RoomFamilyRoom),
			geometry.NewRect(ext.MinX, z1, ext.MaxX, ext.MaxZ)))
	case ShapeRearNotch:
		cavity, ok := rearBlock(fp, z1)
		if !ok {
			return FloorModel{}, stageErrf(stage, ctx.House, "notch cavity not found on footprint")
		}
		rear := fp.Bounds().MaxZ
		regions = append(regions,
			RectRegion(RoomStorage, surfaceFor(RoomStorage), geometry.NewRect(0, z1, cavity.MinX, rear)),
			RectRegion(RoomPantry, surfaceFor(RoomPantry), geometry.NewRect(cavity.MaxX, z1, hw, rear)))
	}

	floor := FloorModel{Regions: regions}
	if err := validateFirstFloor(ctx, &floor, fp, walkway.Rect, driveway.Rect); err != nil {
		return FloorModel{}, err
	}
	return floor, nil
}

// rearBlock finds the horizontal footprint edge lying on line z and returns
// its X-span as a rect ending at z. Used to recover the notch cavity (z =
// wide band rear) and the extension block (z = footprint rear).
func rearBlock(fp geometry.Polygon, z float64) (geometry.Rect, bool) {
	for _, e := range fp.Edges() {
		if e.Horizontal() && math.Abs(e.A.Z-z) <= 1e-9 {
			x0, x1 := math.Min(e.A.X, e.B.X), math.Max(e.A.X, e.B.X)
			b := fp.Bounds()
			if x1-x0 < b.Width()-1e-9 || z < b.MaxZ-1e-9 {
				return geometry.NewRect(x0, 0, x1, z), true
			}
		}
	}
	return geometry.Rect{}, false
}

// requiredFirstFloor is the room set whose presence and mutual reachability
// the first floor guarantees.
var requiredFirstFloor = []string{
	RoomFoyer, RoomGarage, RoomHallway, RoomStairs,
	RoomKitchen, RoomLivingRoom, RoomBathroomSmall,
}

func validateFirstFloor(ctx *Context, floor *FloorModel, fp geometry.Polygon, walkway, driveway geometry.Rect) error {
	const stage = "firstFloor"

	for _, name := range requiredFirstFloor {
		if floor.Count(name) != 1 {
			return stageErrf(stage, ctx.House, "%s must appear exactly once, found %d", name, floor.Count(name))
		}
	}
	if err := validateRooms(stage, ctx, floor, fp); err != nil {
		return err
	}

	// Exterior interfaces, measured as 1-D interval overlap on the front
	// line shared with the plot.
	garage := floor.Region(RoomGarage).Bounds()
	if ov := geometry.Overlap1D(garage.MinX, garage.MaxX, driveway.MinX, driveway.MaxX); ov < 2.5-1e-6 {
		return stageErrf(stage, ctx.House, "garage-to-driveway interface %.2f, need 2.5", ov)
	}
	foyer := floor.Region(RoomFoyer).Bounds()
	if ov := geometry.Overlap1D(foyer.MinX, foyer.MaxX, walkway.MinX, walkway.MaxX); ov < 1.0-1e-6 {
		return stageErrf(stage, ctx.House, "foyer-to-walkway interface %.2f, need 1.0", ov)
	}

	adj := geometry.AdjacencyLengths(floor.Outlines())
	adjacencyRules := []struct {
		room      string
		neighbors []string
		min       float64
	}{
		{RoomFoyer, []string{RoomHallway, RoomLivingRoom}, 1.0},
		{RoomHallway, []string{RoomStairs}, 1.0},
		{RoomHallway, []string{RoomBathroomSmall}, 0.8},
		{RoomKitchen, []string{RoomLivingRoom, RoomDiningRoom, RoomHallway}, 1.0},
		{RoomGarage, []string{RoomHallway, RoomFoyer, RoomMudroom}, 0.8},
	}
	for _, rule := range adjacencyRules {
		if !hasAdjacency(floor, adj, rule.room, rule.neighbors, rule.min) {
			return stageErrf(stage, ctx.House, "%s lacks a %.1f+ shared boundary with any of %v",
				rule.room, rule.min, rule.neighbors)
		}
	}

	if err := checkRequiredConnectivity(stage, ctx, floor, adj, RoomFoyer, requiredFirstFloor); err != nil {
		return err
	}
	return nil
}

// validateRooms runs the checks common to both floors: containment in the
// governing outline, dense-sample coverage/non-overlap, and the minimum
// size table.
func validateRooms(stage string, ctx *Context, floor *FloorModel, outer geometry.Polygon) error {
	outlines := floor.Outlines()
	for i, r := range floor.Regions {
		if !outer.ContainsPolygon(outlines[i]) {
			return stageErrf(stage, ctx.House, "%s extends outside its floor boundary", r.Name)
		}
	}
	gaps, overlaps := geometry.PartitionFaults(outer, outlines)
	if len(gaps) > 0 {
		return stageErrf(stage, ctx.House, "coverage gap near %v", gaps[0])
	}
	if len(overlaps) > 0 {
		return stageErrf(stage, ctx.House, "room overlap near %v", overlaps[0])
	}
	for _, r := range floor.Regions {
		if r.Void() {
			continue
		}
		spec, ok := SpecFor(r.Name)
		if !ok {
			continue
		}
		if r.Area() < spec.MinArea-1e-6 {
			return stageErrf(stage, ctx.House, "%s area %.2f below minimum %.1f", r.Name, r.Area(), spec.MinArea)
		}
		if r.MinDimension() < spec.MinDim-1e-6 {
			return stageErrf(stage, ctx.House, "%s dimension %.2f below minimum %.1f", r.Name, r.MinDimension(), spec.MinDim)
		}
	}
	return nil
}

// hasAdjacency reports whether room shares at least min boundary length with
// any of the named neighbors.
func hasAdjacency(floor *FloorModel, adj map[[2]int]float64, room string, neighbors []string, min float64) bool {
	ri := floor.Index(room)
	if ri < 0 {
		return false
	}
	for _, n := range neighbors {
		ni := floor.Index(n)
		if ni < 0 {
			continue
		}
		if adj[geometry.PairKey(ri, ni)] >= min-1e-6 {
			return true
		}
	}
	return false
}

// connectivityThreshold is the shared-boundary length below which two rooms
// do not count as connected in the reachability graph.
const connectivityThreshold = 0.9

// checkRequiredConnectivity runs a breadth-first walk over the
// adjacency-length graph from the entry room and verifies every required
// room is reached.
func checkRequiredConnectivity(stage string, ctx *Context, floor *FloorModel, adj map[[2]int]float64, entry string, required []string) error {
	start := floor.Index(entry)
	if start < 0 {
		return stageErrf(stage, ctx.House, "entry room %s missing", entry)
	}
	reached := bfsReach(len(floor.Regions), start, func(i, j int) bool {
		return adj[geometry.PairKey(i, j)] >= connectivityThreshold
	})
	for _, name := range required {
		if idx := floor.Index(name); idx >= 0 && !reached[idx] {
			return stageErrf(stage, ctx.House, "%s unreachable from %s in the adjacency graph", name, entry)
		}
	}
	return nil
}

// bfsReach returns which node indices a breadth-first walk reaches from
// start over the given edge predicate.
func bfsReach(n, start int, connected func(i, j int) bool) []bool {
	reached := make([]bool, n)
	if start < 0 || start >= n {
		return reached
	}
	reached[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := 0; next < n; next++ {
			if reached[next] || !connected(cur, next) {
				continue
			}
			reached[next] = true
			queue = append(queue, next)
		}
	}
	return reached
}

// gridCeil snaps v up to the 0.1 grid.
func gridCeil(v float64) float64 {
	return math.Ceil(v*10-1e-9) / 10
}
