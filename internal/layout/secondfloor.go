package layout

import (
	"fmt"
	"math"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
	"github.com/suburbsim/street-layout-engine/internal/rng"
)

const secondFloorAttempts = 12

// generateSecondFloorAttempt partitions the wide band into the second-floor
// room set for one attempt. The stairwell void sits exactly over the
// first-floor stairs; a full-depth hallway runs along its far edge. The
// space left of the hallway splits into a front strip and a small rear room
// behind the stairwell; the space right of the hallway is one full-depth
// strip. Strips are sliced front to rear into bedrooms and bathrooms, every
// slice touching the hallway.
func generateSecondFloorAttempt(ctx *Context, plot, firstFloor *FloorModel, attempt int) (FloorModel, error) {
	const stage = "secondFloor"
	s := ctx.AttemptStream(stage, attempt)

	house := plot.Region(RegionHouse)
	stairs := firstFloor.Region(RoomStairs)
	if house == nil || stairs == nil {
		return FloorModel{}, stageErrf(stage, ctx.House, "missing houseregion or first-floor stairs")
	}
	fp := house.Outline()
	band := WideBand(fp)
	z0, z1 := band.MinZ, band.MaxZ
	hw := band.MaxX

	sx0, sx1 := stairs.Rect.MinX, stairs.Rect.MaxX
	zS := stairs.Rect.MinZ

	hwid := quant(s.Float(1.0, 1.6))
	hx1 := quant(sx1 + hwid)

	rearRoom := RoomLaundry
	if !s.Bool(0.6) {
		rearRoom = RoomStorage
	}
	extraBedroom := s.Bool(0.4) && attempt < 6
	closetRoll := s.Bool(0.5) && attempt < 6

	regions := []Region{
		RectRegion(RoomStairs, SurfaceVoid, stairs.Rect),
		RectRegion(RoomHallway, surfaceFor(RoomHallway), geometry.NewRect(sx1, z0, hx1, z1)),
		RectRegion(rearRoom, surfaceFor(rearRoom), geometry.NewRect(0, zS, sx0, z1)),
	}

	left := geometry.NewRect(0, z0, sx1, zS)
	right := geometry.NewRect(hx1, z0, hw, z1)

	// Bathrooms: the large one takes the wider strip. Bedrooms then go to
	// whichever strip has more spare depth.
	var leftRooms, rightRooms []string
	if left.Width() >= right.Width() {
		leftRooms = append(leftRooms, RoomBathroomLarge)
		rightRooms = append(rightRooms, RoomBathroomSmall)
	} else {
		leftRooms = append(leftRooms, RoomBathroomSmall)
		rightRooms = append(rightRooms, RoomBathroomLarge)
	}
	leftSlack := left.Depth() - sliceMinDepth(leftRooms[0], left.Width())
	rightSlack := right.Depth() - sliceMinDepth(rightRooms[0], right.Width())

	bedrooms := ctx.Bedrooms()
	if extraBedroom {
		bedrooms++
	}
	for i := 0; i < bedrooms; i++ {
		ld := leftSlack - sliceMinDepth(RoomBedroom, left.Width())
		rd := rightSlack - sliceMinDepth(RoomBedroom, right.Width())
		if ld < 0 && rd < 0 {
			if i >= ctx.Bedrooms() {
				break
			}
			return FloorModel{}, stageErrf(stage, ctx.House, "no strip can hold bedroom %d of %d", i+1, bedrooms)
		}
		if ld >= rd {
			leftRooms = append(leftRooms, RoomBedroom)
			leftSlack = ld
		} else {
			rightRooms = append(rightRooms, RoomBedroom)
			rightSlack = rd
		}
	}
	if closetRoll {
		cd := sliceMinDepth(RoomCloset, left.Width())
		if leftSlack-cd >= 0.5 {
			leftRooms = append(leftRooms, RoomCloset)
		} else if rightSlack-sliceMinDepth(RoomCloset, right.Width()) >= 0.5 {
			rightRooms = append(rightRooms, RoomCloset)
		}
	}

	leftSlices, err := fillStrip(s, left, leftRooms)
	if err != nil {
		return FloorModel{}, stageErrf(stage, ctx.House, "left strip: %v", err)
	}
	rightSlices, err := fillStrip(s, right, rightRooms)
	if err != nil {
		return FloorModel{}, stageErrf(stage, ctx.House, "right strip: %v", err)
	}
	regions = append(regions, leftSlices...)
	regions = append(regions, rightSlices...)

	floor := FloorModel{Regions: regions}
	if err := validateSecondFloor(ctx, &floor, band); err != nil {
		return FloorModel{}, err
	}
	return floor, nil
}

// sliceMinDepth is the minimum slice depth a room needs in a strip of the
// given width to satisfy both its area and dimension minimums.
func sliceMinDepth(name string, width float64) float64 {
	spec, _ := SpecFor(name)
	return gridCeil(math.Max(spec.MinDim, spec.MinArea/width))
}

// fillStrip slices the strip front to rear, one region per name. Mandatory
// minimum depths are reserved up front; the stream spreads the slack, and
// the final slice absorbs the grid remainder so the strip closes exactly.
func fillStrip(s *rng.Stream, strip geometry.Rect, names []string) ([]Region, error) {
	mins := make([]float64, len(names))
	total := 0.0
	for i, name := range names {
		mins[i] = sliceMinDepth(name, strip.Width())
		total += mins[i]
	}
	if total > strip.Depth()+1e-9 {
		return nil, fmt.Errorf("rooms %v need depth %.1f, strip has %.1f", names, total, strip.Depth())
	}

	regions := make([]Region, 0, len(names))
	z := strip.MinZ
	remaining := strip.Depth()
	reserve := total
	for i, name := range names {
		reserve -= mins[i]
		d := remaining - reserve
		if i < len(names)-1 {
			hi := gridFloor(remaining - reserve)
			d = clampf(quant(s.Float(mins[i], math.Min(mins[i]+2.0, hi))), mins[i], hi)
		}
		next := quant(z + d)
		if i == len(names)-1 {
			next = strip.MaxZ
		}
		regions = append(regions, RectRegion(name, surfaceFor(name),
			geometry.NewRect(strip.MinX, z, strip.MaxX, next)))
		remaining -= next - z
		z = next
	}
	return regions, nil
}

func validateSecondFloor(ctx *Context, floor *FloorModel, band geometry.Rect) error {
	const stage = "secondFloor"

	outer := band.Outline()
	if err := validateRooms(stage, ctx, floor, outer); err != nil {
		return err
	}

	bedroomCount := floor.Count(RoomBedroom)
	if bedroomCount < ctx.Bedrooms() {
		return stageErrf(stage, ctx.House, "%d bedrooms for %d occupants, need %d",
			bedroomCount, ctx.Occupants, ctx.Bedrooms())
	}
	if floor.Count(RoomBathroomSmall) != 1 || floor.Count(RoomBathroomLarge) != 1 {
		return stageErrf(stage, ctx.House, "upper floor needs exactly one small and one large bathroom")
	}

	adj := geometry.AdjacencyLengths(floor.Outlines())
	hall := floor.Index(RoomHallway)
	if hall < 0 {
		return stageErrf(stage, ctx.House, "hallway missing")
	}
	for i, r := range floor.Regions {
		switch r.Name {
		case RoomBedroom, RoomBathroomSmall, RoomBathroomLarge:
			if adj[geometry.PairKey(i, hall)] < connectivityThreshold-1e-6 {
				return stageErrf(stage, ctx.House, "%s does not border the hallway", r.Name)
			}
		}
	}

	reached := bfsReach(len(floor.Regions), hall, func(i, j int) bool {
		if floor.Regions[i].Void() || floor.Regions[j].Void() {
			return false
		}
		return adj[geometry.PairKey(i, j)] >= connectivityThreshold
	})
	for i, r := range floor.Regions {
		if !r.Void() && !reached[i] {
			return stageErrf(stage, ctx.House, "%s unreachable from the hallway", r.Name)
		}
	}
	return nil
}
