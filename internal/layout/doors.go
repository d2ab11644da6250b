package layout

import (
	"math"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
)

// placeDoors cuts every doorway for a house after both floors are accepted.
// It runs exactly once and draws no randomness: door positions follow from
// the geometry, and the floor validators already guaranteed every shared
// boundary a required door needs. A failure here is therefore fatal for the
// house rather than retried.
func placeDoors(ctx *Context, house *HouseModel) error {
	fp := house.Plot.Region(RegionHouse).Outline()
	walkway := house.Plot.Region(RegionWalkway).Rect

	ff := &house.FirstFloor
	if err := placeFrontDoor(ctx, ff, walkway); err != nil {
		return err
	}
	if err := placeRearDoor(ctx, ff, fp); err != nil {
		return err
	}
	firstFloorDoors := []doorRule{
		{RoomFoyer, []string{RoomHallway, RoomLivingRoom}},
		{RoomHallway, []string{RoomStairs}},
		{RoomHallway, []string{RoomBathroomSmall}},
		{RoomKitchen, []string{RoomDiningRoom, RoomLivingRoom, RoomHallway}},
		{RoomGarage, []string{RoomMudroom, RoomHallway, RoomFoyer}},
	}
	for _, rule := range firstFloorDoors {
		if err := placeRoomDoor(ctx, ff, rule); err != nil {
			return err
		}
	}
	if err := closeFloor(ctx, ff, RoomFoyer); err != nil {
		return err
	}

	sf := &house.SecondFloor
	hall := sf.Index(RoomHallway)
	for i, r := range sf.Regions {
		switch r.Name {
		case RoomBedroom, RoomBathroomSmall, RoomBathroomLarge:
			if err := addDoorBetween(ctx, sf, i, hall); err != nil {
				return err
			}
		}
	}
	return closeFloor(ctx, sf, RoomHallway)
}

// doorRule asks for one door between room and the first neighbor on the list
// that shares enough boundary.
type doorRule struct {
	room      string
	neighbors []string
}

const doorStage = "doors"

// placeFrontDoor cuts the entry opening on the foyer's street-facing wall,
// centered on the stretch the walkway meets.
func placeFrontDoor(ctx *Context, f *FloorModel, walkway geometry.Rect) error {
	foyer := f.Region(RoomFoyer)
	if foyer == nil {
		return stageErrf(doorStage, ctx.House, "foyer missing")
	}
	b := foyer.Bounds()
	lo := math.Max(b.MinX, walkway.MinX)
	hi := math.Min(b.MaxX, walkway.MaxX)
	if hi-lo < DoorWidth-1e-9 {
		return stageErrf(doorStage, ctx.House, "foyer-walkway overlap %.2f too narrow for the front door", hi-lo)
	}
	cx := (lo + hi) / 2
	f.Construction = append(f.Construction, Door{
		RegionA: f.Index(RoomFoyer),
		RegionB: Exterior,
		Hinge:   geometry.Point{X: cx - DoorWidth/2, Z: b.MinZ},
		End:     geometry.Point{X: cx + DoorWidth/2, Z: b.MinZ},
	})
	return nil
}

// placeRearDoor cuts one opening to the backyard on the longest rear-facing
// exterior wall segment of any room.
func placeRearDoor(ctx *Context, f *FloorModel, fp geometry.Polygon) error {
	frontZ := fp.Bounds().MinZ
	bestIdx := -1
	var best geometry.Segment
	for i, r := range f.Regions {
		if r.Void() || r.Name == RoomGarage || r.Name == RoomMudroom {
			continue
		}
		centerZ := r.Bounds().CenterZ()
		for _, seg := range geometry.SharedBoundary(r.Outline(), fp) {
			if !seg.Horizontal() || seg.A.Z <= frontZ+1e-9 || seg.A.Z < centerZ {
				continue
			}
			if bestIdx < 0 || seg.Length() > best.Length()+1e-9 {
				bestIdx, best = i, seg
			}
		}
	}
	if bestIdx < 0 || best.Length() < DoorWidth-1e-9 {
		return stageErrf(doorStage, ctx.House, "no rear wall long enough for a backyard door")
	}
	hinge, end := centeredDoor(best)
	f.Construction = append(f.Construction, Door{RegionA: bestIdx, RegionB: Exterior, Hinge: hinge, End: end})
	return nil
}

func placeRoomDoor(ctx *Context, f *FloorModel, rule doorRule) error {
	ri := f.Index(rule.room)
	if ri < 0 {
		return stageErrf(doorStage, ctx.House, "%s missing", rule.room)
	}
	for _, name := range rule.neighbors {
		ni := f.Index(name)
		if ni < 0 {
			continue
		}
		if hasDoor(f, ri, ni) {
			return nil
		}
		seg, ok := geometry.BestSharedSegment(f.Regions[ri].Outline(), f.Regions[ni].Outline())
		if !ok || seg.Length() < DoorWidth-1e-9 {
			continue
		}
		hinge, end := centeredDoor(seg)
		f.Construction = append(f.Construction, Door{RegionA: ri, RegionB: ni, Hinge: hinge, End: end})
		return nil
	}
	return stageErrf(doorStage, ctx.House, "%s has no wall wide enough for a door to %v", rule.room, rule.neighbors)
}

func addDoorBetween(ctx *Context, f *FloorModel, a, b int) error {
	if a < 0 || b < 0 {
		return stageErrf(doorStage, ctx.House, "door endpoint region missing")
	}
	if hasDoor(f, a, b) {
		return nil
	}
	seg, ok := geometry.BestSharedSegment(f.Regions[a].Outline(), f.Regions[b].Outline())
	if !ok || seg.Length() < DoorWidth-1e-9 {
		return stageErrf(doorStage, ctx.House, "%s and %s share no wall wide enough for a door",
			f.Regions[a].Name, f.Regions[b].Name)
	}
	hinge, end := centeredDoor(seg)
	f.Construction = append(f.Construction, Door{RegionA: a, RegionB: b, Hinge: hinge, End: end})
	return nil
}

// closeFloor adds doors until every non-void room is reachable from the
// entry room through the door graph. Each round connects the unreached room
// with the longest wall shared with any reached room, so the pass is
// deterministic and terminates after at most one door per room.
func closeFloor(ctx *Context, f *FloorModel, entry string) error {
	start := f.Index(entry)
	if start < 0 {
		return stageErrf(doorStage, ctx.House, "entry room %s missing", entry)
	}
	for {
		reached := doorReach(f, start)
		allReached := true
		for i, r := range f.Regions {
			if !r.Void() && !reached[i] {
				allReached = false
			}
		}
		if allReached {
			return nil
		}
		bestA, bestB := -1, -1
		var best geometry.Segment
		for a, ra := range f.Regions {
			if !reached[a] || ra.Void() {
				continue
			}
			for b, rb := range f.Regions {
				if reached[b] || rb.Void() {
					continue
				}
				seg, ok := geometry.BestSharedSegment(ra.Outline(), rb.Outline())
				if !ok || seg.Length() < DoorWidth-1e-9 {
					continue
				}
				if bestA < 0 || seg.Length() > best.Length()+1e-9 {
					bestA, bestB, best = a, b, seg
				}
			}
		}
		if bestA < 0 {
			for i, r := range f.Regions {
				if !r.Void() && !reached[i] {
					return stageErrf(doorStage, ctx.House, "%s cannot be reached by any doorway", r.Name)
				}
			}
			return nil
		}
		hinge, end := centeredDoor(best)
		f.Construction = append(f.Construction, Door{RegionA: bestA, RegionB: bestB, Hinge: hinge, End: end})
	}
}

// doorReach walks the door graph from start. Exterior doors do not connect
// rooms and void regions never carry doors.
func doorReach(f *FloorModel, start int) []bool {
	return bfsReach(len(f.Regions), start, func(i, j int) bool {
		for _, d := range f.Construction {
			if (d.RegionA == i && d.RegionB == j) || (d.RegionA == j && d.RegionB == i) {
				return true
			}
		}
		return false
	})
}

func hasDoor(f *FloorModel, a, b int) bool {
	for _, d := range f.Construction {
		if (d.RegionA == a && d.RegionB == b) || (d.RegionA == b && d.RegionB == a) {
			return true
		}
	}
	return false
}

// centeredDoor places a DoorWidth opening at the midpoint of a wall segment.
func centeredDoor(seg geometry.Segment) (hinge, end geometry.Point) {
	m := seg.Mid()
	if seg.Horizontal() {
		return geometry.Point{X: m.X - DoorWidth/2, Z: m.Z}, geometry.Point{X: m.X + DoorWidth/2, Z: m.Z}
	}
	return geometry.Point{X: m.X, Z: m.Z - DoorWidth/2}, geometry.Point{X: m.X, Z: m.Z + DoorWidth/2}
}
