package layout

// Region names. Plot names partition the lot; room names partition a floor.
// Most room names appear exactly once per floor; sideyard and bedroom repeat.
const (
	RegionHouse        = "houseregion"
	RegionDrivewayNear = "driveway_near"
	RegionDrivewayFar  = "driveway_far"
	RegionWalkway      = "walkway"
	RegionSidewalk     = "sidewalk"
	RegionCurb         = "curb"
	RegionLawnNear     = "frontlawn_near"
	RegionLawnFar      = "frontlawn_far"
	RegionBackyard     = "backyard"
	RegionSideyard     = "sideyard"

	RoomFoyer         = "foyer"
	RoomGarage        = "garage"
	RoomHallway       = "hallway"
	RoomStairs        = "stairs"
	RoomKitchen       = "kitchen"
	RoomLivingRoom    = "livingroom"
	RoomDiningRoom    = "diningroom"
	RoomOffice        = "office"
	RoomMudroom       = "mudroom"
	RoomPantry        = "pantry"
	RoomStorage       = "storage"
	RoomFamilyRoom    = "familyroom"
	RoomBedroom       = "bedroom"
	RoomBathroomSmall = "bathroom_small"
	RoomBathroomLarge = "bathroom_large"
	RoomCloset        = "closet"
	RoomLaundry       = "laundry"
)

// RoomSpec is the fixed minimum table every generated room is validated
// against.
type RoomSpec struct {
	MinArea float64
	MinDim  float64
}

// roomSpecs is the authoritative minimum table. Rooms absent from the table
// (plot regions, void regions) carry no size requirement.
var roomSpecs = map[string]RoomSpec{
	RoomGarage:        {MinArea: 18, MinDim: 3.0},
	RoomLivingRoom:    {MinArea: 16, MinDim: 3.2},
	RoomKitchen:       {MinArea: 9, MinDim: 2.5},
	RoomFoyer:         {MinArea: 5, MinDim: 1.8},
	RoomHallway:       {MinArea: 5, MinDim: 1.0},
	RoomStairs:        {MinArea: 2.8, MinDim: 1.0},
	RoomBathroomSmall: {MinArea: 3.5, MinDim: 1.4},
	RoomBathroomLarge: {MinArea: 5, MinDim: 1.8},
	RoomBedroom:       {MinArea: 9, MinDim: 2.4},
	RoomDiningRoom:    {MinArea: 7, MinDim: 2.4},
	RoomOffice:        {MinArea: 6, MinDim: 2.2},
	RoomMudroom:       {MinArea: 4, MinDim: 1.4},
	RoomFamilyRoom:    {MinArea: 6, MinDim: 2.4},
	RoomPantry:        {MinArea: 1.5, MinDim: 1.0},
	RoomStorage:       {MinArea: 1.5, MinDim: 1.0},
	RoomCloset:        {MinArea: 1.2, MinDim: 0.8},
	RoomLaundry:       {MinArea: 2.5, MinDim: 1.2},
}

// SpecFor returns the size minimums for a room name. ok is false for names
// without an entry.
func SpecFor(name string) (RoomSpec, bool) {
	s, ok := roomSpecs[name]
	return s, ok
}

// surfaceFor maps a room name to its floor surface.
func surfaceFor(name string) Surface {
	switch name {
	case RoomGarage, RoomStorage:
		return SurfaceConcrete
	case RoomFoyer, RoomKitchen, RoomBathroomSmall, RoomBathroomLarge,
		RoomMudroom, RoomLaundry:
		return SurfaceTile
	case RoomBedroom, RoomCloset:
		return SurfaceCarpet
	default:
		return SurfaceWood
	}
}

// ExteriorVariants are the facade material choices; weights skew toward the
// common ones.
var (
	ExteriorVariants = []string{
		"clapboard_white", "clapboard_blue", "clapboard_yellow",
		"brick_red", "brick_brown", "stucco_beige",
	}
	exteriorWeights = []float64{3, 2, 1, 2, 1, 1}
)
