// Package layout generates a multi-stage architectural layout for a house
// lot: the plot partition, the first and second floor room partitions, and
// the doorways connecting them. Generation is a pure function of the house
// configuration and the street seed; every stage draws from its own derived
// random stream and is retried with a fresh attempt seed when a geometric
// invariant fails, without disturbing earlier accepted stages.
package layout

import (
	"math"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
)

// Surface tags a region with its material class for mesh construction and
// zone logic.
type Surface string

const (
	SurfaceGrass    Surface = "grass"
	SurfaceConcrete Surface = "concrete"
	SurfaceAsphalt  Surface = "asphalt"
	SurfaceWood     Surface = "wood"
	SurfaceTile     Surface = "tile"
	SurfaceCarpet   Surface = "carpet"
	// SurfaceVoid marks a region that partitions space but is not a room:
	// the stairwell opening on the second floor. Void regions are excluded
	// from room-size checks and door reachability.
	SurfaceVoid Surface = "void"
)

// Region is a named, surfaced, planar shape: either an axis-aligned
// rectangle or an orthogonal polygon. Exactly one of the two payloads is
// active; Poly == nil means the rectangle payload holds.
type Region struct {
	Name    string
	Surface Surface
	Rect    geometry.Rect
	Poly    geometry.Polygon
}

// RectRegion builds a rectangular region.
func RectRegion(name string, surface Surface, r geometry.Rect) Region {
	return Region{Name: name, Surface: surface, Rect: r}
}

// PolyRegion builds an orthogonal-polygon region. The outline is simplified
// so shape inference sees a minimal vertex set.
func PolyRegion(name string, surface Surface, pg geometry.Polygon) Region {
	return Region{Name: name, Surface: surface, Poly: geometry.Simplify(pg)}
}

func (r Region) IsPoly() bool { return r.Poly != nil }

func (r Region) Void() bool { return r.Surface == SurfaceVoid }

// Outline returns the region boundary as a polygon regardless of payload.
func (r Region) Outline() geometry.Polygon {
	if r.IsPoly() {
		return r.Poly
	}
	return r.Rect.Outline()
}

func (r Region) Area() float64 {
	if r.IsPoly() {
		return r.Poly.Area()
	}
	return r.Rect.Area()
}

func (r Region) Bounds() geometry.Rect {
	if r.IsPoly() {
		return r.Poly.Bounds()
	}
	return r.Rect
}

// MinDimension is the shorter bounding-box side. Polygon rooms only arise by
// extending a rectangle rearward or carving a corner whose remaining legs
// have construction-enforced widths, so the bounding box never understates a
// leg below its built minimum.
func (r Region) MinDimension() float64 {
	return r.Bounds().MinDimension()
}

// DoorWidth is the fixed width of every opening.
const DoorWidth = 0.8

// Exterior marks a door's far side as outside the footprint.
const Exterior = -1

// Door is an opening between two regions of one floor, referenced by index.
// RegionB == Exterior places the opening on the footprint boundary. Hinge
// and End lie exactly on the shared boundary, DoorWidth apart.
type Door struct {
	RegionA int
	RegionB int
	Hinge   geometry.Point
	End     geometry.Point
}

// FloorModel is an ordered region collection for one vertical layer plus its
// door openings.
type FloorModel struct {
	Regions      []Region
	Construction []Door
}

// Index returns the position of the first region named name, or -1.
func (f *FloorModel) Index(name string) int {
	for i, r := range f.Regions {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Region returns the first region named name, or nil.
func (f *FloorModel) Region(name string) *Region {
	if i := f.Index(name); i >= 0 {
		return &f.Regions[i]
	}
	return nil
}

// Count returns how many regions carry name.
func (f *FloorModel) Count(name string) int {
	n := 0
	for _, r := range f.Regions {
		if r.Name == name {
			n++
		}
	}
	return n
}

// Outlines returns every region boundary, index-aligned with Regions.
func (f *FloorModel) Outlines() []geometry.Polygon {
	out := make([]geometry.Polygon, len(f.Regions))
	for i, r := range f.Regions {
		out[i] = r.Outline()
	}
	return out
}

// HouseModel is the finished, immutable aggregate for one house. Region
// coordinates are lot-local; Lot carries the dimensions for the caller's
// translation to street coordinates.
type HouseModel struct {
	Number      int
	Seed        string
	Exterior    string
	Lot         geometry.Rect
	Plot        FloorModel
	FirstFloor  FloorModel
	SecondFloor FloorModel
}

// HouseShape classifies a footprint polygon. The plot generator guarantees
// the footprint is always one of exactly these three shapes, which is what
// keeps the floor generators free of arbitrary-polygon handling.
type HouseShape int

const (
	ShapeRectangle HouseShape = iota
	ShapeRearExtension
	ShapeRearNotch
)

func (s HouseShape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeRearExtension:
		return "rear-extension"
	case ShapeRearNotch:
		return "rear-notch"
	}
	return "unknown"
}

// InferShape derives the shape class from the footprint's distinct Z
// coordinates: two distinct values is a plain rectangle; three is a rear
// notch when the rearmost edge still touches both footprint sides, otherwise
// a rear extension.
func InferShape(fp geometry.Polygon) (HouseShape, bool) {
	zs := fp.DistinctZ()
	switch len(zs) {
	case 2:
		return ShapeRectangle, true
	case 3:
		b := fp.Bounds()
		rear := zs[2]
		minX, maxX := math.Inf(1), math.Inf(-1)
		for _, p := range fp {
			if math.Abs(p.Z-rear) <= 1e-9 {
				minX = math.Min(minX, p.X)
				maxX = math.Max(maxX, p.X)
			}
		}
		if math.Abs(minX-b.MinX) <= 1e-9 && math.Abs(maxX-b.MaxX) <= 1e-9 {
			return ShapeRearNotch, true
		}
		return ShapeRearExtension, true
	}
	return ShapeRectangle, false
}

// WideBand returns the always-full-width portion of the footprint: everything
// in front of the first rear modification.
func WideBand(fp geometry.Polygon) geometry.Rect {
	b := fp.Bounds()
	zs := fp.DistinctZ()
	rear := b.MaxZ
	if len(zs) == 3 {
		rear = zs[1]
	}
	return geometry.NewRect(b.MinX, b.MinZ, b.MaxX, rear)
}
