package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
)

func mustGenerate(t *testing.T, streetSeed string, cfg HouseConfig) *HouseModel {
	t.Helper()
	h, err := Generate(streetSeed, cfg)
	if err != nil {
		t.Fatalf("Generate(%q, %+v): %v", streetSeed, cfg, err)
	}
	return h
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := HouseConfig{Number: 3, Occupants: 4, LotWidth: 12.5, LotDepth: 30}
	a := mustGenerate(t, "elm-street", cfg)
	b := mustGenerate(t, "elm-street", cfg)

	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Fatalf("same seed produced different houses")
	}

	c := mustGenerate(t, "oak-street", cfg)
	jc, _ := json.Marshal(c)
	if bytes.Equal(ja, jc) {
		t.Fatalf("different street seeds produced identical houses")
	}
}

func TestGenerateAcrossSeeds(t *testing.T) {
	widths := []float64{10, 11.5, 12, 14, 16}
	for street := 0; street < 8; street++ {
		seed := fmt.Sprintf("street-%d", street)
		for n := 1; n <= 6; n++ {
			cfg := HouseConfig{
				Number:    n,
				Occupants: n,
				LotWidth:  widths[(street+n)%len(widths)],
				LotDepth:  30,
			}
			h := mustGenerate(t, seed, cfg)
			checkHouse(t, h, cfg)
		}
	}
}

// checkHouse re-verifies the published guarantees of a finished model from
// the outside, independent of the generator's own validators.
func checkHouse(t *testing.T, h *HouseModel, cfg HouseConfig) {
	t.Helper()

	fp := h.Plot.Region(RegionHouse)
	if fp == nil {
		t.Fatalf("house %d: plot has no %s", cfg.Number, RegionHouse)
	}
	for _, name := range []string{RegionCurb, RegionSidewalk, RegionDrivewayNear,
		RegionDrivewayFar, RegionWalkway, RegionLawnNear, RegionLawnFar, RegionBackyard} {
		if h.Plot.Region(name) == nil {
			t.Errorf("house %d: plot missing %s", cfg.Number, name)
		}
	}

	// Footprint shape, area, and rear clearance.
	outline := fp.Outline()
	if _, ok := InferShape(outline); !ok {
		t.Errorf("house %d: footprint outside the shape family: %v", cfg.Number, outline)
	}
	minArea := 120.0
	if (cfg.Occupants+1)/2 >= 3 {
		minArea = 135
	}
	if a := outline.Area(); a < minArea-1e-6 {
		t.Errorf("house %d: footprint area %.2f below %.0f", cfg.Number, a, minArea)
	}
	b := outline.Bounds()
	if b.MaxZ > 24+1e-9 {
		t.Errorf("house %d: footprint rear %.2f violates the 6.0 backyard clearance", cfg.Number, b.MaxZ)
	}
	maxSetback := 4.5
	if (cfg.Occupants+1)/2 >= 3 {
		maxSetback = 3.4
	}
	if b.MinZ > maxSetback+1e-9 {
		t.Errorf("house %d: setback %.2f exceeds %.1f", cfg.Number, b.MinZ, maxSetback)
	}

	// Lots stay fully partitioned.
	lot := geometry.NewRect(0, 0, cfg.LotWidth, 30).Outline()
	if gaps, overlaps := geometry.PartitionFaults(lot, h.Plot.Outlines()); len(gaps)+len(overlaps) > 0 {
		t.Errorf("house %d: plot partition has %d gaps, %d overlaps", cfg.Number, len(gaps), len(overlaps))
	}
	band := WideBand(outline)
	if gaps, overlaps := geometry.PartitionFaults(outline, h.FirstFloor.Outlines()); len(gaps)+len(overlaps) > 0 {
		t.Errorf("house %d: first floor has %d gaps, %d overlaps", cfg.Number, len(gaps), len(overlaps))
	}
	if gaps, overlaps := geometry.PartitionFaults(band.Outline(), h.SecondFloor.Outlines()); len(gaps)+len(overlaps) > 0 {
		t.Errorf("house %d: second floor has %d gaps, %d overlaps", cfg.Number, len(gaps), len(overlaps))
	}

	// Room minimums from the fixed table.
	for _, floor := range []*FloorModel{&h.FirstFloor, &h.SecondFloor} {
		for _, r := range floor.Regions {
			if r.Void() {
				continue
			}
			spec, ok := SpecFor(r.Name)
			if !ok {
				continue
			}
			if r.Area() < spec.MinArea-1e-6 {
				t.Errorf("house %d: %s area %.2f below %.1f", cfg.Number, r.Name, r.Area(), spec.MinArea)
			}
			if r.MinDimension() < spec.MinDim-1e-6 {
				t.Errorf("house %d: %s dim %.2f below %.1f", cfg.Number, r.Name, r.MinDimension(), spec.MinDim)
			}
		}
	}

	// Bedrooms scale with occupancy; the stairwell sits over the stairs.
	need := (cfg.Occupants + 1) / 2
	if got := h.SecondFloor.Count(RoomBedroom); got < need {
		t.Errorf("house %d: %d bedrooms for %d occupants, need %d", cfg.Number, got, cfg.Occupants, need)
	}
	well := h.SecondFloor.Region(RoomStairs)
	stairs := h.FirstFloor.Region(RoomStairs)
	if well == nil || stairs == nil || !well.Void() {
		t.Fatalf("house %d: stairwell or stairs missing", cfg.Number)
	}
	if well.Rect != stairs.Rect {
		t.Errorf("house %d: stairwell %v not over stairs %v", cfg.Number, well.Rect, stairs.Rect)
	}

	checkDoors(t, cfg.Number, "first", &h.FirstFloor, outline, RoomFoyer)
	checkDoors(t, cfg.Number, "second", &h.SecondFloor, band.Outline(), RoomHallway)

	// Exactly one front door, on the street-facing foyer wall.
	exterior := 0
	for _, d := range h.FirstFloor.Construction {
		if d.RegionB != Exterior {
			continue
		}
		exterior++
	}
	if exterior != 2 {
		t.Errorf("house %d: %d exterior doors, want front and rear", cfg.Number, exterior)
	}

	if h.Exterior == "" {
		t.Errorf("house %d: no exterior variant assigned", cfg.Number)
	}
}

func checkDoors(t *testing.T, house int, floorName string, f *FloorModel, boundary geometry.Polygon, entry string) {
	t.Helper()
	for _, d := range f.Construction {
		dx, dz := d.End.X-d.Hinge.X, d.End.Z-d.Hinge.Z
		width := math.Hypot(dx, dz)
		if math.Abs(width-DoorWidth) > 1e-9 {
			t.Errorf("house %d %s floor: door width %.3f, want %.1f", house, floorName, width, DoorWidth)
		}
		if dx != 0 && dz != 0 {
			t.Errorf("house %d %s floor: door %v-%v not axis aligned", house, floorName, d.Hinge, d.End)
		}
		a := f.Regions[d.RegionA].Outline()
		if !a.OnBoundary(d.Hinge) || !a.OnBoundary(d.End) {
			t.Errorf("house %d %s floor: door off %s boundary", house, floorName, f.Regions[d.RegionA].Name)
		}
		other := boundary
		if d.RegionB != Exterior {
			other = f.Regions[d.RegionB].Outline()
		}
		if !other.OnBoundary(d.Hinge) || !other.OnBoundary(d.End) {
			t.Errorf("house %d %s floor: door off far-side boundary", house, floorName)
		}
		if f.Regions[d.RegionA].Void() || (d.RegionB >= 0 && f.Regions[d.RegionB].Void()) {
			t.Errorf("house %d %s floor: door into a void region", house, floorName)
		}
	}

	// Every non-void room must be reachable through doors alone.
	start := f.Index(entry)
	reached := bfsReach(len(f.Regions), start, func(i, j int) bool {
		return hasDoor(f, i, j)
	})
	for i, r := range f.Regions {
		if !r.Void() && !reached[i] {
			t.Errorf("house %d %s floor: %s has no door path from %s", house, floorName, r.Name, entry)
		}
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cases := []HouseConfig{
		{Number: 1, Occupants: 0, LotWidth: 12, LotDepth: 30},
		{Number: 2, Occupants: 7, LotWidth: 12, LotDepth: 30},
		{Number: 3, Occupants: 2, LotWidth: 9, LotDepth: 30},
		{Number: 4, Occupants: 2, LotWidth: 17, LotDepth: 30},
		{Number: 5, Occupants: 2, LotWidth: 12, LotDepth: 28},
	}
	for _, cfg := range cases {
		if _, err := Generate("any", cfg); err == nil {
			t.Errorf("Generate accepted invalid config %+v", cfg)
		}
	}
}

func TestStageErrorFormat(t *testing.T) {
	err := stageErrf("firstFloor", 7, "kitchen area %.1f below minimum", 8.5)
	want := "firstFloor: house 7: kitchen area 8.5 below minimum"
	if err.Error() != want {
		t.Fatalf("StageError = %q, want %q", err.Error(), want)
	}
}

func TestBedroomScaling(t *testing.T) {
	cases := []struct {
		occupants int
		bedrooms  int
	}{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {6, 3},
	}
	for _, tc := range cases {
		ctx, err := NewContext("s", HouseConfig{Number: 1, Occupants: tc.occupants, LotWidth: 12, LotDepth: 30})
		if err != nil {
			t.Fatalf("NewContext: %v", err)
		}
		if got := ctx.Bedrooms(); got != tc.bedrooms {
			t.Errorf("Bedrooms(%d occupants) = %d, want %d", tc.occupants, got, tc.bedrooms)
		}
	}
}
