package layout

import (
	"fmt"
	"testing"

	"github.com/suburbsim/street-layout-engine/internal/geometry"
)

func testContext(t *testing.T, seed string, occupants int, lotWidth float64) *Context {
	t.Helper()
	ctx, err := NewContext(seed, HouseConfig{Number: 1, Occupants: occupants, LotWidth: lotWidth, LotDepth: 30})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

func TestPlotCanonicalOrientation(t *testing.T) {
	for i := 0; i < 10; i++ {
		ctx := testContext(t, fmt.Sprintf("plot-%d", i), 3, 12)
		plot, _, err := generatePlot(ctx)
		if err != nil {
			t.Fatalf("generatePlot: %v", err)
		}
		drive := plot.Region(RegionDrivewayNear)
		if drive == nil || drive.Rect.MinX != 0 {
			t.Errorf("seed %d: driveway not flush with the low-X lot edge: %+v", i, drive)
		}
		curb := plot.Region(RegionCurb)
		if curb == nil || curb.Rect.MinZ != 0 || curb.Rect.Depth() != curbDepth {
			t.Errorf("seed %d: curb misplaced: %+v", i, curb)
		}
	}
}

func TestPlotSideyardsOnWideLots(t *testing.T) {
	ctx := testContext(t, "wide", 2, 16)
	plot, _, err := generatePlot(ctx)
	if err != nil {
		t.Fatalf("generatePlot: %v", err)
	}
	if n := plot.Count(RegionSideyard); n != 3 {
		t.Errorf("16-wide lot has %d sideyard strips, want 3", n)
	}
	for _, r := range plot.Regions {
		if r.Name == RegionSideyard && r.Rect.MinX != 12 {
			t.Errorf("sideyard starts at %v, want the 12.0 buildable limit", r.Rect.MinX)
		}
	}

	narrow := testContext(t, "narrow", 2, 11)
	plot, _, err = generatePlot(narrow)
	if err != nil {
		t.Fatalf("generatePlot: %v", err)
	}
	if n := plot.Count(RegionSideyard); n != 0 {
		t.Errorf("11-wide lot has %d sideyard strips, want 0", n)
	}
}

func TestPlotExteriorEdges(t *testing.T) {
	for i := 0; i < 20; i++ {
		ctx := testContext(t, fmt.Sprintf("edges-%d", i), (i%6)+1, 10+float64(i%7))
		plot, _, err := generatePlot(ctx)
		if err != nil {
			t.Fatalf("seed %d: generatePlot: %v", i, err)
		}
		fp := plot.Region(RegionHouse).Outline()
		for _, e := range fp.Edges() {
			if e.Length() < minExteriorEdge-1e-9 {
				t.Errorf("seed %d: exterior edge %v-%v shorter than %.2f", i, e.A, e.B, minExteriorEdge)
			}
		}
	}
}

func TestBackyardShapeFollowsFootprint(t *testing.T) {
	rect := geometry.NewRect(0, 3, 10, 20).Outline()
	r := backyardRegion(rect, 10, 20, 30)
	if r.IsPoly() {
		t.Fatalf("rectangular footprint should yield a rectangular backyard, got polygon %v", r.Poly)
	}
	if r.Rect != geometry.NewRect(0, 20, 10, 30) {
		t.Errorf("backyard = %v, want [0,20]x[10,30]", r.Rect)
	}

	// Rear notch: the backyard must reach into the cavity.
	notched := geometry.Polygon{
		{X: 0, Z: 3}, {X: 10, Z: 3}, {X: 10, Z: 20},
		{X: 7, Z: 20}, {X: 7, Z: 17}, {X: 3, Z: 17},
		{X: 3, Z: 20}, {X: 0, Z: 20},
	}
	r = backyardRegion(notched, 10, 20, 30)
	if !r.IsPoly() {
		t.Fatalf("notched footprint should yield a polygonal backyard")
	}
	wantArea := 10*10.0 + 4*3.0
	if a := r.Area(); a != wantArea {
		t.Errorf("notched backyard area = %v, want %v", a, wantArea)
	}
	if gaps, overlaps := geometry.PartitionFaults(
		geometry.NewRect(0, 3, 10, 30).Outline(),
		[]geometry.Polygon{notched, r.Outline()},
	); len(gaps)+len(overlaps) > 0 {
		t.Errorf("footprint+backyard leave %d gaps, %d overlaps", len(gaps), len(overlaps))
	}
}

func TestInferShape(t *testing.T) {
	rect := geometry.NewRect(0, 2, 10, 18).Outline()
	if s, ok := InferShape(rect); !ok || s != ShapeRectangle {
		t.Errorf("InferShape(rect) = %v, %v", s, ok)
	}

	notch := geometry.Polygon{
		{X: 0, Z: 2}, {X: 10, Z: 2}, {X: 10, Z: 18},
		{X: 7, Z: 18}, {X: 7, Z: 15}, {X: 3, Z: 15},
		{X: 3, Z: 18}, {X: 0, Z: 18},
	}
	if s, ok := InferShape(notch); !ok || s != ShapeRearNotch {
		t.Errorf("InferShape(notch) = %v, %v", s, ok)
	}
	if band := WideBand(notch); band != geometry.NewRect(0, 2, 10, 15) {
		t.Errorf("WideBand(notch) = %v", band)
	}

	ext := geometry.Polygon{
		{X: 0, Z: 2}, {X: 10, Z: 2}, {X: 10, Z: 15},
		{X: 6, Z: 15}, {X: 6, Z: 18}, {X: 0, Z: 18},
	}
	if s, ok := InferShape(ext); !ok || s != ShapeRearExtension {
		t.Errorf("InferShape(extension) = %v, %v", s, ok)
	}
	if band := WideBand(ext); band != geometry.NewRect(0, 2, 10, 15) {
		t.Errorf("WideBand(extension) = %v", band)
	}
}
