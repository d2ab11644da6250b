package layout

import (
	"github.com/suburbsim/street-layout-engine/internal/geometry"
	"github.com/suburbsim/street-layout-engine/internal/rng"
)

// Generate produces the complete model for one house: plot partition, both
// floor partitions, doorways, and the facade pick. It is a pure function of
// the street seed and the house record; two calls with the same inputs yield
// identical models.
//
// The house is always generated with the driveway on the low-X side and
// mirrored afterwards when the plot stream chose the other orientation, so
// the stage generators never branch on handedness.
func Generate(streetSeed string, cfg HouseConfig) (*HouseModel, error) {
	ctx, err := NewContext(streetSeed, cfg)
	if err != nil {
		return nil, err
	}

	plot, mirrored, err := generatePlot(ctx)
	if err != nil {
		return nil, err
	}

	first, err := retryFloor(firstFloorAttempts, func(attempt int) (FloorModel, error) {
		return generateFirstFloorAttempt(ctx, &plot, attempt)
	})
	if err != nil {
		return nil, err
	}

	second, err := retryFloor(secondFloorAttempts, func(attempt int) (FloorModel, error) {
		return generateSecondFloorAttempt(ctx, &plot, &first, attempt)
	})
	if err != nil {
		return nil, err
	}

	house := &HouseModel{
		Number:      cfg.Number,
		Seed:        ctx.Seed,
		Lot:         geometry.NewRect(0, 0, ctx.LotWidth, ctx.LotDepth),
		Plot:        plot,
		FirstFloor:  first,
		SecondFloor: second,
	}
	if err := placeDoors(ctx, house); err != nil {
		return nil, err
	}
	house.Exterior = rng.PickWeighted(ctx.Stream("exterior"), ExteriorVariants, exteriorWeights)

	if mirrored {
		mirrorHouse(house, ctx.LotWidth)
	}
	return house, nil
}

// retryFloor reruns a stage with fresh attempt seeds until it validates or
// the budget runs out, then rethrows the last stage error unmodified.
func retryFloor(budget int, gen func(attempt int) (FloorModel, error)) (FloorModel, error) {
	var lastErr error
	for attempt := 0; attempt < budget; attempt++ {
		floor, err := gen(attempt)
		if err == nil {
			return floor, nil
		}
		lastErr = err
	}
	return FloorModel{}, lastErr
}

// mirrorHouse reflects every region and door of every layer about the lot's
// vertical center line.
func mirrorHouse(h *HouseModel, width float64) {
	for _, f := range []*FloorModel{&h.Plot, &h.FirstFloor, &h.SecondFloor} {
		for i := range f.Regions {
			r := &f.Regions[i]
			if r.IsPoly() {
				r.Poly = geometry.MirrorPolygon(r.Poly, width)
			} else {
				r.Rect = geometry.MirrorRect(r.Rect, width)
			}
		}
		for i := range f.Construction {
			d := &f.Construction[i]
			d.Hinge = geometry.MirrorPoint(d.Hinge, width)
			d.End = geometry.MirrorPoint(d.End, width)
			if d.End.X < d.Hinge.X {
				d.Hinge, d.End = d.End, d.Hinge
			}
		}
	}
}
