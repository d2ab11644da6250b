package layout

import (
	"fmt"
	"math"

	"github.com/suburbsim/street-layout-engine/internal/rng"
)

// HouseConfig is the caller-owned input record for one house.
type HouseConfig struct {
	Number    int
	Occupants int
	LotWidth  float64 // xsize, 10-16
	LotDepth  float64 // zsize, fixed 30
}

// LotDepth is the fixed lot depth every house is generated against.
const LotDepth = 30.0

// maxBuildableWidth caps the footprint width; wider lots get sideyard
// padding.
const maxBuildableWidth = 12.0

// Context carries the derived per-house seed and fixed lot dimensions into
// every stage. It has no retry logic of its own.
type Context struct {
	House     int
	Occupants int
	LotWidth  float64
	LotDepth  float64
	Seed      string
}

// NewContext derives the per-house seed and validates the lot dimensions.
func NewContext(streetSeed string, cfg HouseConfig) (*Context, error) {
	if cfg.Occupants < 1 || cfg.Occupants > 6 {
		return nil, stageErrf("context", cfg.Number, "occupants %d out of range [1,6]", cfg.Occupants)
	}
	if cfg.LotWidth < 10 || cfg.LotWidth > 16 {
		return nil, stageErrf("context", cfg.Number, "lot width %v out of range [10,16]", cfg.LotWidth)
	}
	if cfg.LotDepth != LotDepth {
		return nil, stageErrf("context", cfg.Number, "lot depth %v, must be %v", cfg.LotDepth, LotDepth)
	}
	return &Context{
		House:     cfg.Number,
		Occupants: cfg.Occupants,
		LotWidth:  quant(cfg.LotWidth),
		LotDepth:  cfg.LotDepth,
		Seed:      fmt.Sprintf("%s/house/%d", streetSeed, cfg.Number),
	}, nil
}

// Stream returns the dedicated stream for a stage.
func (c *Context) Stream(stage string) *rng.Stream {
	return rng.New(c.Seed + "/" + stage)
}

// AttemptStream returns the stream for one retry attempt of a stage, so a
// retry never perturbs any other stage's draws.
func (c *Context) AttemptStream(stage string, attempt int) *rng.Stream {
	return rng.New(fmt.Sprintf("%s/%s/%d", c.Seed, stage, attempt))
}

// Bedrooms is the minimum bedroom count, ceil(occupants/2).
func (c *Context) Bedrooms() int {
	return (c.Occupants + 1) / 2
}

// MinFootprintArea grows with the bedroom count.
func (c *Context) MinFootprintArea() float64 {
	if c.Bedrooms() >= 3 {
		return 135
	}
	return 120
}

// MaxFrontSetback narrows for larger households: more bedrooms push the
// footprint deeper at the expense of front yard.
func (c *Context) MaxFrontSetback() float64 {
	if c.Bedrooms() >= 3 {
		return 3.4
	}
	return 4.5
}

// BuildableWidth is the footprint width for this lot.
func (c *Context) BuildableWidth() float64 {
	return math.Min(c.LotWidth, maxBuildableWidth)
}

// quant snaps a coordinate to the 0.1 grid. All randomized splits are
// quantized so region boundaries stay off the validation sample grid.
func quant(v float64) float64 {
	return math.Round(v*10) / 10
}

// clampf bounds v to [lo, hi]; when the interval is empty it returns lo.
func clampf(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
