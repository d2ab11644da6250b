package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/suburbsim/street-layout-engine/internal/config"
	"github.com/suburbsim/street-layout-engine/internal/layout"
	"github.com/suburbsim/street-layout-engine/internal/protocol"
)

const protocolVersion = "v1"

// houseSlot pairs a street record with its current generated model and the
// salt that produced it.
type houseSlot struct {
	record config.HouseRecord
	model  *layout.HouseModel
	salt   string
}

// Engine owns the street's generated state. Generation itself is pure; the
// engine adds the mutable parts: which salt each house currently uses and
// the street-wide seed.
type Engine struct {
	mu      sync.Mutex
	seed    string
	houses  []houseSlot
	metrics *GenerationMetrics
}

// NewEngine generates every house on the street. A house that fails
// generation fails the whole street; the caller sees the stage error.
func NewEngine(street *config.Street) (*Engine, error) {
	e := &Engine{seed: street.Seed, metrics: NewGenerationMetrics()}
	for _, rec := range street.Houses {
		model, err := e.generate(street.Seed, rec)
		if err != nil {
			return nil, err
		}
		log.Printf("house %d: %s facade, %d first-floor rooms, %d second-floor rooms",
			rec.HouseNumber, model.Exterior,
			len(model.FirstFloor.Regions), len(model.SecondFloor.Regions))
		e.houses = append(e.houses, houseSlot{record: rec, model: model})
	}
	return e, nil
}

// Metrics exposes the engine's generation counters for periodic reporting.
func (e *Engine) Metrics() *GenerationMetrics {
	return e.metrics
}

func (e *Engine) generate(seed string, rec config.HouseRecord) (*layout.HouseModel, error) {
	start := time.Now()
	model, err := layout.Generate(seed, rec.HouseConfig())
	if err != nil {
		return nil, err
	}
	e.metrics.TrackGenerate(time.Since(start))
	return model, nil
}

// saltedSeed derives the effective street seed for a regenerated house.
func saltedSeed(seed, salt string) string {
	if salt == "" {
		return seed
	}
	return seed + "~" + salt
}

// Snapshot returns the whole street in wire form.
func (e *Engine) Snapshot() protocol.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := protocol.Snapshot{StreetSeed: e.seed, ProtocolVersion: protocolVersion}
	for i := range e.houses {
		slot := &e.houses[i]
		s.Houses = append(s.Houses, protocol.HouseLiteFrom(slot.model, slot.record.Bounds.X))
	}
	return s
}

// RegenerateHouse rebuilds one house under a new salt. On a stage failure
// the previous model stays in place and the error is returned.
func (e *Engine) RegenerateHouse(number int, salt string) (*protocol.HouseLite, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.houses {
		slot := &e.houses[i]
		if slot.record.HouseNumber != number {
			continue
		}
		model, err := e.generate(saltedSeed(e.seed, salt), slot.record)
		if err != nil {
			return nil, err
		}
		slot.model = model
		slot.salt = salt
		e.metrics.Regenerations++
		lite := protocol.HouseLiteFrom(model, slot.record.Bounds.X)
		return &lite, nil
	}
	return nil, &RequestError{Code: "UNKNOWN_HOUSE", Message: fmt.Sprintf("no house numbered %d", number)}
}

// RegenerateStreet rebuilds every house under a new street seed. The street
// keeps its old state when any house fails.
func (e *Engine) RegenerateStreet(seed string) (protocol.Snapshot, error) {
	if seed == "" {
		return protocol.Snapshot{}, &RequestError{Code: "EMPTY_SEED", Message: "street seed must not be empty"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	rebuilt := make([]houseSlot, 0, len(e.houses))
	for i := range e.houses {
		rec := e.houses[i].record
		model, err := e.generate(seed, rec)
		if err != nil {
			return protocol.Snapshot{}, err
		}
		rebuilt = append(rebuilt, houseSlot{record: rec, model: model})
	}
	e.seed = seed
	e.houses = rebuilt

	s := protocol.Snapshot{StreetSeed: e.seed, ProtocolVersion: protocolVersion}
	for i := range e.houses {
		s.Houses = append(s.Houses, protocol.HouseLiteFrom(e.houses[i].model, e.houses[i].record.Bounds.X))
	}
	return s, nil
}
