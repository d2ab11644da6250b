package main

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/suburbsim/street-layout-engine/internal/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(config.DevStreet())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestEngineSnapshot(t *testing.T) {
	engine := newTestEngine(t)
	s := engine.Snapshot()

	if s.StreetSeed != "dev-street" {
		t.Errorf("seed = %q", s.StreetSeed)
	}
	if s.ProtocolVersion != protocolVersion {
		t.Errorf("protocol version = %q", s.ProtocolVersion)
	}
	if len(s.Houses) != 6 {
		t.Fatalf("%d houses, want 6", len(s.Houses))
	}
	x := 0.0
	for _, h := range s.Houses {
		if h.StreetX != x {
			t.Errorf("house %d at streetX %v, want %v", h.Number, h.StreetX, x)
		}
		x += h.Lot.MaxX - h.Lot.MinX
	}
}

func TestRegenerateHouse(t *testing.T) {
	engine := newTestEngine(t)
	before, _ := json.Marshal(engine.Snapshot().Houses[2])

	lite, err := engine.RegenerateHouse(3, "v2")
	if err != nil {
		t.Fatalf("RegenerateHouse: %v", err)
	}
	after, _ := json.Marshal(*lite)
	if string(before) == string(after) {
		t.Errorf("salted regeneration produced an identical house")
	}

	// Same salt must reproduce the same house.
	again, err := engine.RegenerateHouse(3, "v2")
	if err != nil {
		t.Fatalf("RegenerateHouse repeat: %v", err)
	}
	repeat, _ := json.Marshal(*again)
	if string(after) != string(repeat) {
		t.Errorf("same salt produced a different house")
	}

	if _, err := engine.RegenerateHouse(99, ""); err == nil {
		t.Fatalf("RegenerateHouse accepted an unknown house number")
	} else {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) || reqErr.Code != "UNKNOWN_HOUSE" {
			t.Errorf("unexpected error: %v", err)
		}
	}
}

func TestRegenerateStreet(t *testing.T) {
	engine := newTestEngine(t)
	before, _ := json.Marshal(engine.Snapshot())

	s, err := engine.RegenerateStreet("second-draft")
	if err != nil {
		t.Fatalf("RegenerateStreet: %v", err)
	}
	if s.StreetSeed != "second-draft" {
		t.Errorf("seed = %q", s.StreetSeed)
	}
	after, _ := json.Marshal(engine.Snapshot())
	if string(before) == string(after) {
		t.Errorf("new street seed produced an identical street")
	}

	if _, err := engine.RegenerateStreet(""); err == nil {
		t.Errorf("RegenerateStreet accepted an empty seed")
	}
}
