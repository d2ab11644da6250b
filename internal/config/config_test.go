package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validStreet() *Street {
	return &Street{
		Seed: "test",
		Houses: []HouseRecord{
			{HouseNumber: 1, Occupants: []int{1, 2}, Bounds: Bounds{XSize: 12, ZSize: 30}},
			{HouseNumber: 2, Occupants: []int{3}, Bounds: Bounds{X: 12, XSize: 10, ZSize: 30}},
		},
	}
}

func TestValidateAcceptsGoodStreet(t *testing.T) {
	if err := validStreet().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Street)
	}{
		{"empty seed", func(s *Street) { s.Seed = "" }},
		{"no houses", func(s *Street) { s.Houses = nil }},
		{"duplicate number", func(s *Street) { s.Houses[1].HouseNumber = 1 }},
		{"zero house number", func(s *Street) { s.Houses[0].HouseNumber = 0 }},
		{"no occupants", func(s *Street) { s.Houses[0].Occupants = nil }},
		{"seven occupants", func(s *Street) { s.Houses[0].Occupants = []int{1, 2, 3, 4, 5, 6, 7} }},
		{"negative occupant id", func(s *Street) { s.Houses[0].Occupants = []int{-1} }},
		{"narrow lot", func(s *Street) { s.Houses[0].Bounds.XSize = 9.5 }},
		{"wide lot", func(s *Street) { s.Houses[0].Bounds.XSize = 16.5 }},
		{"wrong depth", func(s *Street) { s.Houses[0].Bounds.ZSize = 25 }},
		{"overlapping lots", func(s *Street) { s.Houses[1].Bounds.X = 8 }},
	}
	for _, tc := range cases {
		s := validStreet()
		tc.mutate(s)
		if err := s.Validate(); err == nil {
			t.Errorf("%s: Validate accepted an invalid street", tc.name)
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "street.json")
	data := `{
		"seed": "maple",
		"houses": [
			{"houseNumber": 7, "occupants": [1, 2, 3], "bounds": {"x": 0, "z": 0, "xsize": 12, "zsize": 30}}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	street, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if street.Seed != "maple" || len(street.Houses) != 1 {
		t.Fatalf("Load = %+v", street)
	}
	cfg := street.Houses[0].HouseConfig()
	if cfg.Number != 7 || cfg.Occupants != 3 || cfg.LotWidth != 12 {
		t.Errorf("HouseConfig = %+v", cfg)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("Load accepted a missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := Load(path); err == nil {
		t.Errorf("Load accepted malformed JSON")
	}
}

func TestDevStreetIsValid(t *testing.T) {
	street := DevStreet()
	if err := street.Validate(); err != nil {
		t.Fatalf("DevStreet does not validate: %v", err)
	}
	if len(street.Houses) != 6 {
		t.Errorf("DevStreet has %d houses, want 6", len(street.Houses))
	}
	x := 0.0
	for _, h := range street.Houses {
		if h.Bounds.X != x {
			t.Errorf("house %d at x=%v, want %v (lots must abut)", h.HouseNumber, h.Bounds.X, x)
		}
		x += h.Bounds.XSize
	}
}
