// Package config loads and validates street definitions: the seed plus the
// per-house records the generator consumes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/suburbsim/street-layout-engine/internal/layout"
)

// Bounds is a lot placement in street coordinates. X runs along the street;
// every lot fronts the same street line at Z = 0.
type Bounds struct {
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	XSize float64 `json:"xsize"`
	ZSize float64 `json:"zsize"`
}

// HouseRecord describes one house to generate: its street number, who lives
// there, and the lot it sits on.
type HouseRecord struct {
	HouseNumber int    `json:"houseNumber"`
	Occupants   []int  `json:"occupants"`
	Bounds      Bounds `json:"bounds"`
}

// Street is a complete street definition.
type Street struct {
	Seed   string        `json:"seed"`
	Houses []HouseRecord `json:"houses"`
}

// Load reads and validates a street definition file.
func Load(path string) (*Street, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read street config: %w", err)
	}
	var street Street
	if err := json.Unmarshal(data, &street); err != nil {
		return nil, fmt.Errorf("parse street config: %w", err)
	}
	if err := street.Validate(); err != nil {
		return nil, err
	}
	return &street, nil
}

// Validate checks the street as a whole: a non-empty seed, unique house
// numbers, and every record within the generator's accepted ranges.
func (s *Street) Validate() error {
	if s.Seed == "" {
		return fmt.Errorf("street config: seed must not be empty")
	}
	if len(s.Houses) == 0 {
		return fmt.Errorf("street config: no houses defined")
	}
	seen := make(map[int]bool, len(s.Houses))
	for i, h := range s.Houses {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("street config: house %d: %w", i, err)
		}
		if seen[h.HouseNumber] {
			return fmt.Errorf("street config: duplicate house number %d", h.HouseNumber)
		}
		seen[h.HouseNumber] = true
	}

	// Lots share one street strip and must not overlap along it.
	order := make([]int, len(s.Houses))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return s.Houses[order[a]].Bounds.X < s.Houses[order[b]].Bounds.X
	})
	for k := 1; k < len(order); k++ {
		prev, cur := &s.Houses[order[k-1]], &s.Houses[order[k]]
		if prev.Bounds.X+prev.Bounds.XSize > cur.Bounds.X+1e-9 {
			return fmt.Errorf("street config: houses %d and %d have overlapping lots",
				prev.HouseNumber, cur.HouseNumber)
		}
	}
	return nil
}

// Validate checks one house record against the generator's input ranges.
func (h *HouseRecord) Validate() error {
	if h.HouseNumber <= 0 {
		return fmt.Errorf("houseNumber %d must be positive", h.HouseNumber)
	}
	if len(h.Occupants) < 1 || len(h.Occupants) > 6 {
		return fmt.Errorf("house %d: %d occupants, want 1-6", h.HouseNumber, len(h.Occupants))
	}
	for _, id := range h.Occupants {
		if id <= 0 {
			return fmt.Errorf("house %d: occupant id %d must be positive", h.HouseNumber, id)
		}
	}
	if h.Bounds.XSize < 10 || h.Bounds.XSize > 16 {
		return fmt.Errorf("house %d: lot width %v out of range [10,16]", h.HouseNumber, h.Bounds.XSize)
	}
	if h.Bounds.ZSize != layout.LotDepth {
		return fmt.Errorf("house %d: lot depth %v, must be %v", h.HouseNumber, h.Bounds.ZSize, layout.LotDepth)
	}
	return nil
}

// HouseConfig converts a record to the generator's input form.
func (h *HouseRecord) HouseConfig() layout.HouseConfig {
	return layout.HouseConfig{
		Number:    h.HouseNumber,
		Occupants: len(h.Occupants),
		LotWidth:  h.Bounds.XSize,
		LotDepth:  h.Bounds.ZSize,
	}
}

// DevStreet is the built-in street used when no config file is given:
// six houses of varied lot widths and household sizes, laid side by side.
func DevStreet() *Street {
	widths := []float64{12, 10, 14, 11.5, 16, 12.5}
	occupants := [][]int{
		{1, 2},
		{3},
		{4, 5, 6, 7},
		{8, 9, 10},
		{11, 12, 13, 14, 15},
		{16, 17, 18, 19, 20, 21},
	}
	street := &Street{Seed: "dev-street"}
	x := 0.0
	for i, w := range widths {
		street.Houses = append(street.Houses, HouseRecord{
			HouseNumber: i + 1,
			Occupants:   occupants[i],
			Bounds:      Bounds{X: x, Z: 0, XSize: w, ZSize: layout.LotDepth},
		})
		x += w
	}
	return street
}
