// Package protocol defines the wire types exchanged with street viewer
// clients: the full-street snapshot, server-to-client patches, and
// client-to-server intents.
package protocol

import (
	"github.com/suburbsim/street-layout-engine/internal/geometry"
	"github.com/suburbsim/street-layout-engine/internal/layout"
)

type RegionLite struct {
	Name    string           `json:"name"`
	Surface string           `json:"surface"`
	Outline geometry.Polygon `json:"outline"`
	Void    bool             `json:"void,omitempty"`
}

type DoorLite struct {
	RegionA int            `json:"regionA"`
	RegionB int            `json:"regionB"`
	Hinge   geometry.Point `json:"hinge"`
	End     geometry.Point `json:"end"`
}

type FloorLite struct {
	Regions []RegionLite `json:"regions"`
	Doors   []DoorLite   `json:"doors,omitempty"`
}

type HouseLite struct {
	Number      int           `json:"number"`
	Seed        string        `json:"seed"`
	Exterior    string        `json:"exterior"`
	Lot         geometry.Rect `json:"lot"`
	StreetX     float64       `json:"streetX"`
	Plot        FloorLite     `json:"plot"`
	FirstFloor  FloorLite     `json:"firstFloor"`
	SecondFloor FloorLite     `json:"secondFloor"`
}

type Snapshot struct {
	StreetSeed      string      `json:"streetSeed"`
	Houses          []HouseLite `json:"houses"`
	ProtocolVersion string      `json:"protocolVersion"`
}

// FloorLiteFrom flattens a floor model into its wire form.
func FloorLiteFrom(f *layout.FloorModel) FloorLite {
	out := FloorLite{Regions: make([]RegionLite, len(f.Regions))}
	for i, r := range f.Regions {
		out.Regions[i] = RegionLite{
			Name:    r.Name,
			Surface: string(r.Surface),
			Outline: r.Outline(),
			Void:    r.Void(),
		}
	}
	for _, d := range f.Construction {
		out.Doors = append(out.Doors, DoorLite{
			RegionA: d.RegionA,
			RegionB: d.RegionB,
			Hinge:   d.Hinge,
			End:     d.End,
		})
	}
	return out
}

// HouseLiteFrom flattens a house model, carrying the lot's street offset so
// clients can place lot-local coordinates.
func HouseLiteFrom(h *layout.HouseModel, streetX float64) HouseLite {
	return HouseLite{
		Number:      h.Number,
		Seed:        h.Seed,
		Exterior:    h.Exterior,
		Lot:         h.Lot,
		StreetX:     streetX,
		Plot:        FloorLiteFrom(&h.Plot),
		FirstFloor:  FloorLiteFrom(&h.FirstFloor),
		SecondFloor: FloorLiteFrom(&h.SecondFloor),
	}
}
