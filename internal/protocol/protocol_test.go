package protocol

import (
	"encoding/json"
	"testing"

	"github.com/suburbsim/street-layout-engine/internal/layout"
)

func TestFloorLiteFrom(t *testing.T) {
	h, err := layout.Generate("protocol-test", layout.HouseConfig{
		Number: 1, Occupants: 4, LotWidth: 12, LotDepth: 30,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	lite := HouseLiteFrom(h, 24)
	if lite.StreetX != 24 {
		t.Errorf("StreetX = %v, want 24", lite.StreetX)
	}
	if len(lite.FirstFloor.Regions) != len(h.FirstFloor.Regions) {
		t.Fatalf("first floor regions %d, want %d", len(lite.FirstFloor.Regions), len(h.FirstFloor.Regions))
	}
	if len(lite.FirstFloor.Doors) != len(h.FirstFloor.Construction) {
		t.Fatalf("first floor doors %d, want %d", len(lite.FirstFloor.Doors), len(h.FirstFloor.Construction))
	}
	for i, r := range lite.SecondFloor.Regions {
		if r.Void != h.SecondFloor.Regions[i].Void() {
			t.Errorf("region %d void flag mismatch", i)
		}
		if len(r.Outline) < 4 {
			t.Errorf("region %d outline has %d vertices", i, len(r.Outline))
		}
	}
}

func TestIntentEnvelopeRoundTrip(t *testing.T) {
	payload, _ := json.Marshal(RequestRegenerateHouse{Number: 3, Salt: "v2"})
	env := IntentEnvelope{Type: "RequestRegenerateHouse", Payload: payload}
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded IntentEnvelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != "RequestRegenerateHouse" {
		t.Fatalf("type = %q", decoded.Type)
	}
	var req RequestRegenerateHouse
	if err := json.Unmarshal(decoded.Payload, &req); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if req.Number != 3 || req.Salt != "v2" {
		t.Errorf("payload = %+v", req)
	}
}

func TestPatchEnvelopeCarriesPayloadType(t *testing.T) {
	env := PatchEnvelope{Sequence: 9, Type: "HouseRejected", Payload: HouseRejected{
		Number: 2, Stage: "firstFloor", Reason: "kitchen too small",
	}}
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out struct {
		Sequence uint64        `json:"seq"`
		Type     string        `json:"type"`
		Payload  HouseRejected `json:"payload"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Sequence != 9 || out.Payload.Stage != "firstFloor" {
		t.Errorf("round trip = %+v", out)
	}
}
