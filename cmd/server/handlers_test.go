package main

import (
	"encoding/json"
	"testing"

	"github.com/suburbsim/street-layout-engine/internal/protocol"
)

type fakeBroadcaster struct {
	events   []string
	payloads []any
}

func (f *fakeBroadcaster) BroadcastEvent(eventType string, payload interface{}) {
	f.events = append(f.events, eventType)
	f.payloads = append(f.payloads, payload)
}

type fakeLogger struct{}

func (fakeLogger) Printf(format string, v ...interface{}) {}

func intent(t *testing.T, typ string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	data, err := json.Marshal(protocol.IntentEnvelope{Type: typ, Payload: raw})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return data
}

func TestHandleRegenerateHouseBroadcastsUpdate(t *testing.T) {
	engine := newTestEngine(t)
	fb := &fakeBroadcaster{}
	h := NewHandlers(engine, fb, fakeLogger{})

	msg := intent(t, "RequestRegenerateHouse", protocol.RequestRegenerateHouse{Number: 2, Salt: "x"})
	if err := h.HandleWebSocketMessage(msg); err != nil {
		t.Fatalf("HandleWebSocketMessage: %v", err)
	}
	if len(fb.events) != 1 || fb.events[0] != "HouseUpdated" {
		t.Fatalf("events = %v, want [HouseUpdated]", fb.events)
	}
	updated, ok := fb.payloads[0].(protocol.HouseUpdated)
	if !ok || updated.House.Number != 2 {
		t.Errorf("payload = %+v", fb.payloads[0])
	}
}

func TestHandleSnapshotRequest(t *testing.T) {
	engine := newTestEngine(t)
	fb := &fakeBroadcaster{}
	h := NewHandlers(engine, fb, fakeLogger{})

	if err := h.HandleWebSocketMessage(intent(t, "RequestSnapshot", protocol.RequestSnapshot{})); err != nil {
		t.Fatalf("HandleWebSocketMessage: %v", err)
	}
	if len(fb.events) != 1 || fb.events[0] != "StreetSnapshot" {
		t.Fatalf("events = %v, want [StreetSnapshot]", fb.events)
	}
}

func TestHandleRegenerateStreet(t *testing.T) {
	engine := newTestEngine(t)
	fb := &fakeBroadcaster{}
	h := NewHandlers(engine, fb, fakeLogger{})

	msg := intent(t, "RequestRegenerateStreet", protocol.RequestRegenerateStreet{Seed: "other"})
	if err := h.HandleWebSocketMessage(msg); err != nil {
		t.Fatalf("HandleWebSocketMessage: %v", err)
	}
	if len(fb.events) != 1 || fb.events[0] != "StreetSnapshot" {
		t.Fatalf("events = %v, want [StreetSnapshot]", fb.events)
	}
	snap, ok := fb.payloads[0].(protocol.StreetSnapshot)
	if !ok || snap.Snapshot.StreetSeed != "other" {
		t.Errorf("payload = %+v", fb.payloads[0])
	}
}

func TestHandleUnknownIntentIsIgnored(t *testing.T) {
	engine := newTestEngine(t)
	fb := &fakeBroadcaster{}
	h := NewHandlers(engine, fb, fakeLogger{})

	if err := h.HandleWebSocketMessage(intent(t, "RequestDemolishHouse", struct{}{})); err != nil {
		t.Fatalf("unknown intent returned error: %v", err)
	}
	if len(fb.events) != 0 {
		t.Errorf("unknown intent broadcast %v", fb.events)
	}

	if err := h.HandleWebSocketMessage([]byte("{not json")); err == nil {
		t.Errorf("malformed envelope accepted")
	}
}
