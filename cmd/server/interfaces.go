package main

import (
	"github.com/suburbsim/street-layout-engine/internal/protocol"
)

// Broadcaster interface for WebSocket communication
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...interface{})
}

// SequenceGenerator interface for sequence number generation
type SequenceGenerator interface {
	Next() uint64
}

// StreetEngine interface for the generated street state
type StreetEngine interface {
	Snapshot() protocol.Snapshot
	RegenerateHouse(number int, salt string) (*protocol.HouseLite, error)
	RegenerateStreet(seed string) (protocol.Snapshot, error)
}
