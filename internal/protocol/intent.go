package protocol

import "encoding/json"

// IntentEnvelope wraps every client-to-server message; Payload stays raw
// until the type is known.
type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RequestSnapshot asks for the current street in full.
type RequestSnapshot struct {
}

// RequestRegenerateHouse asks the server to regenerate one house under a new
// seed salt, leaving the rest of the street untouched.
type RequestRegenerateHouse struct {
	Number int    `json:"number"`
	Salt   string `json:"salt,omitempty"`
}

// RequestRegenerateStreet regenerates every house under a new street seed.
type RequestRegenerateStreet struct {
	Seed string `json:"seed"`
}
