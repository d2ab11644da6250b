package protocol

// PatchEnvelope wraps every server-to-client message with a monotonic
// sequence so clients can detect drops.
type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// StreetSnapshot carries the full street; sent on connect and after a
// street-wide regeneration.
type StreetSnapshot struct {
	Snapshot Snapshot `json:"snapshot"`
}

// HouseUpdated carries one regenerated house.
type HouseUpdated struct {
	House HouseLite `json:"house"`
}

// HouseRejected reports why a regeneration request produced no house.
type HouseRejected struct {
	Number int    `json:"number"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}
