package main

import (
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"

	"github.com/suburbsim/street-layout-engine/internal/layout"
	"github.com/suburbsim/street-layout-engine/internal/protocol"
	"github.com/suburbsim/street-layout-engine/internal/ws"
)

// BroadcasterImpl implements Broadcaster using WebSocket hub
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(eventType string, payload interface{}) {
	envelope := protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		Type:     eventType,
		Payload:  payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("failed to marshal %s: %v", eventType, err)
		return
	}
	log.Printf("broadcasting %s", eventType)
	b.hub.Broadcast(data)
}

// LoggerImpl implements Logger using standard log package
type LoggerImpl struct{}

func NewLogger() *LoggerImpl {
	return &LoggerImpl{}
}

func (l *LoggerImpl) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// SequenceGeneratorImpl implements SequenceGenerator using atomic counter
type SequenceGeneratorImpl struct {
	counter uint64
}

func NewSequenceGenerator() *SequenceGeneratorImpl {
	return &SequenceGeneratorImpl{}
}

func (sg *SequenceGeneratorImpl) Next() uint64 {
	return atomic.AddUint64(&sg.counter, 1)
}

func (sg *SequenceGeneratorImpl) Current() uint64 {
	return atomic.LoadUint64(&sg.counter)
}

// Handlers routes decoded client intents to the engine and broadcasts the
// results; dependencies are injected for testability.
type Handlers struct {
	engine      StreetEngine
	broadcaster Broadcaster
	logger      Logger
}

func NewHandlers(engine StreetEngine, broadcaster Broadcaster, logger Logger) *Handlers {
	return &Handlers{
		engine:      engine,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (h *Handlers) HandleRegenerateHouse(req protocol.RequestRegenerateHouse) error {
	lite, err := h.engine.RegenerateHouse(req.Number, req.Salt)
	if err != nil {
		h.logger.Printf("regenerate house %d failed: %v", req.Number, err)
		var stageErr *layout.StageError
		if errors.As(err, &stageErr) {
			h.broadcaster.BroadcastEvent("HouseRejected", protocol.HouseRejected{
				Number: stageErr.House,
				Stage:  stageErr.Stage,
				Reason: stageErr.Msg,
			})
			return nil
		}
		return err
	}
	h.broadcaster.BroadcastEvent("HouseUpdated", protocol.HouseUpdated{House: *lite})
	return nil
}

func (h *Handlers) HandleRegenerateStreet(req protocol.RequestRegenerateStreet) error {
	snapshot, err := h.engine.RegenerateStreet(req.Seed)
	if err != nil {
		h.logger.Printf("regenerate street %q failed: %v", req.Seed, err)
		return err
	}
	h.broadcaster.BroadcastEvent("StreetSnapshot", protocol.StreetSnapshot{Snapshot: snapshot})
	return nil
}

func (h *Handlers) HandleWebSocketMessage(data []byte) error {
	var env protocol.IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Type {
	case "RequestSnapshot":
		h.broadcaster.BroadcastEvent("StreetSnapshot", protocol.StreetSnapshot{Snapshot: h.engine.Snapshot()})
		return nil

	case "RequestRegenerateHouse":
		var req protocol.RequestRegenerateHouse
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.HandleRegenerateHouse(req)

	case "RequestRegenerateStreet":
		var req protocol.RequestRegenerateStreet
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.HandleRegenerateStreet(req)

	default:
		h.logger.Printf("Unknown message type: %s", env.Type)
		return nil
	}
}
