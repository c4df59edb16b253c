package main

import (
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
	"github.com/Edward-VS/Kerkers-sub000/internal/ws"
)

// BroadcasterImpl implements Broadcaster using WebSocket hub
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
	logger   Logger
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator, logger Logger) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
		logger:   logger,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(eventType string, payload interface{}) {
	data, err := marshalPatch(b.sequence.Next(), eventType, payload)
	if err != nil {
		b.logger.Printf("failed to marshal %s: %v", eventType, err)
		return
	}
	b.logger.Printf("broadcasting %s to %d viewers", eventType, b.hub.Count())
	b.hub.Broadcast(data)
}

func marshalPatch(seq uint64, eventType string, payload interface{}) ([]byte, error) {
	var eventID int64
	if snap, ok := payload.(*protocol.Snapshot); ok {
		eventID = snap.LastEventID
	}
	return json.Marshal(protocol.PatchEnvelope{
		Sequence: seq,
		EventID:  eventID,
		Type:     eventType,
		Payload:  payload,
	})
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

// IntentHandlers turns decoded intents into engine calls and patches.
type IntentHandlers struct {
	engine      DungeonEngine
	broadcaster Broadcaster
	logger      Logger
}

func NewIntentHandlers(engine DungeonEngine, broadcaster Broadcaster, logger Logger) *IntentHandlers {
	return &IntentHandlers{
		engine:      engine,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Handle dispatches one intent envelope. A rejected intent is reported to
// every viewer and returned.
func (h *IntentHandlers) Handle(env protocol.IntentEnvelope) error {
	req, err := protocol.DecodeIntent(env)
	if err != nil {
		err = badRequest("%v", err)
		h.reject(env.Type, err)
		return err
	}

	switch r := req.(type) {
	case *protocol.RequestScramble:
		err = h.HandleRequestScramble(*r)
	case *protocol.RequestCollapse:
		err = h.HandleRequestCollapse(*r)
	case *protocol.RequestToggleDoor:
		err = h.HandleRequestToggleDoor(*r)
	}
	if err != nil {
		h.reject(env.Type, err)
	}
	return err
}

func (h *IntentHandlers) HandleRequestScramble(req protocol.RequestScramble) error {
	result, err := h.engine.ProcessScramble(req)
	if err != nil {
		h.logger.Printf("Scramble failed: %v", err)
		return err
	}
	h.broadcaster.BroadcastEvent(protocol.PatchScrambleCompleted, *result)
	h.broadcaster.BroadcastEvent(protocol.PatchSnapshot, h.engine.Snapshot())
	return nil
}

func (h *IntentHandlers) HandleRequestCollapse(req protocol.RequestCollapse) error {
	result, err := h.engine.ProcessCollapse(req)
	if err != nil {
		h.logger.Printf("Collapse failed: %v", err)
		return err
	}
	h.broadcaster.BroadcastEvent(protocol.PatchSquaresCollapsed, *result)
	if result.Count > 0 {
		h.broadcaster.BroadcastEvent(protocol.PatchSnapshot, h.engine.Snapshot())
	}
	return nil
}

func (h *IntentHandlers) HandleRequestToggleDoor(req protocol.RequestToggleDoor) error {
	result, err := h.engine.ProcessDoorToggle(req)
	if err != nil {
		h.logger.Printf("Door toggle failed: %v", err)
		return err
	}
	h.broadcaster.BroadcastEvent(protocol.PatchDoorStateChanged, *result)
	return nil
}

func (h *IntentHandlers) reject(intent string, err error) {
	h.broadcaster.BroadcastEvent(protocol.PatchIntentRejected, protocol.IntentRejected{
		Intent: intent,
		Code:   errorCode(err),
		Reason: err.Error(),
	})
}
