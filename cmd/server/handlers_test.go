package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/Edward-VS/Kerkers-sub000/internal/dungeon"
	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
	"github.com/Edward-VS/Kerkers-sub000/internal/ws"
)

// Mock implementations for testing handlers
type MockBroadcaster struct {
	events []BroadcastEvent
}

type BroadcastEvent struct {
	EventType string
	Payload   any
}

func (m *MockBroadcaster) BroadcastEvent(eventType string, payload any) {
	m.events = append(m.events, BroadcastEvent{EventType: eventType, Payload: payload})
}

func (m *MockBroadcaster) types() []string {
	var out []string
	for _, e := range m.events {
		out = append(out, e.EventType)
	}
	return out
}

type MockDungeonEngine struct {
	scrambleResult *protocol.ScrambleCompleted
	scrambleError  error
	collapseResult *protocol.SquaresCollapsed
	collapseError  error
	toggleResult   *protocol.DoorStateChanged
	toggleError    error
	snapshots      int
}

func (m *MockDungeonEngine) Snapshot() *protocol.Snapshot {
	m.snapshots++
	return &protocol.Snapshot{Name: "mock"}
}

func (m *MockDungeonEngine) ProcessScramble(req protocol.RequestScramble) (*protocol.ScrambleCompleted, error) {
	return m.scrambleResult, m.scrambleError
}

func (m *MockDungeonEngine) ProcessCollapse(req protocol.RequestCollapse) (*protocol.SquaresCollapsed, error) {
	return m.collapseResult, m.collapseError
}

func (m *MockDungeonEngine) ProcessDoorToggle(req protocol.RequestToggleDoor) (*protocol.DoorStateChanged, error) {
	return m.toggleResult, m.toggleError
}

func equalTypes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIntentHandlers_Scramble(t *testing.T) {
	broadcaster := &MockBroadcaster{}
	engine := &MockDungeonEngine{scrambleResult: &protocol.ScrambleCompleted{Swapped: 4}}
	handlers := NewIntentHandlers(engine, broadcaster, &MockLogger{})

	if err := handlers.Handle(protocol.IntentEnvelope{Type: protocol.IntentScramble}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{protocol.PatchScrambleCompleted, protocol.PatchSnapshot}
	if got := broadcaster.types(); !equalTypes(got, want) {
		t.Fatalf("Expected events %v, got %v", want, got)
	}
	if payload := broadcaster.events[0].Payload.(protocol.ScrambleCompleted); payload.Swapped != 4 {
		t.Errorf("Expected 4 swapped, got %d", payload.Swapped)
	}
}

func TestIntentHandlers_CollapseWithoutEffect(t *testing.T) {
	broadcaster := &MockBroadcaster{}
	engine := &MockDungeonEngine{collapseResult: &protocol.SquaresCollapsed{Count: 0}}
	handlers := NewIntentHandlers(engine, broadcaster, &MockLogger{})

	payload, _ := json.Marshal(protocol.RequestCollapse{At: protocol.Position{X: 1}})
	if err := handlers.Handle(protocol.IntentEnvelope{Type: protocol.IntentCollapse, Payload: payload}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := broadcaster.types(); !equalTypes(got, []string{protocol.PatchSquaresCollapsed}) {
		t.Errorf("Expected only the collapse patch, got %v", got)
	}
	if engine.snapshots != 0 {
		t.Errorf("No snapshot should be taken for a no-op collapse")
	}
}

func TestIntentHandlers_ToggleDoorRejected(t *testing.T) {
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}
	engine := &MockDungeonEngine{toggleError: dungeon.ErrIllegalPlacement}
	handlers := NewIntentHandlers(engine, broadcaster, logger)

	payload, _ := json.Marshal(protocol.RequestToggleDoor{Direction: "north"})
	err := handlers.Handle(protocol.IntentEnvelope{Type: protocol.IntentToggleDoor, Payload: payload})
	if !errors.Is(err, dungeon.ErrIllegalPlacement) {
		t.Fatalf("Expected illegal placement, got %v", err)
	}
	if len(broadcaster.events) != 1 {
		t.Fatalf("Expected one rejection, got %v", broadcaster.types())
	}
	rejected := broadcaster.events[0].Payload.(protocol.IntentRejected)
	if rejected.Code != dungeon.CodeIllegalPlacement || rejected.Intent != protocol.IntentToggleDoor {
		t.Errorf("Unexpected rejection %+v", rejected)
	}
	if len(logger.messages) == 0 {
		t.Error("Expected the failure to be logged")
	}
}

func TestIntentHandlers_UnknownIntent(t *testing.T) {
	broadcaster := &MockBroadcaster{}
	handlers := NewIntentHandlers(&MockDungeonEngine{}, broadcaster, &MockLogger{})

	err := handlers.Handle(protocol.IntentEnvelope{Type: "RequestMove"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Code != "BAD_REQUEST" {
		t.Fatalf("Expected BAD_REQUEST, got %v", err)
	}
	if got := broadcaster.types(); !equalTypes(got, []string{protocol.PatchIntentRejected}) {
		t.Errorf("Expected a rejection, got %v", got)
	}
}

func TestSequenceGenerator(t *testing.T) {
	seq := NewSequenceGenerator()
	if seq.Next() != 1 || seq.Next() != 2 || seq.Current() != 2 {
		t.Error("Sequence should count up from 1")
	}
}

func readPatch(t *testing.T, conn *websocket.Conn) protocol.PatchEnvelope {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var env protocol.PatchEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("Failed to unmarshal patch: %v", err)
	}
	return env
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

func TestStreamSendsSnapshotAndPatches(t *testing.T) {
	logger := discardLogger{}
	engine := newTestEngine(t)
	hub := ws.NewHub(logger)
	sequence := NewSequenceGenerator()
	handlers := NewIntentHandlers(engine, NewBroadcaster(hub, sequence, logger), logger)

	srv := httptest.NewServer(newMux(engine, hub, handlers, sequence, logger))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.CloseNow()

	if hello := readPatch(t, conn); hello.Type != protocol.PatchSnapshot {
		t.Fatalf("Expected a snapshot first, got %s", hello.Type)
	}

	intent, _ := json.Marshal(map[string]any{
		"type":    protocol.IntentToggleDoor,
		"payload": protocol.RequestToggleDoor{At: protocol.Position{X: 1, Y: 2, Z: 1}, Direction: "north"},
	})
	if err := conn.Write(ctx, websocket.MessageText, intent); err != nil {
		t.Fatalf("Write: %v", err)
	}

	patch := readPatch(t, conn)
	if patch.Type != protocol.PatchDoorStateChanged || patch.Sequence != 1 {
		t.Fatalf("Expected DoorStateChanged #1, got %s #%d", patch.Type, patch.Sequence)
	}
	changed := patch.Payload.(map[string]any)
	if changed["state"] != "door-open" {
		t.Errorf("Expected the door to open, got %v", changed)
	}
}

func TestIndexAndSnapshotRoutes(t *testing.T) {
	logger := &MockLogger{}
	engine := newTestEngine(t)
	hub := ws.NewHub(logger)
	sequence := NewSequenceGenerator()
	mux := newMux(engine, hub, NewIntentHandlers(engine, NewBroadcaster(hub, sequence, logger), logger), sequence, logger)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "Floor 2") {
		t.Errorf("Unexpected index response %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/snapshot", nil))
	var snap protocol.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if snap.DungeonID != "tower" || len(snap.Squares) != 3*8*6+3 {
		t.Errorf("Unexpected snapshot %s with %d squares", snap.DungeonID, len(snap.Squares))
	}
}

func TestPrintSnapshot(t *testing.T) {
	var b strings.Builder
	if err := printSnapshot(&b, newTestEngine(t).Snapshot()); err != nil {
		t.Fatalf("printSnapshot: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "floor 0\nRRRRRRRR#\n") {
		t.Errorf("Expected a rock ground floor with the shaft column empty above row 0, got\n%s", out)
	}
	if strings.Index(out, "floor 2") > strings.Index(out, "floor 0") {
		t.Error("Top floor should print first")
	}
}

func TestTemperatureSummary(t *testing.T) {
	if got := temperatureSummary(nil); got != "" {
		t.Errorf("Expected no summary for an empty floor, got %q", got)
	}
	squares := []protocol.SquareLite{{Temperature: 10}, {Temperature: 20}, {Temperature: 30}}
	if got := temperatureSummary(squares); got != "temperature mean 20.0 std 10.0" {
		t.Errorf("Unexpected summary %q", got)
	}
	if got := temperatureSummary(squares[:1]); got != "temperature mean 10.0 std 0.0" {
		t.Errorf("Unexpected single square summary %q", got)
	}
}
