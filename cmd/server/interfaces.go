package main

import (
	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
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

// DungeonEngine is the dungeon as the stream handlers see it. Every call is
// serialized by the implementation.
type DungeonEngine interface {
	Snapshot() *protocol.Snapshot
	ProcessScramble(req protocol.RequestScramble) (*protocol.ScrambleCompleted, error)
	ProcessCollapse(req protocol.RequestCollapse) (*protocol.SquaresCollapsed, error)
	ProcessDoorToggle(req protocol.RequestToggleDoor) (*protocol.DoorStateChanged, error)
}
