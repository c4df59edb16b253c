package protocol

import (
	"encoding/json"
	"fmt"
)

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Intent types accepted on the stream.
const (
	IntentScramble   = "RequestScramble"
	IntentCollapse   = "RequestCollapse"
	IntentToggleDoor = "RequestToggleDoor"
)

// RequestScramble scrambles the node with the given id, or the whole
// dungeon when Node is empty.
type RequestScramble struct {
	Node string `json:"node,omitempty"`
}

type RequestCollapse struct {
	At Position `json:"at"`
}

type RequestToggleDoor struct {
	At        Position `json:"at"`
	Direction string   `json:"direction"`
}

// DecodeIntent unpacks the payload of env into its request type.
func DecodeIntent(env IntentEnvelope) (any, error) {
	var req any
	switch env.Type {
	case IntentScramble:
		req = &RequestScramble{}
	case IntentCollapse:
		req = &RequestCollapse{}
	case IntentToggleDoor:
		req = &RequestToggleDoor{}
	default:
		return nil, fmt.Errorf("unknown intent type %q", env.Type)
	}
	if len(env.Payload) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(env.Payload, req); err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", env.Type, err)
	}
	return req, nil
}
