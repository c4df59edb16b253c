package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// Patch types sent over the stream.
const (
	PatchSnapshot          = "Snapshot"
	PatchScrambleCompleted = "ScrambleCompleted"
	PatchSquaresCollapsed  = "SquaresCollapsed"
	PatchDoorStateChanged  = "DoorStateChanged"
	PatchIntentRejected    = "IntentRejected"
)

type ScrambleCompleted struct {
	Node         string `json:"node"`
	Eligible     int    `json:"eligible"`
	Swapped      int    `json:"swapped"`
	Empty        int    `json:"empty"`
	Added        int    `json:"added"`
	FillAttempts int    `json:"fillAttempts"`
	Collapsed    int    `json:"collapsed"`
}

type SquaresCollapsed struct {
	At    Position `json:"at"`
	Count int      `json:"count"`
}

type DoorStateChanged struct {
	At        Position `json:"at"`
	Direction string   `json:"direction"`
	State     string   `json:"state"`
}

type IntentRejected struct {
	Intent string `json:"intent"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason"`
}
