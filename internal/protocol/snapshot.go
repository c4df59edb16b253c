package protocol

// ProtocolVersion is bumped whenever a payload changes shape.
const ProtocolVersion = "dungeon.v1"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// SquareLite is one square as seen from the dungeon root. Obstacles lists
// the boundary in each direction in north, east, south, west, up, down
// order, using "wall", "door-open", "door-closed" or "open".
type SquareLite struct {
	ID          int32    `json:"id"`
	Pos         Position `json:"pos"`
	Kind        string   `json:"kind"`
	Temperature int      `json:"temperature"`
	Obstacles   []string `json:"obstacles"`
}

type NodeLite struct {
	ID       string     `json:"id"`
	Handle   int32      `json:"handle"`
	Kind     string     `json:"kind"`
	Shape    string     `json:"shape"`
	Offset   Position   `json:"offset"`
	Size     Position   `json:"size"`
	Squares  int        `json:"squares"`
	Scramble bool       `json:"scramble"`
	Children []NodeLite `json:"children,omitempty"`
}

type Snapshot struct {
	DungeonID       string       `json:"dungeonId"`
	Name            string       `json:"name"`
	Size            Position     `json:"size"`
	LastEventID     int64        `json:"lastEventId"`
	Tree            NodeLite     `json:"tree"`
	Squares         []SquareLite `json:"squares"`
	ThermalGroups   int          `json:"thermalGroups"`
	ProtocolVersion string       `json:"protocolVersion"`
}

// Layer returns the squares of s on floor z, keeping their order.
func (s *Snapshot) Layer(z int) []SquareLite {
	var out []SquareLite
	for _, sq := range s.Squares {
		if sq.Pos.Z == z {
			out = append(out, sq)
		}
	}
	return out
}
