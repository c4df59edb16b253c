package dungeon

import (
	"fmt"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// Temperature bounds, in degrees Celsius.
const (
	MinTemperature     = -200
	MaxTemperature     = 5000
	DefaultTemperature = 20
)

// SquareKind decides how a square behaves when the dungeon collapses.
type SquareKind uint8

const (
	// Plain squares collapse and support whatever falls onto them.
	Plain SquareKind = iota
	// Rock squares never collapse but still support a collapse above them.
	Rock
)

func (k SquareKind) Collapsible() bool { return k != Rock }

func (k SquareKind) SupportsCollapse() bool { return true }

func (k SquareKind) String() string {
	if k == Rock {
		return "rock"
	}
	return "plain"
}

func ParseSquareKind(s string) (SquareKind, error) {
	switch s {
	case "", "plain":
		return Plain, nil
	case "rock":
		return Rock, nil
	}
	return Plain, fmt.Errorf("unknown square kind %q", s)
}

func validTemperature(t int) bool {
	return t >= MinTemperature && t <= MaxTemperature
}

// NewSquare creates a detached square, walled on every side.
func (w *World) NewSquare(kind SquareKind, temperature int) (SquareID, error) {
	if !validTemperature(temperature) {
		return NoSquare, &Error{
			Code:    CodeIllegalTemperature,
			Message: fmt.Sprintf("temperature %d outside [%d, %d]", temperature, MinTemperature, MaxTemperature),
		}
	}
	s := &square{
		kind:        kind,
		temperature: temperature,
		owner:       NoNode,
	}
	for _, d := range geometry.Directions {
		s.neighbors[d] = NoSquare
		s.obstacles[d] = Wall
	}
	w.squares = append(w.squares, s)
	return SquareID(len(w.squares) - 1), nil
}

// DefaultSquare creates a detached plain square at the default temperature.
func (w *World) DefaultSquare() SquareID {
	id, _ := w.NewSquare(Plain, DefaultTemperature)
	return id
}

func (w *World) Neighbor(s SquareID, d geometry.Direction) SquareID {
	return w.sq(s).neighbors[d]
}

func (w *World) Obstacle(s SquareID, d geometry.Direction) Obstacle {
	return w.sq(s).obstacles[d]
}

func (w *World) Temperature(s SquareID) int { return w.sq(s).temperature }

func (w *World) SquareKindOf(s SquareID) SquareKind { return w.sq(s).kind }

func (w *World) IsSquareTerminated(s SquareID) bool { return w.sq(s).terminated }

// Owner is the leaf currently holding s, or NoNode.
func (w *World) Owner(s SquareID) NodeID { return w.sq(s).owner }

func (w *World) IsAttached(s SquareID) bool { return w.sq(s).owner != NoNode }

// LocalPosition is the position of s inside its owning leaf.
func (w *World) LocalPosition(s SquareID) geometry.Point { return w.sq(s).pos }

// SquareRootPosition is the position of s in its root's frame.
func (w *World) SquareRootPosition(s SquareID) geometry.Point {
	sq := w.sq(s)
	return w.RootPosition(sq.owner).Add(sq.pos)
}

// SetTemperature sets the temperature of the whole thermal group of s.
func (w *World) SetTemperature(s SquareID, t int) error {
	if !validTemperature(t) {
		return &Error{
			Code:    CodeIllegalTemperature,
			Message: fmt.Sprintf("temperature %d outside [%d, %d]", t, MinTemperature, MaxTemperature),
		}
	}
	for _, m := range w.ThermalGroup(s) {
		w.sq(m).temperature = t
	}
	return nil
}

// TerminateSquare removes s from its leaf, if any, and destroys it.
func (w *World) TerminateSquare(s SquareID) error {
	sq := w.sq(s)
	if sq.terminated {
		return nil
	}
	if sq.owner != NoNode {
		if _, err := w.removeFromLeaf(sq.owner, sq.pos, false); err != nil {
			return err
		}
	}
	sq.terminated = true
	return nil
}

// BuildWall puts a wall between s and its neighbor in direction d.
func (w *World) BuildWall(s SquareID, d geometry.Direction) error {
	return w.setBoundary(s, d, Wall)
}

// BuildDoor puts a door between s and its neighbor in direction d.
func (w *World) BuildDoor(s SquareID, d geometry.Direction, open bool) error {
	return w.setBoundary(s, d, Door(open))
}

// DestroyObstacle opens the boundary between s and its neighbor in direction d.
func (w *World) DestroyObstacle(s SquareID, d geometry.Direction) error {
	return w.setBoundary(s, d, Open)
}

// ToggleDoor opens a closed door or closes an open one.
func (w *World) ToggleDoor(s SquareID, d geometry.Direction) (Obstacle, error) {
	o := w.sq(s).obstacles[d]
	if !o.IsDoor() {
		return o, illegalPlacement("square %d has no door towards %s", s, d)
	}
	toggled := Door(!o.Open)
	return toggled, w.setBoundary(s, d, toggled)
}

func (w *World) setBoundary(s SquareID, d geometry.Direction, o Obstacle) error {
	sq := w.sq(s)
	if sq.terminated {
		return illegalPlacement("square %d is terminated", s)
	}
	n := sq.neighbors[d]
	if n == NoSquare {
		return illegalPlacement("square %d has no neighbor towards %s", s, d)
	}
	sq.obstacles[d] = o
	w.sq(n).obstacles[d.Opposite()] = o
	if o.Traversable() {
		w.equalize(s)
	}
	return nil
}
