package geometry

import (
	"fmt"
	"strings"
)

type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	Up
	Down
)

// Directions lists all six directions in a fixed order.
var Directions = [...]Direction{North, East, South, West, Up, Down}

var directionNames = [...]string{"north", "east", "south", "west", "up", "down"}

var directionOffsets = [...]Point{
	North: {Y: 1},
	East:  {X: 1},
	South: {Y: -1},
	West:  {X: -1},
	Up:    {Z: 1},
	Down:  {Z: -1},
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	default:
		return Up
	}
}

// Offset is the unit step from a position to its neighbor in direction d.
func (d Direction) Offset() Point {
	return directionOffsets[d]
}

func (d Direction) Valid() bool {
	return int(d) < len(Directions)
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", d)
	}
	return directionNames[d]
}

// ParseDirection accepts the lower-case names produced by String.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Axis selects one of the three coordinate axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Positive is the direction that increases the axis coordinate.
func (a Axis) Positive() Direction {
	switch a {
	case AxisX:
		return East
	case AxisY:
		return North
	default:
		return Up
	}
}

// Of returns the coordinate of p along the axis.
func (a Axis) Of(p Point) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Extent returns a box with extent n along the axis and 1 on the others.
func (a Axis) Extent(n int) Point {
	p := Unit
	switch a {
	case AxisX:
		p.X = n
	case AxisY:
		p.Y = n
	default:
		p.Z = n
	}
	return p
}

// OnFace reports whether position p, inside a box of the given size, lies on
// the exterior face the box presents in direction d.
func OnFace(p, size Point, d Direction) bool {
	switch d {
	case East:
		return p.X == size.X-1
	case West:
		return p.X == 0
	case North:
		return p.Y == size.Y-1
	case South:
		return p.Y == 0
	case Up:
		return p.Z == size.Z-1
	default:
		return p.Z == 0
	}
}
