package dungeon

// ObstacleKind distinguishes what separates two squares.
type ObstacleKind uint8

const (
	ObstacleNone ObstacleKind = iota
	ObstacleWall
	ObstacleDoor
)

// Obstacle is the value sitting on one side of a square boundary. The zero
// value is an open boundary.
type Obstacle struct {
	Kind ObstacleKind
	Open bool
}

var (
	Open       = Obstacle{}
	Wall       = Obstacle{Kind: ObstacleWall}
	OpenDoor   = Obstacle{Kind: ObstacleDoor, Open: true}
	ClosedDoor = Obstacle{Kind: ObstacleDoor}
)

func Door(open bool) Obstacle {
	return Obstacle{Kind: ObstacleDoor, Open: open}
}

func (o Obstacle) IsWall() bool { return o.Kind == ObstacleWall }

func (o Obstacle) IsDoor() bool { return o.Kind == ObstacleDoor }

func (o Obstacle) IsNone() bool { return o.Kind == ObstacleNone }

// IsOpenDoor reports whether o is a door that is currently open.
func (o Obstacle) IsOpenDoor() bool { return o.IsDoor() && o.Open }

// Traversable reports whether heat and walkers pass this boundary.
func (o Obstacle) Traversable() bool {
	return o.IsNone() || o.IsOpenDoor()
}

// CanSeparate reports whether o may sit between two neighboring squares.
// Every kind can; only walls may face the void.
func (o Obstacle) CanSeparate() bool {
	return o.Kind <= ObstacleDoor
}

func (o Obstacle) String() string {
	switch {
	case o.IsWall():
		return "wall"
	case o.IsOpenDoor():
		return "door-open"
	case o.IsDoor():
		return "door-closed"
	default:
		return "open"
	}
}

// strongest resolves the obstacle on a boundary shared by two squares.
// Doors beat walls beat openings; of two doors a closed one wins.
func strongest(a, b Obstacle) Obstacle {
	switch {
	case a.IsDoor() && b.IsDoor():
		return Door(a.Open && b.Open)
	case a.IsDoor():
		return a
	case b.IsDoor():
		return b
	case a.IsWall() || b.IsWall():
		return Wall
	default:
		return Open
	}
}
