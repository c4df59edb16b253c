package geometry

import "fmt"

// MaxCoordinate bounds every box dimension. A box may never exceed
// MaxBox on any axis.
const MaxCoordinate = 1 << 20

var (
	Origin = Point{}
	Unit   = Point{X: 1, Y: 1, Z: 1}
	MaxBox = Point{X: MaxCoordinate, Y: MaxCoordinate, Z: MaxCoordinate}
)

// Point is an integer position (or box extent) in dungeon space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func Pt(x, y, z int) Point {
	return Point{X: x, Y: y, Z: z}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// AllGE reports whether every coordinate of p is >= the matching coordinate of q.
func (p Point) AllGE(q Point) bool {
	return p.X >= q.X && p.Y >= q.Y && p.Z >= q.Z
}

// AllLT reports whether every coordinate of p is < the matching coordinate of q.
func (p Point) AllLT(q Point) bool {
	return p.X < q.X && p.Y < q.Y && p.Z < q.Z
}

func (p Point) AllLE(q Point) bool {
	return p.X <= q.X && p.Y <= q.Y && p.Z <= q.Z
}

// InBox reports whether p lies inside a box of the given size anchored at the origin.
func (p Point) InBox(size Point) bool {
	return p.AllGE(Origin) && p.AllLT(size)
}

// Volume is the number of unit positions inside a box of this size.
func (p Point) Volume() int {
	return p.X * p.Y * p.Z
}

// Index linearises p inside a box of the given size, in (z,y,x) order.
func (p Point) Index(size Point) int {
	return (p.Z*size.Y+p.Y)*size.X + p.X
}

// FromIndex is the inverse of Index.
func FromIndex(i int, size Point) Point {
	x := i % size.X
	i /= size.X
	y := i % size.Y
	return Point{X: x, Y: y, Z: i / size.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Compare orders points bottom-to-top, then front-to-back, then left-to-right:
// z first, then y, then x.
func Compare(a, b Point) int {
	switch {
	case a.Z != b.Z:
		return cmpInt(a.Z, b.Z)
	case a.Y != b.Y:
		return cmpInt(a.Y, b.Y)
	default:
		return cmpInt(a.X, b.X)
	}
}

// Less is Compare(a, b) < 0.
func Less(a, b Point) bool {
	return Compare(a, b) < 0
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Overlaps reports whether the box of size sizeA at posA shares at least
// one unit position with the box of size sizeB at posB.
func Overlaps(posA, sizeA, posB, sizeB Point) bool {
	return posA.X < posB.X+sizeB.X && posB.X < posA.X+sizeA.X &&
		posA.Y < posB.Y+sizeB.Y && posB.Y < posA.Y+sizeA.Y &&
		posA.Z < posB.Z+sizeB.Z && posB.Z < posA.Z+sizeA.Z
}

// Fits reports whether a box of size inner placed at pos lies entirely
// inside a box of size outer anchored at the origin.
func Fits(pos, inner, outer Point) bool {
	return pos.AllGE(Origin) && pos.Add(inner).AllLE(outer)
}
