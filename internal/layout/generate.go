package layout

import (
	"fmt"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// CorridorsAndRooms generates a tower of identical floors. Each floor has a
// corridor running round its edge and through its middle, splitting it
// into four rooms that each open onto the central corridor through a door.
// A shaft on the east side of the tower joins the corridors of every floor.
// The ground floor is rock; the floors above it may be scrambled.
func CorridorsAndRooms(id string, floors, width, depth int) *Definition {
	def := &Definition{
		ID:   id,
		Name: fmt.Sprintf("%d-floor tower", floors),
		Size: geometry.Pt(width+1, depth, floors),
	}

	v1 := width/2 - 1
	v2 := width / 2
	h := depth / 2
	isCorr := func(x, y int) bool {
		if x == 0 || y == 0 || x == width-1 || y == depth-1 {
			return true
		}
		if x == v1 || x == v2 {
			return true
		}
		return y == h
	}

	// quadrant: 0 bottom-left, 1 bottom-right, 2 top-left, 3 top-right
	quadrant := func(x, y int) int {
		q := 0
		if x > v2 {
			q++
		}
		if y > h {
			q += 2
		}
		return q
	}

	mid := func(a, b int) int { return (a + b) / 2 }
	lx := mid(1, v1-1)
	rx := mid(v2+1, width-2)

	for z := 0; z < floors; z++ {
		corridor := Room{ID: 0, Name: "corridor"}
		rooms := make([]Room, 4)
		for q := range rooms {
			t := 10 + 5*q
			rooms[q] = Room{ID: q + 1, Name: fmt.Sprintf("room-%d", q+1), Temperature: &t}
		}

		for y := 0; y < depth; y++ {
			for x := 0; x < width; x++ {
				tile := TileCoordinate{X: x, Y: y}
				if isCorr(x, y) {
					corridor.Tiles = append(corridor.Tiles, tile)
					continue
				}
				q := quadrant(x, y)
				rooms[q].Tiles = append(rooms[q].Tiles, tile)
			}
		}

		level := LevelDefinition{
			ID:       fmt.Sprintf("floor-%d", z),
			Origin:   geometry.Pt(0, 0, z),
			Width:    width,
			Depth:    depth,
			Scramble: z > 0,
			Rooms:    []Room{corridor},
		}
		for _, r := range rooms {
			if len(r.Tiles) > 0 {
				level.Rooms = append(level.Rooms, r)
			}
		}
		if z == 0 {
			for i := range level.Rooms {
				level.Rooms[i].Kind = "rock"
			}
		}
		def.Levels = append(def.Levels, level)

		for _, door := range []struct {
			x, y int
			d    geometry.Direction
		}{
			{lx, h - 1, geometry.North},
			{rx, h - 1, geometry.North},
			{lx, h + 1, geometry.South},
			{rx, h + 1, geometry.South},
		} {
			if isCorr(door.x, door.y) {
				continue
			}
			def.Passages = append(def.Passages, Passage{
				ID:        fmt.Sprintf("door-%d-%d-%d", z, door.x, door.y),
				X:         door.x,
				Y:         door.y,
				Z:         z,
				Direction: door.d.String(),
				State:     "closed",
			})
		}

		def.Passages = append(def.Passages, Passage{
			ID:        fmt.Sprintf("stairs-%d", z),
			X:         width - 1,
			Y:         0,
			Z:         z,
			Direction: geometry.East.String(),
			State:     "none",
		})
	}

	def.Shafts = []ShaftDefinition{{
		ID:     "stairs",
		Origin: geometry.Pt(width, 0, 0),
		Axis:   geometry.AxisZ.String(),
		Length: floors,
	}}
	return def
}
