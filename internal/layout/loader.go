package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Edward-VS/Kerkers-sub000/internal/dungeon"
	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// TileCoordinate represents a single tile position on a level
type TileCoordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Room is a set of tiles on one level with no walls between them
type Room struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Kind        string           `json:"kind,omitempty"`
	Temperature *int             `json:"temperature,omitempty"`
	Tiles       []TileCoordinate `json:"tiles"`
}

// LevelDefinition places a flat level inside the dungeon
type LevelDefinition struct {
	ID       string         `json:"id"`
	Origin   geometry.Point `json:"origin"`
	Width    int            `json:"width"`
	Depth    int            `json:"depth"`
	Scramble bool           `json:"scramble"`
	Rooms    []Room         `json:"rooms"`
}

// ShaftDefinition places a pre-filled shaft inside the dungeon
type ShaftDefinition struct {
	ID     string         `json:"id"`
	Origin geometry.Point `json:"origin"`
	Axis   string         `json:"axis"`
	Length int            `json:"length"`
}

// Passage changes the boundary between the square at a position and its
// neighbor in Direction. State is "open", "closed" or "none".
type Passage struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Z         int    `json:"z"`
	Direction string `json:"direction"`
	State     string `json:"state"`
	Notes     string `json:"notes,omitempty"`
}

// Definition represents a complete dungeon layout
type Definition struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Size     geometry.Point    `json:"size"`
	Levels   []LevelDefinition `json:"levels"`
	Shafts   []ShaftDefinition `json:"shafts"`
	Passages []Passage         `json:"passages"`
}

// LoadDefinitionFromFile loads a layout definition from a JSON file
func LoadDefinitionFromFile(filepath string) (*Definition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse layout JSON: %w", err)
	}

	return &def, nil
}

// Dungeon is a layout built into a world.
type Dungeon struct {
	ID     string
	Name   string
	Root   dungeon.NodeID
	Levels map[string]dungeon.NodeID
	Shafts map[string]dungeon.NodeID
}

// Build creates the dungeon described by def inside w.
func Build(w *dungeon.World, def *Definition) (*Dungeon, error) {
	root, err := w.NewComposite(def.Size)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", def.ID, err)
	}
	d := &Dungeon{
		ID:     def.ID,
		Name:   def.Name,
		Root:   root,
		Levels: make(map[string]dungeon.NodeID, len(def.Levels)),
		Shafts: make(map[string]dungeon.NodeID, len(def.Shafts)),
	}

	for _, ld := range def.Levels {
		level, err := buildLevel(w, ld)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", ld.ID, err)
		}
		if err := w.AttachChildAt(root, level, ld.Origin); err != nil {
			return nil, fmt.Errorf("level %q: %w", ld.ID, err)
		}
		d.Levels[ld.ID] = level
	}

	for _, sd := range def.Shafts {
		axis, err := geometry.ParseAxis(sd.Axis)
		if err != nil {
			return nil, fmt.Errorf("shaft %q: %w", sd.ID, err)
		}
		shaft, err := w.NewShaft(axis, sd.Length)
		if err != nil {
			return nil, fmt.Errorf("shaft %q: %w", sd.ID, err)
		}
		if err := w.AttachChildAt(root, shaft, sd.Origin); err != nil {
			return nil, fmt.Errorf("shaft %q: %w", sd.ID, err)
		}
		d.Shafts[sd.ID] = shaft
	}

	for _, p := range def.Passages {
		if err := applyPassage(w, root, p); err != nil {
			return nil, fmt.Errorf("passage %q: %w", p.ID, err)
		}
	}

	return d, nil
}

// buildLevel fills a detached level with its rooms. Tiles of the same room
// are opened towards each other; everything else keeps its walls.
func buildLevel(w *dungeon.World, ld LevelDefinition) (dungeon.NodeID, error) {
	level, err := w.NewLevel(ld.Width, ld.Depth)
	if err != nil {
		return dungeon.NoNode, err
	}
	if err := w.SetScrambleEligible(level, ld.Scramble); err != nil {
		return dungeon.NoNode, err
	}

	roomOf := make(map[TileCoordinate]int)
	for _, room := range ld.Rooms {
		for _, tile := range room.Tiles {
			if other, taken := roomOf[tile]; taken {
				return dungeon.NoNode, fmt.Errorf("tile (%d,%d) belongs to rooms %d and %d", tile.X, tile.Y, other, room.ID)
			}
			roomOf[tile] = room.ID
		}
	}

	for _, room := range ld.Rooms {
		kind, err := dungeon.ParseSquareKind(room.Kind)
		if err != nil {
			return dungeon.NoNode, fmt.Errorf("room %d: %w", room.ID, err)
		}
		temperature := dungeon.DefaultTemperature
		if room.Temperature != nil {
			temperature = *room.Temperature
		}

		for _, tile := range room.Tiles {
			s, err := w.NewSquare(kind, temperature)
			if err != nil {
				return dungeon.NoNode, fmt.Errorf("room %d: %w", room.ID, err)
			}
			var open []geometry.Direction
			for _, d := range planar {
				off := d.Offset()
				next := TileCoordinate{X: tile.X + off.X, Y: tile.Y + off.Y}
				if id, ok := roomOf[next]; ok && id == room.ID {
					open = append(open, d)
				}
			}
			if err := w.AddSquareAt(level, s, geometry.Pt(tile.X, tile.Y, 0), open...); err != nil {
				return dungeon.NoNode, fmt.Errorf("room %d: %w", room.ID, err)
			}
		}
	}
	return level, nil
}

var planar = []geometry.Direction{geometry.North, geometry.East, geometry.South, geometry.West}

func applyPassage(w *dungeon.World, root dungeon.NodeID, p Passage) error {
	d, err := geometry.ParseDirection(p.Direction)
	if err != nil {
		return err
	}
	pos := geometry.Pt(p.X, p.Y, p.Z)
	s := w.SquareAt(root, pos)
	if s == dungeon.NoSquare {
		return fmt.Errorf("no square at %v", pos)
	}
	switch p.State {
	case "open":
		return w.BuildDoor(s, d, true)
	case "closed", "":
		return w.BuildDoor(s, d, false)
	case "none":
		return w.DestroyObstacle(s, d)
	}
	return fmt.Errorf("unknown passage state %q", p.State)
}
