package main

import (
	"github.com/Edward-VS/Kerkers-sub000/internal/dungeon"
	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
	"github.com/Edward-VS/Kerkers-sub000/internal/layout"
	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
)

func toPosition(p geometry.Point) protocol.Position {
	return protocol.Position{X: p.X, Y: p.Y, Z: p.Z}
}

// buildSnapshot captures d as seen from its root. Squares come out in
// dungeon order.
func buildSnapshot(w *dungeon.World, d *layout.Dungeon, lastEventID int64) *protocol.Snapshot {
	snap := &protocol.Snapshot{
		DungeonID:       d.ID,
		Name:            d.Name,
		Size:            toPosition(w.Size(d.Root)),
		LastEventID:     lastEventID,
		Tree:            nodeLite(w, d.Root),
		ThermalGroups:   len(w.ThermalGroups(d.Root)),
		ProtocolVersion: protocol.ProtocolVersion,
	}
	for pos, s := range w.All(d.Root) {
		obstacles := make([]string, len(geometry.Directions))
		for i, dir := range geometry.Directions {
			obstacles[i] = w.Obstacle(s, dir).String()
		}
		snap.Squares = append(snap.Squares, protocol.SquareLite{
			ID:          int32(s),
			Pos:         toPosition(pos),
			Kind:        w.SquareKindOf(s).String(),
			Temperature: w.Temperature(s),
			Obstacles:   obstacles,
		})
	}
	return snap
}

func nodeLite(w *dungeon.World, id dungeon.NodeID) protocol.NodeLite {
	n := protocol.NodeLite{
		ID:       w.NodeUUID(id).String(),
		Handle:   int32(id),
		Kind:     w.Kind(id).String(),
		Shape:    w.Shape(id).String(),
		Offset:   toPosition(w.Offset(id)),
		Size:     toPosition(w.Size(id)),
		Squares:  w.SquareCount(id),
		Scramble: w.ScrambleEligible(id),
	}
	for _, child := range w.Children(id) {
		n.Children = append(n.Children, nodeLite(w, child))
	}
	return n
}
