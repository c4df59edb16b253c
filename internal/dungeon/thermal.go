package dungeon

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// ThermalGroup returns every square reachable from s through open
// boundaries or open doors, s included, in breadth-first order.
func (w *World) ThermalGroup(s SquareID) []SquareID {
	visited := mapset.New[SquareID]()
	return w.thermalGroup(s, visited)
}

func (w *World) thermalGroup(s SquareID, visited mapset.Set[SquareID]) []SquareID {
	visited.Put(s)
	queue := make([]SquareID, 0, 8)
	queue = append(queue, s)
	group := make([]SquareID, 0, 8)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		group = append(group, cur)

		sq := w.sq(cur)
		for _, d := range geometry.Directions {
			n := sq.neighbors[d]
			if n == NoSquare || !sq.obstacles[d].Traversable() || visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return group
}

// equalize sets every thermal group touching the seeds to the truncated
// mean of its members' current temperatures.
func (w *World) equalize(seeds ...SquareID) {
	visited := mapset.New[SquareID]()
	for _, s := range seeds {
		if visited.Has(s) {
			continue
		}
		group := w.thermalGroup(s, visited)
		if len(group) < 2 {
			continue
		}
		sum := 0
		for _, m := range group {
			sum += w.sq(m).temperature
		}
		mean := sum / len(group)
		for _, m := range group {
			w.sq(m).temperature = mean
		}
	}
}

// ThermalGroups partitions the squares held by id into thermal groups,
// following links beyond id where boundaries are open.
func (w *World) ThermalGroups(id NodeID) [][]SquareID {
	visited := mapset.New[SquareID]()
	var groups [][]SquareID
	for _, e := range w.entries(id) {
		if visited.Has(e.Square) {
			continue
		}
		groups = append(groups, w.thermalGroup(e.Square, visited))
	}
	return groups
}
