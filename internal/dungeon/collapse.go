package dungeon

import (
	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// DefaultCascadeChance is the probability that a collapse carries on into
// the square below the one that fell.
const DefaultCascadeChance = 0.6

// CanCollapse reports whether s may collapse: it must be attached outside a
// shaft, be collapsible itself, and rest on nothing or on a square that
// supports a collapse.
func (w *World) CanCollapse(s SquareID) bool {
	sq := w.sq(s)
	if sq.terminated || sq.owner == NoNode || w.n(sq.owner).shape == ShapeShaft {
		return false
	}
	if !sq.kind.Collapsible() {
		return false
	}
	if below := sq.neighbors[geometry.Down]; below != NoSquare {
		return w.sq(below).kind.SupportsCollapse()
	}
	return true
}

// Collapse destroys s and lets the square above it fall into its place,
// possibly cascading further down. It always works on the root of id and
// returns how many squares collapsed.
func (w *World) Collapse(id NodeID, s SquareID) (int, error) {
	root := w.Root(id)
	if root != id {
		return w.Collapse(root, s)
	}
	if !w.Contains(root, s) {
		return 0, illegalDetachment("square %d does not belong to dungeon %d", s, root)
	}
	n := w.collapse(s)
	if n > 0 {
		w.logger.Printf("collapse in dungeon %d took %d square(s)", root, n)
	}
	return n, nil
}

func (w *World) collapse(s SquareID) int {
	if !w.CanCollapse(s) {
		return 0
	}
	sq := w.sq(s)
	leaf, pos := sq.owner, sq.pos
	above := sq.neighbors[geometry.Down.Opposite()]
	if above != NoSquare && w.n(w.sq(above).owner).shape == ShapeShaft {
		above = NoSquare
	}

	_, err := w.removeFromLeaf(leaf, pos, false)
	assertf(err == nil, "removing collapsing square %d: %v", s, err)
	sq.terminated = true
	if above == NoSquare {
		return 1
	}

	a := w.sq(above)
	_, err = w.removeFromLeaf(a.owner, a.pos, false)
	assertf(err == nil, "removing falling square %d: %v", above, err)
	err = w.addToLeaf(leaf, above, pos, nil)
	assertf(err == nil, "resting square %d at %v: %v", above, pos, err)

	count := 1
	if w.rng.Float64() < w.cascadeChance {
		if down := a.neighbors[geometry.Down]; down != NoSquare {
			count += w.collapse(down)
		}
	}
	return count
}
