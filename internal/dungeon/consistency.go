package dungeon

import (
	"slices"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// register links a freshly placed square to its spatial neighbors. Lookups
// go through the root because a neighbor may sit in any other leaf.
func (w *World) register(s SquareID, destroyIn []geometry.Direction) {
	sq := w.sq(s)
	root := w.Root(sq.owner)
	pos := w.SquareRootPosition(s)

	for _, d := range geometry.Directions {
		n := w.SquareAt(root, pos.Add(d.Offset()))
		if n == NoSquare {
			sq.neighbors[d] = NoSquare
			sq.obstacles[d] = Wall
			continue
		}
		o := Open
		if !slices.Contains(destroyIn, d) {
			o = strongest(sq.obstacles[d], w.sq(n).obstacles[d.Opposite()])
		}
		w.link(s, n, d, o)
	}
	w.equalize(s)
}

// unregister severs every link of s and walls both sides of each boundary.
func (w *World) unregister(s SquareID) {
	for _, d := range geometry.Directions {
		w.unlink(s, d)
	}
}

func (w *World) link(a, b SquareID, d geometry.Direction, o Obstacle) {
	sa, sb := w.sq(a), w.sq(b)
	sa.neighbors[d] = b
	sb.neighbors[d.Opposite()] = a
	sa.obstacles[d] = o
	sb.obstacles[d.Opposite()] = o
}

func (w *World) unlink(s SquareID, d geometry.Direction) {
	sq := w.sq(s)
	if n := sq.neighbors[d]; n != NoSquare {
		sn := w.sq(n)
		sn.neighbors[d.Opposite()] = NoSquare
		sn.obstacles[d.Opposite()] = Wall
	}
	sq.neighbors[d] = NoSquare
	sq.obstacles[d] = Wall
}

type boundaryPlan struct {
	s, n SquareID
	d    geometry.Direction
	o    Obstacle
}

// swap exchanges the positions of two attached squares. Each square takes
// over the neighbors of the position it moves into; every boundary keeps
// the more restrictive of the obstacle the square brings along and the
// obstacle the neighbor already had.
func (w *World) swap(a, b SquareID) {
	sa, sb := w.sq(a), w.sq(b)
	carried := map[SquareID][6]Obstacle{a: sa.obstacles, b: sb.obstacles}

	la, pa := sa.owner, sa.pos
	lb, pb := sb.owner, sb.pos
	w.n(la).squares.Put(pa, b)
	w.n(lb).squares.Put(pb, a)
	sa.owner, sa.pos = lb, pb
	sb.owner, sb.pos = la, pa
	w.touch()

	root := w.Root(la)
	var plan []boundaryPlan
	for _, s := range []SquareID{a, b} {
		pos := w.SquareRootPosition(s)
		own := carried[s]
		for _, d := range geometry.Directions {
			n := w.SquareAt(root, pos.Add(d.Offset()))
			if n == NoSquare {
				plan = append(plan, boundaryPlan{s: s, n: NoSquare, d: d, o: Wall})
				continue
			}
			theirs := w.sq(n).obstacles[d.Opposite()]
			if prev, moved := carried[n]; moved {
				theirs = prev[d.Opposite()]
			}
			plan = append(plan, boundaryPlan{s: s, n: n, d: d, o: strongest(own[d], theirs)})
		}
	}

	for _, p := range plan {
		if p.n == NoSquare {
			sq := w.sq(p.s)
			sq.neighbors[p.d] = NoSquare
			sq.obstacles[p.d] = Wall
			continue
		}
		w.link(p.s, p.n, p.d, p.o)
	}
	w.equalize(a, b)
}

// linkBoundary connects the squares on a freshly attached node's exterior
// faces with the squares bordering them in the root.
func (w *World) linkBoundary(id NodeID) {
	size := w.n(id).size
	root := w.Root(id)
	base := w.RootPosition(id)

	var opened []SquareID
	for _, e := range w.entries(id) {
		for _, d := range geometry.Directions {
			if !geometry.OnFace(e.Pos, size, d) {
				continue
			}
			n := w.SquareAt(root, base.Add(e.Pos).Add(d.Offset()))
			if n == NoSquare {
				continue
			}
			o := strongest(w.sq(e.Square).obstacles[d], w.sq(n).obstacles[d.Opposite()])
			w.link(e.Square, n, d, o)
			if o.Traversable() {
				opened = append(opened, e.Square)
			}
		}
	}
	w.equalize(opened...)
}

// unlinkBoundary severs only the links crossing the node's exterior faces.
func (w *World) unlinkBoundary(id NodeID) {
	size := w.n(id).size
	for _, e := range w.entries(id) {
		for _, d := range geometry.Directions {
			if geometry.OnFace(e.Pos, size, d) {
				w.unlink(e.Square, d)
			}
		}
	}
}
