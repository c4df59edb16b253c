package dungeon

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// Verify walks the tree under id and reports every broken structural
// invariant it finds: tree mutuality, box containment, neighbor symmetry,
// obstacle mirroring, walls facing the void and thermal uniformity.
// A nil result means the dungeon is consistent.
func (w *World) Verify(id NodeID) error {
	var errs []error
	report := func(format string, v ...interface{}) {
		errs = append(errs, fmt.Errorf(format, v...))
	}

	w.verifyNode(id, report)

	root := w.Root(id)
	for _, e := range w.entries(id) {
		sq := w.sq(e.Square)
		pos := w.SquareRootPosition(e.Square)
		for _, d := range geometry.Directions {
			want := w.SquareAt(root, pos.Add(d.Offset()))
			n, o := sq.neighbors[d], sq.obstacles[d]
			switch {
			case n != want:
				report("square %d at %v: neighbor %s is %d, expected %d", e.Square, pos, d, n, want)
			case n == NoSquare:
				if !o.IsWall() {
					report("square %d at %v: %s faces nothing but is %s", e.Square, pos, d, o)
				}
			default:
				other := w.sq(n)
				if other.neighbors[d.Opposite()] != e.Square {
					report("square %d at %v: neighbor %d does not point back from %s", e.Square, pos, n, d.Opposite())
				}
				if other.obstacles[d.Opposite()] != o {
					report("square %d at %v: %s is %s but %d sees %s", e.Square, pos, d, o, n, other.obstacles[d.Opposite()])
				}
			}
		}
	}

	visited := mapset.New[SquareID]()
	for _, e := range w.entries(id) {
		if visited.Has(e.Square) {
			continue
		}
		group := w.thermalGroup(e.Square, visited)
		t := w.sq(group[0]).temperature
		for _, m := range group[1:] {
			if w.sq(m).temperature != t {
				report("thermal group of square %d mixes %d and %d degrees", group[0], t, w.sq(m).temperature)
				break
			}
		}
	}

	return errors.Join(errs...)
}

func (w *World) verifyNode(id NodeID, report func(string, ...interface{})) {
	nd := w.n(id)
	if err := validateBox(nd.shape, nd.axis, nd.size); err != nil {
		report("node %d: %v", id, err)
	}

	switch nd.kind {
	case KindLeaf:
		count := 0
		nd.squares.Each(func(pos geometry.Point, s SquareID) {
			count++
			sq := w.sq(s)
			if sq.owner != id || sq.pos != pos {
				report("leaf %d holds square %d at %v but the square claims leaf %d at %v", id, s, pos, sq.owner, sq.pos)
			}
			if !pos.InBox(nd.size) {
				report("leaf %d holds square %d outside its box at %v", id, s, pos)
			}
		})
		if count != nd.count {
			report("leaf %d counts %d squares but holds %d", id, nd.count, count)
		}
		if nd.shape == ShapeShaft && count != nd.size.Volume() {
			report("shaft %d holds %d of %d squares", id, count, nd.size.Volume())
		}

	case KindComposite:
		children := w.Children(id)
		for i, c := range children {
			cn := w.n(c)
			if cn.parent != id || nd.children[cn.offset] != c {
				report("composite %d and child %d disagree on their relation", id, c)
			}
			if !geometry.Fits(cn.offset, cn.size, nd.size) {
				report("child %d of size %v at %v leaves composite %d of size %v", c, cn.size, cn.offset, id, nd.size)
			}
			for _, sib := range children[i+1:] {
				sn := w.n(sib)
				if geometry.Overlaps(cn.offset, cn.size, sn.offset, sn.size) {
					report("children %d and %d of composite %d overlap", c, sib, id)
				}
			}
			w.verifyNode(c, report)
		}
	}
}
