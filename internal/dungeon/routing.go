package dungeon

import (
	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// locate descends from id to the leaf whose box covers pos. It returns the
// leaf and pos expressed in the leaf's frame.
func (w *World) locate(id NodeID, pos geometry.Point) (NodeID, geometry.Point, bool) {
	for {
		nd := w.n(id)
		if !pos.InBox(nd.size) {
			return NoNode, pos, false
		}
		if nd.kind == KindLeaf {
			return id, pos, true
		}
		child, off, ok := w.childCovering(nd, pos)
		if !ok {
			return NoNode, pos, false
		}
		id, pos = child, pos.Sub(off)
	}
}

func (w *World) childCovering(nd *node, pos geometry.Point) (NodeID, geometry.Point, bool) {
	for off, child := range nd.children {
		if pos.Sub(off).InBox(w.n(child).size) {
			return child, off, true
		}
	}
	return NoNode, geometry.Origin, false
}

// SquareAt returns the square at pos relative to id, or NoSquare. Gaps
// between children are legal and simply hold nothing.
func (w *World) SquareAt(id NodeID, pos geometry.Point) SquareID {
	leaf, local, ok := w.locate(id, pos)
	if !ok {
		return NoSquare
	}
	s, found := w.n(leaf).squares.Get(local)
	if !found {
		return NoSquare
	}
	return s
}

// SquareCount is the number of squares held by id and its descendants.
func (w *World) SquareCount(id NodeID) int {
	nd := w.n(id)
	if nd.kind == KindLeaf {
		return nd.count
	}
	total := 0
	for _, child := range nd.children {
		total += w.SquareCount(child)
	}
	return total
}

// PositionOf returns the position of s relative to id, if id holds s.
func (w *World) PositionOf(id NodeID, s SquareID) (geometry.Point, bool) {
	sq := w.sq(s)
	if sq.owner == NoNode {
		return geometry.Origin, false
	}
	pos := sq.pos
	for cur := sq.owner; ; {
		if cur == id {
			return pos, true
		}
		nd := w.n(cur)
		if nd.parent == NoNode {
			return geometry.Origin, false
		}
		pos = pos.Add(nd.offset)
		cur = nd.parent
	}
}

func (w *World) Contains(id NodeID, s SquareID) bool {
	_, ok := w.PositionOf(id, s)
	return ok
}

// AddSquareAt places s at pos relative to id, opening the boundaries listed
// in destroyIn towards any neighbor found there. On a composite, a position
// no child covers is silently ignored.
func (w *World) AddSquareAt(id NodeID, s SquareID, pos geometry.Point, destroyIn ...geometry.Direction) error {
	leaf, local, ok := w.locate(id, pos)
	if !ok {
		if w.n(id).kind == KindComposite {
			return nil
		}
		return illegalPlacement("position %v lies outside leaf %d of size %v", pos, id, w.n(id).size)
	}
	return w.addToLeaf(leaf, s, local, destroyIn)
}

func (w *World) addToLeaf(leaf NodeID, s SquareID, pos geometry.Point, destroyIn []geometry.Direction) error {
	l, sq := w.n(leaf), w.sq(s)
	switch {
	case l.terminated:
		return illegalPlacement("leaf %d is terminated", leaf)
	case sq.terminated:
		return illegalPlacement("square %d is terminated", s)
	case sq.owner == leaf && sq.pos == pos:
		return nil
	case sq.owner != NoNode:
		return illegalPlacement("square %d already sits in leaf %d at %v", s, sq.owner, sq.pos)
	case !pos.InBox(l.size):
		return illegalPlacement("position %v lies outside leaf %d of size %v", pos, leaf, l.size)
	}
	if _, taken := l.squares.Get(pos); taken {
		return illegalPlacement("position %v of leaf %d is occupied", pos, leaf)
	}

	l.squares.Put(pos, s)
	l.count++
	sq.owner = leaf
	sq.pos = pos
	w.touch()
	w.register(s, destroyIn)
	return nil
}

// RemoveSquareAt detaches the square at pos relative to id and returns it.
// The square keeps its temperature and ends up walled on every side.
func (w *World) RemoveSquareAt(id NodeID, pos geometry.Point) (SquareID, error) {
	leaf, local, ok := w.locate(id, pos)
	if !ok {
		return NoSquare, illegalDetachment("no square at %v in node %d", pos, id)
	}
	return w.removeFromLeaf(leaf, local, false)
}

func (w *World) removeFromLeaf(leaf NodeID, pos geometry.Point, force bool) (SquareID, error) {
	l := w.n(leaf)
	if l.shape == ShapeShaft && !force {
		return NoSquare, illegalDetachment("squares cannot be removed from shaft %d", leaf)
	}
	s, ok := l.squares.Get(pos)
	if !ok {
		return NoSquare, illegalDetachment("no square at %v in leaf %d", pos, leaf)
	}
	w.unregister(s)
	l.squares.Remove(pos)
	l.count--
	sq := w.sq(s)
	sq.owner = NoNode
	sq.pos = geometry.Origin
	w.touch()
	return s, nil
}

// SwapSquares exchanges the square at pos relative to id with other, which
// may live in any leaf under the same root.
func (w *World) SwapSquares(id NodeID, pos geometry.Point, other SquareID) error {
	leaf, local, ok := w.locate(id, pos)
	if !ok {
		return illegalPlacement("no square at %v in node %d", pos, id)
	}
	s, found := w.n(leaf).squares.Get(local)
	if !found {
		return illegalPlacement("no square at %v in node %d", pos, id)
	}
	if s == other {
		return nil
	}
	o := w.sq(other)
	if o.owner == NoNode {
		return illegalPlacement("square %d is not part of a dungeon", other)
	}
	if w.Root(leaf) != w.Root(o.owner) {
		return illegalPlacement("squares %d and %d belong to different dungeons", s, other)
	}
	if w.n(leaf).shape == ShapeShaft || w.n(o.owner).shape == ShapeShaft {
		return illegalPlacement("shaft squares cannot be swapped")
	}
	w.swap(s, other)
	return nil
}
