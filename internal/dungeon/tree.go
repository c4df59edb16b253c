package dungeon

import (
	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// AttachChildAt places child inside parent with its origin at pos and links
// the squares on child's exterior faces to whatever borders them in the
// parent's root.
func (w *World) AttachChildAt(parent, child NodeID, pos geometry.Point) error {
	p, c := w.n(parent), w.n(child)
	if p.terminated || c.terminated {
		return illegalAttachment("cannot attach node %d to %d: terminated", child, parent)
	}
	if p.kind != KindComposite {
		return illegalAttachment("node %d is a %s and cannot hold children", parent, p.kind)
	}
	if c.parent != NoNode {
		return illegalAttachment("node %d already belongs to node %d", child, c.parent)
	}
	if w.isAncestor(child, parent) {
		return illegalAttachment("attaching node %d to %d would create a cycle", child, parent)
	}
	if !geometry.Fits(pos, c.size, p.size) {
		return illegalPlacement("node %d of size %v does not fit in %v at %v", child, c.size, p.size, pos)
	}
	for off, sib := range p.children {
		if geometry.Overlaps(pos, c.size, off, w.n(sib).size) {
			return illegalPlacement("node %d at %v overlaps sibling %d at %v", child, pos, sib, off)
		}
	}

	p.children[pos] = child
	c.parent = parent
	c.offset = pos
	w.touch()
	w.linkBoundary(child)

	w.logger.Printf("attached %s %d (%v) to composite %d at %v", c.kind, child, c.size, parent, pos)
	return nil
}

// DetachChild removes child from parent. Links crossing child's exterior
// faces are severed and walled; everything inside child is left intact and
// child becomes its own root.
func (w *World) DetachChild(parent, child NodeID) error {
	p, c := w.n(parent), w.n(child)
	if c.parent != parent || p.children[c.offset] != child {
		return illegalDetachment("node %d is not a child of %d", child, parent)
	}
	if p.scramble && c.scramble && w.eligibleChildren(parent) == 1 {
		return illegalDetachment("node %d is the last scramble-eligible child of %d", child, parent)
	}
	w.detach(parent, child)
	return nil
}

func (w *World) detach(parent, child NodeID) {
	p, c := w.n(parent), w.n(child)
	w.unlinkBoundary(child)
	delete(p.children, c.offset)
	c.parent = NoNode
	c.offset = geometry.Origin
	w.touch()

	w.logger.Printf("detached %s %d from composite %d", c.kind, child, parent)
}

// Enlarge grows a node's box. The new box must cover the old one on every
// axis and still satisfy the node's shape, its parent's bounds and its
// siblings. Enlarging a shaft along its axis fills the new positions.
func (w *World) Enlarge(id NodeID, size geometry.Point) error {
	nd := w.n(id)
	if nd.terminated {
		return illegalBox("node %d is terminated", id)
	}
	if !size.AllGE(nd.size) {
		return illegalBox("box %v would shrink node %d from %v", size, id, nd.size)
	}
	if err := validateBox(nd.shape, nd.axis, size); err != nil {
		return err
	}
	if nd.parent != NoNode {
		p := w.n(nd.parent)
		if !geometry.Fits(nd.offset, size, p.size) {
			return illegalBox("box %v at %v does not fit in parent %d of size %v", size, nd.offset, nd.parent, p.size)
		}
		for off, sib := range p.children {
			if sib == id {
				continue
			}
			if geometry.Overlaps(nd.offset, size, off, w.n(sib).size) {
				return illegalBox("box %v at %v would overlap sibling %d at %v", size, nd.offset, sib, off)
			}
		}
	}

	old := nd.size
	nd.size = size
	w.touch()
	if nd.shape == ShapeShaft {
		w.fillShaft(id, nd.axis.Of(old), nd.axis.Of(size))
	}

	w.logger.Printf("enlarged %s %d from %v to %v", nd.kind, id, old, size)
	return nil
}

// Terminate detaches a node from its parent and destroys it together with
// everything it holds.
func (w *World) Terminate(id NodeID) error {
	nd := w.n(id)
	if nd.terminated {
		return nil
	}
	if nd.parent != NoNode {
		if err := w.DetachChild(nd.parent, id); err != nil {
			return err
		}
	}
	w.destroy(id)
	return nil
}

func (w *World) destroy(id NodeID) {
	nd := w.n(id)
	switch nd.kind {
	case KindComposite:
		for _, child := range w.Children(id) {
			w.detach(id, child)
			w.destroy(child)
		}
	case KindLeaf:
		for _, e := range w.entries(id) {
			s := w.sq(e.Square)
			w.unregister(e.Square)
			nd.squares.Remove(e.Pos)
			nd.count--
			s.owner = NoNode
			s.terminated = true
		}
	}
	nd.terminated = true
	w.touch()
	w.logger.Printf("terminated %s %d", nd.kind, id)
}
