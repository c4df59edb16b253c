package dungeon

import (
	"sort"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/avl"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// Kind is the closed set of node variants.
type Kind uint8

const (
	KindComposite Kind = iota
	KindLeaf
)

func (k Kind) String() string {
	if k == KindComposite {
		return "composite"
	}
	return "leaf"
}

// Shape carries the box constraints of a leaf.
type Shape uint8

const (
	// ShapeFree places no constraint on the box.
	ShapeFree Shape = iota
	// ShapeLevel fixes the z extent at 1.
	ShapeLevel
	// ShapeShaft fixes two axes at 1 and keeps every position along the
	// free axis occupied, with no obstacles between consecutive squares.
	ShapeShaft
)

func (s Shape) String() string {
	switch s {
	case ShapeLevel:
		return "level"
	case ShapeShaft:
		return "shaft"
	default:
		return "free"
	}
}

func validateBox(shape Shape, axis geometry.Axis, size geometry.Point) error {
	if !size.AllGE(geometry.Unit) {
		return illegalBox("box %v must be at least %v", size, geometry.Unit)
	}
	if !size.AllLE(geometry.MaxBox) {
		return illegalBox("box %v exceeds the maximum %v", size, geometry.MaxBox)
	}
	switch shape {
	case ShapeLevel:
		if size.Z != 1 {
			return illegalBox("level box %v must have height 1", size)
		}
	case ShapeShaft:
		if size != axis.Extent(axis.Of(size)) {
			return illegalBox("shaft box %v must be 1 wide off its %s axis", size, axis)
		}
	}
	return nil
}

func (w *World) newNode(kind Kind, shape Shape, axis geometry.Axis, size geometry.Point) (NodeID, error) {
	if err := validateBox(shape, axis, size); err != nil {
		return NoNode, err
	}
	nd := &node{
		id:     uuid.New(),
		kind:   kind,
		shape:  shape,
		axis:   axis,
		size:   size,
		parent: NoNode,
	}
	if kind == KindComposite {
		nd.children = make(map[geometry.Point]NodeID)
	} else {
		nd.squares = avl.New[geometry.Point, SquareID](geometry.Less)
	}
	w.nodes = append(w.nodes, nd)
	return NodeID(len(w.nodes) - 1), nil
}

// NewComposite creates a node that holds other nodes.
func (w *World) NewComposite(size geometry.Point) (NodeID, error) {
	return w.newNode(KindComposite, ShapeFree, geometry.AxisZ, size)
}

// NewLeaf creates a free-form leaf that holds squares.
func (w *World) NewLeaf(size geometry.Point) (NodeID, error) {
	return w.newNode(KindLeaf, ShapeFree, geometry.AxisZ, size)
}

// NewLevel creates a flat leaf of the given width (x) and depth (y).
func (w *World) NewLevel(width, depth int) (NodeID, error) {
	return w.newNode(KindLeaf, ShapeLevel, geometry.AxisZ, geometry.Pt(width, depth, 1))
}

// NewShaft creates a one-square-wide leaf along axis and fills every
// position with a plain square, opening the boundaries between them.
func (w *World) NewShaft(axis geometry.Axis, length int) (NodeID, error) {
	id, err := w.newNode(KindLeaf, ShapeShaft, axis, axis.Extent(length))
	if err != nil {
		return NoNode, err
	}
	w.fillShaft(id, 0, length)
	return id, nil
}

// fillShaft populates shaft positions [from, to) along its axis.
func (w *World) fillShaft(id NodeID, from, to int) {
	nd := w.n(id)
	back := nd.axis.Positive().Opposite()
	for i := from; i < to; i++ {
		pos := nd.axis.Extent(i + 1).Sub(geometry.Unit)
		s := w.DefaultSquare()
		var destroy []geometry.Direction
		if i > 0 {
			destroy = []geometry.Direction{back}
		}
		err := w.addToLeaf(id, s, pos, destroy)
		assertf(err == nil, "filling shaft %d at %v: %v", id, pos, err)
	}
}

func (w *World) Kind(id NodeID) Kind { return w.n(id).kind }
func (w *World) Shape(id NodeID) Shape { return w.n(id).shape }
func (w *World) Size(id NodeID) geometry.Point { return w.n(id).size }
func (w *World) Parent(id NodeID) NodeID { return w.n(id).parent }
func (w *World) IsTerminated(id NodeID) bool { return w.n(id).terminated }
func (w *World) NodeUUID(id NodeID) uuid.UUID { return w.n(id).id }

// NodeByUUID finds a live node by its stable id.
func (w *World) NodeByUUID(u uuid.UUID) (NodeID, bool) {
	for i, nd := range w.nodes {
		if nd.id == u && !nd.terminated {
			return NodeID(i), true
		}
	}
	return NoNode, false
}

// Axis is the free axis of a shaft.
func (w *World) Axis(id NodeID) geometry.Axis { return w.n(id).axis }

// Offset is the position the node occupies inside its parent.
func (w *World) Offset(id NodeID) geometry.Point { return w.n(id).offset }

func (w *World) IsRoot(id NodeID) bool { return w.n(id).parent == NoNode }

// Root follows the parent chain to the node without a parent.
func (w *World) Root(id NodeID) NodeID {
	for {
		p := w.n(id).parent
		if p == NoNode {
			return id
		}
		id = p
	}
}

// RootPosition is the node's origin expressed in its root's frame.
func (w *World) RootPosition(id NodeID) geometry.Point {
	var pos geometry.Point
	for {
		nd := w.n(id)
		if nd.parent == NoNode {
			return pos
		}
		pos = pos.Add(nd.offset)
		id = nd.parent
	}
}

// Children lists a composite's children ordered by their offset.
func (w *World) Children(id NodeID) []NodeID {
	nd := w.n(id)
	if nd.kind != KindComposite {
		return nil
	}
	offsets := make([]geometry.Point, 0, len(nd.children))
	for off := range nd.children {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return geometry.Less(offsets[i], offsets[j]) })
	out := make([]NodeID, len(offsets))
	for i, off := range offsets {
		out[i] = nd.children[off]
	}
	return out
}

// isAncestor reports whether a is b or one of b's ancestors.
func (w *World) isAncestor(a, b NodeID) bool {
	for b != NoNode {
		if a == b {
			return true
		}
		b = w.n(b).parent
	}
	return false
}

func (w *World) ScrambleEligible(id NodeID) bool { return w.n(id).scramble }

// SetScrambleEligible marks a subtree as a target for scrambling. Clearing
// the mark fails if it would leave an eligible parent without eligible
// children.
func (w *World) SetScrambleEligible(id NodeID, eligible bool) error {
	nd := w.n(id)
	if !eligible && nd.scramble && nd.parent != NoNode {
		if p := w.n(nd.parent); p.scramble && w.eligibleChildren(nd.parent) == 1 {
			return illegalDetachment("node %d is the last scramble-eligible child of %d", id, nd.parent)
		}
	}
	nd.scramble = eligible
	return nil
}

func (w *World) eligibleChildren(id NodeID) int {
	count := 0
	for _, c := range w.n(id).children {
		if w.n(c).scramble {
			count++
		}
	}
	return count
}
