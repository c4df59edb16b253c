package dungeon

import (
	"iter"

	"github.com/zyedidia/generic/heap"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// Entry is one square yielded by an Iterator, with its position in the
// frame of the node being iterated.
type Entry struct {
	Pos    geometry.Point
	Square SquareID
}

// Iterator walks the squares of a node in (z,y,x) order. It is single pass
// and fails with ErrStaleIterator once the world is structurally modified.
type Iterator struct {
	w       *World
	version uint64

	// leaf
	entries []Entry
	next    int

	// composite: one look-ahead slot per child, kept in a min-heap
	children []*Iterator
	offsets  []geometry.Point
	filled   []bool
	cache    *heap.Heap[slot]
}

type slot struct {
	entry Entry
	child int
}

func lessSlot(a, b slot) bool {
	return geometry.Less(a.entry.Pos, b.entry.Pos)
}

// Iterate returns an iterator over every square held by id.
func (w *World) Iterate(id NodeID) *Iterator {
	nd := w.n(id)
	it := &Iterator{w: w, version: w.version}
	if nd.kind == KindLeaf {
		it.entries = make([]Entry, 0, nd.count)
		nd.squares.Each(func(pos geometry.Point, s SquareID) {
			it.entries = append(it.entries, Entry{Pos: pos, Square: s})
		})
		return it
	}

	children := w.Children(id)
	it.children = make([]*Iterator, len(children))
	it.offsets = make([]geometry.Point, len(children))
	it.filled = make([]bool, len(children))
	it.cache = heap.New[slot](lessSlot)
	for i, c := range children {
		it.children[i] = w.Iterate(c)
		it.offsets[i] = w.n(c).offset
	}
	return it
}

func (it *Iterator) HasNext() bool {
	if it.cache == nil {
		return it.next < len(it.entries)
	}
	if it.cache.Size() > 0 {
		return true
	}
	for i, c := range it.children {
		if !it.filled[i] && c.HasNext() {
			return true
		}
	}
	return false
}

// Next returns the smallest remaining entry.
func (it *Iterator) Next() (Entry, error) {
	if it.w.version != it.version {
		return Entry{}, ErrStaleIterator
	}
	if it.cache == nil {
		if it.next >= len(it.entries) {
			return Entry{}, ErrIteratorExhausted
		}
		e := it.entries[it.next]
		it.next++
		return e, nil
	}

	for i, c := range it.children {
		if it.filled[i] || !c.HasNext() {
			continue
		}
		e, err := c.Next()
		if err != nil {
			return Entry{}, err
		}
		e.Pos = e.Pos.Add(it.offsets[i])
		it.cache.Push(slot{entry: e, child: i})
		it.filled[i] = true
	}

	top, ok := it.cache.Pop()
	if !ok {
		return Entry{}, ErrIteratorExhausted
	}
	it.filled[top.child] = false
	return top.entry, nil
}

// All ranges over the squares of id in (z,y,x) order. Modifying the world
// structure inside the loop panics with ErrStaleIterator.
func (w *World) All(id NodeID) iter.Seq2[geometry.Point, SquareID] {
	return func(yield func(geometry.Point, SquareID) bool) {
		it := w.Iterate(id)
		for it.HasNext() {
			e, err := it.Next()
			if err != nil {
				panic(err)
			}
			if !yield(e.Pos, e.Square) {
				return
			}
		}
	}
}

// entries collects the squares of id in order. Callers may mutate the world
// afterwards.
func (w *World) entries(id NodeID) []Entry {
	it := w.Iterate(id)
	out := make([]Entry, 0, w.SquareCount(id))
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			break
		}
		out = append(out, e)
	}
	return out
}
