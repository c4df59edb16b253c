package dungeon

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

// buildNested lays out a composite holding a leaf, a nested composite with
// two leaves, and a shaft, then scatters squares over them. It returns the
// root and the root-relative positions of every square placed.
func buildNested(t *testing.T, w *World) (NodeID, []geometry.Point) {
	t.Helper()
	root := mustComposite(t, w, geometry.Pt(6, 4, 3))
	floor := mustLeaf(t, w, geometry.Pt(6, 4, 1))
	inner := mustComposite(t, w, geometry.Pt(5, 4, 2))
	west := mustLeaf(t, w, geometry.Pt(2, 4, 2))
	east := mustLeaf(t, w, geometry.Pt(2, 4, 2))
	shaft, err := w.NewShaft(geometry.AxisZ, 2)
	require.NoError(t, err)

	mustAttach(t, w, root, floor, geometry.Origin)
	mustAttach(t, w, inner, west, geometry.Origin)
	mustAttach(t, w, inner, east, geometry.Pt(3, 0, 0))
	mustAttach(t, w, root, inner, geometry.Pt(0, 0, 1))
	mustAttach(t, w, root, shaft, geometry.Pt(5, 3, 1))

	placed := []geometry.Point{geometry.Pt(5, 3, 1), geometry.Pt(5, 3, 2)}
	for _, pos := range []geometry.Point{
		geometry.Pt(0, 0, 0), geometry.Pt(5, 0, 0), geometry.Pt(2, 3, 0), geometry.Pt(3, 1, 0),
		geometry.Pt(1, 0, 1), geometry.Pt(3, 0, 1), geometry.Pt(0, 2, 1), geometry.Pt(4, 3, 1),
		geometry.Pt(0, 0, 2), geometry.Pt(4, 0, 2), geometry.Pt(1, 3, 2),
	} {
		mustAdd(t, w, root, pos, geometry.Down)
		placed = append(placed, pos)
	}
	return root, placed
}

func TestIteratorMergesChildrenInOrder(t *testing.T) {
	w := newTestWorld(1)
	root, placed := buildNested(t, w)
	sort.Slice(placed, func(i, j int) bool { return geometry.Less(placed[i], placed[j]) })

	var got []geometry.Point
	it := w.Iterate(root)
	for it.HasNext() {
		e, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, e.Square, w.SquareAt(root, e.Pos))
		got = append(got, e.Pos)
	}

	if diff := cmp.Diff(placed, got); diff != "" {
		t.Errorf("iteration order mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got, w.SquareCount(root))
	for i := 1; i < len(got); i++ {
		assert.True(t, geometry.Less(got[i-1], got[i]), "%v before %v", got[i-1], got[i])
	}

	_, err := it.Next()
	require.ErrorIs(t, err, ErrIteratorExhausted)
	requireConsistent(t, w, root)
}

func TestIteratorOverSubtreeUsesItsFrame(t *testing.T) {
	w := newTestWorld(1)
	root, _ := buildNested(t, w)
	inner := w.Children(root)[1]
	require.Equal(t, KindComposite, w.Kind(inner))

	var got []geometry.Point
	for pos := range w.All(inner) {
		got = append(got, pos)
	}
	want := []geometry.Point{
		geometry.Pt(1, 0, 0), geometry.Pt(3, 0, 0), geometry.Pt(0, 2, 0), geometry.Pt(4, 3, 0),
		geometry.Pt(0, 0, 1), geometry.Pt(4, 0, 1), geometry.Pt(1, 3, 1),
	}
	assert.Equal(t, want, got)
}

func TestIteratorFailsFastOnMutation(t *testing.T) {
	w := newTestWorld(1)
	leaf := mustLeaf(t, w, geometry.Pt(3, 1, 1))
	mustAdd(t, w, leaf, geometry.Pt(0, 0, 0))
	mustAdd(t, w, leaf, geometry.Pt(2, 0, 0))

	it := w.Iterate(leaf)
	_, err := it.Next()
	require.NoError(t, err)

	mustAdd(t, w, leaf, geometry.Pt(1, 0, 0))
	_, err = it.Next()
	require.ErrorIs(t, err, ErrStaleIterator)

	assert.Panics(t, func() {
		for pos := range w.All(leaf) {
			if pos == geometry.Origin {
				_, _ = w.RemoveSquareAt(leaf, pos)
			}
		}
	})
}

func TestIteratorOnEmptyNodes(t *testing.T) {
	w := newTestWorld(1)
	root := mustComposite(t, w, geometry.Pt(2, 2, 2))
	assert.False(t, w.Iterate(root).HasNext())

	mustAttach(t, w, root, mustLeaf(t, w, geometry.Unit), geometry.Origin)
	it := w.Iterate(root)
	assert.False(t, it.HasNext())
	_, err := it.Next()
	require.ErrorIs(t, err, ErrIteratorExhausted)
}

func TestAllStopsEarly(t *testing.T) {
	w := newTestWorld(1)
	leaf := mustLeaf(t, w, geometry.Pt(4, 1, 1))
	for x := 0; x < 4; x++ {
		mustAdd(t, w, leaf, geometry.Pt(x, 0, 0))
	}
	n := 0
	for range w.All(leaf) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
