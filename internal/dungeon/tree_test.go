package dungeon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edward-VS/Kerkers-sub000/internal/geometry"
)

func TestNodeConstructionRejectsBadBoxes(t *testing.T) {
	w := newTestWorld(1)

	tests := []struct {
		name  string
		build func() (NodeID, error)
	}{
		{"zero extent", func() (NodeID, error) { return w.NewLeaf(geometry.Pt(0, 1, 1)) }},
		{"negative extent", func() (NodeID, error) { return w.NewComposite(geometry.Pt(2, -1, 1)) }},
		{"beyond maximum", func() (NodeID, error) { return w.NewComposite(geometry.MaxBox.Add(geometry.Unit)) }},
		{"empty level", func() (NodeID, error) { return w.NewLevel(0, 3) }},
		{"empty shaft", func() (NodeID, error) { return w.NewShaft(geometry.AxisZ, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.build()
			require.ErrorIs(t, err, ErrIllegalBox)
			assert.Equal(t, NoNode, id)
		})
	}
}

func TestLevelAndShaftShapes(t *testing.T) {
	w := newTestWorld(1)

	level, err := w.NewLevel(4, 3)
	require.NoError(t, err)
	assert.Equal(t, ShapeLevel, w.Shape(level))
	assert.Equal(t, geometry.Pt(4, 3, 1), w.Size(level))
	require.ErrorIs(t, w.Enlarge(level, geometry.Pt(4, 3, 2)), ErrIllegalBox)
	require.NoError(t, w.Enlarge(level, geometry.Pt(5, 3, 1)))

	shaft, err := w.NewShaft(geometry.AxisX, 3)
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(3, 1, 1), w.Size(shaft))
	assert.Equal(t, geometry.AxisX, w.Axis(shaft))
	assert.Equal(t, 3, w.SquareCount(shaft))
	requireConsistent(t, w, shaft)
}

func TestAttachChildAt(t *testing.T) {
	w := newTestWorld(1)
	root := mustComposite(t, w, geometry.Pt(4, 4, 2))
	a := mustLeaf(t, w, geometry.Pt(2, 2, 1))
	b := mustLeaf(t, w, geometry.Pt(2, 2, 1))

	mustAttach(t, w, root, a, geometry.Origin)
	assert.Equal(t, root, w.Parent(a))
	assert.Equal(t, root, w.Root(a))
	assert.False(t, w.IsRoot(a))
	assert.Equal(t, geometry.Origin, w.Offset(a))

	t.Run("overlap", func(t *testing.T) {
		err := w.AttachChildAt(root, b, geometry.Pt(1, 1, 0))
		require.ErrorIs(t, err, ErrIllegalPlacement)
		assert.True(t, w.IsRoot(b))
	})
	t.Run("does not fit", func(t *testing.T) {
		require.ErrorIs(t, w.AttachChildAt(root, b, geometry.Pt(3, 0, 0)), ErrIllegalPlacement)
	})
	t.Run("leaf parent", func(t *testing.T) {
		require.ErrorIs(t, w.AttachChildAt(a, b, geometry.Origin), ErrIllegalAttachment)
	})
	t.Run("already attached", func(t *testing.T) {
		other := mustComposite(t, w, geometry.Pt(4, 4, 4))
		require.ErrorIs(t, w.AttachChildAt(other, a, geometry.Origin), ErrIllegalAttachment)
	})

	mustAttach(t, w, root, b, geometry.Pt(2, 2, 1))
	assert.Equal(t, []NodeID{a, b}, w.Children(root))
	assert.Equal(t, geometry.Pt(2, 2, 1), w.RootPosition(b))
	requireConsistent(t, w, root)
}

func TestAttachRejectsCycles(t *testing.T) {
	w := newTestWorld(1)
	outer := mustComposite(t, w, geometry.Pt(4, 4, 4))
	inner := mustComposite(t, w, geometry.Pt(2, 2, 2))
	mustAttach(t, w, outer, inner, geometry.Origin)

	require.ErrorIs(t, w.AttachChildAt(inner, outer, geometry.Origin), ErrIllegalAttachment)
	require.ErrorIs(t, w.AttachChildAt(inner, inner, geometry.Origin), ErrIllegalAttachment)
}

func TestAttachLinksSquaresAcrossTheBoundary(t *testing.T) {
	w := newTestWorld(1)
	left := mustLeaf(t, w, geometry.Pt(1, 1, 1))
	right := mustLeaf(t, w, geometry.Pt(2, 1, 1))
	s1 := mustAdd(t, w, left, geometry.Origin)
	s2 := mustAdd(t, w, right, geometry.Origin)
	s3 := mustAdd(t, w, right, geometry.Pt(1, 0, 0), geometry.West)
	require.Equal(t, Open, w.Obstacle(s2, geometry.East))

	root := mustComposite(t, w, geometry.Pt(3, 1, 1))
	mustAttach(t, w, root, left, geometry.Origin)
	mustAttach(t, w, root, right, geometry.Pt(1, 0, 0))

	assert.Equal(t, s2, w.Neighbor(s1, geometry.East))
	assert.Equal(t, s1, w.Neighbor(s2, geometry.West))
	assert.Equal(t, Wall, w.Obstacle(s1, geometry.East))
	requireConsistent(t, w, root)

	require.NoError(t, w.DetachChild(root, right))
	assert.True(t, w.IsRoot(right))
	assert.Equal(t, NoSquare, w.Neighbor(s1, geometry.East))
	assert.Equal(t, NoSquare, w.Neighbor(s2, geometry.West))
	assert.Equal(t, Wall, w.Obstacle(s2, geometry.West))

	// the detached subtree keeps its interior links
	assert.Equal(t, s3, w.Neighbor(s2, geometry.East))
	assert.Equal(t, Open, w.Obstacle(s3, geometry.West))
	requireConsistent(t, w, right)
	requireConsistent(t, w, root)
	assert.Equal(t, 1, w.SquareCount(root))
}

func TestDetachChildErrors(t *testing.T) {
	w := newTestWorld(1)
	root := mustComposite(t, w, geometry.Pt(2, 1, 1))
	a := mustLeaf(t, w, geometry.Unit)
	b := mustLeaf(t, w, geometry.Unit)
	mustAttach(t, w, root, a, geometry.Origin)

	require.ErrorIs(t, w.DetachChild(root, b), ErrIllegalDetachment)
	require.ErrorIs(t, w.DetachChild(a, root), ErrIllegalDetachment)
	require.NoError(t, w.DetachChild(root, a))
	require.ErrorIs(t, w.DetachChild(root, a), ErrIllegalDetachment)
}

func TestLastScrambleEligibleChild(t *testing.T) {
	w := newTestWorld(1)
	root := mustComposite(t, w, geometry.Pt(2, 1, 1))
	a := mustLeaf(t, w, geometry.Unit)
	b := mustLeaf(t, w, geometry.Unit)
	mustAttach(t, w, root, a, geometry.Origin)
	mustAttach(t, w, root, b, geometry.Pt(1, 0, 0))

	require.NoError(t, w.SetScrambleEligible(a, true))
	require.NoError(t, w.SetScrambleEligible(root, true))

	require.ErrorIs(t, w.DetachChild(root, a), ErrIllegalDetachment)
	require.ErrorIs(t, w.SetScrambleEligible(a, false), ErrIllegalDetachment)
	assert.True(t, w.ScrambleEligible(a))

	require.NoError(t, w.SetScrambleEligible(b, true))
	require.NoError(t, w.DetachChild(root, a))
	assert.Equal(t, []NodeID{b}, w.Children(root))
}

func TestEnlargeRespectsSiblings(t *testing.T) {
	w := newTestWorld(1)
	root := mustComposite(t, w, geometry.Pt(4, 1, 1))
	a := mustLeaf(t, w, geometry.Pt(2, 1, 1))
	b := mustLeaf(t, w, geometry.Unit)
	mustAttach(t, w, root, a, geometry.Origin)
	mustAttach(t, w, root, b, geometry.Pt(3, 0, 0))

	err := w.Enlarge(a, geometry.Pt(4, 1, 1))
	require.ErrorIs(t, err, ErrIllegalBox)
	assert.Equal(t, geometry.Pt(2, 1, 1), w.Size(a))

	require.NoError(t, w.Enlarge(a, geometry.Pt(3, 1, 1)))
	assert.Equal(t, geometry.Pt(3, 1, 1), w.Size(a))
	assert.Equal(t, geometry.Unit, w.Size(b))
	assert.Equal(t, geometry.Pt(3, 0, 0), w.Offset(b))

	require.ErrorIs(t, w.Enlarge(a, geometry.Pt(2, 1, 1)), ErrIllegalBox, "shrinking")
	require.ErrorIs(t, w.Enlarge(a, geometry.Pt(3, 2, 1)), ErrIllegalBox, "outgrowing the parent")
	requireConsistent(t, w, root)
}

func TestEnlargeShaftFillsNewPositions(t *testing.T) {
	w := newTestWorld(1)
	shaft, err := w.NewShaft(geometry.AxisZ, 2)
	require.NoError(t, err)

	require.NoError(t, w.Enlarge(shaft, geometry.Pt(1, 1, 4)))
	assert.Equal(t, 4, w.SquareCount(shaft))
	for z := 0; z < 3; z++ {
		s := w.SquareAt(shaft, geometry.Pt(0, 0, z))
		require.NotEqual(t, NoSquare, s)
		assert.Equal(t, Open, w.Obstacle(s, geometry.Up), "z=%d", z)
	}
	require.ErrorIs(t, w.Enlarge(shaft, geometry.Pt(2, 1, 4)), ErrIllegalBox)
	requireConsistent(t, w, shaft)
}

func TestTerminateDestroysSubtree(t *testing.T) {
	w := newTestWorld(1)
	root := mustComposite(t, w, geometry.Pt(2, 2, 2))
	inner := mustComposite(t, w, geometry.Pt(2, 2, 1))
	leaf := mustLeaf(t, w, geometry.Pt(2, 2, 1))
	mustAttach(t, w, root, inner, geometry.Origin)
	mustAttach(t, w, inner, leaf, geometry.Origin)
	s := mustAdd(t, w, root, geometry.Pt(1, 1, 0))

	require.NoError(t, w.Terminate(inner))
	assert.True(t, w.IsTerminated(inner))
	assert.True(t, w.IsTerminated(leaf))
	assert.True(t, w.IsSquareTerminated(s))
	assert.False(t, w.IsAttached(s))
	assert.Empty(t, w.Children(root))
	assert.Equal(t, 0, w.SquareCount(root))

	found, ok := w.NodeByUUID(w.NodeUUID(root))
	assert.True(t, ok)
	assert.Equal(t, root, found)
	_, ok = w.NodeByUUID(w.NodeUUID(leaf))
	assert.False(t, ok, "terminated nodes are not found")

	err := w.AttachChildAt(root, leaf, geometry.Origin)
	require.ErrorIs(t, err, ErrIllegalAttachment)
	require.NoError(t, w.Terminate(inner), "terminating twice is a no-op")
}

func TestErrorCodes(t *testing.T) {
	w := newTestWorld(1)
	_, err := w.NewLeaf(geometry.Origin)

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, CodeIllegalBox, derr.Code)
	assert.Contains(t, err.Error(), "[illegal-box]")
	assert.False(t, errors.Is(err, ErrIllegalPlacement))
}
