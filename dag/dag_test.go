package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSort_LinearChain covers a straight A->B->C->D chain: every vertex
// must land in its own, strictly increasing group-id.
func TestSort_LinearChain(t *testing.T) {
	d := NewDAG()
	a, err := d.NewVertex("A", false)
	require.NoError(t, err)
	b, err := d.NewVertex("B", false)
	require.NoError(t, err)
	c, err := d.NewVertex("C", false)
	require.NoError(t, err)
	e, err := d.NewVertex("D", false)
	require.NoError(t, err)

	require.NoError(t, d.Link(a, b, ""))
	require.NoError(t, d.Link(b, c, ""))
	require.NoError(t, d.Link(c, e, ""))

	n, err := d.Sort()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Less(t, a.GroupID(), b.GroupID())
	assert.Less(t, b.GroupID(), c.GroupID())
	assert.Less(t, c.GroupID(), e.GroupID())
}

// TestSort_Diamond covers A->{B,C}->D: B and C have no ordering constraint
// between them and must share a group-id, strictly between A's and D's.
func TestSort_Diamond(t *testing.T) {
	d := NewDAG()
	a, _ := d.NewVertex("A", false)
	b, _ := d.NewVertex("B", false)
	c, _ := d.NewVertex("C", false)
	e, _ := d.NewVertex("D", false)

	require.NoError(t, d.Link(a, b, ""))
	require.NoError(t, d.Link(a, c, ""))
	require.NoError(t, d.Link(b, e, ""))
	require.NoError(t, d.Link(c, e, ""))

	n, err := d.Sort()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, b.GroupID(), c.GroupID())
	assert.Less(t, a.GroupID(), b.GroupID())
	assert.Less(t, b.GroupID(), e.GroupID())
}

// TestLink_EarlyCycleDetection covers a direct cycle: with early detection
// enabled (the default), the offending Link call itself fails.
func TestLink_EarlyCycleDetection(t *testing.T) {
	d := NewDAG()
	a, _ := d.NewVertex("A", false)
	b, _ := d.NewVertex("B", false)
	c, _ := d.NewVertex("C", false)

	require.NoError(t, d.Link(a, b, ""))
	require.NoError(t, d.Link(b, c, ""))

	err := d.Link(c, a, "")
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	labels := make([]string, len(cycleErr.Vertices()))
	for i, v := range cycleErr.Vertices() {
		labels[i] = v.Label()
	}
	assert.Equal(t, []string{"C", "A", "B"}, labels)
	assert.Contains(t, cycleErr.Error(), "C -> A -> B")
	assert.Contains(t, cycleErr.DOT(), `"B" -> "C"`)
}

// TestSort_CycleWithoutEarlyDetection covers the residual-inbound-count
// path: with early detection disabled, the cycle survives Link and is only
// caught by Sort's DFS fallback.
func TestSort_CycleWithoutEarlyDetection(t *testing.T) {
	d := NewDAG(WithEarlyCycleDetection(false))
	a, _ := d.NewVertex("A", false)
	b, _ := d.NewVertex("B", false)
	c, _ := d.NewVertex("C", false)

	require.NoError(t, d.Link(a, b, ""))
	require.NoError(t, d.Link(b, c, ""))
	require.NoError(t, d.Link(c, a, ""))

	_, err := d.Sort()
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Len(t, cycleErr.Vertices(), 3)
}

// TestLink_SelfLoopRejected covers the direct self-precedence case, which
// is rejected independently of early cycle detection.
func TestLink_SelfLoopRejected(t *testing.T) {
	d := NewDAG()
	a, _ := d.NewVertex("A", false)
	err := d.Link(a, a, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSelfLoop))
}

// TestLink_Idempotent covers that linking an already-linked pair twice is
// a harmless no-op rather than a duplicate edge or error.
func TestLink_Idempotent(t *testing.T) {
	d := NewDAG()
	a, _ := d.NewVertex("A", false)
	b, _ := d.NewVertex("B", false)
	require.NoError(t, d.Link(a, b, "first"))
	require.NoError(t, d.Link(a, b, "second"))
	assert.Len(t, a.Edges(), 1)
	assert.Equal(t, "first", a.Edges()[0].Label())
	assert.Equal(t, 1, b.InboundCount())
}

// TestUnlink covers removing an edge and re-sorting: the two vertices fall
// back to being independent, sharing a group-id.
func TestUnlink(t *testing.T) {
	d := NewDAG()
	a, _ := d.NewVertex("A", false)
	b, _ := d.NewVertex("B", false)
	require.NoError(t, d.Link(a, b, ""))
	d.Unlink(a, b)
	assert.Empty(t, a.Edges())
	assert.Equal(t, 0, b.InboundCount())

	n, err := d.Sort()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, a.GroupID(), b.GroupID())
}

// TestSort_FiveByFiveGrid covers a 5x5 mesh where each node precedes its
// right and below neighbors: the result must be a strict 9-layer
// anti-diagonal banding (row+col), with every edge crossing a group-id
// boundary.
func TestSort_FiveByFiveGrid(t *testing.T) {
	d := NewDAG()
	const dim = 5
	grid := make([][]*Vertex, dim)
	for r := 0; r < dim; r++ {
		grid[r] = make([]*Vertex, dim)
		for c := 0; c < dim; c++ {
			v, err := d.NewVertex("", false)
			require.NoError(t, err)
			grid[r][c] = v
		}
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if c+1 < dim {
				require.NoError(t, d.Link(grid[r][c], grid[r][c+1], ""))
			}
			if r+1 < dim {
				require.NoError(t, d.Link(grid[r][c], grid[r+1][c], ""))
			}
		}
	}

	n, err := d.Sort()
	require.NoError(t, err)
	assert.Equal(t, 2*dim-1, n)

	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if c+1 < dim {
				assert.Less(t, grid[r][c].GroupID(), grid[r][c+1].GroupID())
			}
			if r+1 < dim {
				assert.Less(t, grid[r][c].GroupID(), grid[r+1][c].GroupID())
			}
		}
	}
}

// TestFinalize_GOPRendezvousTransfersGroupID covers the structural half of
// a GOP rendezvous: two otherwise-unconnected producers register as
// associates of a shared GOP, and Finalize copies the GOP's group-id onto
// both of them.
func TestFinalize_GOPRendezvousTransfersGroupID(t *testing.T) {
	d := NewDAG()
	producer1, _ := d.NewVertex("producer1", false)
	producer2, _ := d.NewVertex("producer2", false)
	upstream, _ := d.NewVertex("upstream", false)

	require.NoError(t, d.Link(upstream, producer1, ""))

	gop, err := d.FindOrCreateGOP("rendezvous")
	require.NoError(t, err)
	d.RegisterAssociate(gop, producer1)
	d.RegisterAssociate(gop, producer2)

	require.NoError(t, d.Finalize())
	assert.True(t, d.Finalized())
	assert.Equal(t, gop.GroupID(), producer1.GroupID())
	assert.Equal(t, gop.GroupID(), producer2.GroupID())
}

// TestFinalize_ConflictingAssociateRejected covers two GOPs fighting over
// the same associate: the second transfer must fail rather than silently
// overwrite the first.
func TestFinalize_ConflictingAssociateRejected(t *testing.T) {
	d := NewDAG()
	shared, _ := d.NewVertex("shared", false)
	gopA, err := d.FindOrCreateGOP("a")
	require.NoError(t, err)
	gopB, err := d.FindOrCreateGOP("b")
	require.NoError(t, err)
	require.NoError(t, d.Link(gopA, gopB, ""))

	d.RegisterAssociate(gopA, shared)
	d.RegisterAssociate(gopB, shared)

	err = d.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderingConflict))
}

// TestFindOrCreateGOP_ReturnsSameVertex covers that repeated lookups by
// name return the same vertex rather than creating duplicates.
func TestFindOrCreateGOP_ReturnsSameVertex(t *testing.T) {
	d := NewDAG()
	g1, err := d.FindOrCreateGOP("checkpoint")
	require.NoError(t, err)
	g2, err := d.FindOrCreateGOP("checkpoint")
	require.NoError(t, err)
	assert.Same(t, g1, g2)
	assert.True(t, g1.IsGOP())
}

// TestFinalize_RejectsFurtherMutation covers that once finalized, the
// graph refuses new vertices and edges.
func TestFinalize_RejectsFurtherMutation(t *testing.T) {
	d := NewDAG()
	a, _ := d.NewVertex("A", false)
	b, _ := d.NewVertex("B", false)
	require.NoError(t, d.Link(a, b, ""))
	require.NoError(t, d.Finalize())

	_, err := d.NewVertex("C", false)
	assert.True(t, errors.Is(err, ErrAlreadyFinalized))
	assert.True(t, errors.Is(d.Link(a, b, ""), ErrAlreadyFinalized))
}

// TestOwner_UnsetAndLiveBox covers SetOwner/Owner: a vertex with no owner
// set reports absence, and a live box is observable.
func TestOwner_UnsetAndLiveBox(t *testing.T) {
	d := NewDAG()
	v, _ := d.NewVertex("A", false)

	_, ok := v.Owner()
	assert.False(t, ok)

	box := &OwnerBox{Value: "payload"}
	v.SetOwner(box)
	got, ok := v.Owner()
	require.True(t, ok)
	assert.Equal(t, "payload", got)
}

// TestSort_Deterministic covers that repeated Sort calls on an unchanged
// graph produce identical group-id assignments (determinism, not merely
// validity).
func TestSort_Deterministic(t *testing.T) {
	build := func() *DAG {
		d := NewDAG()
		a, _ := d.NewVertex("A", false)
		b, _ := d.NewVertex("B", false)
		c, _ := d.NewVertex("C", false)
		_ = d.Link(a, b, "")
		_ = d.Link(a, c, "")
		_ = d.Link(b, c, "")
		return d
	}

	first := build()
	_, err := first.Sort()
	require.NoError(t, err)
	firstIDs := groupIDs(first)

	second := build()
	_, err = second.Sort()
	require.NoError(t, err)
	secondIDs := groupIDs(second)

	assert.Equal(t, firstIDs, secondIDs)
}

func groupIDs(d *DAG) []int {
	ids := make([]int, len(d.Vertices()))
	for i, v := range d.Vertices() {
		ids[i] = v.GroupID()
	}
	return ids
}
