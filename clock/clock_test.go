package clock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootClock_OneToOne covers that the root clock's cycle count always
// equals the scheduler tick.
func TestRootClock_OneToOne(t *testing.T) {
	root := NewRootClock("scheduler")
	for tick := uint64(0); tick < 10; tick++ {
		assert.Equal(t, tick, root.CycleAt(tick))
		assert.Equal(t, tick, root.TickForCycle(tick))
	}
}

// TestDerive_HalfSpeed covers a divided clock: one cycle every two ticks,
// with edges landing on even ticks only.
func TestDerive_HalfSpeed(t *testing.T) {
	root := NewRootClock("scheduler")
	half, err := root.Derive("half", 1, 2)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), half.CycleAt(0))
	assert.Equal(t, uint64(0), half.CycleAt(1))
	assert.Equal(t, uint64(1), half.CycleAt(2))
	assert.Equal(t, uint64(1), half.CycleAt(3))
	assert.Equal(t, uint64(2), half.CycleAt(4))

	assert.Equal(t, uint64(0), half.TickForCycle(0))
	assert.Equal(t, uint64(2), half.TickForCycle(1))
	assert.Equal(t, uint64(4), half.TickForCycle(2))
}

// TestNextEdgeTick_AlwaysStrictlyAfter covers the Sync-port rounding rule:
// the reported edge is always greater than the queried tick, even when the
// queried tick is itself already an edge.
func TestNextEdgeTick_AlwaysStrictlyAfter(t *testing.T) {
	root := NewRootClock("scheduler")
	half, err := root.Derive("half", 1, 2)
	require.NoError(t, err)

	cases := []struct {
		after, want uint64
	}{
		{after: 0, want: 2},
		{after: 1, want: 2},
		{after: 2, want: 4},
		{after: 3, want: 4},
	}
	for _, tc := range cases {
		got := half.NextEdgeTick(tc.after)
		assert.Equal(t, tc.want, got, "after=%d", tc.after)
		assert.Greater(t, got, tc.after)
	}
}

// TestDerive_ComposesRatiosUpTheChain covers a grandchild clock: its ratio
// is composed against both ancestors, not just its immediate parent.
func TestDerive_ComposesRatiosUpTheChain(t *testing.T) {
	root := NewRootClock("scheduler")
	half, err := root.Derive("half", 1, 2)
	require.NoError(t, err)
	quarter, err := half.Derive("quarter", 1, 2)
	require.NoError(t, err)

	num, den := quarter.Ratio()
	assert.Equal(t, uint64(1), num)
	assert.Equal(t, uint64(4), den)

	assert.Equal(t, uint64(0), quarter.CycleAt(3))
	assert.Equal(t, uint64(1), quarter.CycleAt(4))
	assert.Equal(t, uint64(8), quarter.TickForCycle(2))
}

// TestDerive_DoubleSpeed covers a multiplied clock domain.
func TestDerive_DoubleSpeed(t *testing.T) {
	root := NewRootClock("scheduler")
	double, err := root.Derive("double", 2, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), double.CycleAt(0))
	assert.Equal(t, uint64(2), double.CycleAt(1))
	assert.Equal(t, uint64(4), double.CycleAt(2))
	assert.Equal(t, uint64(1), double.TickForCycle(1))
	assert.Equal(t, uint64(1), double.TickForCycle(2))
	assert.Equal(t, uint64(2), double.TickForCycle(3))
}

// TestDerive_RejectsZeroRatio covers constructor validation.
func TestDerive_RejectsZeroRatio(t *testing.T) {
	root := NewRootClock("scheduler")
	_, err := root.Derive("bad", 0, 1)
	assert.True(t, errors.Is(err, ErrConfig))
	_, err = root.Derive("bad", 1, 0)
	assert.True(t, errors.Is(err, ErrConfig))
}

// TestFreeze_RejectsFurtherDerive covers that a frozen clock refuses new
// children but leaves already-derived children untouched.
func TestFreeze_RejectsFurtherDerive(t *testing.T) {
	root := NewRootClock("scheduler")
	half, err := root.Derive("half", 1, 2)
	require.NoError(t, err)

	root.Freeze()
	assert.True(t, root.Frozen())

	_, err = root.Derive("third", 1, 3)
	assert.True(t, errors.Is(err, ErrClockFrozen))

	// half was derived before freezing and remains independently usable.
	assert.False(t, half.Frozen())
	_, err = half.Derive("eighth", 1, 4)
	assert.NoError(t, err)
}

// TestActive_DefaultsTrueUntilDeactivated covers the liveness flag used by
// the scheduler to reject scheduling against a torn-down clock.
func TestActive_DefaultsTrueUntilDeactivated(t *testing.T) {
	root := NewRootClock("scheduler")
	assert.True(t, root.Active())
	root.Deactivate()
	assert.False(t, root.Active())
}

// TestParentAndName cover the diagnostic accessors.
func TestParentAndName(t *testing.T) {
	root := NewRootClock("scheduler")
	child, err := root.Derive("core0", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "core0", child.Name())
	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())
}
