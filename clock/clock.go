package clock

import (
	"sync/atomic"
)

// Clock maps scheduler ticks onto a named cycle domain. The root clock has
// a 1/1 ratio to the scheduler's tick counter; every other clock is
// produced by [Clock.Derive] and carries a ratio composed against its
// entire ancestor chain, so that CycleAt and TickForCycle are O(1) without
// walking parents.
type Clock struct {
	name   string
	parent *Clock

	// num/den is this clock's ratio relative to the scheduler tick itself
	// (not merely relative to parent), already reduced by gcd.
	num uint64
	den uint64

	frozen atomic.Bool
	active atomic.Bool
}

// NewRootClock constructs the top of a clock tree: one cycle per scheduler
// tick.
func NewRootClock(name string) *Clock {
	c := &Clock{name: name, num: 1, den: 1}
	c.active.Store(true)
	return c
}

// Derive creates a child clock whose cycle advances ratioNum times per
// ratioDen cycles of its parent. Both must be positive. Derive fails with
// ErrClockFrozen once Freeze has been called on c.
func (c *Clock) Derive(name string, ratioNum, ratioDen uint64) (*Clock, error) {
	if ratioNum == 0 || ratioDen == 0 {
		return nil, WrapError("derive "+name, ErrConfig)
	}
	if c.frozen.Load() {
		return nil, WrapError("derive "+name, ErrClockFrozen)
	}

	num := c.num * ratioNum
	den := c.den * ratioDen
	if g := gcd(num, den); g > 1 {
		num /= g
		den /= g
	}

	child := &Clock{name: name, parent: c, num: num, den: den}
	child.active.Store(true)
	return child, nil
}

// Name returns the clock's diagnostic name.
func (c *Clock) Name() string { return c.name }

// Parent returns the clock this one was derived from, or nil for the root.
func (c *Clock) Parent() *Clock { return c.parent }

// Ratio returns the clock's reduced ratio relative to the scheduler tick.
func (c *Clock) Ratio() (num, den uint64) { return c.num, c.den }

// CycleAt returns this clock's cycle count at the given scheduler tick:
// floor(tick * num / den).
func (c *Clock) CycleAt(tick uint64) uint64 {
	return mulDiv(tick, c.num, c.den)
}

// TickForCycle returns the smallest scheduler tick at which CycleAt would
// report at least cycle: ceil(cycle * den / num).
func (c *Clock) TickForCycle(cycle uint64) uint64 {
	if cycle == 0 {
		return 0
	}
	return ceilMulDiv(cycle, c.den, c.num)
}

// NextEdgeTick returns the smallest scheduler tick strictly after afterTick
// at which this clock's cycle counter advances. It is the rounding rule
// used by Sync ports: a value sent at afterTick is not visible to the
// destination clock until its next edge.
func (c *Clock) NextEdgeTick(afterTick uint64) uint64 {
	return c.TickForCycle(c.CycleAt(afterTick) + 1)
}

// Freeze prevents further Derive calls on this clock. It does not affect
// already-derived children, which carry their own independent state.
func (c *Clock) Freeze() { c.frozen.Store(true) }

// Frozen reports whether Freeze has been called.
func (c *Clock) Frozen() bool { return c.frozen.Load() }

// Active reports whether the clock's owning scheduler considers it live.
// Scheduling against an inactive clock fails with ErrClockInactive.
func (c *Clock) Active() bool { return c.active.Load() }

// Deactivate marks the clock dead, typically called once by the owning
// scheduler during teardown.
func (c *Clock) Deactivate() { c.active.Store(false) }

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// mulDiv computes floor(a*num/den) without overflowing for the tick ranges
// a 64-bit simulation tick counter can reach in practice; it splits the
// multiplication into quotient/remainder parts of a to keep intermediate
// products within range for the ratios Derive can produce.
func mulDiv(a, num, den uint64) uint64 {
	q := a / den
	r := a % den
	return q*num + (r*num)/den
}

// ceilMulDiv computes ceil(a*num/den), using the same overflow-avoiding
// split as mulDiv.
func ceilMulDiv(a, num, den uint64) uint64 {
	q := a / den
	r := a % den
	prod := r * num
	result := q*num + prod/den
	if prod%den != 0 {
		result++
	}
	return result
}
