package kernel

import (
	"github.com/sparcians/simkernel/clock"
	"github.com/sparcians/simkernel/dag"
)

// OneShot is a Scheduleable where every Schedule call creates an
// independent tick-queue entry: two schedules for the same tick/phase/
// group-id fire twice, in insertion order.
type OneShot struct {
	scheduleableMeta
	handler func() error
	pending []*entry
}

// NewOneShot constructs a OneShot event. handler is invoked each time a
// scheduled entry fires.
func NewOneShot(label string, c *clock.Clock, v *dag.Vertex, phase Phase, handler func() error) *OneShot {
	return &OneShot{
		scheduleableMeta: scheduleableMeta{clock: c, vertex: v, phase: phase, label: label},
		handler:          handler,
	}
}

// Schedule enqueues one new firing, delayCycles cycles (at this event's
// clock) from now.
func (o *OneShot) Schedule(sched *Scheduler, delayCycles uint64) error {
	return o.scheduleEntry(sched, delayCycles)
}

func (o *OneShot) scheduleEntry(sched *Scheduler, delayCycles uint64) error {
	e, err := sched.enqueue(o, delayCycles, o.handler)
	if err != nil {
		return err
	}
	o.pending = append(o.pending, e)
	idx := len(o.pending) - 1
	e.onFired = func() { o.removePending(idx) }
	return nil
}

func (o *OneShot) removePending(idx int) {
	if idx < 0 || idx >= len(o.pending) {
		return
	}
	o.pending = append(o.pending[:idx], o.pending[idx+1:]...)
	for i := idx; i < len(o.pending); i++ {
		e := o.pending[i]
		j := i
		e.onFired = func() { o.removePending(j) }
	}
}

// Cancel removes every currently pending entry for this event. It has no
// effect on an entry that is already firing.
func (o *OneShot) Cancel() {
	for _, e := range o.pending {
		e.cancelled = true
	}
	o.pending = nil
}

// Unique is a coalescing Scheduleable: at most one entry is ever pending
// at a time. A Schedule call while one is already pending is a no-op.
type Unique struct {
	scheduleableMeta
	handler func() error
	pending *entry
}

// NewUnique constructs a Unique (coalescing) event.
func NewUnique(label string, c *clock.Clock, v *dag.Vertex, phase Phase, handler func() error) *Unique {
	return &Unique{
		scheduleableMeta: scheduleableMeta{clock: c, vertex: v, phase: phase, label: label},
		handler:          handler,
	}
}

// Schedule enqueues a firing delayCycles cycles from now, unless one is
// already pending.
func (u *Unique) Schedule(sched *Scheduler, delayCycles uint64) error {
	return u.scheduleEntry(sched, delayCycles)
}

func (u *Unique) scheduleEntry(sched *Scheduler, delayCycles uint64) error {
	if u.pending != nil && !u.pending.cancelled {
		return nil
	}
	e, err := sched.enqueue(u, delayCycles, u.handler)
	if err != nil {
		return err
	}
	u.pending = e
	e.onFired = func() { u.pending = nil }
	return nil
}

// Cancel removes the pending entry, if any. It is a no-op if nothing is
// pending, and has no effect on an entry that is already firing.
func (u *Unique) Cancel() {
	if u.pending == nil {
		return
	}
	u.pending.cancelled = true
	u.pending = nil
}

// Pending reports whether an entry is currently queued.
func (u *Unique) Pending() bool { return u.pending != nil && !u.pending.cancelled }
