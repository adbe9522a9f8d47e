package kernel

import (
	"github.com/sparcians/simkernel/clock"
	"github.com/sparcians/simkernel/dag"
)

// ContinuationToken identifies one prepared payload cell. It packs a dense
// slab index with a generation counter, mirroring the ABA-safety scheme
// arena.SharedHandle uses for recycled cells: a stale token from a
// previously fired or cancelled cell is rejected even if its index has
// since been reused.
type ContinuationToken uint64

func encodeToken(index uint32, generation uint32) ContinuationToken {
	return ContinuationToken(uint64(index)<<32 | uint64(generation))
}

func (t ContinuationToken) decode() (index, generation uint32) {
	return uint32(t >> 32), uint32(t)
}

type payloadCell[T any] struct {
	value      T
	generation uint32
	valid      bool
	entry      *entry
}

// PayloadEvent is a Scheduleable that carries a value of T per prepared
// cell. PreparePayload constructs a cell and returns a token; Schedule
// enqueues that specific cell; the cell's value is destroyed (zeroed) and
// its token invalidated exactly once, whether the cell fires or is
// cancelled.
type PayloadEvent[T any] struct {
	scheduleableMeta
	handler func(T) error

	cells []payloadCell[T]
	free  []uint32
}

// NewPayloadEvent constructs a PayloadEvent. handler receives the prepared
// value when a scheduled cell fires.
func NewPayloadEvent[T any](label string, c *clock.Clock, v *dag.Vertex, phase Phase, handler func(T) error) *PayloadEvent[T] {
	return &PayloadEvent[T]{
		scheduleableMeta: scheduleableMeta{clock: c, vertex: v, phase: phase, label: label},
		handler:          handler,
	}
}

// PreparePayload constructs a cell holding value and returns a token
// identifying it. The payload outlives this call until the cell fires or
// is cancelled.
func (p *PayloadEvent[T]) PreparePayload(value T) ContinuationToken {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		cell := &p.cells[idx]
		cell.value = value
		cell.valid = true
		return encodeToken(idx, cell.generation)
	}
	idx := uint32(len(p.cells))
	p.cells = append(p.cells, payloadCell[T]{value: value, valid: true, generation: 1})
	return encodeToken(idx, 1)
}

func (p *PayloadEvent[T]) lookup(token ContinuationToken) (*payloadCell[T], error) {
	idx, gen := token.decode()
	if int(idx) >= len(p.cells) {
		return nil, WrapError("payload schedule", ErrInvalidContinuation)
	}
	cell := &p.cells[idx]
	if !cell.valid || cell.generation != gen {
		return nil, WrapError("payload schedule", ErrInvalidContinuation)
	}
	return cell, nil
}

// Schedule enqueues the cell identified by token, delayCycles cycles from
// now. It fails with ErrInvalidContinuation if token is stale.
func (p *PayloadEvent[T]) Schedule(sched *Scheduler, token ContinuationToken, delayCycles uint64) error {
	cell, err := p.lookup(token)
	if err != nil {
		return err
	}
	idx, _ := token.decode()
	e, err := sched.enqueue(p, delayCycles, func() error {
		value := cell.value
		p.destroyCell(idx)
		return p.handler(value)
	})
	if err != nil {
		return err
	}
	cell.entry = e
	return nil
}

// Cancel removes the pending entry for token, if any, and destroys the
// payload. It fails with ErrInvalidContinuation if token is stale.
func (p *PayloadEvent[T]) Cancel(token ContinuationToken) error {
	cell, err := p.lookup(token)
	if err != nil {
		return err
	}
	if cell.entry != nil {
		cell.entry.cancelled = true
	}
	idx, _ := token.decode()
	p.destroyCell(idx)
	return nil
}

func (p *PayloadEvent[T]) destroyCell(idx uint32) {
	cell := &p.cells[idx]
	var zero T
	cell.value = zero
	cell.valid = false
	cell.entry = nil
	cell.generation++
	p.free = append(p.free, idx)
}
