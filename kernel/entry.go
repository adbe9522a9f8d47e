package kernel

import "golang.org/x/exp/constraints"

// entry is one pending tick-queue slot. Entries are ordered, within a
// single phase's heap, by (tick, groupID, insertion) ascending — the
// scheduler's one ordering guarantee.
type entry struct {
	tick      uint64
	phase     Phase
	groupID   int
	insertion uint64
	label     string

	// cancelled is checked immediately before firing; it lets Cancel be
	// O(1) without walking or mutating the heap. Cancelling the entry
	// currently being fired has no effect.
	cancelled bool

	fire func() error

	// onFired, if set, runs after a non-cancelled entry fires, letting the
	// owning Scheduleable variant clear its own bookkeeping (Unique's
	// single pending slot, OneShot's pending set).
	onFired func()
}

// phaseHeap is a min-heap of *entry ordered by (tick, groupID, insertion).
// It is the per-phase tick-ordered queue the scheduler drains once per
// tick, one heap per Phase.
type phaseHeap []*entry

func (h phaseHeap) Len() int { return len(h) }

// tiebreak compares two ordered values, reporting whether a precedes b and
// whether they are equal, so callers can fall through to the next
// comparison key in a tuple ordering without repeating the equality check.
func tiebreak[T constraints.Ordered](a, b T) (less, equal bool) {
	return a < b, a == b
}

func (h phaseHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if less, equal := tiebreak(a.tick, b.tick); !equal {
		return less
	}
	if less, equal := tiebreak(a.groupID, b.groupID); !equal {
		return less
	}
	less, _ := tiebreak(a.insertion, b.insertion)
	return less
}

func (h phaseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *phaseHeap) Push(x any) {
	*h = append(*h, x.(*entry))
}

func (h *phaseHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
