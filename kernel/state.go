package kernel

import "sync/atomic"

// State is one phase of the scheduler's forward-only lifecycle.
//
//	Building -> Configuring -> Finalized -> Running -> Finalized -> TearingDown
//
// Transitions backwards are forbidden; attempting one is a programming
// error.
type State uint64

const (
	// Building is the initial state: vertices and Scheduleables may be
	// created freely.
	Building State = iota
	// Configuring begins on the first precedence edge or GOP association
	// made through the Scheduler's Precedes, PrecedesGOP, GOPPrecedes or
	// AssociateGOP methods.
	Configuring
	// Finalized follows a successful Finalize call: the DAG is sorted and
	// frozen, but events may still be scheduled.
	Finalized
	// Running holds for the duration of a Run call.
	Running
	// TearingDown is entered once the caller requests teardown; it never
	// transitions onward within this type.
	TearingDown
)

// String renders the state's name.
func (s State) String() string {
	switch s {
	case Building:
		return "Building"
	case Configuring:
		return "Configuring"
	case Finalized:
		return "Finalized"
	case Running:
		return "Running"
	case TearingDown:
		return "TearingDown"
	default:
		return "Unknown"
	}
}

// fastState is a lock-free state word. Reads and writes other than
// RequestStop's flag happen exclusively on the scheduler's single logical
// thread. Store is used where the target state is set unconditionally
// (Finalize, and Running -> Finalized on Run's return path); TryTransition
// (CompareAndSwap) is used where the move depends on the current state:
// Building -> Configuring, Finalized -> Running and Finalized -> TearingDown.
type fastState struct {
	v atomic.Uint64
}

func newFastState() *fastState {
	s := &fastState{}
	s.v.Store(uint64(Building))
	return s
}

func (s *fastState) Load() State { return State(s.v.Load()) }

func (s *fastState) Store(state State) { s.v.Store(uint64(state)) }

func (s *fastState) TryTransition(from, to State) bool {
	return s.v.CompareAndSwap(uint64(from), uint64(to))
}
