package kernel

import (
	"github.com/sparcians/simkernel/clock"
	"github.com/sparcians/simkernel/dag"
)

// Scheduleable is the atomic unit the scheduler fires. The closed set of
// variants — OneShot, Unique, and PayloadEvent[T] — all embed
// scheduleableMeta and therefore satisfy this interface; there is no
// virtual hierarchy deeper than that one embedding.
type Scheduleable interface {
	// Vertex returns the DAG vertex used for precedence wiring.
	Vertex() *dag.Vertex
	// Clock returns the clock delay cycles are resolved against.
	Clock() *clock.Clock
	// Phase returns the phase this Scheduleable fires in.
	Phase() Phase
	// Label returns a diagnostic name.
	Label() string
}

// scheduleableMeta holds the attributes common to every Scheduleable
// variant: owning clock, phase tag, default delay, and DAG vertex.
type scheduleableMeta struct {
	clock        *clock.Clock
	vertex       *dag.Vertex
	phase        Phase
	label        string
	defaultDelay uint64
}

func (m *scheduleableMeta) Vertex() *dag.Vertex { return m.vertex }
func (m *scheduleableMeta) Clock() *clock.Clock { return m.clock }
func (m *scheduleableMeta) Phase() Phase        { return m.phase }
func (m *scheduleableMeta) Label() string       { return m.label }

// groupID resolves the vertex's current group-id, valid only after the
// owning DAG has been sorted.
func (m *scheduleableMeta) groupID() int { return m.vertex.GroupID() }

// schedulable is implemented by variants that support the scheduler's
// plain Schedule(s, delay) entry point: OneShot and Unique. PayloadEvent[T]
// does not — it requires a continuation token and is scheduled through its
// own typed method instead.
type schedulable interface {
	Scheduleable
	scheduleEntry(sched *Scheduler, delayCycles uint64) error
}
