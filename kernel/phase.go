package kernel

// Phase is one of the seven totally ordered sub-stages fired within every
// tick. Firing order within one (tick, phase) pair is strictly by
// ascending group-id, then ascending insertion order.
type Phase uint8

const (
	// Trigger handles conditional arming of the tick; control callbacks
	// (pause/resume/terminate) fire here.
	Trigger Phase = iota
	// Update carries state-writing events that must precede port
	// propagation.
	Update
	// PortUpdate propagates signals and data across port bindings; the
	// default phase for port delivery.
	PortUpdate
	// Flush runs pipeline flushes and speculative-state cleanup.
	Flush
	// Collection runs telemetry/collection hooks.
	Collection
	// Tick runs normal model logic.
	Tick
	// PostTick runs finalizers that must observe settled tick state.
	PostTick

	numPhases = int(PostTick) + 1
)

// String renders the phase's name, matching the table in the scheduler's
// design documentation.
func (p Phase) String() string {
	switch p {
	case Trigger:
		return "Trigger"
	case Update:
		return "Update"
	case PortUpdate:
		return "PortUpdate"
	case Flush:
		return "Flush"
	case Collection:
		return "Collection"
	case Tick:
		return "Tick"
	case PostTick:
		return "PostTick"
	default:
		return "Unknown"
	}
}
