package kernel

import (
	"github.com/sparcians/simkernel/clock"
	"github.com/sparcians/simkernel/dag"
)

// SignalOutPort sends parameterless pulses to every bound SignalInPort.
type SignalOutPort struct {
	vertex *dag.Vertex
	label  string
	bound  []*SignalInPort
}

// SignalInPort receives pulses and invokes handler once per delivery.
type SignalInPort struct {
	vertex  *dag.Vertex
	label   string
	delay   uint64
	handler func() error
	event   *PayloadEvent[struct{}]
}

// NewSignalOutPort constructs an unbound signal source.
func NewSignalOutPort(d *dag.DAG, label string) (*SignalOutPort, error) {
	v, err := d.NewVertex(label, false)
	if err != nil {
		return nil, err
	}
	return &SignalOutPort{vertex: v, label: label}, nil
}

// NewSignalInPort constructs a signal sink, delivering at PortUpdate with
// the given delay. Callers needing delivery on a different phase should
// build a PayloadEvent directly instead of going through this helper.
func NewSignalInPort(d *dag.DAG, label string, c *clock.Clock, delay uint64, handler func() error) (*SignalInPort, error) {
	v, err := d.NewVertex(label, false)
	if err != nil {
		return nil, err
	}
	in := &SignalInPort{vertex: v, label: label, delay: delay, handler: handler}
	in.event = NewPayloadEvent[struct{}](label, c, v, PortUpdate, func(struct{}) error { return handler() })
	return in, nil
}

// BindSignal wires out -> in, adding the precedence edge the binding
// implies.
func BindSignal(d *dag.DAG, out *SignalOutPort, in *SignalInPort) error {
	if err := d.Link(out.vertex, in.vertex, out.label+" -> "+in.label); err != nil {
		return err
	}
	out.bound = append(out.bound, in)
	return nil
}

// Send pulses every bound SignalInPort.
func (o *SignalOutPort) Send(sched *Scheduler) error {
	for _, in := range o.bound {
		token := in.event.PreparePayload(struct{}{})
		if err := in.event.Schedule(sched, token, in.delay); err != nil {
			return err
		}
	}
	return nil
}

// DataOutPort sends a value of T to every bound DataInPort.
type DataOutPort[T any] struct {
	vertex *dag.Vertex
	label  string
	bound  []*DataInPort[T]
}

// DataInPort receives a value of T and invokes handler with it.
type DataInPort[T any] struct {
	vertex  *dag.Vertex
	label   string
	delay   uint64
	handler func(T) error
	event   *PayloadEvent[T]
}

// NewDataOutPort constructs an unbound data source.
func NewDataOutPort[T any](d *dag.DAG, label string) (*DataOutPort[T], error) {
	v, err := d.NewVertex(label, false)
	if err != nil {
		return nil, err
	}
	return &DataOutPort[T]{vertex: v, label: label}, nil
}

// NewDataInPort constructs a data sink, delivering at PortUpdate with the
// given delay.
func NewDataInPort[T any](d *dag.DAG, label string, c *clock.Clock, delay uint64, handler func(T) error) (*DataInPort[T], error) {
	v, err := d.NewVertex(label, false)
	if err != nil {
		return nil, err
	}
	in := &DataInPort[T]{vertex: v, label: label, delay: delay, handler: handler}
	in.event = NewPayloadEvent[T](label, c, v, PortUpdate, handler)
	return in, nil
}

// BindData wires out -> in.
func BindData[T any](d *dag.DAG, out *DataOutPort[T], in *DataInPort[T]) error {
	if err := d.Link(out.vertex, in.vertex, out.label+" -> "+in.label); err != nil {
		return err
	}
	out.bound = append(out.bound, in)
	return nil
}

// Send delivers value to every bound DataInPort.
func (o *DataOutPort[T]) Send(sched *Scheduler, value T) error {
	for _, in := range o.bound {
		token := in.event.PreparePayload(value)
		if err := in.event.Schedule(sched, token, in.delay); err != nil {
			return err
		}
	}
	return nil
}

// SyncOutPort sends a value of T across a clock-domain boundary.
type SyncOutPort[T any] struct {
	vertex *dag.Vertex
	label  string
	bound  []*SyncInPort[T]
}

// SyncInPort receives a value delivered no earlier than its own clock's
// next edge strictly after the sending tick.
type SyncInPort[T any] struct {
	vertex  *dag.Vertex
	label   string
	clock   *clock.Clock
	handler func(T) error
	event   *PayloadEvent[T]
}

// NewSyncOutPort constructs an unbound cross-clock data source.
func NewSyncOutPort[T any](d *dag.DAG, label string) (*SyncOutPort[T], error) {
	v, err := d.NewVertex(label, false)
	if err != nil {
		return nil, err
	}
	return &SyncOutPort[T]{vertex: v, label: label}, nil
}

// NewSyncInPort constructs a cross-clock data sink on destination clock c.
func NewSyncInPort[T any](d *dag.DAG, label string, c *clock.Clock, handler func(T) error) (*SyncInPort[T], error) {
	v, err := d.NewVertex(label, false)
	if err != nil {
		return nil, err
	}
	in := &SyncInPort[T]{vertex: v, label: label, clock: c, handler: handler}
	in.event = NewPayloadEvent[T](label, c, v, PortUpdate, handler)
	return in, nil
}

// BindSync wires out -> in.
func BindSync[T any](d *dag.DAG, out *SyncOutPort[T], in *SyncInPort[T]) error {
	if err := d.Link(out.vertex, in.vertex, out.label+" -> "+in.label); err != nil {
		return err
	}
	out.bound = append(out.bound, in)
	return nil
}

// Send delivers value to every bound SyncInPort, translating the current
// tick into each destination clock's next edge strictly after it — no
// value is visible before the destination clock has ticked through the
// boundary.
func (o *SyncOutPort[T]) Send(sched *Scheduler, value T) error {
	for _, in := range o.bound {
		sourceTick := sched.Tick()
		targetTick := in.clock.NextEdgeTick(sourceTick)
		delayCycles := in.clock.CycleAt(targetTick) - in.clock.CycleAt(sourceTick)
		token := in.event.PreparePayload(value)
		if err := in.event.Schedule(sched, token, delayCycles); err != nil {
			return err
		}
	}
	return nil
}
