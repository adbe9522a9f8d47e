package kernel

import (
	"container/heap"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/go-catrate"
	"github.com/sparcians/simkernel/clock"
	"github.com/sparcians/simkernel/dag"
)

// Scheduler holds the pending event set and drains it tick by tick in
// phase-and-group-id order. It is single-writer: every method except
// RequestStop must only be called from the scheduler's own logical thread.
type Scheduler struct {
	d     *dag.DAG
	state *fastState

	tick        uint64
	insertion   uint64
	stopRequest atomic.Bool
	heaps       [numPhases]phaseHeap

	draining   bool
	drainTick  uint64
	drainPhase Phase
	drainGroup int

	logger      Logger
	rateLimiter *catrate.Limiter
	counters    map[string]func() int64

	controlClock   *clock.Clock
	controlVertex  *dag.Vertex
	onPause        []func()
	onResume       []func()
	onTerminate    []func()
	pauseEvent     *Unique
	resumeEvent    *Unique
	terminateEvent *Unique
}

// NewScheduler constructs a Scheduler over d, using rootClock to resolve
// delays for the control-callback Scheduleables it creates internally.
func NewScheduler(d *dag.DAG, rootClock *clock.Clock, opts ...Option) (*Scheduler, error) {
	cfg := resolveOptions(opts)

	v, err := d.NewVertex("kernel.control", false)
	if err != nil {
		return nil, WrapError("new scheduler", err)
	}

	s := &Scheduler{
		d:             d,
		state:         newFastState(),
		logger:        cfg.logger,
		counters:      make(map[string]func() int64),
		controlClock:  rootClock,
		controlVertex: v,
	}
	if len(cfg.diagnosticRates) > 0 {
		s.rateLimiter = catrate.NewLimiter(cfg.diagnosticRates)
	}

	s.pauseEvent = NewUnique("kernel.control.pause", rootClock, v, Trigger, s.firePause)
	s.resumeEvent = NewUnique("kernel.control.resume", rootClock, v, Trigger, s.fireResume)
	s.terminateEvent = NewUnique("kernel.control.terminate", rootClock, v, Trigger, s.fireTerminate)

	return s, nil
}

// DAG returns the precedence graph backing this scheduler.
func (s *Scheduler) DAG() *dag.DAG { return s.d }

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() State { return s.state.Load() }

// Tick returns the current tick counter.
func (s *Scheduler) Tick() uint64 { return s.tick }

// enterConfiguring performs the Building -> Configuring transition on the
// first precedence edge built through the scheduler's own wrapper methods
// (see graph.go). It is a no-op once past Building.
func (s *Scheduler) enterConfiguring() {
	s.state.TryTransition(Building, Configuring)
}

// Finalize sorts the underlying DAG, assigning every vertex's group-id,
// and freezes it against further precedence edits. Scheduling remains
// permitted afterward.
func (s *Scheduler) Finalize() error {
	switch s.state.Load() {
	case Building, Configuring:
	default:
		return WrapError("finalize", ErrLifecycleViolation)
	}
	if err := s.d.Finalize(); err != nil {
		if errors.Is(err, dag.ErrOrderingConflict) {
			return fmt.Errorf("%w: %w", ErrOrderingConflict, err)
		}
		return err
	}
	s.state.Store(Finalized)
	return nil
}

// nextInsertion returns a fresh, monotonically increasing insertion
// counter value, breaking ties between entries sharing a (tick, phase,
// group-id).
func (s *Scheduler) nextInsertion() uint64 {
	v := s.insertion
	s.insertion++
	return v
}

// enqueue computes the absolute tick for delayCycles at target's clock and
// pushes a new entry onto that phase's heap. It is the single choke point
// every Scheduleable variant's scheduling method funnels through.
func (s *Scheduler) enqueue(target Scheduleable, delayCycles uint64, fire func() error) (*entry, error) {
	switch s.state.Load() {
	case Finalized, Running:
	default:
		return nil, WrapError(target.Label(), ErrNotFinalized)
	}

	c := target.Clock()
	if !c.Active() {
		return nil, WrapError(target.Label(), ErrClockInactive)
	}

	targetTick := c.TickForCycle(c.CycleAt(s.tick) + delayCycles)
	if targetTick < s.tick {
		targetTick = s.tick
	}

	phase := target.Phase()
	groupID := target.Vertex().GroupID()

	if s.draining && targetTick == s.drainTick && phase == s.drainPhase && groupID < s.drainGroup {
		s.warn("retroactive schedule rejected: %s at tick=%d phase=%s group=%d (currently firing group=%d)",
			target.Label(), targetTick, phase, groupID, s.drainGroup)
		return nil, WrapError(target.Label(), ErrRetroactiveSchedule)
	}

	e := &entry{
		tick:      targetTick,
		phase:     phase,
		groupID:   groupID,
		insertion: s.nextInsertion(),
		label:     target.Label(),
		fire:      fire,
	}
	heap.Push(&s.heaps[phase], e)
	return e, nil
}

func (s *Scheduler) warn(format string, args ...any) {
	if s.rateLimiter != nil {
		if _, ok := s.rateLimiter.Allow(format); !ok {
			return
		}
	}
	s.logger.Warnf(format, args...)
}

// Schedule enqueues target for firing delayCycles cycles from now. It
// supports OneShot and Unique; PayloadEvent[T] requires its own Schedule
// method, which takes a continuation token.
func (s *Scheduler) Schedule(target Scheduleable, delayCycles uint64) error {
	impl, ok := target.(schedulable)
	if !ok {
		return WrapError(target.Label(), ErrUnschedulable)
	}
	return impl.scheduleEntry(s, delayCycles)
}

// Cancel removes every pending entry for target. It supports OneShot and
// Unique; PayloadEvent[T] cancels by token via its own Cancel method.
func (s *Scheduler) Cancel(target Scheduleable) error {
	impl, ok := target.(interface{ Cancel() })
	if !ok {
		return WrapError(target.Label(), ErrUnschedulable)
	}
	impl.Cancel()
	return nil
}

// RequestStop cooperatively requests that Run return once the tick
// currently in progress finishes all its phases. It is safe to call from
// any goroutine.
func (s *Scheduler) RequestStop() { s.stopRequest.Store(true) }

// peekNextTick returns the smallest tick with at least one pending entry
// across all phases, and false if none are pending.
func (s *Scheduler) peekNextTick() (uint64, bool) {
	found := false
	var min uint64
	for p := 0; p < numPhases; p++ {
		h := s.heaps[p]
		if len(h) == 0 {
			continue
		}
		if !found || h[0].tick < min {
			min = h[0].tick
			found = true
		}
	}
	return min, found
}

// drainPhase fires every non-cancelled entry queued for (tick, phase), in
// (group-id, insertion) order. Handlers may insert new entries during
// drain; those for the same (tick, phase) are folded into the same pass as
// long as their group-id is not smaller than the one currently firing.
func (s *Scheduler) drainPhase(phase Phase, tick uint64) {
	h := &s.heaps[phase]
	s.draining = true
	s.drainTick = tick
	s.drainPhase = phase
	s.drainGroup = 0
	defer func() { s.draining = false }()

	for h.Len() > 0 && (*h)[0].tick == tick {
		e := heap.Pop(h).(*entry)
		if e.cancelled {
			continue
		}
		s.drainGroup = e.groupID
		if err := e.fire(); err != nil {
			s.logger.Record(tick, phase, e.groupID, e.label, err.Error())
		}
		if e.onFired != nil {
			e.onFired()
		}
	}
}

// Run drains pending events tick by tick until no events remain, the stop
// flag is observed between ticks, or the tick counter reaches
// startTick+maxRunTicks (0 means unbounded). A tick, once begun, always
// completes every phase before Run checks for a stop.
func (s *Scheduler) Run(maxRunTicks uint64) error {
	if !s.state.TryTransition(Finalized, Running) {
		if s.state.Load() == Running {
			return WrapError("run", ErrLifecycleViolation)
		}
		return WrapError("run", ErrNotFinalized)
	}

	startTick := s.tick
	for {
		nextTick, ok := s.peekNextTick()
		if !ok {
			break
		}
		s.tick = nextTick
		for phase := Phase(0); int(phase) < numPhases; phase++ {
			s.drainPhase(phase, nextTick)
		}
		if s.stopRequest.Load() {
			break
		}
		if maxRunTicks != 0 && s.tick >= startTick+maxRunTicks {
			break
		}
	}

	s.state.Store(Finalized)
	return nil
}

// BeginTeardown transitions the scheduler into TearingDown and deactivates
// the control clock. It is the caller's responsibility to deactivate any
// other clocks it derived before considering teardown complete.
func (s *Scheduler) BeginTeardown() error {
	if !s.state.TryTransition(Finalized, TearingDown) {
		return WrapError("teardown", ErrLifecycleViolation)
	}
	s.controlClock.Deactivate()
	return nil
}
