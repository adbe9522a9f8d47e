// Package clock maps the scheduler's single monotonically increasing tick
// counter onto hierarchical, rational-ratio "cycle" domains.
//
// # Composition
//
// Every [Clock] except the root is derived from a parent by a ratio
// (numerator/denominator); its cycle count at a given scheduler tick is
// always expressed relative to that same tick, by composing ratios up the
// parent chain at Derive time. This means CycleAt and TickForCycle never
// walk the parent chain at query time, only at construction.
//
// # Freezing
//
// Clocks are mutable (new children may be derived) only until [Clock.Freeze]
// is called, mirroring the scheduler leaving its Configuring phase. A
// derive attempt on a frozen clock fails with [ErrClockFrozen].
package clock
