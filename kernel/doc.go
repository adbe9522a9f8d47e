// Package kernel implements the precedence-ordered, multi-phase discrete
// event scheduler: a single monotonic tick counter, seven totally ordered
// phases per tick, and a closed set of Scheduleable variants (OneShot,
// Unique, PayloadEvent) fired in strict (tick, phase, group-id, insertion)
// order.
//
// # Threading
//
// The scheduler is single-threaded cooperative: exactly one goroutine may
// call Schedule, Cancel, Tick, or Run. The sole exception is RequestStop,
// which is safe to call from any goroutine and is checked between events.
//
// # Lifecycle
//
// A Scheduler moves through Building -> Configuring -> Finalized, then
// between Finalized and Running for each Run call, and from Finalized to
// TearingDown. Finalize freezes the underlying precedence graph and
// computes group-ids; further Schedule calls are permitted afterward, but
// further precedence edges are not.
package kernel
