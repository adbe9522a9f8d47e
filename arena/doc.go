// Package arena implements a fixed-capacity object pool with reference
// counted shared and weak handles, for recycling short-lived simulation
// objects without per-allocation calls into the system allocator.
//
// # Architecture
//
// A [Pool] owns a dense slab of cells. Allocate constructs an object in
// place in the next free cell, either recycled from a LIFO free list or
// bump-allocated from the underlying slab. [SharedHandle] behaves like a
// reference counted pointer; [WeakHandle] observes a cell without keeping
// the object alive, and can be upgraded back to a [SharedHandle] via Lock
// as long as the object has not been destroyed.
//
// # Capacity
//
// A Pool has a fixed maximum number of concurrently live objects. Exceeding
// it invokes the configured overflow callback (panicking, by default) and
// then reports [ErrOutOfCapacity]. Crossing the configured watermark once
// invokes the watermark callback exactly once for the lifetime of the pool.
//
// # Concurrency
//
// Reference count mutation is safe to call from multiple goroutines, but
// the pool is intended for use from a single logical thread of control
// (e.g. the simulation kernel's scheduler goroutine); see package kernel.
package arena
