package arena

// SharedHandle is a reference counted handle to an object owned by a Pool.
// The zero value is an empty handle (IsValid reports false).
type SharedHandle[T any] struct {
	cell       *cell[T]
	generation uint64
}

func (h SharedHandle[T]) alive() bool {
	return h.cell != nil && h.cell.generation.Load() == h.generation && h.cell.strong.Load() > 0
}

// IsValid reports whether the handle refers to a live object.
func (h SharedHandle[T]) IsValid() bool {
	return h.alive()
}

// Get returns a pointer to the held object. It panics if the handle is
// empty or the object has already been destroyed.
func (h SharedHandle[T]) Get() *T {
	if !h.alive() {
		panic("arena: Get called on invalid SharedHandle")
	}
	return &h.cell.obj
}

// UseCount returns the current strong reference count, or 0 for an empty or
// expired handle.
func (h SharedHandle[T]) UseCount() int {
	if h.cell == nil || h.cell.generation.Load() != h.generation {
		return 0
	}
	n := h.cell.strong.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Clone returns a new SharedHandle sharing ownership of the same object,
// incrementing the strong count.
func (h SharedHandle[T]) Clone() SharedHandle[T] {
	if !h.alive() {
		return SharedHandle[T]{}
	}
	h.cell.strong.Add(1)
	return SharedHandle[T]{cell: h.cell, generation: h.generation}
}

// Close decrements the strong reference count, destroying the held object
// when it reaches zero. Close is idempotent: calling it on an already
// closed or empty handle is a no-op.
func (h *SharedHandle[T]) Close() {
	if h.cell == nil || h.cell.generation.Load() != h.generation {
		h.cell = nil
		return
	}
	c := h.cell
	h.cell = nil
	if c.strong.Add(-1) == 0 {
		c.pool.release(c)
	}
}

// Pointer returns an opaque identity for the underlying cell, suitable for
// equality comparisons between handles that may refer to the same object.
func (h SharedHandle[T]) Pointer() *T {
	if h.cell == nil {
		return nil
	}
	return &h.cell.obj
}

// Equal reports whether two handles refer to the same live generation of
// the same cell.
func (h SharedHandle[T]) Equal(other SharedHandle[T]) bool {
	return h.cell == other.cell && h.generation == other.generation
}

// WeakHandle observes an object owned by a Pool without keeping it alive.
// The zero value is an empty handle (Expired reports true).
type WeakHandle[T any] struct {
	cell       *cell[T]
	generation uint64
}

// NewWeakHandle constructs a WeakHandle from a SharedHandle.
func NewWeakHandle[T any](h SharedHandle[T]) WeakHandle[T] {
	if h.cell == nil || h.cell.generation.Load() != h.generation {
		return WeakHandle[T]{}
	}
	h.cell.weak.Add(1)
	return WeakHandle[T]{cell: h.cell, generation: h.generation}
}

// Expired reports whether the strong count for the observed object has
// reached zero (i.e. every SharedHandle has been released).
func (w WeakHandle[T]) Expired() bool {
	if w.cell == nil || w.cell.generation.Load() != w.generation {
		return true
	}
	return w.cell.strong.Load() <= 0
}

// UseCount returns the current strong reference count, or 0 if expired.
func (w WeakHandle[T]) UseCount() int {
	if w.cell == nil || w.cell.generation.Load() != w.generation {
		return 0
	}
	n := w.cell.strong.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Lock attempts to upgrade the weak reference to a SharedHandle, returning
// an empty handle if the object has already been destroyed.
func (w WeakHandle[T]) Lock() SharedHandle[T] {
	if w.cell == nil || w.cell.generation.Load() != w.generation {
		return SharedHandle[T]{}
	}
	for {
		n := w.cell.strong.Load()
		if n <= 0 {
			return SharedHandle[T]{}
		}
		if w.cell.strong.CompareAndSwap(n, n+1) {
			return SharedHandle[T]{cell: w.cell, generation: w.generation}
		}
	}
}

// Close releases the weak reference. Close is idempotent.
func (w *WeakHandle[T]) Close() {
	if w.cell == nil || w.cell.generation.Load() != w.generation {
		w.cell = nil
		return
	}
	c := w.cell
	w.cell = nil
	if c.weak.Add(-1) == 0 && c.strong.Load() <= 0 {
		c.pool.releaseWeak(c)
	}
}
