package arena

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// cell is one slot in the pool's slab. Cells are never moved or freed from
// the slab; only their contents and reference counts are recycled.
type cell[T any] struct {
	obj        T
	strong     atomic.Int64 // >0 while the object is alive; 0 or less once destroyed
	weak       atomic.Int64 // outstanding weak references
	generation atomic.Uint64
	pool       *Pool[T]
	index      int
}

// Pool is a fixed-capacity, reference counted object pool.
//
// T is the pooled type. Objects are constructed in place by Allocate and
// destroyed (by discarding the last SharedHandle) without involving the
// system allocator for storage reuse.
type Pool[T any] struct {
	mu         sync.Mutex
	cells      []*cell[T]
	free       []int // LIFO stack of indices into cells, ready for reuse
	maxBlocks  int
	watermark  int
	liveCount  int
	watermarkFired atomic.Bool
	opts       *poolOptions
}

// New constructs a Pool with the given fixed capacity and soft watermark.
// watermark must not exceed maxBlocks, or New returns ErrConfig.
func New[T any](maxBlocks, watermark int, opts ...Option) (*Pool[T], error) {
	if maxBlocks <= 0 {
		return nil, fmt.Errorf("%w: maxBlocks must be positive, got %d", ErrConfig, maxBlocks)
	}
	if watermark > maxBlocks {
		return nil, fmt.Errorf("%w: watermark (%d) exceeds maxBlocks (%d)", ErrConfig, watermark, maxBlocks)
	}
	if watermark < 0 {
		return nil, fmt.Errorf("%w: watermark must not be negative, got %d", ErrConfig, watermark)
	}
	return &Pool[T]{
		cells:     make([]*cell[T], 0, maxBlocks),
		maxBlocks: maxBlocks,
		watermark: watermark,
		opts:      resolveOptions(opts),
	}, nil
}

// Allocate constructs a new object using ctor and returns a SharedHandle
// owning it. Go has no placement-new syntax, so the caller builds the value
// and Allocate places it into pool storage.
func (p *Pool[T]) Allocate(ctor func() T) (SharedHandle[T], error) {
	p.mu.Lock()

	if p.liveCount >= p.maxBlocks {
		p.mu.Unlock()
		err := fmt.Errorf("%w: live=%d max=%d", ErrOutOfCapacity, p.liveCount, p.maxBlocks)
		p.opts.onOverflow(err)
		return SharedHandle[T]{}, err
	}

	var c *cell[T]
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		c = p.cells[idx]
	} else {
		idx := len(p.cells)
		c = &cell[T]{pool: p, index: idx}
		p.cells = append(p.cells, c)
	}

	c.obj = ctor()
	c.strong.Store(1)
	c.weak.Store(0)
	c.generation.Add(1)
	p.liveCount++
	live := p.liveCount
	p.mu.Unlock()

	if live >= p.watermark && p.watermark > 0 && p.watermarkFired.CompareAndSwap(false, true) {
		if p.opts.onWatermark != nil {
			p.opts.onWatermark(live, p.watermark)
		}
	}

	return SharedHandle[T]{cell: c, generation: c.generation.Load()}, nil
}

// release is invoked when a cell's strong count reaches zero. It destroys
// the stored object and, if no weak references remain, returns the cell to
// the free list; otherwise the cell becomes a zombie, kept allocated so
// WeakHandle queries remain valid.
func (p *Pool[T]) release(c *cell[T]) {
	var zero T
	c.obj = zero

	p.mu.Lock()
	p.liveCount--
	if c.weak.Load() <= 0 {
		p.free = append(p.free, c.index)
	}
	p.mu.Unlock()
}

// releaseWeak is invoked when a cell's weak count reaches zero while the
// cell is a zombie (strong already at zero).
func (p *Pool[T]) releaseWeak(c *cell[T]) {
	p.mu.Lock()
	p.free = append(p.free, c.index)
	p.mu.Unlock()
}

// NumFree returns the number of slab cells on the free list, ready for
// reuse without growing the slab.
func (p *Pool[T]) NumFree() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// NumAllocated returns the total number of slab cells currently tracked by
// the pool: free cells plus live cells. Zombie cells (strong=0, weak>0)
// are counted in neither NumFree nor NumLive until their last weak
// reference drops, at which point they rejoin the free list.
func (p *Pool[T]) NumAllocated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free) + p.liveCount
}

// NumLive returns the number of cells currently holding a live object.
func (p *Pool[T]) NumLive() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.liveCount
}

// HasOutstanding reports whether any object is currently live.
func (p *Pool[T]) HasOutstanding() bool {
	return p.NumLive() > 0
}

// Live returns a snapshot copy of all currently live objects, for leak
// diagnostics. The returned values are independent copies; mutating them
// does not affect pool storage.
func (p *Pool[T]) Live() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, 0, p.liveCount)
	for _, c := range p.cells {
		if c.strong.Load() > 0 {
			out = append(out, c.obj)
		}
	}
	return out
}

// Close reports whether the pool is being destroyed with outstanding
// handles, logging a diagnostic if so. It does not invalidate existing
// handles: this is a programming error, not a recoverable condition, and
// outstanding SharedHandles remain usable.
func (p *Pool[T]) Close() error {
	if p.HasOutstanding() {
		p.opts.logger.Warnf("%s: %d object(s) still live", ErrDestroyedWithOutstanding, p.NumLive())
		return ErrDestroyedWithOutstanding
	}
	return nil
}
