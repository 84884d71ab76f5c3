package channel

import (
	"sync"
	"sync/atomic"
)

// core is the shared state behind one channel: the circular buffer, the
// indices into it, and the primitives that synchronize access. Every handle
// created by New or Clone points at the same core, which is freed exactly
// once, when the last handle is closed.
type core struct {
	buf      []byte
	arena    Allocator
	elemSize int
	capacity uint64

	mu        sync.Mutex
	readCond  sync.Cond // Awaited by readers, notified by writers.
	writeCond sync.Cond // Awaited by writers, notified by readers.

	// Write and read positions, each in [0, 2*capacity). The doubled range
	// lets head == tail mean empty and a wrapped difference of capacity mean
	// full, without a separate occupancy counter. Only mutated under mu;
	// stored atomically so Peek can read them without the lock.
	head atomic.Uint64
	tail atomic.Uint64

	refs atomic.Int64

	// Lifetime statistics, guarded by mu.
	itemsWritten uint64
	itemsRead    uint64
}

func newCore(elemSize int, capacity uint64, arena Allocator) (c *core, err error) {
	c = &core{
		arena:    arena,
		elemSize: elemSize,
		capacity: capacity,
	}

	c.readCond.L = &c.mu
	c.writeCond.L = &c.mu
	c.refs.Store(1)

	if c.buf, err = arena.Alloc(elemSize * int(capacity)); err != nil {
		return nil, err
	}

	return
}

// free releases the buffer back to the arena. The handle lifecycle
// guarantees it runs at most once per core.
func (c *core) free() error {
	if c == nil {
		return nil
	}

	buf := c.buf
	c.buf = nil

	return c.arena.Free(buf)
}

// send copies one element into the buffer. If block is set it waits for a
// free slot; otherwise it fails immediately on a full channel. Reports
// whether the element was stored.
func (c *core) send(src []byte, block bool) bool {
	if !block && c.fullEstimate() {
		// Optimistic check without the lock. It can race, so a negative
		// result below is re-established under the lock before failing.
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.full() {
		if !block {
			return false
		}

		// Wait until a reader frees a slot. Re-check after every wake:
		// wakeups may be spurious, and another writer may have won the slot.
		c.writeCond.Wait()
	}

	copy(c.slot(c.head.Load()), src)
	c.head.Store(c.advance(c.head.Load()))
	c.itemsWritten++

	c.readCond.Signal()
	return true
}

// recv copies one element out of the buffer into dst. If block is set it
// waits for data; otherwise it fails immediately on an empty channel. dst is
// untouched on failure.
func (c *core) recv(dst []byte, block bool) bool {
	if !block && c.emptyEstimate() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.empty() {
		if !block {
			return false
		}

		// Wait until a writer fills a slot.
		c.readCond.Wait()
	}

	copy(dst, c.slot(c.tail.Load()))
	c.tail.Store(c.advance(c.tail.Load()))
	c.itemsRead++

	c.writeCond.Signal()
	return true
}

// peek estimates the number of buffered elements from an unlocked snapshot
// of the indices. The two loads are not atomic together, so the result is
// best-effort only and must not gate correctness.
func (c *core) peek() int {
	n := c.distance(c.head.Load(), c.tail.Load())

	// A torn snapshot can exceed the capacity; clamp rather than report an
	// impossible occupancy.
	if n > c.capacity {
		n = c.capacity
	}

	return int(n)
}

// len is the exact occupancy, for callers already holding mu.
func (c *core) len() uint64 {
	return c.distance(c.head.Load(), c.tail.Load())
}

func (c *core) full() bool {
	return c.len() == c.capacity
}

func (c *core) empty() bool {
	return c.head.Load() == c.tail.Load()
}

// fullEstimate and emptyEstimate are the unlocked variants used by the
// optimistic pre-checks of the non-blocking operations.
func (c *core) fullEstimate() bool {
	return c.distance(c.head.Load(), c.tail.Load()) >= c.capacity
}

func (c *core) emptyEstimate() bool {
	return c.head.Load() == c.tail.Load()
}

// distance is the wrapped difference head-tail over the doubled index range.
func (c *core) distance(head, tail uint64) uint64 {
	span := 2 * c.capacity
	return (head + span - tail) % span
}

// slot returns the storage of the element at the given logical index.
func (c *core) slot(index uint64) []byte {
	off := (index % c.capacity) * uint64(c.elemSize)
	return c.buf[off : off+uint64(c.elemSize)]
}

// advance increments a logical index, wrapping at twice the capacity.
func (c *core) advance(index uint64) uint64 {
	index++

	if index == 2*c.capacity {
		index = 0
	}

	return index
}

func (c *core) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head.Store(0)
	c.tail.Store(0)
	c.writeCond.Broadcast()
}
