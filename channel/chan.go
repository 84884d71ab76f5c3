package channel

import (
	"unsafe"

	"github.com/softref/ringchan/internal/utils"
)

// DefaultCapacity is the number of slots a channel gets when New is called
// without an explicit capacity.
const DefaultCapacity = 30

// Chan is a handle to a fixed-capacity MPMC channel of T. Handles are cheap:
// Clone hands out additional references to the same underlying channel, and
// the channel's storage is released when the last handle is closed. Every
// handle must be closed exactly once, conventionally with defer.
//
// T must be transferable by flat byte copy: a value sent must carry no
// references its sender keeps using, and nothing outside the buffer keeps
// any internal referents alive while the value is buffered. The channel
// neither checks nor deep-copies.
type Chan[T any] struct {
	c *core
}

// New creates a channel of T with the given capacity (DefaultCapacity if
// omitted), backed by the mmap arena.
func New[T any](capacity ...int) (*Chan[T], error) {
	return NewWithAllocator[T](MmapAllocator{}, capacity...)
}

// NewWithAllocator is New with an explicit arena for the channel buffer.
func NewWithAllocator[T any](arena Allocator, capacity ...int) (*Chan[T], error) {
	if arena == nil {
		return nil, ErrNilAllocator
	}

	size := DefaultCapacity

	if capacity != nil {
		size = capacity[0]
	}

	if size < 1 {
		return nil, ErrInvalidCapacity
	}

	c, err := newCore(int(unsafe.Sizeof(*new(T))), uint64(size), arena)

	if err != nil {
		return nil, err
	}

	return &Chan[T]{c: c}, nil
}

// Clone returns a new handle to the same channel. The clone must be closed
// independently of its source.
func (ch *Chan[T]) Clone() *Chan[T] {
	ch.core().refs.Add(1)
	return &Chan[T]{c: ch.c}
}

// Close drops this handle's reference. The handle that makes the reference
// count reach zero frees the channel's buffer; this is safe under concurrent
// Clone and Close on other handles. Closing an already-closed handle is a
// no-op; any other use of a closed handle panics.
func (ch *Chan[T]) Close() error {
	c := ch.c

	if c == nil {
		return nil
	}

	ch.c = nil

	if c.refs.Add(-1) == 0 {
		return c.free()
	}

	return nil
}

// Send blocks until a slot is free, then transfers v into the channel. The
// caller passes v by value and must retain no aliases to its content.
func (ch *Chan[T]) Send(v T) {
	ch.core().send(utils.PointerToBytes(&v, ch.c.elemSize), true)
}

// TrySend is Send without blocking: it reports false if the channel is full,
// leaving the channel untouched.
func (ch *Chan[T]) TrySend(v T) bool {
	return ch.core().send(utils.PointerToBytes(&v, ch.c.elemSize), false)
}

// SendIso consumes the wrapped value (marking iso spent) and sends it,
// blocking until a slot is free.
func (ch *Chan[T]) SendIso(iso *Iso[T]) {
	ch.Send(iso.Take())
}

// TrySendIso sends the wrapped value without blocking. The value is consumed
// only on success; on a full channel iso remains intact.
func (ch *Chan[T]) TrySendIso(iso *Iso[T]) bool {
	if !ch.TrySend(iso.Value()) {
		return false
	}

	iso.Take()
	return true
}

// Recv blocks until an element is available and returns it.
func (ch *Chan[T]) Recv() (v T) {
	ch.RecvInto(&v)
	return
}

// RecvInto blocks until an element is available and stores it in *dst.
func (ch *Chan[T]) RecvInto(dst *T) {
	ch.core().recv(utils.PointerToBytes(dst, ch.c.elemSize), true)
}

// TryRecv stores an element in *dst if one is available and reports whether
// it did. On an empty channel *dst is left unmodified.
func (ch *Chan[T]) TryRecv(dst *T) bool {
	return ch.core().recv(utils.PointerToBytes(dst, ch.c.elemSize), false)
}

// RecvIso blocks until an element is available and returns it wrapped as
// isolated: the receiver holds the only reference, so the value may be used
// or forwarded across goroutines without further synchronization.
func (ch *Chan[T]) RecvIso() Iso[T] {
	return Wrap(ch.Recv())
}

// Peek estimates how many elements are buffered, without taking the lock.
// The estimate can be stale by the time it is returned: a positive count
// does not promise the next Recv won't block, nor a zero count that it will.
func (ch *Chan[T]) Peek() int {
	return ch.core().peek()
}

// Len returns the exact number of buffered elements at the time of the call.
func (ch *Chan[T]) Len() int {
	c := ch.core()

	c.mu.Lock()
	defer c.mu.Unlock()

	return int(c.len())
}

// Cap returns the channel's fixed capacity.
func (ch *Chan[T]) Cap() int {
	return int(ch.core().capacity)
}

// Reset discards all buffered elements and wakes blocked senders.
func (ch *Chan[T]) Reset() {
	ch.core().reset()
}

// ItemsWritten returns the number of elements sent over the channel's
// lifetime, across all handles.
func (ch *Chan[T]) ItemsWritten() uint64 {
	c := ch.core()

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.itemsWritten
}

// ItemsRead returns the number of elements received over the channel's
// lifetime, across all handles.
func (ch *Chan[T]) ItemsRead() uint64 {
	c := ch.core()

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.itemsRead
}

func (ch *Chan[T]) core() *core {
	if ch.c == nil {
		panic("channel: use of closed handle")
	}

	return ch.c
}
