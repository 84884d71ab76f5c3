package channel

import (
	"fmt"

	"github.com/edsrzf/mmap-go"
)

// Allocator provides the raw storage behind a channel's buffer. Alloc and
// Free are paired exactly once per channel: Alloc at construction, Free when
// the last handle is closed.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(b []byte) error
}

// HeapAllocator backs channel buffers with ordinary garbage-collected
// memory. Free is a no-op.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	return make([]byte, size), nil
}

func (HeapAllocator) Free(b []byte) error {
	return nil
}

// MmapAllocator backs channel buffers with anonymous memory mappings, so the
// storage is returned to the OS the moment the last handle is closed rather
// than whenever the collector gets around to it. This is the default arena.
type MmapAllocator struct{}

func (MmapAllocator) Alloc(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	b, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)

	if err != nil {
		return nil, fmt.Errorf("failed to map channel buffer: %w", err)
	}

	return b, nil
}

func (MmapAllocator) Free(b []byte) error {
	if b == nil {
		return nil
	}

	m := mmap.MMap(b)

	return m.Unmap()
}
