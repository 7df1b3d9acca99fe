package native

import (
	"errors"
	"unsafe"

	"github.com/hupe1980/vecbuf/internal/mmap"
)

// Alignment is the byte alignment of heap allocations.
const Alignment = 64

// ErrAllocatorExhausted may be returned by allocators that cannot serve a
// request.
var ErrAllocatorExhausted = errors.New("allocator exhausted")

// Deallocator releases one allocation.
type Deallocator interface {
	Deallocate()
}

// Allocator hands out zeroed byte regions of exactly the requested size.
type Allocator interface {
	Allocate(size int) ([]byte, Deallocator, error)
}

type noopDeallocator struct{}

func (noopDeallocator) Deallocate() {}

// DeallocatorFunc adapts a function to Deallocator.
type DeallocatorFunc func()

// Deallocate calls f.
func (f DeallocatorFunc) Deallocate() { f() }

// HeapAllocator allocates from the Go heap with 64-byte alignment. Memory is
// reclaimed by the garbage collector.
type HeapAllocator struct{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(size int) ([]byte, Deallocator, error) {
	if size == 0 {
		return nil, noopDeallocator{}, nil
	}

	buf := make([]byte, size+Alignment)
	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // alignment needs the address
	offset := int((Alignment - addr%Alignment) % Alignment)

	return buf[offset : offset+size : offset+size], noopDeallocator{}, nil
}

// MmapAllocator allocates anonymous private mappings outside the Go heap.
// Every allocation must be released through its Deallocator. Unix uses
// mmap and Windows VirtualAlloc; other platforms fail every allocation.
type MmapAllocator struct{}

// Allocate implements Allocator.
func (MmapAllocator) Allocate(size int) ([]byte, Deallocator, error) {
	if size == 0 {
		return nil, noopDeallocator{}, nil
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, nil, err
	}
	return m.Bytes(), DeallocatorFunc(func() { _ = m.Close() }), nil
}
