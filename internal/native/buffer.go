package native

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/vecbuf/internal/elemtype"
)

var order = binary.NativeEndian

// Budget accounts for buffer bytes. *resource.Controller satisfies it.
type Budget interface {
	ReserveMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Buffer holds capacity elements of one fixed-width kind.
type Buffer struct {
	kind     elemtype.Kind
	size     int
	capacity int
	data     []byte
	dealloc  Deallocator

	alloc  Allocator
	budget Budget
}

// New returns an empty buffer. A nil allocator selects HeapAllocator; a nil
// budget is unlimited.
func New(kind elemtype.Kind, alloc Allocator, budget Budget) *Buffer {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	return &Buffer{
		kind:   kind,
		size:   kind.Width(),
		alloc:  alloc,
		budget: budget,
	}
}

// Kind returns the element kind.
func (b *Buffer) Kind() elemtype.Kind { return b.kind }

// Size returns the element width in bytes.
func (b *Buffer) Size() int { return b.size }

// Cap returns the capacity in elements.
func (b *Buffer) Cap() int { return b.capacity }

// Resize reallocates the buffer to hold capacity elements, keeping the
// leading min(old, new) elements. Slots past the copied range are zero. On
// error the buffer is unchanged.
func (b *Buffer) Resize(capacity int) error {
	if capacity == b.capacity {
		return nil
	}

	oldBytes := b.capacity * b.size
	newBytes := capacity * b.size

	if b.budget != nil && newBytes > oldBytes {
		if err := b.budget.ReserveMemory(int64(newBytes - oldBytes)); err != nil {
			return err
		}
	}

	data, dealloc, err := b.alloc.Allocate(newBytes)
	if err != nil {
		if b.budget != nil && newBytes > oldBytes {
			b.budget.ReleaseMemory(int64(newBytes - oldBytes))
		}
		return err
	}

	n := copy(data, b.data)
	clear(data[n:])

	if b.dealloc != nil {
		b.dealloc.Deallocate()
	}
	if b.budget != nil && newBytes < oldBytes {
		b.budget.ReleaseMemory(int64(oldBytes - newBytes))
	}

	b.data = data
	b.dealloc = dealloc
	b.capacity = capacity
	return nil
}

// Free releases the region and its budget reservation.
func (b *Buffer) Free() {
	if b.dealloc != nil {
		b.dealloc.Deallocate()
	}
	if b.budget != nil {
		b.budget.ReleaseMemory(int64(b.capacity * b.size))
	}
	b.data = nil
	b.dealloc = nil
	b.capacity = 0
}

// Move copies n elements from src to dst. Ranges may overlap.
func (b *Buffer) Move(dst, src, n int) {
	if n <= 0 || dst == src {
		return
	}
	s := b.size
	copy(b.data[dst*s:(dst+n)*s], b.data[src*s:(src+n)*s])
}

// Zero clears n elements starting at k.
func (b *Buffer) Zero(k, n int) {
	if n <= 0 {
		return
	}
	clear(b.data[k*b.size : (k+n)*b.size])
}

// Bytes returns the raw bytes of the first n elements. The slice aliases the
// buffer and is invalidated by Resize and Free.
func (b *Buffer) Bytes(n int) []byte {
	return b.data[:n*b.size]
}

// Copy copies the first n elements of src into dst as raw bytes. Both
// buffers must have the same element size.
func Copy(dst, src *Buffer, n int) {
	copy(dst.data[:n*dst.size], src.data[:n*src.size])
}

// Read decodes the element at k.
func (b *Buffer) Read(k int) any {
	p := b.data[k*b.size : (k+1)*b.size]
	switch b.kind {
	case elemtype.KindInt8:
		return int8(p[0])
	case elemtype.KindUint8:
		return p[0]
	case elemtype.KindInt16:
		return int16(order.Uint16(p))
	case elemtype.KindUint16:
		return order.Uint16(p)
	case elemtype.KindInt32:
		return int32(order.Uint32(p))
	case elemtype.KindUint32:
		return order.Uint32(p)
	case elemtype.KindInt64:
		return int64(order.Uint64(p))
	case elemtype.KindUint64:
		return order.Uint64(p)
	case elemtype.KindFloat32:
		return math.Float32frombits(order.Uint32(p))
	case elemtype.KindFloat64:
		return math.Float64frombits(order.Uint64(p))
	case elemtype.KindIntptr:
		return int(readWord(p))
	case elemtype.KindUintptr:
		return uintptr(readWord(p))
	}
	panic(fmt.Sprintf("native: unsupported kind %s", b.kind))
}

// Write encodes v at k. v must be the canonical Go value of the buffer kind.
func (b *Buffer) Write(k int, v any) {
	p := b.data[k*b.size : (k+1)*b.size]
	switch x := v.(type) {
	case int8:
		p[0] = byte(x)
	case uint8:
		p[0] = x
	case int16:
		order.PutUint16(p, uint16(x))
	case uint16:
		order.PutUint16(p, x)
	case int32:
		order.PutUint32(p, uint32(x))
	case uint32:
		order.PutUint32(p, x)
	case int64:
		order.PutUint64(p, uint64(x))
	case uint64:
		order.PutUint64(p, x)
	case float32:
		order.PutUint32(p, math.Float32bits(x))
	case float64:
		order.PutUint64(p, math.Float64bits(x))
	case int:
		writeWord(p, uint64(x))
	case uintptr:
		writeWord(p, uint64(x))
	default:
		panic(fmt.Sprintf("native: cannot store %T in %s buffer", v, b.kind))
	}
}

func readWord(p []byte) uint64 {
	if len(p) == 4 {
		return uint64(order.Uint32(p))
	}
	return order.Uint64(p)
}

func writeWord(p []byte, v uint64) {
	if len(p) == 4 {
		order.PutUint32(p, uint32(v))
		return
	}
	order.PutUint64(p, v)
}
