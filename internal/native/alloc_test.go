package native

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecbuf/internal/elemtype"
)

func TestHeapAllocatorAlignment(t *testing.T) {
	for _, size := range []int{1, 7, 64, 1000} {
		data, d, err := HeapAllocator{}.Allocate(size)
		require.NoError(t, err)
		assert.Len(t, data, size)
		assert.Equal(t, size, cap(data))
		assert.Zero(t, uintptr(unsafe.Pointer(&data[0]))%Alignment)
		d.Deallocate()
	}

	data, _, err := HeapAllocator{}.Allocate(0)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMmapAllocator(t *testing.T) {
	b := New(elemtype.KindFloat64, MmapAllocator{}, nil)
	require.NoError(t, b.Resize(1024))

	b.Write(1023, 2.5)
	require.NoError(t, b.Resize(2048))
	assert.Equal(t, 2.5, b.Read(1023))
	assert.Equal(t, 0.0, b.Read(2047))

	b.Free()
	assert.Zero(t, b.Cap())
}
