package native

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecbuf/internal/elemtype"
)

type countingBudget struct {
	limit int64
	used  int64
}

var errOverBudget = errors.New("over budget")

func (c *countingBudget) ReserveMemory(n int64) error {
	if c.used+n > c.limit {
		return errOverBudget
	}
	c.used += n
	return nil
}

func (c *countingBudget) ReleaseMemory(n int64) { c.used -= n }

type failingAllocator struct{}

func (failingAllocator) Allocate(int) ([]byte, Deallocator, error) {
	return nil, nil, ErrAllocatorExhausted
}

func TestReadWrite(t *testing.T) {
	tests := []struct {
		kind elemtype.Kind
		val  any
	}{
		{elemtype.KindInt8, int8(-7)},
		{elemtype.KindUint8, uint8(250)},
		{elemtype.KindInt16, int16(-30000)},
		{elemtype.KindUint16, uint16(65000)},
		{elemtype.KindInt32, int32(math.MinInt32)},
		{elemtype.KindUint32, uint32(math.MaxUint32)},
		{elemtype.KindInt64, int64(math.MinInt64)},
		{elemtype.KindUint64, uint64(math.MaxUint64)},
		{elemtype.KindFloat32, float32(3.25)},
		{elemtype.KindFloat64, math.Pi},
		{elemtype.KindIntptr, int(-12345)},
		{elemtype.KindUintptr, uintptr(0xBEEF)},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b := New(tt.kind, nil, nil)
			require.NoError(t, b.Resize(3))
			b.Write(1, tt.val)
			assert.Equal(t, tt.val, b.Read(1))
			assert.Zero(t, b.Read(0))
			assert.Zero(t, b.Read(2))
		})
	}
}

func TestWriteWrongTypePanics(t *testing.T) {
	b := New(elemtype.KindInt32, nil, nil)
	require.NoError(t, b.Resize(1))
	assert.Panics(t, func() { b.Write(0, "x") })
}

func TestResizeKeepsPrefix(t *testing.T) {
	b := New(elemtype.KindInt32, nil, nil)
	require.NoError(t, b.Resize(4))
	for i := range 4 {
		b.Write(i, int32(i+1))
	}

	require.NoError(t, b.Resize(8))
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, int32(4), b.Read(3))
	assert.Equal(t, int32(0), b.Read(7))

	require.NoError(t, b.Resize(2))
	assert.Equal(t, int32(1), b.Read(0))
	assert.Equal(t, int32(2), b.Read(1))
	assert.Len(t, b.Bytes(2), 8)
}

func TestMoveOverlapping(t *testing.T) {
	b := New(elemtype.KindInt16, nil, nil)
	require.NoError(t, b.Resize(5))
	for i := range 4 {
		b.Write(i, int16(i+1))
	}

	b.Move(1, 0, 4)
	assert.Equal(t, []any{int16(1), int16(1), int16(2), int16(3), int16(4)}, readAll(b, 5))

	b.Move(0, 1, 4)
	assert.Equal(t, []any{int16(1), int16(2), int16(3), int16(4), int16(4)}, readAll(b, 5))

	b.Zero(4, 1)
	assert.Equal(t, int16(0), b.Read(4))
}

func TestCopy(t *testing.T) {
	src := New(elemtype.KindInt32, nil, nil)
	require.NoError(t, src.Resize(2))
	src.Write(0, int32(-1))
	src.Write(1, int32(2))

	dst := New(elemtype.KindUint32, nil, nil)
	require.NoError(t, dst.Resize(3))
	Copy(dst, src, 2)

	assert.Equal(t, uint32(math.MaxUint32), dst.Read(0))
	assert.Equal(t, uint32(2), dst.Read(1))
	assert.Equal(t, uint32(0), dst.Read(2))
}

func TestBudget(t *testing.T) {
	budget := &countingBudget{limit: 64}
	b := New(elemtype.KindInt64, nil, budget)

	require.NoError(t, b.Resize(4))
	assert.Equal(t, int64(32), budget.used)

	b.Write(0, int64(9))
	err := b.Resize(16)
	assert.ErrorIs(t, err, errOverBudget)
	assert.Equal(t, 4, b.Cap())
	assert.Equal(t, int64(9), b.Read(0))
	assert.Equal(t, int64(32), budget.used)

	require.NoError(t, b.Resize(2))
	assert.Equal(t, int64(16), budget.used)

	b.Free()
	assert.Zero(t, budget.used)
	assert.Zero(t, b.Cap())
}

func TestAllocatorFailure(t *testing.T) {
	budget := &countingBudget{limit: 1 << 20}
	b := New(elemtype.KindInt32, failingAllocator{}, budget)

	err := b.Resize(10)
	assert.ErrorIs(t, err, ErrAllocatorExhausted)
	assert.Zero(t, b.Cap())
	assert.Zero(t, budget.used)
}

func readAll(b *Buffer, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = b.Read(i)
	}
	return out
}
