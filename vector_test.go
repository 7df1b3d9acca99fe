package vecbuf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecbuf/resource"
)

func TestNew(t *testing.T) {
	t.Run("native zero filled", func(t *testing.T) {
		v, err := New("double", 3)
		require.NoError(t, err)

		assert.Equal(t, BackendNative, v.Backend())
		assert.Equal(t, "double", v.ElementType())
		assert.Equal(t, 8, v.ElementSize())
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 3+16, v.Cap())
		assert.Equal(t, []any{0.0, 0.0, 0.0}, v.Values())
	})

	t.Run("fallback", func(t *testing.T) {
		v, err := New("string", 2)
		require.NoError(t, err)

		assert.Equal(t, BackendFallback, v.Backend())
		assert.Zero(t, v.ElementSize())
		assert.Equal(t, v.Len(), v.Cap())
		assert.Equal(t, []any{"", ""}, v.Values())
	})

	t.Run("unknown type holds nil", func(t *testing.T) {
		v, err := New("struct point", 2)
		require.NoError(t, err)

		assert.Equal(t, BackendFallback, v.Backend())
		assert.Equal(t, []any{nil, nil}, v.Values())
	})

	t.Run("empty", func(t *testing.T) {
		v, err := New("int", 0)
		require.NoError(t, err)
		assert.Zero(t, v.Len())
		assert.Zero(t, v.Cap())
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := New("int", -1)
		assert.ErrorIs(t, err, ErrNegativeSize)

		var se *SizeError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, -1, se.Size)
	})

	t.Run("native disabled", func(t *testing.T) {
		v, err := New("int32", 2, WithNativeMemory(false))
		require.NoError(t, err)

		assert.Equal(t, BackendFallback, v.Backend())
		assert.Equal(t, []any{int32(0), int32(0)}, v.Values())
		require.NoError(t, v.Push(3.7))
		got, err := v.Get(-1)
		require.NoError(t, err)
		assert.Equal(t, int32(3), got)
	})
}

func TestNewFrom(t *testing.T) {
	v, err := NewFrom("int32", []any{10, 20.9, uint8(30)})
	require.NoError(t, err)
	assert.Equal(t, []any{int32(10), int32(20), int32(30)}, v.Values())

	_, err = NewFrom("int32", []any{1, "two"})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestZeroValue(t *testing.T) {
	t.Run("push", func(t *testing.T) {
		var v Vector
		require.NoError(t, v.Push(1))
		require.NoError(t, v.Unshift("a"))

		assert.Equal(t, BackendFallback, v.Backend())
		assert.Equal(t, "any", v.ElementType())
		assert.Equal(t, []any{"a", 1}, v.Values())
		assert.Equal(t, 2, v.Cap())
	})

	t.Run("read only", func(t *testing.T) {
		var v Vector
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, "any{}", v.String())

		_, err := v.Get(1)
		var ie *IndexError
		assert.ErrorAs(t, err, &ie)
		_, err = v.Pop()
		assert.ErrorIs(t, err, ErrEmptyPop)
		v.Free()
	})

	t.Run("encode", func(t *testing.T) {
		var v Vector
		require.NoError(t, v.Realloc(2))
		data, err := v.MarshalBinary()
		require.NoError(t, err)

		w, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, []any{nil, nil}, w.Values())
	})
}

func TestIndexing(t *testing.T) {
	v, err := NewFrom("int16", []any{1, 2, 3})
	require.NoError(t, err)

	tests := []struct {
		index int
		want  any
	}{
		{1, int16(1)},
		{3, int16(3)},
		{-1, int16(3)},
		{-3, int16(1)},
	}
	for _, tt := range tests {
		got, err := v.Get(tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "index %d", tt.index)
	}

	for _, i := range []int{0, 4, -4, 100, -100} {
		_, err := v.Get(i)
		assert.ErrorIs(t, err, ErrIndexOutOfBounds, "index %d", i)

		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, i, ie.Index)
		assert.Equal(t, 3, ie.Length)

		assert.ErrorIs(t, v.Set(i, 9), ErrIndexOutOfBounds)
	}

	require.NoError(t, v.Set(-1, 30))
	require.NoError(t, v.Set(1, 10))
	assert.Equal(t, []any{int16(10), int16(2), int16(30)}, v.Values())
}

func TestNegativeIndexEquivalence(t *testing.T) {
	v, err := NewFrom("uint8", []any{5, 6, 7, 8})
	require.NoError(t, err)

	for i := 1; i <= v.Len(); i++ {
		neg, err := v.Get(-i)
		require.NoError(t, err)
		pos, err := v.Get(v.Len() - i + 1)
		require.NoError(t, err)
		assert.Equal(t, pos, neg)
	}
}

func TestPushPop(t *testing.T) {
	v, err := New("int64", 0)
	require.NoError(t, err)

	for i := range 100 {
		require.NoError(t, v.Push(i))
		assert.Equal(t, i+1, v.Len())
		assert.GreaterOrEqual(t, v.Cap(), v.Len())
	}

	first, err := v.Get(1)
	require.NoError(t, err)
	before := first

	got, err := v.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(99), got)
	assert.Equal(t, 99, v.Len())

	first, err = v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, before, first)

	for v.Len() > 0 {
		_, err := v.Pop()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.Cap(), v.Len())
	}

	_, err = v.Pop()
	assert.ErrorIs(t, err, ErrEmptyPop)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPushThenPopRestores(t *testing.T) {
	v, err := NewFrom("float", []any{1.5, 2.5})
	require.NoError(t, err)
	before := v.Values()

	require.NoError(t, v.Push(9))
	got, err := v.Pop()
	require.NoError(t, err)
	assert.Equal(t, float32(9), got)
	assert.Equal(t, before, v.Values())
}

func TestShiftUnshift(t *testing.T) {
	v, err := NewFrom("int32", []any{10, 20, 30})
	require.NoError(t, err)

	require.NoError(t, v.Push(40))
	got, err := v.Shift()
	require.NoError(t, err)
	assert.Equal(t, int32(10), got)

	last, err := v.Get(-1)
	require.NoError(t, err)
	assert.Equal(t, int32(40), last)
	assert.Equal(t, []any{int32(20), int32(30), int32(40)}, v.Values())

	require.NoError(t, v.Unshift(5))
	assert.Equal(t, []any{int32(5), int32(20), int32(30), int32(40)}, v.Values())

	got, err = v.Shift()
	require.NoError(t, err)
	assert.Equal(t, int32(5), got)
	assert.Equal(t, []any{int32(20), int32(30), int32(40)}, v.Values())

	empty, err := New("int32", 0)
	require.NoError(t, err)
	_, err = empty.Shift()
	assert.ErrorIs(t, err, ErrEmptyShift)
}

func TestShiftUnshiftFallback(t *testing.T) {
	v, err := NewFrom("string", []any{"b", "c"})
	require.NoError(t, err)

	require.NoError(t, v.Unshift("a"))
	assert.Equal(t, []any{"a", "b", "c"}, v.Values())

	got, err := v.Shift()
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, []any{"b", "c"}, v.Values())

	assert.ErrorIs(t, v.Push(1), ErrTypeMismatch)
	assert.Equal(t, 2, v.Len())
}

func TestSetRange(t *testing.T) {
	v, err := New("int32", 6)
	require.NoError(t, err)

	require.NoError(t, v.SetRange(2, 7, 3))
	assert.Equal(t, []any{int32(0), int32(7), int32(7), int32(7), int32(0), int32(0)}, v.Values())

	require.NoError(t, v.SetRange(-2, 1, 2))
	assert.Equal(t, []any{int32(0), int32(7), int32(7), int32(7), int32(1), int32(1)}, v.Values())

	err = v.SetRange(5, 3, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 7, ie.Index)

	assert.ErrorIs(t, v.SetRange(0, 3, 1), ErrIndexOutOfBounds)
	assert.ErrorIs(t, v.SetRange(1, 3, -1), ErrNegativeSize)
	assert.ErrorIs(t, v.SetRange(1, "x", 1), ErrTypeMismatch)
	require.NoError(t, v.SetRange(6, 3, 0))
}

func TestRealloc(t *testing.T) {
	v, err := NewFrom("uint16", []any{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, v.Realloc(40))
	assert.Equal(t, 40, v.Len())
	assert.Equal(t, 56, v.Cap())
	got, err := v.Get(40)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), got)

	require.NoError(t, v.Realloc(2))
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 18, v.Cap())
	assert.Equal(t, []any{uint16(1), uint16(2)}, v.Values())

	// Slots past the length read as zero when exposed again.
	require.NoError(t, v.Realloc(3))
	got, err = v.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), got)

	assert.ErrorIs(t, v.Realloc(-5), ErrNegativeSize)
	assert.Equal(t, 3, v.Len())
}

func TestShrinkPolicy(t *testing.T) {
	v, err := New("int8", 40)
	require.NoError(t, err)
	assert.Equal(t, 56, v.Cap())

	require.NoError(t, v.Realloc(28))
	assert.Equal(t, 56, v.Cap())

	require.NoError(t, v.Realloc(27))
	assert.Equal(t, 43, v.Cap())
}

func TestPopZeroesVacatedSlot(t *testing.T) {
	v, err := NewFrom("int32", []any{1, 2, 3})
	require.NoError(t, err)

	_, err = v.Pop()
	require.NoError(t, err)
	require.NoError(t, v.Realloc(3))

	got, err := v.Get(3)
	require.NoError(t, err)
	assert.Equal(t, int32(0), got)
}

func TestCoercion(t *testing.T) {
	v, err := New("int8", 0)
	require.NoError(t, err)

	require.NoError(t, v.Push(200))
	require.NoError(t, v.Push(-3.9))
	assert.Equal(t, []any{int8(-56), int8(-3)}, v.Values())

	err = v.Push(true)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	var te *TypeMismatchError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "int8", te.ElementType)
	assert.Equal(t, true, te.Value)
	assert.Equal(t, 2, v.Len())

	assert.ErrorIs(t, v.Unshift(nil), ErrTypeMismatch)
	assert.Equal(t, 2, v.Len())
}

func TestClone(t *testing.T) {
	src, err := NewFrom("int32", []any{1, -2, 3})
	require.NoError(t, err)

	t.Run("same type", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		s, err := NewFrom("int32", []any{1, -2, 3}, WithMetricsCollector(mc))
		require.NoError(t, err)

		c, err := s.Clone("", 5)
		require.NoError(t, err)
		assert.Equal(t, "int32", c.ElementType())
		assert.Equal(t, []any{int32(1), int32(-2), int32(3), int32(0), int32(0)}, c.Values())
		assert.Equal(t, int64(1), mc.GetStats().FastClones)
		assert.Equal(t, int64(3), mc.GetStats().ClonedElements)
	})

	t.Run("truncates", func(t *testing.T) {
		c, err := src.Clone("int32", 2)
		require.NoError(t, err)
		assert.Equal(t, []any{int32(1), int32(-2)}, c.Values())
	})

	t.Run("same width reinterprets bytes", func(t *testing.T) {
		c, err := src.Clone("uint32", 3)
		require.NoError(t, err)
		assert.Equal(t, []any{uint32(1), uint32(math.MaxUint32 - 1), uint32(3)}, c.Values())

		f, err := src.Clone("float", 1)
		require.NoError(t, err)
		assert.Equal(t, []any{math.Float32frombits(1)}, f.Values())
	})

	t.Run("different width converts", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		s, err := NewFrom("int32", []any{1, -2, 3}, WithMetricsCollector(mc))
		require.NoError(t, err)

		c, err := s.Clone("double", 4)
		require.NoError(t, err)
		assert.Equal(t, []any{1.0, -2.0, 3.0, 0.0}, c.Values())
		assert.Equal(t, int64(1), mc.GetStats().ElementwiseClones)

		b, err := s.Clone("int8", 3)
		require.NoError(t, err)
		assert.Equal(t, []any{int8(1), int8(-2), int8(3)}, b.Values())
	})

	t.Run("to fallback", func(t *testing.T) {
		c, err := src.Clone("any", 4)
		require.NoError(t, err)
		assert.Equal(t, BackendFallback, c.Backend())
		assert.Equal(t, []any{int32(1), int32(-2), int32(3), nil}, c.Values())
	})

	t.Run("incompatible", func(t *testing.T) {
		s, err := NewFrom("string", []any{"a"})
		require.NoError(t, err)
		_, err = s.Clone("int32", 1)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("independent storage", func(t *testing.T) {
		c, err := src.Dup()
		require.NoError(t, err)
		require.NoError(t, c.Set(1, 100))

		got, err := src.Get(1)
		require.NoError(t, err)
		assert.Equal(t, int32(1), got)
		assert.Equal(t, src.Len(), c.Len())
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := src.Clone("", -1)
		assert.ErrorIs(t, err, ErrNegativeSize)
	})
}

func TestString(t *testing.T) {
	v, err := NewFrom("int32", []any{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, "int32{10, 20, 30}", v.String())

	s, err := NewFrom("string", []any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `string{"a", "b"}`, s.String())

	a, err := NewFrom("thing", []any{nil, true})
	require.NoError(t, err)
	assert.Equal(t, "thing{nil, true}", a.String())

	e, err := New("double", 0)
	require.NoError(t, err)
	assert.Equal(t, "double{}", e.String())
}

func TestFree(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	v, err := New("int64", 10, WithMemoryController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(26*8), rc.MemoryUsage())

	v.Free()
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	assert.Zero(t, rc.MemoryUsage())

	require.NoError(t, v.Push(1))
	assert.Equal(t, 1, v.Len())
}

func TestMemoryBudget(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 256})

	v, err := New("int32", 40, WithMemoryController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(56*4), rc.MemoryUsage())
	before := v.Values()

	err = v.Realloc(60)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	var ae *AllocationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 76*4, ae.Bytes)

	assert.Equal(t, 40, v.Len())
	assert.Equal(t, 56, v.Cap())
	assert.Equal(t, before, v.Values())

	_, err = New("int32", 100, WithMemoryController(rc))
	assert.ErrorIs(t, err, ErrAllocationFailure)
}

type failingAllocator struct{}

var errNoMemory = errors.New("no memory")

func (failingAllocator) Allocate(int) ([]byte, Deallocator, error) {
	return nil, nil, errNoMemory
}

func TestAllocatorFailure(t *testing.T) {
	_, err := New("int32", 1, WithAllocator(failingAllocator{}))
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.ErrorIs(t, err, errNoMemory)

	v, err := New("int32", 0, WithAllocator(failingAllocator{}))
	require.NoError(t, err)
	assert.ErrorIs(t, v.Push(1), ErrAllocationFailure)
	assert.Zero(t, v.Len())
}

func TestMmapAllocator(t *testing.T) {
	v, err := New("double", 0, WithAllocator(MmapAllocator()))
	require.NoError(t, err)
	defer v.Free()

	for i := range 1000 {
		require.NoError(t, v.Push(float64(i)/2))
	}
	got, err := v.Get(-1)
	require.NoError(t, err)
	assert.Equal(t, 499.5, got)
}

func TestChunkSize(t *testing.T) {
	v, err := New("int32", 1, WithChunkSize(4))
	require.NoError(t, err)
	assert.Equal(t, 5, v.Cap())

	d, err := New("int32", 1, WithChunkSize(0))
	require.NoError(t, err)
	assert.Equal(t, 17, d.Cap())

	c, err := v.Clone("", 2)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Cap())
}

func TestMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	v, err := New("int32", 0, WithMetricsCollector(mc))
	require.NoError(t, err)

	for i := range 20 {
		require.NoError(t, v.Push(i))
	}
	_, _ = v.Get(0)
	require.NoError(t, v.Realloc(0))

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.Grows)
	assert.Equal(t, int64(1), stats.Shrinks)
	assert.Equal(t, int64(3), stats.Reallocs)
	assert.Equal(t, int64(1), stats.BoundsViolations)
}

func BenchmarkPush(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		v, _ := New("int64", 0)
		for i := range 1024 {
			_ = v.Push(i)
		}
	}
}

func BenchmarkShift(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		v, _ := New("int32", 256)
		for v.Len() > 0 {
			_, _ = v.Shift()
		}
	}
}
