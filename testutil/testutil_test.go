package testutil

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesTypes(t *testing.T) {
	rng := NewRNG(4711)

	want := map[string]reflect.Kind{
		"int8":     reflect.Int8,
		"uint16":   reflect.Uint16,
		"int32":    reflect.Int32,
		"uint64":   reflect.Uint64,
		"float32":  reflect.Float32,
		"intptr_t": reflect.Int,
		"uintptr":  reflect.Uintptr,
		"string":   reflect.String,
		"bool":     reflect.Bool,
	}

	for name, kind := range want {
		vals := rng.Values(name, 16)
		assert.Len(t, vals, 16)
		for _, v := range vals {
			assert.Equal(t, kind, reflect.TypeOf(v).Kind(), name)
		}
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.Values("int64", 4)
	rng.Reset()
	b := rng.Values("int64", 4)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(7), rng.Seed())
}

func TestUnknownTypeMix(t *testing.T) {
	rng := NewRNG(1)
	for _, v := range rng.Values("Widget", 64) {
		switch v.(type) {
		case nil, string, int64:
		default:
			t.Fatalf("unexpected value %T", v)
		}
	}
}
