package conv

import (
	"github.com/hupe1980/vecbuf/internal/elemtype"
)

// Zero returns the empty value of kind k.
func Zero(k elemtype.Kind) any {
	switch k {
	case elemtype.KindBool:
		return false
	case elemtype.KindString:
		return ""
	case elemtype.KindAny:
		return nil
	default:
		v, _ := Coerce(k, 0)
		return v
	}
}

// Coerce converts v into the canonical Go value of kind k. It reports false
// when v cannot be represented by k.
//
// Canonical values are int8..int64, uint8..uint64, float32, float64, int
// (KindIntptr), uintptr (KindUintptr), bool and string. KindAny accepts v as is.
func Coerce(k elemtype.Kind, v any) (any, bool) {
	switch k {
	case elemtype.KindAny:
		return v, true
	case elemtype.KindBool:
		b, ok := v.(bool)
		return b, ok
	case elemtype.KindString:
		switch s := v.(type) {
		case string:
			return s, true
		case []byte:
			return string(s), true
		}
		return nil, false
	}

	if k.IsFloat() {
		f, ok := asFloat(v)
		if !ok {
			return nil, false
		}
		if k == elemtype.KindFloat32 {
			return float32(f), true
		}
		return f, true
	}

	if k.IsSigned() {
		i, ok := asInt(v)
		if !ok {
			return nil, false
		}
		switch k {
		case elemtype.KindInt8:
			return int8(i), true
		case elemtype.KindInt16:
			return int16(i), true
		case elemtype.KindInt32:
			return int32(i), true
		case elemtype.KindInt64:
			return i, true
		default:
			return int(i), true
		}
	}

	u, ok := asUint(v)
	if !ok {
		return nil, false
	}
	switch k {
	case elemtype.KindUint8:
		return uint8(u), true
	case elemtype.KindUint16:
		return uint16(u), true
	case elemtype.KindUint32:
		return uint32(u), true
	case elemtype.KindUint64:
		return u, true
	case elemtype.KindUintptr:
		return uintptr(u), true
	}
	return nil, false
}

// asInt widens v to int64, truncating floats.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uintptr:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// asUint widens v to uint64. Negative values wrap.
func asUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uintptr:
		return uint64(n), true
	case float32:
		return floatToUint(float64(n)), true
	case float64:
		return floatToUint(n), true
	}
	i, ok := asInt(v)
	return uint64(i), ok
}

func floatToUint(f float64) uint64 {
	if f < 0 {
		return uint64(int64(f))
	}
	return uint64(f)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uintptr:
		return float64(n), true
	}
	i, ok := asInt(v)
	return float64(i), ok
}
