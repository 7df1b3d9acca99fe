package elemtype

import "math/bits"

// Kind identifies how an element is stored and coerced.
type Kind uint8

const (
	// KindAny holds arbitrary host values. Its empty value is nil.
	KindAny Kind = iota
	KindBool
	KindString
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindIntptr
	KindUintptr
)

// PointerSize is the byte width of the Intptr and Uintptr kinds.
const PointerSize = bits.UintSize / 8

var kindNames = [...]string{
	KindAny:     "any",
	KindBool:    "bool",
	KindString:  "string",
	KindInt8:    "int8",
	KindUint8:   "uint8",
	KindInt16:   "int16",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindIntptr:  "intptr",
	KindUintptr: "uintptr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Width returns the fixed byte width of the kind, or 0 if it has none.
func (k Kind) Width() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	case KindIntptr, KindUintptr:
		return PointerSize
	default:
		return 0
	}
}

// IsNumeric reports whether values of the kind are numbers.
func (k Kind) IsNumeric() bool {
	return k.Width() > 0
}

// IsFloat reports whether the kind is a floating point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsSigned reports whether the kind is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindIntptr:
		return true
	default:
		return false
	}
}
