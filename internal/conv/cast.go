package conv

import (
	"fmt"
	"math"
)

func overflow(v any, target, reason string) error {
	return fmt.Errorf("integer overflow: %v cannot be converted to %s (%s)", v, target, reason)
}

// IntToUint16 converts int to uint16 safely.
func IntToUint16(v int) (uint16, error) {
	if v < 0 {
		return 0, overflow(v, "uint16", "negative")
	}
	if v > math.MaxUint16 {
		return 0, overflow(v, "uint16", "too large")
	}
	return uint16(v), nil
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, overflow(v, "uint32", "negative")
	}
	if uint64(v) > math.MaxUint32 {
		return 0, overflow(v, "uint32", "too large")
	}
	return uint32(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, overflow(v, "int", "too large")
	}
	return int(v), nil
}
