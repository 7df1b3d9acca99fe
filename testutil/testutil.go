package testutil

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
)

// NumericTypes lists the built-in fixed-width element type names.
var NumericTypes = []string{
	"int8", "uint8", "int16", "uint16", "int32", "uint32",
	"int64", "uint64", "float32", "float64", "intptr_t", "uintptr",
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Value returns one pseudo-random element of the named type.
func (r *RNG) Value(typeName string) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value(typeName)
}

// Values returns n pseudo-random elements of the named type.
func (r *RNG) Values(typeName string, n int) []any {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]any, n)
	for i := range out {
		out[i] = r.value(typeName)
	}
	return out
}

func (r *RNG) value(typeName string) any {
	u := r.rand.Uint64()
	switch typeName {
	case "int8":
		return int8(u)
	case "uint8":
		return uint8(u)
	case "int16":
		return int16(u)
	case "uint16":
		return uint16(u)
	case "int32":
		return int32(u)
	case "uint32":
		return uint32(u)
	case "int64":
		return int64(u)
	case "uint64":
		return u
	case "intptr_t":
		return int(u)
	case "uintptr":
		return uintptr(u)
	case "float32":
		return float32(r.rand.NormFloat64())
	case "float64":
		return r.rand.NormFloat64() * math.MaxInt16
	case "bool":
		return u&1 == 1
	case "string":
		return "s" + strconv.FormatUint(u%10000, 10)
	}

	switch u % 3 {
	case 0:
		return nil
	case 1:
		return "label-" + strconv.FormatUint(u%100, 10)
	default:
		return int64(u % 1000)
	}
}
