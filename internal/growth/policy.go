// Package growth decides buffer capacity for a requested length.
package growth

// DefaultChunkSize is the slack added to the requested length whenever the
// capacity changes.
const DefaultChunkSize = 16

// Policy is the grow/shrink rule shared by all native buffers.
//
// Grow when the requested length exceeds the capacity. Shrink when it drops
// strictly below half the capacity (integer division). In both cases the new
// capacity is requested + ChunkSize.
type Policy struct {
	ChunkSize int
}

// New returns a policy with the given chunk size. Values below 1 select
// DefaultChunkSize.
func New(chunk int) Policy {
	if chunk < 1 {
		chunk = DefaultChunkSize
	}
	return Policy{ChunkSize: chunk}
}

func (p Policy) chunk() int {
	if p.ChunkSize < 1 {
		return DefaultChunkSize
	}
	return p.ChunkSize
}

// Decide returns the capacity to hold requested elements given the current
// capacity. A result equal to capacity means no reallocation.
func (p Policy) Decide(capacity, requested int) int {
	if requested > capacity || requested < capacity/2 {
		return requested + p.chunk()
	}
	return capacity
}

// Track returns the capacity of a store that grows on demand: it always
// equals the length.
func (p Policy) Track(requested int) int {
	return requested
}
