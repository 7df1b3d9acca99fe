// Package fallback stores elements that have no fixed byte width.
//
// The store is an ordered slice of host values with explicit length
// bookkeeping. Its capacity always equals its length.
package fallback

// Store holds values of one element kind. Empty slots hold the kind's zero
// value.
type Store struct {
	zero any
	vals []any
}

// New returns an empty store whose unset slots read as zero.
func New(zero any) *Store {
	return &Store{zero: zero}
}

// Len returns the number of stored values.
func (s *Store) Len() int { return len(s.vals) }

// ZeroValue returns the value used for empty slots.
func (s *Store) ZeroValue() any { return s.zero }

// Read returns the value at k.
func (s *Store) Read(k int) any { return s.vals[k] }

// Write stores v at k.
func (s *Store) Write(k int, v any) { s.vals[k] = v }

// Move copies n values from src to dst. Ranges may overlap.
func (s *Store) Move(dst, src, n int) {
	if n <= 0 || dst == src {
		return
	}
	copy(s.vals[dst:dst+n], s.vals[src:src+n])
}

// Zero resets n values starting at k.
func (s *Store) Zero(k, n int) {
	for i := k; i < k+n; i++ {
		s.vals[i] = s.zero
	}
}

// Resize sets the length to n. New slots hold the zero value; dropped slots
// are released.
func (s *Store) Resize(n int) {
	if n <= len(s.vals) {
		clear(s.vals[n:])
		s.vals = s.vals[:n]
		return
	}
	for len(s.vals) < n {
		s.vals = append(s.vals, s.zero)
	}
}

// Values returns a copy of the stored values.
func (s *Store) Values() []any {
	out := make([]any, len(s.vals))
	copy(out, s.vals)
	return out
}

// Free drops every value.
func (s *Store) Free() {
	s.vals = nil
}
