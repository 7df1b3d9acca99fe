// Package native implements the contiguous byte buffer that holds fixed-width
// elements.
//
// Elements are stored back to back at offset k*size and encoded in the
// host's native byte order. The buffer does no bounds checking of its own
// beyond what Go slices do; callers pass 0-based offsets that are already
// validated against capacity.
package native
