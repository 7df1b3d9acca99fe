// Package resource bounds the memory and IO that vectors and snapshot stores
// may use.
//
// A Controller is shared by any number of vectors. Native buffers reserve
// their capacity in bytes before allocating and give it back when they
// shrink or are freed; a reservation that would exceed the limit fails
// immediately with ErrMemoryLimitExceeded. Snapshot stores pass their reads
// and writes through a token bucket and run bulk saves through a bounded
// set of background slots.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 8 << 20,
//	})
//
// All methods are safe for concurrent use, and a nil *Controller is valid:
// every method becomes a no-op.
package resource
