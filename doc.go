// Package vecbuf provides Vector, a growable buffer of homogeneous elements
// for hosts that work with dynamically typed values.
//
// # Element types
//
// The element type is named when the vector is created. Fixed-width numeric
// names ("int32", "double", "unsigned char", "size_t", ...) are stored in a
// contiguous byte buffer in native byte order. Any other name ("string",
// "bool", or an arbitrary name) selects a fallback store of host values.
//
//	v, _ := vecbuf.NewFrom("int32", []any{10, 20, 30})
//	_ = v.Push(40)
//	first, _ := v.Shift() // int32(10)
//	last, _ := v.Get(-1)  // int32(40)
//	fmt.Println(v)        // int32{20, 30, 40}
//
// # Indexing
//
// Indices are 1-based. A negative index i means Len()+i+1, so -1 is the last
// element. Index 0 and indices whose magnitude exceeds Len are rejected with
// ErrIndexOutOfBounds; they are never clamped.
//
// # Capacity
//
// Native buffers keep spare capacity. When the length grows past the
// capacity, or drops below half of it, the buffer is reallocated to the
// length plus a chunk of 16 slots (see WithChunkSize). Slots past the length
// always read as zero.
//
// # Values
//
// Values stored into numeric vectors are converted with C semantics: floats
// truncate toward zero and integers wrap. Booleans and non-numeric values are
// rejected with ErrTypeMismatch before anything is written.
//
// # Cloning
//
// Clone copies a prefix into a new vector of any type. When both vectors are
// native with equal element width the bytes are copied in one move;
// otherwise every element is converted to the target type.
//
// # Persistence
//
// Vectors implement encoding.BinaryMarshaler and encoding.BinaryUnmarshaler.
// Package snapshot stores encoded vectors in a blobstore.BlobStore (memory,
// local files, MinIO or S3), and package starvec exposes vectors to Starlark.
//
// # Concurrency
//
// A Vector must not be used from multiple goroutines without external
// synchronization. Loggers, metrics collectors and resource controllers may
// be shared between vectors.
package vecbuf
