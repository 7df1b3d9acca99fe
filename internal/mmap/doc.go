// Package mmap provides read-only file mappings and anonymous read-write
// mappings.
//
// Anonymous mappings back off-heap element buffers; the memory lives outside
// the Go heap and must be released with Close. File mappings give the local
// blob store zero-copy reads of snapshot files.
//
//	m, err := mmap.MapAnon(4096)
//	if err != nil { ... }
//	defer m.Close()
//	buf := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses MapViewOfFile for files and
// VirtualAlloc for anonymous memory; Advise is a no-op there.
//
// Bytes must not be used after Close returns.
package mmap
