// Package hash computes the CRC32-Castagnoli checksums that seal encoded
// vectors.
//
//	sum := hash.CRC32C(frame)
//	ok := hash.Verify(frame, sum)
//
// The table is built once at init; hash/crc32 uses SSE4.2 or the ARM CRC
// extension when present.
package hash
