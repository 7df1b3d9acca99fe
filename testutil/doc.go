// Package testutil provides testing utilities for vecbuf.
//
// This package is intended for use in tests, benchmarks and examples only.
//
// # Random Element Generation
//
//	rng := testutil.NewRNG(seed)
//	vals := rng.Values("int16", 128) // []any of int16
//	v, err := vecbuf.NewFrom("int16", vals)
//
// Values covers every built-in numeric type plus "string" and "bool".
// Unknown type names produce a mix of strings, integers and nils.
package testutil
