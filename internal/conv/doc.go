// Package conv converts host values into the canonical Go value of an
// element kind, and checks integer narrowing for encoded lengths.
//
// Coercion follows C cast semantics: floats truncate toward zero when stored
// into integer kinds and integers wrap on overflow. Booleans and non-numeric
// values are never coerced into numeric kinds.
package conv
