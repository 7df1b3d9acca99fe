// Package elemtype maps element type names to storage kinds and byte widths.
//
// A name either resolves to a fixed-width kind that the native buffer can
// hold, or to a kind without a fixed width (string, bool, any) that is kept
// in the generic fallback store. Whether native buffers are available at all
// is an explicit capability of the Registry, resolved once when the Registry
// is built.
package elemtype
