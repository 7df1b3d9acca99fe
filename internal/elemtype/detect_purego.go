//go:build vecbuf_purego

package elemtype

// DetectNative reports whether native byte buffers are available in this
// build. Builds tagged vecbuf_purego disable them.
func DetectNative() bool { return false }
