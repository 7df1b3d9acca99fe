package elemtype

import "strings"

// Type is a resolved element type.
type Type struct {
	// Name is the nominal type name as given by the caller (trimmed).
	Name string
	// Kind is the storage kind.
	Kind Kind
	// Width is the byte width used by the native buffer, or 0 when the
	// type is held by the fallback store.
	Width int
}

// Native reports whether the type is stored in a native buffer.
func (t Type) Native() bool {
	return t.Width > 0
}

var builtinNames = map[string]Kind{
	"int8":        KindInt8,
	"char":        KindInt8,
	"signed char": KindInt8,

	"uint8":         KindUint8,
	"unsigned char": KindUint8,
	"byte":          KindUint8,

	"int16": KindInt16,
	"short": KindInt16,

	"uint16":         KindUint16,
	"unsigned short": KindUint16,

	"int32": KindInt32,
	"int":   KindInt32,

	"uint32":       KindUint32,
	"unsigned int": KindUint32,

	"int64":     KindInt64,
	"long long": KindInt64,
	"long":      KindInt64,

	"uint64":             KindUint64,
	"unsigned long long": KindUint64,
	"unsigned long":      KindUint64,

	"float32": KindFloat32,
	"float":   KindFloat32,

	"float64": KindFloat64,
	"double":  KindFloat64,

	"uintptr":   KindUintptr,
	"size_t":    KindUintptr,
	"uintptr_t": KindUintptr,
	"pointer":   KindUintptr,

	"intptr_t":  KindIntptr,
	"ssize_t":   KindIntptr,
	"ptrdiff_t": KindIntptr,

	"string": KindString,
	"bool":   KindBool,
}

// Registry resolves element type names. A Registry is immutable and safe
// for concurrent use.
type Registry struct {
	native bool
}

// NewRegistry returns a Registry. When native is false every type resolves
// to the fallback store.
func NewRegistry(native bool) *Registry {
	return &Registry{native: native}
}

// Default is the process-wide registry, built with DetectNative.
var Default = NewRegistry(DetectNative())

// Native reports whether the registry hands out native widths.
func (r *Registry) Native() bool {
	return r.native
}

// WithNative returns a registry that differs only in the native capability.
func (r *Registry) WithNative(native bool) *Registry {
	if r.native == native {
		return r
	}
	return NewRegistry(native)
}

// Lookup resolves name. The boolean reports whether the name is one of the
// known names; unknown names resolve to KindAny.
func (r *Registry) Lookup(name string) (Type, bool) {
	name = strings.TrimSpace(name)
	kind, ok := builtinNames[name]
	t := Type{Name: name, Kind: kind}
	if !ok {
		t.Kind = KindAny
	}
	if r.native {
		t.Width = t.Kind.Width()
	}
	return t, ok
}

// WidthOf returns the native byte width for name. It reports false when the
// type has no fixed width or the registry has native buffers disabled.
func (r *Registry) WidthOf(name string) (int, bool) {
	t, _ := r.Lookup(name)
	return t.Width, t.Width > 0
}
