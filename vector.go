package vecbuf

import (
	"fmt"
	"strings"

	"github.com/hupe1980/vecbuf/internal/conv"
	"github.com/hupe1980/vecbuf/internal/elemtype"
	"github.com/hupe1980/vecbuf/internal/growth"
	"github.com/hupe1980/vecbuf/internal/native"
)

// zeroTypeName is the element type of a zero Vector.
const zeroTypeName = "any"

// Vector is a growable buffer of elements of one type.
//
// The zero value is an empty vector of untyped elements ("any") on the
// fallback backend with default options. New and NewFrom select a type.
//
// A Vector is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
type Vector struct {
	typ    elemtype.Type
	length int
	st     storage
	policy growth.Policy
	opts   options
	log    *Logger
}

// New returns a vector of n zero-valued elements of the named type.
//
// Fixed-width numeric types are stored in a native byte buffer; any other
// name selects the fallback backend.
func New(typeName string, n int, opts ...Option) (*Vector, error) {
	return newVector(typeName, n, applyOptions(defaultOptions(), opts))
}

// NewFrom returns a vector holding values converted to the named type.
func NewFrom(typeName string, values []any, opts ...Option) (*Vector, error) {
	v, err := New(typeName, 0, opts...)
	if err != nil {
		return nil, err
	}

	coerced := make([]any, len(values))
	for i, val := range values {
		c, err := v.coerce(val)
		if err != nil {
			return nil, err
		}
		coerced[i] = c
	}

	if err := v.resize(len(values)); err != nil {
		return nil, err
	}
	for i, c := range coerced {
		v.st.write(i, c)
	}
	return v, nil
}

func newVector(typeName string, n int, o options) (*Vector, error) {
	if n < 0 {
		return nil, &SizeError{Size: n}
	}

	typ, _ := o.resolvedRegistry().Lookup(typeName)
	v := &Vector{
		typ:    typ,
		st:     newStorage(typ, o),
		policy: growth.New(o.chunkSize),
		opts:   o,
	}
	v.log = o.logger.WithType(typ.Name).WithBackend(v.st.kind)
	v.log.Debug("vector created", "size", typ.Width, "length", n)

	if err := v.resize(n); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vector) Len() int { return v.length }

// Cap returns the reserved slots. For the fallback backend it equals Len.
func (v *Vector) Cap() int {
	v.init()
	return v.st.capacity()
}

// ElementType returns the element type name.
func (v *Vector) ElementType() string {
	v.init()
	return v.typ.Name
}

// ElementSize returns the element width in bytes, or 0 for the fallback
// backend.
func (v *Vector) ElementSize() int { return v.typ.Width }

// Backend returns the storage backend.
func (v *Vector) Backend() Backend {
	v.init()
	return v.st.kind
}

// Get returns the element at 1-based index i. Negative indices count from
// the end: -1 is the last element.
func (v *Vector) Get(i int) (any, error) {
	k, err := v.index(i)
	if err != nil {
		return nil, err
	}
	return v.st.read(k), nil
}

// Set stores val at 1-based index i.
func (v *Vector) Set(i int, val any) error {
	k, err := v.index(i)
	if err != nil {
		return err
	}
	c, err := v.coerce(val)
	if err != nil {
		return err
	}
	v.st.write(k, c)
	return nil
}

// Push appends val.
func (v *Vector) Push(val any) error {
	c, err := v.coerce(val)
	if err != nil {
		return err
	}
	if err := v.resize(v.length + 1); err != nil {
		return err
	}
	v.st.write(v.length-1, c)
	return nil
}

// Pop removes and returns the last element.
func (v *Vector) Pop() (any, error) {
	if v.length == 0 {
		return nil, ErrEmptyPop
	}
	val := v.st.read(v.length - 1)
	if err := v.resize(v.length - 1); err != nil {
		return nil, err
	}
	return val, nil
}

// Shift removes and returns the first element.
func (v *Vector) Shift() (any, error) {
	if v.length == 0 {
		return nil, ErrEmptyShift
	}
	val := v.st.read(0)
	v.st.move(0, 1, v.length-1)
	if err := v.resize(v.length - 1); err != nil {
		// Undo the shift so the vector is unchanged.
		v.st.move(1, 0, v.length-1)
		v.st.write(0, val)
		return nil, err
	}
	return val, nil
}

// Unshift inserts val before the first element.
func (v *Vector) Unshift(val any) error {
	c, err := v.coerce(val)
	if err != nil {
		return err
	}
	if err := v.resize(v.length + 1); err != nil {
		return err
	}
	v.st.move(1, 0, v.length-1)
	v.st.write(0, c)
	return nil
}

// SetRange stores val into n consecutive elements starting at 1-based index
// from. Both from and the last written index must be in bounds.
func (v *Vector) SetRange(from int, val any, n int) error {
	if n < 0 {
		return &SizeError{Size: n}
	}
	k, err := v.index(from)
	if err != nil {
		return err
	}
	if last := k + n; last > v.length {
		v.opts.metricsCollector.RecordBoundsViolation()
		return &IndexError{Index: last, Length: v.length}
	}
	c, err := v.coerce(val)
	if err != nil {
		return err
	}
	for i := k; i < k+n; i++ {
		v.st.write(i, c)
	}
	return nil
}

// Realloc sets the length to n. Growth exposes zero-valued elements;
// shrinking drops elements from the end.
func (v *Vector) Realloc(n int) error {
	if n < 0 {
		return &SizeError{Size: n}
	}
	return v.resize(n)
}

// Clone returns a new vector of the named type holding the first
// min(Len, n) elements of v, followed by zero values up to length n. An
// empty typeName keeps the element type of v.
//
// When both vectors use native buffers of equal element size the bytes are
// copied as is, so a clone between distinct types of one width reinterprets
// the bits. Otherwise each element is converted.
func (v *Vector) Clone(typeName string, n int) (*Vector, error) {
	if n < 0 {
		return nil, &SizeError{Size: n}
	}
	v.init()
	if typeName == "" {
		typeName = v.typ.Name
	}

	w, err := newVector(typeName, n, v.opts)
	if err != nil {
		return nil, err
	}

	m := min(v.length, n)
	fast := v.st.kind == BackendNative && w.st.kind == BackendNative && v.typ.Width == w.typ.Width
	if fast {
		native.Copy(w.st.buf, v.st.buf, m)
	} else {
		for k := 0; k < m; k++ {
			c, err := w.coerce(v.st.read(k))
			if err != nil {
				w.Free()
				return nil, err
			}
			w.st.write(k, c)
		}
	}

	v.opts.metricsCollector.RecordClone(fast, m)
	v.log.logClone(w.typ.Name, fast, m)
	return w, nil
}

// Dup returns a copy of v with the same type and length.
func (v *Vector) Dup() (*Vector, error) {
	return v.Clone("", v.length)
}

// Values returns the elements in order.
func (v *Vector) Values() []any {
	out := make([]any, v.length)
	for k := range out {
		out[k] = v.st.read(k)
	}
	return out
}

// Free releases the storage. The vector stays usable and is empty.
func (v *Vector) Free() {
	if v.log == nil {
		return
	}
	v.st.free()
	v.length = 0
}

// String renders the vector as type{v1, v2, ...}.
func (v *Vector) String() string {
	v.init()
	var sb strings.Builder
	sb.WriteString(v.typ.Name)
	sb.WriteByte('{')
	for k := 0; k < v.length; k++ {
		if k > 0 {
			sb.WriteString(", ")
		}
		switch x := v.st.read(k).(type) {
		case string:
			fmt.Fprintf(&sb, "%q", x)
		case nil:
			sb.WriteString("nil")
		default:
			fmt.Fprint(&sb, x)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// init gives a zero Vector its storage. Every constructed vector has a
// logger, so a nil one marks the zero value.
func (v *Vector) init() {
	if v.log != nil {
		return
	}
	w, _ := newVector(zeroTypeName, 0, defaultOptions())
	*v = *w
}

// index maps a public index to a 0-based slot.
func (v *Vector) index(i int) (int, error) {
	v.init()
	p := i
	if p < 0 {
		p = v.length + p + 1
	}
	if p < 1 || p > v.length {
		v.opts.metricsCollector.RecordBoundsViolation()
		return 0, &IndexError{Index: i, Length: v.length}
	}
	return p - 1, nil
}

func (v *Vector) coerce(val any) (any, error) {
	v.init()
	c, ok := conv.Coerce(v.typ.Kind, val)
	if !ok {
		return nil, &TypeMismatchError{ElementType: v.typ.Name, Value: val}
	}
	return c, nil
}

// resize moves the length to n. Slots leaving or entering the valid range
// are zeroed so that everything past the length reads as zero.
func (v *Vector) resize(n int) error {
	v.init()
	switch v.st.kind {
	case BackendNative:
		oldCap := v.st.buf.Cap()
		newCap := v.policy.Decide(oldCap, n)
		if newCap != oldCap {
			if err := v.st.buf.Resize(newCap); err != nil {
				return &AllocationError{Bytes: newCap * v.typ.Width, cause: err}
			}
			v.opts.metricsCollector.RecordRealloc(oldCap, newCap)
			v.log.logRealloc(oldCap, newCap, n)
		}
		if n < v.length {
			v.st.buf.Zero(n, min(v.length, newCap)-n)
		}
	default:
		v.st.store.Resize(v.policy.Track(n))
	}

	if n > v.length {
		v.st.zero(v.length, n-v.length)
	}
	v.length = n
	return nil
}
