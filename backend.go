package vecbuf

import (
	"github.com/hupe1980/vecbuf/internal/conv"
	"github.com/hupe1980/vecbuf/internal/elemtype"
	"github.com/hupe1980/vecbuf/internal/fallback"
	"github.com/hupe1980/vecbuf/internal/native"
)

// Backend identifies the storage behind a Vector.
type Backend uint8

const (
	// BackendNative stores fixed-width elements in a contiguous byte buffer.
	BackendNative Backend = iota
	// BackendFallback stores elements as host values.
	BackendFallback
)

func (b Backend) String() string {
	switch b {
	case BackendNative:
		return "native"
	case BackendFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// storage is the tagged union of the two backends. Exactly one of buf and
// store is set, matching kind.
type storage struct {
	kind  Backend
	buf   *native.Buffer
	store *fallback.Store
}

func (s *storage) read(k int) any {
	switch s.kind {
	case BackendNative:
		return s.buf.Read(k)
	default:
		return s.store.Read(k)
	}
}

func (s *storage) write(k int, v any) {
	switch s.kind {
	case BackendNative:
		s.buf.Write(k, v)
	default:
		s.store.Write(k, v)
	}
}

func (s *storage) move(dst, src, n int) {
	switch s.kind {
	case BackendNative:
		s.buf.Move(dst, src, n)
	default:
		s.store.Move(dst, src, n)
	}
}

func (s *storage) zero(k, n int) {
	switch s.kind {
	case BackendNative:
		s.buf.Zero(k, n)
	default:
		s.store.Zero(k, n)
	}
}

func (s *storage) capacity() int {
	switch s.kind {
	case BackendNative:
		return s.buf.Cap()
	default:
		return s.store.Len()
	}
}

func (s *storage) free() {
	switch s.kind {
	case BackendNative:
		s.buf.Free()
	default:
		s.store.Free()
	}
}

func newStorage(t elemtype.Type, o options) storage {
	if t.Native() {
		var budget native.Budget
		if o.memory != nil {
			budget = o.memory
		}
		return storage{kind: BackendNative, buf: native.New(t.Kind, o.allocator, budget)}
	}
	return storage{kind: BackendFallback, store: fallback.New(conv.Zero(t.Kind))}
}
