package vecbuf

import (
	"github.com/hupe1980/vecbuf/internal/elemtype"
	"github.com/hupe1980/vecbuf/internal/growth"
	"github.com/hupe1980/vecbuf/internal/native"
	"github.com/hupe1980/vecbuf/resource"
)

// Allocator hands out zeroed byte regions for native buffers.
type Allocator = native.Allocator

// Deallocator releases one allocation.
type Deallocator = native.Deallocator

// HeapAllocator allocates 64-byte aligned regions from the Go heap.
func HeapAllocator() Allocator { return native.HeapAllocator{} }

// MmapAllocator allocates anonymous mappings outside the Go heap.
func MmapAllocator() Allocator { return native.MmapAllocator{} }

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	chunkSize        int
	allocator        Allocator
	memory           *resource.Controller
	registry         *elemtype.Registry
	nativeMemory     *bool
}

// Option configures a Vector. Clones inherit the options of their source.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		chunkSize:        growth.DefaultChunkSize,
		allocator:        native.HeapAllocator{},
		registry:         elemtype.Default,
	}
}

func applyOptions(base options, opts []Option) options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

func (o options) resolvedRegistry() *elemtype.Registry {
	if o.nativeMemory != nil {
		return o.registry.WithNative(*o.nativeMemory)
	}
	return o.registry
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithChunkSize sets the slack added on every reallocation.
// Values below 1 select the default of 16.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = growth.DefaultChunkSize
		}
		o.chunkSize = n
	}
}

// WithAllocator sets the allocator of native buffers.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = native.HeapAllocator{}
		}
		o.allocator = a
	}
}

// WithMemoryController accounts native buffer bytes against rc.
// Growth that would exceed its limit fails with ErrAllocationFailure.
func WithMemoryController(rc *resource.Controller) Option {
	return func(o *options) {
		o.memory = rc
	}
}

// WithNativeMemory overrides the detected native buffer capability.
// With false every element type uses the fallback backend.
func WithNativeMemory(enabled bool) Option {
	return func(o *options) {
		o.nativeMemory = &enabled
	}
}
