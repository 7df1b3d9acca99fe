package vecbuf

import "sync/atomic"

// MetricsCollector receives vector events. Implementations must be safe for
// concurrent use because one collector may be shared by many vectors.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    reallocs prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordRealloc(oldCap, newCap int) {
//	    p.reallocs.Inc()
//	}
type MetricsCollector interface {
	// RecordRealloc is called after the native capacity changed.
	RecordRealloc(oldCap, newCap int)

	// RecordClone is called after a clone. fastPath is true for the raw
	// byte copy; n is the number of copied elements.
	RecordClone(fastPath bool, n int)

	// RecordBoundsViolation is called when an index is rejected.
	RecordBoundsViolation()
}

// NoopMetricsCollector discards all events.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRealloc(int, int) {}
func (NoopMetricsCollector) RecordClone(bool, int)  {}
func (NoopMetricsCollector) RecordBoundsViolation() {}

// BasicMetricsCollector counts events in memory.
type BasicMetricsCollector struct {
	Reallocs          atomic.Int64
	Grows             atomic.Int64
	Shrinks           atomic.Int64
	FastClones        atomic.Int64
	ElementwiseClones atomic.Int64
	ClonedElements    atomic.Int64
	BoundsViolations  atomic.Int64
}

// RecordRealloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRealloc(oldCap, newCap int) {
	b.Reallocs.Add(1)
	if newCap > oldCap {
		b.Grows.Add(1)
	} else {
		b.Shrinks.Add(1)
	}
}

// RecordClone implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClone(fastPath bool, n int) {
	if fastPath {
		b.FastClones.Add(1)
	} else {
		b.ElementwiseClones.Add(1)
	}
	b.ClonedElements.Add(int64(n))
}

// RecordBoundsViolation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBoundsViolation() {
	b.BoundsViolations.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Reallocs:          b.Reallocs.Load(),
		Grows:             b.Grows.Load(),
		Shrinks:           b.Shrinks.Load(),
		FastClones:        b.FastClones.Load(),
		ElementwiseClones: b.ElementwiseClones.Load(),
		ClonedElements:    b.ClonedElements.Load(),
		BoundsViolations:  b.BoundsViolations.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Reallocs          int64
	Grows             int64
	Shrinks           int64
	FastClones        int64
	ElementwiseClones int64
	ClonedElements    int64
	BoundsViolations  int64
}
