package wikigo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordSet is called after each store write (create or replace).
	RecordSet(duration time.Duration, created bool)

	// RecordDelete is called after each store removal.
	RecordDelete(duration time.Duration, found bool)

	// RecordImport is called after each guarded import.
	RecordImport(duration time.Duration, accepted bool)

	// RecordSearch is called after each search. terms is the number of
	// compiled query terms.
	RecordSearch(terms int, duration time.Duration)

	// RecordRender is called after each render to an output type.
	RecordRender(duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSet(time.Duration, bool)    {}
func (NoopMetricsCollector) RecordDelete(time.Duration, bool) {}
func (NoopMetricsCollector) RecordImport(time.Duration, bool) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration)  {}
func (NoopMetricsCollector) RecordRender(time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetCount        atomic.Int64
	SetCreated      atomic.Int64
	SetTotalNanos   atomic.Int64
	DeleteCount     atomic.Int64
	DeleteMisses    atomic.Int64
	ImportCount     atomic.Int64
	ImportRejected  atomic.Int64
	SearchCount     atomic.Int64
	SearchTerms     atomic.Int64
	SearchNanos     atomic.Int64
	RenderCount     atomic.Int64
	RenderTotalNano atomic.Int64
}

// RecordSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSet(duration time.Duration, created bool) {
	b.SetCount.Add(1)
	b.SetTotalNanos.Add(duration.Nanoseconds())
	if created {
		b.SetCreated.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, found bool) {
	b.DeleteCount.Add(1)
	if !found {
		b.DeleteMisses.Add(1)
	}
}

// RecordImport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordImport(duration time.Duration, accepted bool) {
	b.ImportCount.Add(1)
	if !accepted {
		b.ImportRejected.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(terms int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchTerms.Add(int64(terms))
	b.SearchNanos.Add(duration.Nanoseconds())
}

// RecordRender implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRender(duration time.Duration) {
	b.RenderCount.Add(1)
	b.RenderTotalNano.Add(duration.Nanoseconds())
}
