package vmarena

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting arena metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A collector may be shared by arenas owned by different goroutines, so
// implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordPush is called after each push. err is nil if successful.
	RecordPush(size int, err error)

	// RecordCommit is called after each request for more physical memory.
	// bytes is the size of the committed delta, duration the time taken.
	RecordCommit(bytes int, duration time.Duration, err error)

	// RecordRollback is called after each successful PopTo with the number
	// of bytes discarded.
	RecordRollback(discarded int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPush(int, error)                  {}
func (NoopMetricsCollector) RecordCommit(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRollback(int)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PushCount        atomic.Int64
	PushErrors       atomic.Int64
	PushBytes        atomic.Int64
	CommitCount      atomic.Int64
	CommitErrors     atomic.Int64
	CommitBytes      atomic.Int64
	CommitTotalNanos atomic.Int64
	RollbackCount    atomic.Int64
	RollbackBytes    atomic.Int64
}

// RecordPush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPush(size int, err error) {
	b.PushCount.Add(1)
	if err != nil {
		b.PushErrors.Add(1)
		return
	}
	b.PushBytes.Add(int64(size))
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit(bytes int, duration time.Duration, err error) {
	b.CommitCount.Add(1)
	b.CommitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CommitErrors.Add(1)
		return
	}
	b.CommitBytes.Add(int64(bytes))
}

// RecordRollback implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRollback(discarded int) {
	b.RollbackCount.Add(1)
	b.RollbackBytes.Add(int64(discarded))
}

// AverageCommitLatency returns the mean time spent per commit.
func (b *BasicMetricsCollector) AverageCommitLatency() time.Duration {
	count := b.CommitCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.CommitTotalNanos.Load() / count)
}
