package vmarena

import "github.com/hupe1980/vmarena/internal/vmem"

// DefaultAlignment is the alignment of every allocation unless WithAlignment
// says otherwise. It suits all scalar and pointer-sized data.
const DefaultAlignment = 8

// MemoryAcquirer charges committed memory against an external budget.
// *resource.Controller implements it.
type MemoryAcquirer interface {
	// TryAcquireMemory must not block; a non-nil error fails the commit.
	TryAcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	acquirer         MemoryAcquirer
	alignment        int
	provider         vmem.Provider
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		alignment:        DefaultAlignment,
		provider:         vmem.System,
	}
}

// Option configures an Arena.
type Option func(*options)

// WithLogger sets the logger for reserve, commit, rollback and release events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified of pushes, commits and rollbacks.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryAcquirer charges every commit against acquirer before memory is
// requested from the operating system. The charge is returned on Close.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}

// WithAlignment sets the alignment of every allocation. It must be a power of
// two no smaller than DefaultAlignment and no larger than the page size.
func WithAlignment(align int) Option {
	return func(o *options) {
		o.alignment = align
	}
}

// withProvider replaces the operating system provider. Tests use it to
// observe and fail commits.
func withProvider(p vmem.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}
