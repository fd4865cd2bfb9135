package vmarena

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vmarena/resource"
)

// WorkerConfig configures RunWorkers.
type WorkerConfig struct {
	// Workers is the number of goroutines, each owning one arena.
	// If 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	// ReserveSize and CommitSize are passed to New for every worker arena.
	ReserveSize int
	CommitSize  int

	// Controller, if set, bounds committed memory across all worker arenas
	// and gates each worker on a background slot.
	Controller *resource.Controller

	// Logger, if set, receives arena events tagged with the worker index.
	Logger *Logger

	// Options are applied to every worker arena after the ones above.
	Options []Option
}

// TaskFunc processes task i using arena a. Everything it allocates is
// discarded when it returns.
type TaskFunc func(ctx context.Context, a *Arena, task int) error

// RunWorkers runs tasks 0..n-1 on cfg.Workers goroutines. Each goroutine owns
// exactly one arena for its lifetime and runs every task inside a Scope, so
// tasks on the same worker reuse the same committed pages.
//
// The first error cancels the remaining tasks and is returned. All arenas are
// closed before RunWorkers returns.
func RunWorkers(ctx context.Context, cfg WorkerConfig, n int, fn TaskFunc) error {
	if n <= 0 {
		return nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	g, gctx := errgroup.WithContext(ctx)

	var next atomic.Int64
	for w := range workers {
		g.Go(func() error {
			return runWorker(gctx, cfg, w, &next, n, fn)
		})
	}

	return g.Wait()
}

func runWorker(ctx context.Context, cfg WorkerConfig, worker int, next *atomic.Int64, n int, fn TaskFunc) (err error) {
	if err := cfg.Controller.AcquireBackground(ctx); err != nil {
		return err
	}
	defer cfg.Controller.ReleaseBackground()

	opts := make([]Option, 0, len(cfg.Options)+2)
	if cfg.Controller != nil {
		opts = append(opts, WithMemoryAcquirer(cfg.Controller))
	}
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger.WithWorker(worker)))
	}
	opts = append(opts, cfg.Options...)

	a, err := New(cfg.ReserveSize, cfg.CommitSize, opts...)
	if err != nil {
		return fmt.Errorf("worker %d: %w", worker, err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		task := int(next.Add(1) - 1)
		if task >= n {
			return nil
		}

		if err := a.Scope(func(a *Arena) error {
			return fn(ctx, a, task)
		}); err != nil {
			return fmt.Errorf("task %d: %w", task, err)
		}
	}
}
