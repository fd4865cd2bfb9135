// Package resource implements a process-wide governor for committed arena
// memory and worker concurrency.
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                  Controller                   │
//	├────────────────────────┬──────────────────────┤
//	│  Memory Budget         │  Workers (sem)       │
//	│  (fail-fast or wait)   │                      │
//	├────────────────────────┼──────────────────────┤
//	│  TryAcquireMemory      │  AcquireBackground   │
//	│  AcquireMemory         │  TryAcquireBackground│
//	│  ReleaseMemory         │  ReleaseBackground   │
//	│  MemoryUsage           │                      │
//	└────────────────────────┴──────────────────────┘
//
// # Memory Budget
//
// Arenas charge every commit against the budget before asking the operating
// system for pages, and give the charge back when they are closed.
// TryAcquireMemory never blocks:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB of committed arena memory
//	})
//
//	a, err := vmarena.New(64<<30, 1<<20, vmarena.WithMemoryAcquirer(rc))
//
// # Worker Limits
//
// Bounds how many arena workers run at once across independent RunWorkers calls:
//
//	if err := rc.AcquireBackground(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseBackground()
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
