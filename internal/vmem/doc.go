// Package vmem wraps the operating system's virtual-memory primitives.
//
// # Overview
//
// A Region is a contiguous range of address space that is reserved up front
// and backed with physical memory on demand:
//
//	r, err := vmem.Reserve(64 << 20) // address space only
//	if err != nil { ... }
//	defer r.Release()
//
//	// Back the first 1 MiB with read/write memory.
//	if err := r.Commit(0, 1<<20); err != nil { ... }
//	buf := r.Bytes()[:1<<20]
//
// Touching bytes outside a committed range faults.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with PROT_NONE to reserve, mprotect(2)
//     to commit, madvise(2) for access hints
//   - Windows: VirtualAlloc with MEM_RESERVE to reserve and MEM_COMMIT to commit
//   - Other: the full range is allocated at reservation time and Commit only
//     validates bounds
//
// # Thread Safety
//
// Commit may be called from multiple goroutines for disjoint ranges. Release
// is idempotent; callers must ensure nothing reads Bytes() after it returns.
package vmem
