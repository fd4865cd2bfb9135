// Package vmarena provides a reserve/commit memory arena.
//
// An Arena reserves one contiguous range of virtual address space up front and
// backs it with physical memory in fixed granules as a bump cursor advances.
// Allocations are never freed individually; instead a caller saves the cursor
// and later rolls back to it, discarding everything allocated since in O(1).
//
// # Quick Start
//
//	a, err := vmarena.New(1<<30, 1<<20) // reserve 1 GiB, commit 1 MiB at a time
//	if err != nil { ... }
//	defer a.Close()
//
//	mark := a.Pos()
//	buf, err := a.Push(4096)            // 8-byte aligned, contents unspecified
//	zeroed, err := a.PushZeroed(256)    // zero-filled
//	xs, err := vmarena.AllocSliceZeroed[float32](a, 1024)
//	_ = a.PopTo(mark)                   // buf, zeroed and xs are now invalid
//
// # Memory Model
//
// The reservation never moves, so every slice returned by Push keeps its
// address for the life of the arena. Committed memory is never returned to
// the operating system before Close; a rollback only rewinds the cursor and
// later pushes reuse the same pages with whatever bytes they still hold.
//
// Arena memory lives outside the Go heap and is not scanned by the garbage
// collector. Do not store pointers to heap objects in it.
//
// # Errors
//
//   - ErrInvalidSize / ErrInvalidAlignment: bad arguments
//   - ErrReserveFailed (*ReserveError): the OS refused the reservation
//   - ErrCommitFailed (*CommitError): the OS or the MemoryAcquirer refused a commit
//   - ErrOutOfSpace: the allocation would run past the reservation
//   - ErrInvalidRollback (*RollbackError): PopTo was given a target outside [0, Pos()]
//
// A failed Push never changes the arena. An invalid rollback is a caller bug;
// use MustPopTo to turn it into a panic.
//
// # Checked References
//
// Slices cannot tell whether their memory has been rolled back. PushRef
// returns a Ref that can:
//
//	ref, _ := a.PushRef(64)
//	b, err := a.Bytes(ref) // ErrStaleRef once a rollback discards it
//
// # Concurrency
//
// An Arena is owned by one goroutine at a time. RunWorkers runs tasks on a
// fixed set of goroutines, each with its own arena, and a resource.Controller
// can bound the memory committed by all of them together.
package vmarena
