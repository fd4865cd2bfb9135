package vmarena

import (
	"fmt"
	"time"

	"github.com/hupe1980/vmarena/internal/vmem"
)

// Arena is a bump allocator over one reserved range of virtual memory.
//
// The range is reserved once at construction. Physical memory is committed in
// CommitSize granules as the cursor advances, and is never given back before
// Close. Every returned slice stays at the same address until the cursor is
// rolled back past its start.
//
// An Arena is not safe for concurrent use. Use one arena per goroutine (see
// RunWorkers) or serialize access externally.
type Arena struct {
	res      vmem.Reservation
	mem      []byte // whole reservation; only mem[:commitPos] is backed
	pageSize int

	reserveSize int
	commitSize  int
	align       int

	pos       int
	commitPos int
	charged   int64 // bytes held from opts.acquirer

	gen    uint64
	marks  []rollbackMark
	closed bool

	stats counters
	opts  options
}

type counters struct {
	peak         int
	pushes       uint64
	failedPushes uint64
	commits      uint64
	rollbacks    uint64
}

// New reserves reserveSize bytes of address space and commits the first
// commitSize bytes. Both sizes are rounded up to the page size; commitSize is
// also the granularity of every later commit.
//
// The reservation is released again if any step fails.
func New(reserveSize, commitSize int, opts ...Option) (*Arena, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a, err := newArena(reserveSize, commitSize, o)
	o.logger.LogReserve(reserveSize, commitSize, err)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func newArena(reserveSize, commitSize int, o options) (*Arena, error) {
	ps := o.provider.PageSize()

	if reserveSize <= 0 || commitSize <= 0 {
		return nil, fmt.Errorf("%w: reserve %d, commit %d", ErrInvalidSize, reserveSize, commitSize)
	}
	if o.alignment < DefaultAlignment || o.alignment > ps || o.alignment&(o.alignment-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, o.alignment)
	}

	reserve, ok := vmem.AlignUp(reserveSize, ps)
	if !ok {
		return nil, fmt.Errorf("%w: reserve %d overflows when page-aligned", ErrInvalidSize, reserveSize)
	}
	commit, ok := vmem.AlignUp(commitSize, ps)
	if !ok {
		return nil, fmt.Errorf("%w: commit %d overflows when page-aligned", ErrInvalidSize, commitSize)
	}

	res, err := o.provider.Reserve(reserve)
	if err != nil {
		return nil, &ReserveError{Size: reserve, cause: err}
	}

	a := &Arena{
		res:         res,
		mem:         res.Bytes(),
		pageSize:    ps,
		reserveSize: reserve,
		commitSize:  commit,
		align:       o.alignment,
		opts:        o,
	}

	// commitPos must never claim more than is actually backed, so the first
	// granule is committed in full.
	if err := a.grow(min(commit, reserve)); err != nil {
		_ = res.Release()
		return nil, err
	}

	return a, nil
}

// Push allocates size bytes at the next aligned cursor position.
//
// The returned slice has length and capacity size. Its contents are
// unspecified: memory reused after a rollback keeps its old bytes. Use
// PushZeroed when zeroed memory is required.
//
// Push fails with ErrOutOfSpace when the allocation would run past the
// reservation and with a *CommitError when more memory could not be
// committed. A failed Push leaves the arena unchanged.
func (a *Arena) Push(size int) ([]byte, error) {
	b, err := a.push(size)
	if err != nil {
		a.stats.failedPushes++
	} else {
		a.stats.pushes++
	}
	a.opts.metricsCollector.RecordPush(size, err)
	return b, err
}

// PushZeroed is like Push but zero-fills the returned slice.
func (a *Arena) PushZeroed(size int) ([]byte, error) {
	b, err := a.Push(size)
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

func (a *Arena) push(size int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	// pos <= reserveSize and reserveSize is a multiple of align: no overflow.
	start, _ := vmem.AlignUp(a.pos, a.align)
	if size > a.reserveSize-start {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, reserved %d", ErrOutOfSpace, size, start, a.reserveSize)
	}
	end := start + size

	if end > a.commitPos {
		if err := a.grow(a.commitBoundary(end)); err != nil {
			return nil, err
		}
	}

	a.pos = end
	if end > a.stats.peak {
		a.stats.peak = end
	}
	return a.mem[start:end:end], nil
}

// commitBoundary rounds end up to the commit granularity, clamped to the reservation.
func (a *Arena) commitBoundary(end int) int {
	rem := end % a.commitSize
	if rem == 0 {
		return end
	}
	if a.commitSize-rem > a.reserveSize-end {
		return a.reserveSize
	}
	return end + a.commitSize - rem
}

// grow commits [commitPos, newCommitPos). State is only updated on success.
func (a *Arena) grow(newCommitPos int) error {
	off := a.commitPos
	delta := newCommitPos - off

	start := time.Now()
	err := a.commit(off, delta)
	a.opts.metricsCollector.RecordCommit(delta, time.Since(start), err)
	a.opts.logger.LogCommit(off, delta, err)
	if err != nil {
		return err
	}

	a.commitPos = newCommitPos
	a.stats.commits++
	return nil
}

func (a *Arena) commit(off, size int) error {
	if a.opts.acquirer != nil {
		if err := a.opts.acquirer.TryAcquireMemory(int64(size)); err != nil {
			return &CommitError{Offset: off, Size: size, cause: err}
		}
	}

	if err := a.res.Commit(off, size); err != nil {
		if a.opts.acquirer != nil {
			a.opts.acquirer.ReleaseMemory(int64(size))
		}
		return &CommitError{Offset: off, Size: size, cause: err}
	}

	if a.opts.acquirer != nil {
		a.charged += int64(size)
	}
	return nil
}

// Pos returns the cursor. Save it as a checkpoint for PopTo.
func (a *Arena) Pos() int {
	return a.pos
}

// PopTo rolls the cursor back to target, discarding every allocation that
// ends after it. Committed memory stays committed and is reused by later
// pushes.
//
// target must satisfy 0 <= target <= Pos(). Anything else is a caller bug and
// returns a *RollbackError without touching the cursor.
func (a *Arena) PopTo(target int) error {
	if a.closed {
		return ErrClosed
	}

	from := a.pos
	if target < 0 || target > from {
		err := &RollbackError{Target: target, Pos: from}
		a.opts.logger.LogRollback(from, target, err)
		return err
	}

	if target < from {
		a.recordRollback(target)
	}
	a.pos = target
	a.stats.rollbacks++

	a.opts.logger.LogRollback(from, target, nil)
	a.opts.metricsCollector.RecordRollback(from - target)
	return nil
}

// MustPopTo is like PopTo but panics if the rollback is rejected.
func (a *Arena) MustPopTo(target int) {
	if err := a.PopTo(target); err != nil {
		panic(fmt.Sprintf("vmarena: %v", err))
	}
}

// Reset rolls the cursor back to zero.
func (a *Arena) Reset() error {
	return a.PopTo(0)
}

// Scope runs fn and then rolls the cursor back to where it was before,
// discarding everything fn allocated. The error of fn takes precedence.
func (a *Arena) Scope(fn func(*Arena) error) (err error) {
	mark := a.Pos()
	defer func() {
		if perr := a.PopTo(mark); perr != nil && err == nil {
			err = perr
		}
	}()
	return fn(a)
}

// Prefault asks the kernel to populate the committed pages covering the next
// n bytes after the cursor. It is a hint; pages beyond the committed range
// are not touched.
func (a *Arena) Prefault(n int) error {
	if a.closed {
		return ErrClosed
	}
	if n <= 0 {
		return nil
	}

	start := a.pos - a.pos%a.pageSize
	end := a.commitPos
	if n < end-a.pos {
		end, _ = vmem.AlignUp(a.pos+n, a.pageSize)
	}
	if end <= start {
		return nil
	}
	return a.res.Advise(start, end-start, vmem.AccessWillNeed)
}

// Close releases the reservation and returns any memory charged to the
// MemoryAcquirer. Every slice handed out by the arena becomes invalid.
// Close is idempotent.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	stats := a.Stats()

	a.closed = true
	err := a.res.Release()

	if a.opts.acquirer != nil {
		a.opts.acquirer.ReleaseMemory(a.charged)
		a.charged = 0
	}
	a.mem = nil
	a.marks = nil

	a.opts.logger.LogClose(stats, err)
	if err != nil {
		return fmt.Errorf("release reservation: %w", err)
	}
	return nil
}

// ReserveSize returns the size of the reservation in bytes.
func (a *Arena) ReserveSize() int { return a.reserveSize }

// CommitSize returns the commit granularity in bytes.
func (a *Arena) CommitSize() int { return a.commitSize }

// Committed returns the number of bytes backed by memory.
func (a *Arena) Committed() int { return a.commitPos }

// PageSize returns the page size the arena was rounded to.
func (a *Arena) PageSize() int { return a.pageSize }

// Alignment returns the alignment of every allocation.
func (a *Arena) Alignment() int { return a.align }

// Remaining returns how many bytes the next Push can take at most.
func (a *Arena) Remaining() int {
	start, _ := vmem.AlignUp(a.pos, a.align)
	return a.reserveSize - start
}
