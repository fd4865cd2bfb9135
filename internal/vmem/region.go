package vmem

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

var pageSize = sync.OnceValue(osPageSize)

// PageSize returns the platform's memory page granularity.
// It is queried once per process.
func PageSize() int {
	return pageSize()
}

// AlignUp rounds n up to the next multiple of align, which must be a power of two.
// ok is false if the result would overflow int.
func AlignUp(n, align int) (aligned int, ok bool) {
	mask := align - 1
	if n > math.MaxInt-mask {
		return 0, false
	}
	return (n + mask) &^ mask, true
}

// Region is a reserved range of virtual address space.
// It owns the reservation and is responsible for releasing it.
type Region struct {
	data     []byte
	released atomic.Bool
}

// Reserve reserves size bytes of address space without committing memory.
// size must be a positive multiple of PageSize.
func Reserve(size int) (*Region, error) {
	if size <= 0 || size%PageSize() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	data, err := osReserve(size)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %d bytes: %w", size, err)
	}

	return &Region{data: data}, nil
}

// Size returns the size of the reservation in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// Bytes returns the reserved range.
// Warning: only committed bytes may be read or written, and the slice is
// valid only until Release is called.
func (r *Region) Bytes() []byte {
	if r.released.Load() {
		return nil
	}
	return r.data
}

// Commit backs [off, off+size) with read/write memory.
// The range must be page-aligned and lie within the reservation.
// Committing an already committed range is a no-op.
func (r *Region) Commit(off, size int) error {
	if r.released.Load() {
		return ErrReleased
	}
	if size == 0 {
		return nil
	}
	if err := r.check(off, size); err != nil {
		return err
	}
	ps := PageSize()
	if off%ps != 0 || size%ps != 0 {
		return fmt.Errorf("%w: [%d, %d)", ErrUnaligned, off, off+size)
	}

	if err := osCommit(r.data[off : off+size]); err != nil {
		return fmt.Errorf("vmem: commit [%d, %d): %w", off, off+size, err)
	}
	return nil
}

// Advise provides hints to the kernel about how [off, off+size) will be accessed.
func (r *Region) Advise(off, size int, pattern AccessPattern) error {
	if r.released.Load() {
		return ErrReleased
	}
	if size == 0 {
		return nil
	}
	if err := r.check(off, size); err != nil {
		return err
	}
	return osAdvise(r.data[off:off+size], pattern)
}

// Release returns the reservation to the operating system. It is idempotent.
func (r *Region) Release() error {
	if r.released.Swap(true) {
		return nil
	}
	data := r.data
	r.data = nil
	return osRelease(data)
}

func (r *Region) check(off, size int) error {
	if off < 0 || size < 0 || off > len(r.data) || size > len(r.data)-off {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrOutOfBounds, off, off+size, len(r.data))
	}
	return nil
}

type systemProvider struct{}

// System is the Provider backed by the operating system.
var System Provider = systemProvider{}

func (systemProvider) PageSize() int { return PageSize() }

func (systemProvider) Reserve(size int) (Reservation, error) {
	r, err := Reserve(size)
	if err != nil {
		return nil, err
	}
	return r, nil
}
